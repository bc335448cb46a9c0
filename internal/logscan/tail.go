package logscan

import (
	"io"
	"os"
	"strings"
)

// Tail follows a growing log from its current end, returning complete lines
// appended since the previous call. Used by the dashboard's follow mode,
// which polls it on a short tick.
type Tail struct {
	path   string
	offset int64
	carry  []byte
}

// NewTail starts following at the file's current end. A missing file starts
// at zero, so lines appear as soon as the worker creates it.
func NewTail(path string) *Tail {
	t := &Tail{path: path}
	if fi, err := os.Stat(path); err == nil {
		t.offset = fi.Size()
	}
	return t
}

// Next returns lines appended since the last call. Missing files and
// truncation are absorbed: the former yields no lines, the latter restarts
// from the top of the new file.
func (t *Tail) Next() ([]string, error) {
	fi, err := os.Stat(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			t.offset = 0
			t.carry = nil
			return nil, nil
		}
		return nil, err
	}

	if fi.Size() < t.offset {
		t.offset = 0
		t.carry = nil
	}
	if fi.Size() == t.offset {
		return nil, nil
	}

	f, err := os.Open(t.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	t.offset += int64(len(data))

	lines, rest := splitComplete(append(t.carry, data...))
	t.carry = rest

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.TrimRight(line, "\r"))
	}
	return out, nil
}
