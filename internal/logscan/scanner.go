// Package logscan incrementally scans the worker's append-only log for
// classified progress markers. The worker writes the file with no
// coordination, so reads never lock it and a partially written trailing line
// is carried to the next cycle instead of being miscounted.
package logscan

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Markers maps each countable category to its match token. The progress
// tokens are plain substrings, typically natural-language words from the
// worker's locale.
type Markers struct {
	Error        string
	Success      string
	Search       string
	NewItem      string
	LocationDone string
}

// Stats are cumulative totals over everything scanned so far, plus the most
// recent matching lines for the error and new-item categories in file order.
type Stats struct {
	ErrorCount     int
	SuccessCount   int
	SearchCount    int
	ShopsFound     int
	LocationsDone  int
	RecentErrors   []string
	RecentNewItems []string
}

const (
	// DefaultRecent caps the recent-match tails.
	DefaultRecent = 3
	// DefaultWidth trims stored lines to this many runes.
	DefaultWidth = 120
)

// Scanner tracks a byte offset into the log between cycles and folds newly
// appended lines into running totals, so a large log costs one short read
// per cycle instead of a full re-scan.
type Scanner struct {
	path    string
	markers Markers
	keep    int
	width   int

	offset int64
	carry  []byte
	totals Stats
}

// Option adjusts scanner limits.
type Option func(*Scanner)

// WithRecent sets how many recent matching lines are kept per category.
func WithRecent(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.keep = n
		}
	}
}

// WithWidth sets the display width lines are trimmed to.
func WithWidth(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.width = n
		}
	}
}

// NewScanner creates a scanner for the given log path.
func NewScanner(path string, markers Markers, opts ...Option) *Scanner {
	s := &Scanner{
		path:    path,
		markers: markers,
		keep:    DefaultRecent,
		width:   DefaultWidth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan reads any bytes appended since the last call and returns updated
// cumulative stats. A missing file yields zero stats and no error. A log
// that shrank (rotated or truncated) resets the scanner and starts over.
func (s *Scanner) Scan() (Stats, error) {
	fi, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.Reset()
			return s.snapshot(), nil
		}
		return s.snapshot(), fmt.Errorf("stat %s: %w", s.path, err)
	}

	if fi.Size() < s.offset {
		s.Reset()
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.Reset()
			return s.snapshot(), nil
		}
		return s.snapshot(), fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	if _, err := f.Seek(s.offset, io.SeekStart); err != nil {
		return s.snapshot(), fmt.Errorf("seek %s: %w", s.path, err)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return s.snapshot(), fmt.Errorf("read %s: %w", s.path, err)
	}
	s.offset += int64(len(data))

	lines, rest := splitComplete(append(s.carry, data...))
	s.carry = rest
	for _, line := range lines {
		s.classify(line)
	}

	return s.snapshot(), nil
}

// Reset forgets the offset and totals, as if the log had never been read.
func (s *Scanner) Reset() {
	s.offset = 0
	s.carry = nil
	s.totals = Stats{}
}

func (s *Scanner) classify(line string) {
	if s.markers.Error != "" && strings.Contains(line, s.markers.Error) {
		s.totals.ErrorCount++
		s.totals.RecentErrors = appendBounded(s.totals.RecentErrors, trimWidth(line, s.width), s.keep)
	}
	if s.markers.Success != "" && strings.Contains(line, s.markers.Success) {
		s.totals.SuccessCount++
	}
	if s.markers.Search != "" && strings.Contains(line, s.markers.Search) {
		s.totals.SearchCount++
	}
	if s.markers.NewItem != "" && strings.Contains(line, s.markers.NewItem) {
		s.totals.ShopsFound++
		s.totals.RecentNewItems = appendBounded(s.totals.RecentNewItems, trimWidth(line, s.width), s.keep)
	}
	if s.markers.LocationDone != "" && strings.Contains(line, s.markers.LocationDone) {
		s.totals.LocationsDone++
	}
}

// snapshot copies the totals so callers can't alias the internal slices.
func (s *Scanner) snapshot() Stats {
	out := s.totals
	out.RecentErrors = append([]string(nil), s.totals.RecentErrors...)
	out.RecentNewItems = append([]string(nil), s.totals.RecentNewItems...)
	return out
}

// splitComplete splits data into complete lines and the trailing partial
// line still being written by the worker.
func splitComplete(data []byte) (lines []string, rest []byte) {
	if len(data) == 0 {
		return nil, nil
	}

	last := strings.LastIndexByte(string(data), '\n')
	if last < 0 {
		return nil, data
	}

	for _, line := range strings.Split(string(data[:last]), "\n") {
		lines = append(lines, strings.TrimRight(line, "\r"))
	}
	return lines, append([]byte(nil), data[last+1:]...)
}

func appendBounded(list []string, line string, keep int) []string {
	list = append(list, line)
	if len(list) > keep {
		list = list[len(list)-keep:]
	}
	return list
}

func trimWidth(line string, width int) string {
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	return string(runes[:width])
}
