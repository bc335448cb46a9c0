// Package artifacts lists the worker's tabular output files and reports how
// far the newest one has grown. Everything here is read-only and lock-free:
// the worker may be rewriting these files while we look at them, so any
// parse failure degrades to an unknown row count rather than an error.
package artifacts

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"scrapewatch/internal/logger"
)

// Classes groups file extensions by how their row counts are read.
type Classes struct {
	Excel []string
	CSV   []string
}

// File describes one artifact on disk.
type File struct {
	Path       string
	SizeBytes  int64
	ModifiedAt time.Time

	// RowCount is the number of data rows (header excluded), or nil when
	// the file could not be parsed.
	RowCount *int
}

// Info summarizes a directory's artifacts for one dashboard cycle.
type Info struct {
	ExcelCount int
	CSVCount   int

	// Latest is the most recently modified artifact across both classes,
	// nil when the worker has produced nothing yet.
	Latest *File
}

// Inventory scans a working directory for artifact files.
type Inventory struct {
	classes Classes
	log     logger.Logger
}

// New creates an inventory for the given extension classes.
func New(classes Classes, log logger.Logger) *Inventory {
	if log == nil {
		log = logger.Noop()
	}
	return &Inventory{classes: classes, log: log}
}

// Scan lists matching files in dir and row-counts the newest one. A missing
// or empty directory yields zero counts and no error.
func (inv *Inventory) Scan(dir string) (Info, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Info{}, nil
		}
		return Info{}, err
	}

	var info Info
	var latest *File
	latestIsExcel := false

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		isExcel := matchExt(ext, inv.classes.Excel)
		isCSV := matchExt(ext, inv.classes.CSV)
		if !isExcel && !isCSV {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			// Deleted between ReadDir and stat; worker churn, skip it
			continue
		}

		if isExcel {
			info.ExcelCount++
		} else {
			info.CSVCount++
		}

		if latest == nil || fi.ModTime().After(latest.ModifiedAt) {
			latest = &File{
				Path:       filepath.Join(dir, entry.Name()),
				SizeBytes:  fi.Size(),
				ModifiedAt: fi.ModTime(),
			}
			latestIsExcel = isExcel
		}
	}

	if latest != nil {
		if n, ok := inv.countRows(latest.Path, latestIsExcel); ok {
			latest.RowCount = &n
		}
		info.Latest = latest
	}

	return info, nil
}

// countRows counts data rows in the file, excluding the header row. The
// worker may be mid-write, so every failure is a quiet "unknown".
func (inv *Inventory) countRows(path string, isExcel bool) (int, bool) {
	if isExcel {
		return inv.countExcelRows(path)
	}
	return inv.countCSVRows(path)
}

func (inv *Inventory) countExcelRows(path string) (int, bool) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		inv.log.Debug("couldn't open %s: %v", path, err)
		return 0, false
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, false
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		inv.log.Debug("couldn't read rows from %s: %v", path, err)
		return 0, false
	}

	if len(rows) == 0 {
		return 0, true
	}
	return len(rows) - 1, true
}

func (inv *Inventory) countCSVRows(path string) (int, bool) {
	f, err := os.Open(path)
	if err != nil {
		inv.log.Debug("couldn't open %s: %v", path, err)
		return 0, false
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // row counting only, ragged rows are fine

	count := 0
	for {
		_, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			inv.log.Debug("csv parse error in %s: %v", path, err)
			return 0, false
		}
		count++
	}

	if count == 0 {
		return 0, true
	}
	return count - 1, true
}

func matchExt(ext string, exts []string) bool {
	for _, e := range exts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
