package artifacts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"scrapewatch/internal/logger"
)

var testClasses = Classes{
	Excel: []string{".xlsx"},
	CSV:   []string{".csv"},
}

func newInventory() *Inventory {
	return New(testClasses, logger.Noop())
}

func writeCSV(t *testing.T, dir, name, content string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func writeXLSX(t *testing.T, dir, name string, dataRows int, mtime time.Time) string {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "店名"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "地址"))
	for i := 0; i < dataRows; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, "shop"))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestScanEmptyDirectory(t *testing.T) {
	info, err := newInventory().Scan(t.TempDir())
	require.NoError(t, err)

	assert.Zero(t, info.ExcelCount)
	assert.Zero(t, info.CSVCount)
	assert.Nil(t, info.Latest)
}

func TestScanMissingDirectory(t *testing.T) {
	info, err := newInventory().Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, info.Latest)
}

func TestScanCountsByClass(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeCSV(t, dir, "results.csv", "name,addr\na,b\n", now.Add(-time.Hour))
	writeXLSX(t, dir, "results.xlsx", 2, now)
	writeCSV(t, dir, "notes.txt", "ignored", now) // untracked extension

	info, err := newInventory().Scan(dir)
	require.NoError(t, err)

	assert.Equal(t, 1, info.ExcelCount)
	assert.Equal(t, 1, info.CSVCount)
}

func TestScanSelectsMostRecentAcrossClasses(t *testing.T) {
	dir := t.TempDir()
	now := time.Now().Truncate(time.Second)
	writeXLSX(t, dir, "old.xlsx", 3, now.Add(-2*time.Hour))
	csvPath := writeCSV(t, dir, "fresh.csv", "name,addr\na,b\nc,d\n", now)

	info, err := newInventory().Scan(dir)
	require.NoError(t, err)

	require.NotNil(t, info.Latest)
	assert.Equal(t, csvPath, info.Latest.Path)
	require.NotNil(t, info.Latest.RowCount)
	assert.Equal(t, 2, *info.Latest.RowCount)
}

func TestScanXLSXRowCountExcludesHeader(t *testing.T) {
	dir := t.TempDir()
	writeXLSX(t, dir, "shops.xlsx", 5, time.Now())

	info, err := newInventory().Scan(dir)
	require.NoError(t, err)

	require.NotNil(t, info.Latest)
	require.NotNil(t, info.Latest.RowCount)
	assert.Equal(t, 5, *info.Latest.RowCount)
}

func TestScanCorruptXLSXDegradesRowCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o644))

	info, err := newInventory().Scan(dir)
	require.NoError(t, err)

	require.NotNil(t, info.Latest)
	assert.Equal(t, 1, info.ExcelCount)
	assert.Nil(t, info.Latest.RowCount)
}

func TestScanHeaderOnlyCSV(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "empty.csv", "name,addr\n", time.Now())

	info, err := newInventory().Scan(dir)
	require.NoError(t, err)

	require.NotNil(t, info.Latest)
	require.NotNil(t, info.Latest.RowCount)
	assert.Zero(t, *info.Latest.RowCount)
}

func TestScanReportsSizeAndModTime(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Now().Add(-30 * time.Minute).Truncate(time.Second)
	content := "name,addr\na,b\n"
	writeCSV(t, dir, "sized.csv", content, mtime)

	info, err := newInventory().Scan(dir)
	require.NoError(t, err)

	require.NotNil(t, info.Latest)
	assert.Equal(t, int64(len(content)), info.Latest.SizeBytes)
	assert.True(t, info.Latest.ModifiedAt.Equal(mtime))
}

func TestScanExtensionCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "UPPER.CSV", "name\nrow\n", time.Now())

	info, err := newInventory().Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, info.CSVCount)
}
