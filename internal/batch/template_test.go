package batch

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dkaras/relocost/internal/common"
)

func TestWriteTemplateCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplateCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, TemplateColumns, records[0])
	assert.Equal(t, "Jane Smith", records[1][0])
	assert.Equal(t, "7000", records[1][3])
}

func TestWriteTemplateXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, WriteTemplateXLSX(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, TemplateColumns, rows[0])
	assert.Equal(t, "Finland", rows[1][1])
}

func TestWriteTemplate_PicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteTemplate(filepath.Join(dir, "t.csv")))
	require.NoError(t, WriteTemplate(filepath.Join(dir, "t.xlsx")))

	err := WriteTemplate(filepath.Join(dir, "t.ods"))
	assert.ErrorIs(t, err, common.ErrUnsupportedFileType)
}

func TestPreviewFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.csv")
	content := strings.Join(TemplateColumns, ",") + "\n" +
		"bob,Finland,Brazil,7000,6,72,22\n" +
		"alice,Germany,USA,9000,12,80,20\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	p, err := PreviewFile(path)
	require.NoError(t, err)
	assert.Equal(t, "employees.csv", p.Name)
	assert.Equal(t, 2, p.Rows)
}

func TestPreviewFile_XLSXTemplateHasOneDataRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, WriteTemplateXLSX(path))

	p, err := PreviewFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Rows)
}

func TestPreviewFile_RejectsInvalidFiles(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	_, err := PreviewFile(path)
	assert.ErrorIs(t, err, common.ErrUnsupportedFileType)

	big := filepath.Join(dir, "big.csv")
	f, err := os.Create(big)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(MaxUploadSize+1))
	require.NoError(t, f.Close())
	_, err = PreviewFile(big)
	assert.ErrorIs(t, err, common.ErrFileTooLarge)
}

func TestPreviewFile_HeaderOnlyCountsZeroRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(TemplateColumns, ",")+"\n"), 0o600))

	p, err := PreviewFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Rows)
}
