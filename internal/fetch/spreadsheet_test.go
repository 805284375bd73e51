package fetch

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, build func(f *excelize.File)) []byte {
	t.Helper()
	f := excelize.NewFile()
	build(f)
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())
	return buf.Bytes()
}

func TestExcelReader_PicksJurisdictionSheet(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		f.SetSheetName("Sheet1", "Notes")
		f.SetCellValue("Notes", "A1", "Source: enrollment publication")

		_, err := f.NewSheet("Data")
		require.NoError(t, err)
		f.SetCellValue("Data", "A1", "Allegany")
		f.SetCellValue("Data", "A2", "Grade 1")
		f.SetCellValue("Data", "B2", "120")
	})

	grid, err := ExcelReader{}.ReadGrid(data)
	require.NoError(t, err)
	require.NotEmpty(t, grid)
	assert.Equal(t, "Allegany", grid[0][0])
}

func TestExcelReader_FallsBackToFirstSheet(t *testing.T) {
	data := workbookBytes(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "no jurisdictions here")
	})

	grid, err := ExcelReader{}.ReadGrid(data)
	require.NoError(t, err)
	require.NotEmpty(t, grid)
	assert.Equal(t, "no jurisdictions here", grid[0][0])
}

func TestExcelReader_RejectsGarbage(t *testing.T) {
	_, err := ExcelReader{}.ReadGrid([]byte("not a workbook"))
	assert.Error(t, err)
}

func TestPDFReader_RejectsGarbage(t *testing.T) {
	_, err := PDFReader{}.ExtractPages([]byte("not a pdf"))
	assert.Error(t, err)
}
