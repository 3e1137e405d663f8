package workbook

import (
	"bytes"
	"context"
	"testing"

	"github.com/opdss/report/contracts/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleSheet() *workbook.Sheet {
	return &workbook.Sheet{
		Name:         "Informe NNA",
		Columns:      2,
		ColumnWidths: []float64{30, 0},
		Rows: []workbook.Row{
			{Cells: []string{"Residencia NNA"}, Style: workbook.StyleOrganization, Merge: true},
			{Cells: []string{"Informe"}, Style: workbook.StyleTitle, Merge: true},
			{Cells: []string{"Generado el 17 de octubre de 2026"}, Style: workbook.StyleDate, Merge: true},
			{Cells: []string{"Nombre", "Edad"}, Style: workbook.StyleHeader},
			{Cells: []string{"Ana", "10"}},
			{Cells: []string{"Luis"}},
		},
	}
}

func TestExcelizeWorkbook(t *testing.T) {
	lib := NewExcelize()
	assert.Equal(t, "excelize", lib.Name())

	wb, err := lib.NewWorkbook()
	require.NoError(t, err)
	require.NoError(t, wb.AddSheet(sampleSheet()))
	assert.Error(t, wb.AddSheet(sampleSheet()))

	var buf bytes.Buffer
	n, err := wb.WriteFile(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	require.NoError(t, wb.Close())

	fp, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() {
		_ = fp.Close()
	}()
	assert.Equal(t, []string{"Informe NNA"}, fp.GetSheetList())

	rows, err := fp.GetRows("Informe NNA")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Residencia NNA", rows[0][0])
	assert.Equal(t, []string{"Nombre", "Edad"}, rows[3])
	assert.Equal(t, []string{"Ana", "10"}, rows[4])
	assert.Equal(t, "Luis", rows[5][0])

	merged, err := fp.GetMergeCells("Informe NNA")
	require.NoError(t, err)
	var ranges []string
	for _, m := range merged {
		ranges = append(ranges, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	assert.ElementsMatch(t, []string{"A1:B1", "A2:B2", "A3:B3"}, ranges)

	width, err := fp.GetColWidth("Informe NNA", "A")
	require.NoError(t, err)
	assert.Equal(t, 30.0, width)
	width, err = fp.GetColWidth("Informe NNA", "B")
	require.NoError(t, err)
	assert.Equal(t, float64(DefaultColWidth), width)
}

func TestExcelizeNoColumns(t *testing.T) {
	wb, err := NewExcelize().NewWorkbook()
	require.NoError(t, err)
	defer func() {
		_ = wb.Close()
	}()
	assert.True(t, Error.Has(wb.AddSheet(&workbook.Sheet{Name: "x"})))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, DefaultSheetName, SheetName(""))
	assert.Equal(t, DefaultSheetName, SheetName("  "))
	assert.Equal(t, "a_b_c", SheetName("a/b?c"))
	assert.Equal(t, "Informe", SheetName("'Informe'"))
	assert.Len(t, []rune(SheetName("Informe de residentes del periodo completo")), 31)
}
