package workbook

import (
	"context"
	"io"
	"strings"

	"github.com/opdss/report/contracts/workbook"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName excelize新建文件的默认表
const DefaultSheetName = "Sheet1"

// DefaultColWidth 未设置列宽时的宽度(字符数)
const DefaultColWidth = 20

// 工作表名最长31个字符
const maxSheetName = 31

var _ workbook.Library = (*Excelize)(nil)

// Excelize 进程内的excelize表格库
type Excelize struct{}

func NewExcelize() *Excelize {
	return &Excelize{}
}

func (*Excelize) Name() string {
	return "excelize"
}

func (*Excelize) NewWorkbook() (workbook.Workbook, error) {
	return &excelizeBook{fp: excelize.NewFile()}, nil
}

var _ workbook.Workbook = (*excelizeBook)(nil)

type excelizeBook struct {
	fp     *excelize.File
	sheets int
	styles map[workbook.Style]int
}

func (b *excelizeBook) AddSheet(sheet *workbook.Sheet) (err error) {
	if b.sheets > 0 {
		return Error.New("only one sheet per workbook")
	}
	cols := sheet.Columns
	if cols <= 0 {
		return Error.New("sheet %q has no columns", sheet.Name)
	}
	name := SheetName(sheet.Name)
	if name != DefaultSheetName {
		if err = b.fp.SetSheetName(DefaultSheetName, name); err != nil {
			return Error.Wrap(err)
		}
	}
	if err = b.newStyles(); err != nil {
		return err
	}

	sw, err := b.fp.NewStreamWriter(name)
	if err != nil {
		return Error.Wrap(err)
	}
	//列宽需要在写入行之前设置
	for i := 0; i < cols; i++ {
		width := float64(DefaultColWidth)
		if i < len(sheet.ColumnWidths) && sheet.ColumnWidths[i] > 0 {
			width = sheet.ColumnWidths[i]
		}
		if err = sw.SetColWidth(i+1, i+1, width); err != nil {
			return Error.Wrap(err)
		}
	}
	for i, row := range sheet.Rows {
		r := i + 1
		cell, err := excelize.CoordinatesToCellName(1, r)
		if err != nil {
			return Error.Wrap(err)
		}
		if err = sw.SetRow(cell, b.rowValues(row, cols)); err != nil {
			return Error.Wrap(err)
		}
		if row.Merge && cols > 1 {
			end, err := excelize.CoordinatesToCellName(cols, r)
			if err != nil {
				return Error.Wrap(err)
			}
			if err = sw.MergeCell(cell, end); err != nil {
				return Error.Wrap(err)
			}
		}
	}
	if err = sw.Flush(); err != nil {
		return Error.Wrap(err)
	}
	b.sheets++
	return nil
}

func (b *excelizeBook) WriteFile(_ context.Context, w io.Writer) (int64, error) {
	n, err := b.fp.WriteTo(w)
	return n, Error.Wrap(err)
}

func (b *excelizeBook) Close() error {
	return Error.Wrap(b.fp.Close())
}

// rowValues 行数据，合并行只写第一个单元格
func (b *excelizeBook) rowValues(row workbook.Row, cols int) []any {
	n := cols
	if row.Merge {
		n = 1
	}
	values := make([]any, n)
	style := b.styles[row.Style]
	for i := 0; i < n; i++ {
		var v string
		if i < len(row.Cells) {
			v = row.Cells[i]
		}
		values[i] = excelize.Cell{StyleID: style, Value: v}
	}
	return values
}

func (b *excelizeBook) newStyles() error {
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	defs := []struct {
		style workbook.Style
		def   *excelize.Style
	}{
		{workbook.StyleOrganization, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}, Alignment: center}},
		{workbook.StyleTitle, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}, Alignment: center}},
		{workbook.StyleSubtitle, &excelize.Style{Font: &excelize.Font{Italic: true, Size: 11}, Alignment: center}},
		{workbook.StyleDate, &excelize.Style{Font: &excelize.Font{Size: 9, Color: "666666"}, Alignment: center}},
		{workbook.StyleHeader, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E79"}},
			Alignment: center,
		}},
	}
	b.styles = make(map[workbook.Style]int, len(defs))
	for _, d := range defs {
		id, err := b.fp.NewStyle(d.def)
		if err != nil {
			return Error.Wrap(err)
		}
		b.styles[d.style] = id
	}
	return nil
}

// SheetName 合法的工作表名
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "'")
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	if name == "" {
		return DefaultSheetName
	}
	return name
}
