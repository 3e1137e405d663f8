package export

import (
	"context"
	"io"

	"github.com/opdss/report/contracts/report"
	"github.com/opdss/report/contracts/workbook"
	"github.com/opdss/report/markup"
	wb "github.com/opdss/report/workbook"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
)

var _ report.Exporter = (*Spreadsheet)(nil)

// Spreadsheet 导出xlsx，具体写入交给表格库
type Spreadsheet struct {
	exporter
}

func NewSpreadsheet(req *Request, opts ...Option) *Spreadsheet {
	s := &Spreadsheet{exporter: newExporter(FormatSpreadsheet, req, opts)}
	s.render = s.renderTo
	return s
}

// Sheet 工作表内容：机构、标题、可选副标题、生成日期四个合并行，表头，数据行
func (s *Spreadsheet) Sheet() *workbook.Sheet {
	doc := s.document()
	sheet := &workbook.Sheet{
		Name:         s.req.Title,
		Columns:      s.columns.nums,
		ColumnWidths: make([]float64, s.columns.nums),
		Rows:         make([]workbook.Row, 0, len(doc.Rows)+5),
	}
	for i, w := range s.columns.widths {
		sheet.ColumnWidths[i] = w
		if w <= 0 {
			sheet.ColumnWidths[i] = wb.DefaultColWidth
		}
	}
	title := func(text string, style workbook.Style) {
		sheet.Rows = append(sheet.Rows, workbook.Row{Cells: []string{text}, Style: style, Merge: true})
	}
	title(doc.Organization, workbook.StyleOrganization)
	title(doc.Title, workbook.StyleTitle)
	if doc.Subtitle != "" {
		title(doc.Subtitle, workbook.StyleSubtitle)
	}
	title(markup.GeneratedText(doc.Date), workbook.StyleDate)
	sheet.Rows = append(sheet.Rows, workbook.Row{Cells: doc.Headers, Style: workbook.StyleHeader})
	for _, cells := range doc.Rows {
		sheet.Rows = append(sheet.Rows, workbook.Row{Cells: cells})
	}
	return sheet
}

func (s *Spreadsheet) library(ctx context.Context) (workbook.Library, error) {
	if s.options.library != nil {
		return s.options.library, nil
	}
	loader := s.options.loader
	if loader == nil {
		loader = wb.Default()
	}
	return loader.Library(ctx)
}

func (s *Spreadsheet) renderTo(ctx context.Context, w io.Writer) (n int64, err error) {
	lib, err := s.library(ctx)
	if err != nil {
		return 0, Error.Wrap(err)
	}
	book, err := lib.NewWorkbook()
	if err != nil {
		return 0, Error.Wrap(err)
	}
	defer func() {
		err = errs.Combine(err, book.Close())
	}()
	if err = book.AddSheet(s.Sheet()); err != nil {
		return 0, Error.Wrap(err)
	}
	n, err = book.WriteFile(ctx, w)
	if err != nil {
		return n, Error.Wrap(err)
	}
	s.options.log.Debug("spreadsheet written", zap.String("library", lib.Name()), zap.Int64("bytes", n))
	return n, nil
}
