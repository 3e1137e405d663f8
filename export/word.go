package export

import (
	"context"
	"io"

	"github.com/opdss/report/archive"
	"github.com/opdss/report/contracts/report"
	"github.com/opdss/report/markup"
)

var _ report.Exporter = (*Word)(nil)

// Word 导出docx，正文由markup生成后按store方式打包
type Word struct {
	exporter
}

func NewWord(req *Request, opts ...Option) *Word {
	w := &Word{exporter: newExporter(FormatWord, req, opts)}
	w.render = w.renderTo
	return w
}

// Entries docx包内的文件
func (w *Word) Entries(ctx context.Context) ([]archive.Entry, error) {
	if err := w.check(ctx); err != nil {
		return nil, err
	}
	return markup.WordPackage(w.document()), nil
}

func (w *Word) renderTo(ctx context.Context, at io.Writer) (int64, error) {
	return archive.NewBuilder().AddEntries(markup.WordPackage(w.document())...).WriteTo(at)
}
