package export

import (
	"context"
	"io"

	"github.com/opdss/report/contracts/report"
	"github.com/opdss/report/markup"
)

var _ report.Exporter = (*Print)(nil)

// Print 打印用的html，标题为文件名
type Print struct {
	exporter
}

func NewPrint(req *Request, opts ...Option) *Print {
	p := &Print{exporter: newExporter(FormatPrint, req, opts)}
	p.render = p.renderTo
	return p
}

// HTML 完整的html文档
func (p *Print) HTML(ctx context.Context) (string, error) {
	if err := p.check(ctx); err != nil {
		return "", err
	}
	return markup.PrintHTML(p.document(), p.filename()), nil
}

func (p *Print) renderTo(ctx context.Context, w io.Writer) (int64, error) {
	n, err := io.WriteString(w, markup.PrintHTML(p.document(), p.filename()))
	return int64(n), err
}
