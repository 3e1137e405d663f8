package export

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/opdss/report/contracts/report"
)

var _ report.Exporter = (*Csv)(nil)

// Csv 只有表头和数据行
type Csv struct {
	exporter
}

func NewCsv(req *Request, opts ...Option) *Csv {
	c := &Csv{exporter: newExporter(FormatCsv, req, opts)}
	c.render = c.renderTo
	return c
}

func (c *Csv) renderTo(ctx context.Context, w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	fw := csv.NewWriter(cw)
	// 写入CSV头部
	if err := fw.Write(c.columns.titles); err != nil {
		return cw.n, err
	}
	for i := range c.req.Rows {
		if err := fw.Write(c.columns.processRow(c.req.Rows[i], c.options.locale)); err != nil {
			return cw.n, err
		}
		//收到取消导出信号
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return cw.n, err
			}
		}
	}
	fw.Flush()
	return cw.n, fw.Error()
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
