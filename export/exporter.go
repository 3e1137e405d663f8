package export

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"

	"github.com/opdss/report/contracts/report"
	"github.com/opdss/report/delivery"
	"github.com/opdss/report/markup"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
)

// renderFunc 把请求渲染到w
type renderFunc func(ctx context.Context, w io.Writer) (int64, error)

// exporter 各格式共用的导出流程
type exporter struct {
	req     *Request
	options *options
	columns *columns
	format  Format
	render  renderFunc
}

func newExporter(format Format, req *Request, opts []Option) exporter {
	return exporter{
		req:     req,
		options: newOptions(opts...),
		columns: newColumns(req.Columns),
		format:  format,
	}
}

// Export 导出到本地文件，返回本地文件路径
func (e *exporter) Export(ctx context.Context) (string, error) {
	data, err := e.Bytes(ctx)
	if err != nil {
		return "", err
	}
	path := getFilename(e.options.dir, e.filename(), e.format.Suffix())
	return delivery.SaveFile(filepath.Dir(path), filepath.Base(path), data)
}

// ExportTo 导出到io.Writer
func (e *exporter) ExportTo(ctx context.Context, w io.Writer) (int64, error) {
	if err := e.check(ctx); err != nil {
		return 0, err
	}
	return e.render(ctx, w)
}

// ExportToStorage 导出到文件存储，返回下载地址
func (e *exporter) ExportToStorage(ctx context.Context, fs report.FileStorage) (string, error) {
	if err := e.check(ctx); err != nil {
		return "", err
	}
	fk := storageKey(e.filename(), e.format.Suffix(), e.options.now())
	fr, fw := io.Pipe()
	wg := sync.WaitGroup{}
	wg.Add(2)
	var werr, rerr error
	go func() {
		defer wg.Done()
		_, werr = e.render(ctx, fw)
		if werr != nil {
			e.options.log.Warn("io pipe write error", zap.String("file", fk), zap.Error(werr))
		}
		_ = fw.CloseWithError(werr)
	}()
	go func() {
		defer wg.Done()
		rerr = fs.PutStream(ctx, fk, fr)
		if rerr != nil {
			e.options.log.Warn("io pipe read error", zap.String("file", fk), zap.Error(rerr))
		}
		_ = fr.CloseWithError(rerr)
	}()
	wg.Wait()
	if err := errs.Combine(werr, rerr); err != nil {
		return "", err
	}
	return fs.Url(fk), nil
}

// Bytes 导出到内存
func (e *exporter) Bytes(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := e.ExportTo(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName 带后缀的文件名
func (e *exporter) FileName() string {
	return e.filename() + "." + e.format.Suffix()
}

func (e *exporter) filename() string {
	if e.options.filename != "" {
		return e.options.filename
	}
	return e.req.FileName
}

// check 导出前检查
func (e *exporter) check(ctx context.Context) error {
	req := *e.req
	req.FileName = e.filename()
	if err := req.Validate(); err != nil {
		return err
	}
	if len(e.req.Rows) > e.options.maxRows {
		return ErrMaximumLimit
	}
	return ctx.Err()
}

// document 归一化后的标记文档
func (e *exporter) document() markup.Document {
	org := e.req.organization(e.options.organization)
	return e.columns.document(e.req, org, e.options.generatedDate(), e.options.locale)
}
