// Package export 把表格数据导出为Word、打印HTML、表格和CSV。
package export

import (
	"context"
	"io"
	"strings"

	"github.com/opdss/report/contracts/report"
	"github.com/opdss/report/markup"
	"github.com/zeebo/errs"
)

var Error = errs.Class("export")

// ErrInvalidRequest 请求不合法
var ErrInvalidRequest = errs.Class("invalid export request")

var ErrMaximumLimit = Error.New("export quantity exceeds maximum limit")

const MaxRows = 1000000 //最大导出数据,防止dataProvider出错无限数据导出

// DefaultOrganization 请求未设置机构时的默认值
const DefaultOrganization = "Residencia NNA"

// 导出文件后缀
const (
	WordSuffix        = "docx"
	SpreadsheetSuffix = "xlsx"
	CsvSuffix         = "csv"
	HTMLSuffix        = "html"
)

// 导出文件类型
const (
	WordMimeType        = markup.WordMimeType
	SpreadsheetMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	HTMLMimeType        = "text/html; charset=utf-8"
	CsvMimeType         = "text/csv; charset=utf-8"
)

// Format 导出格式
type Format string

const (
	FormatWord        Format = "word"
	FormatPrint       Format = "print"
	FormatSpreadsheet Format = "spreadsheet"
	FormatCsv         Format = "csv"
)

// Formats 支持的格式
var Formats = []Format{FormatWord, FormatPrint, FormatSpreadsheet, FormatCsv}

// ParseFormat 解析格式，支持后缀名
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "word", "docx":
		return FormatWord, nil
	case "print", "pdf", "html":
		return FormatPrint, nil
	case "spreadsheet", "excel", "xlsx":
		return FormatSpreadsheet, nil
	case "csv":
		return FormatCsv, nil
	}
	return "", ErrInvalidRequest.New("unknown format %q", s)
}

// Suffix 文件后缀
func (f Format) Suffix() string {
	switch f {
	case FormatWord:
		return WordSuffix
	case FormatSpreadsheet:
		return SpreadsheetSuffix
	case FormatCsv:
		return CsvSuffix
	default:
		return HTMLSuffix
	}
}

// MimeType 文件类型
func (f Format) MimeType() string {
	switch f {
	case FormatWord:
		return WordMimeType
	case FormatSpreadsheet:
		return SpreadsheetMimeType
	case FormatCsv:
		return CsvMimeType
	default:
		return HTMLMimeType
	}
}

// New 按格式创建导出器
func New(format Format, req *Request, opts ...Option) (report.Exporter, error) {
	switch format {
	case FormatWord:
		return NewWord(req, opts...), nil
	case FormatPrint:
		return NewPrint(req, opts...), nil
	case FormatSpreadsheet:
		return NewSpreadsheet(req, opts...), nil
	case FormatCsv:
		return NewCsv(req, opts...), nil
	}
	return nil, ErrInvalidRequest.New("unknown format %q", format)
}

// ToWord 导出docx的快捷方法
func ToWord(ctx context.Context, req *Request, opts ...Option) ([]byte, error) {
	return NewWord(req, opts...).Bytes(ctx)
}

// ToPrintable 生成打印用html的快捷方法
func ToPrintable(req *Request, opts ...Option) (string, error) {
	return NewPrint(req, opts...).HTML(context.Background())
}

// ToSpreadsheet 导出xlsx的快捷方法
func ToSpreadsheet(ctx context.Context, req *Request, w io.Writer, opts ...Option) (int64, error) {
	return NewSpreadsheet(req, opts...).ExportTo(ctx, w)
}

// ToCsv 导出csv的快捷方法
func ToCsv(ctx context.Context, req *Request, w io.Writer, opts ...Option) (int64, error) {
	return NewCsv(req, opts...).ExportTo(ctx, w)
}

// ToStorage 导出到文件存储的快捷方法，返回下载地址
func ToStorage(ctx context.Context, format Format, req *Request, fs report.FileStorage, opts ...Option) (string, error) {
	e, err := New(format, req, opts...)
	if err != nil {
		return "", err
	}
	return e.ExportToStorage(ctx, fs)
}
