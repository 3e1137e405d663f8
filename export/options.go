package export

import (
	"time"

	"github.com/opdss/report/contracts/workbook"
	wb "github.com/opdss/report/workbook"
	"go.uber.org/zap"
)

type Option func(opt *options)

// WithMaxRows 最大数据行数，超过会报异常
func WithMaxRows(n int) Option {
	return func(opt *options) {
		if n > 0 && n < MaxRows {
			opt.maxRows = n
		}
	}
}

// WithFilename 覆盖请求里的文件名,不用加后缀，会自动加
func WithFilename(filename string) Option {
	return func(opt *options) {
		opt.filename = filename
	}
}

// WithDir Export时保存的目录，默认系统临时目录
func WithDir(dir string) Option {
	return func(opt *options) {
		opt.dir = dir
	}
}

// WithLocale 日期格式
func WithLocale(loc *Locale) Option {
	return func(opt *options) {
		if loc != nil {
			opt.locale = loc
		}
	}
}

// WithNow 生成时间
func WithNow(now func() time.Time) Option {
	return func(opt *options) {
		if now != nil {
			opt.now = now
		}
	}
}

// WithOrganization 请求未设置机构时使用的机构名
func WithOrganization(org string) Option {
	return func(opt *options) {
		if org != "" {
			opt.organization = org
		}
	}
}

// WithLibrary 直接指定表格库，不走Loader
func WithLibrary(lib workbook.Library) Option {
	return func(opt *options) {
		opt.library = lib
	}
}

// WithLoader 表格库的Loader，默认workbook.Default()
func WithLoader(l *wb.Loader) Option {
	return func(opt *options) {
		opt.loader = l
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(opt *options) {
		if log != nil {
			opt.log = log
		}
	}
}

type options struct {
	maxRows      int    //导出最大数量
	filename     string //文件名，不要加后缀，会自动加
	dir          string //Export保存目录
	locale       *Locale
	now          func() time.Time
	organization string
	library      workbook.Library
	loader       *wb.Loader
	log          *zap.Logger
}

func newOptions(opts ...Option) *options {
	o := &options{
		maxRows:      MaxRows,
		locale:       EsCL,
		now:          time.Now,
		organization: DefaultOrganization,
		log:          zap.NewNop(),
	}
	for i := range opts {
		opts[i](o)
	}
	return o
}

// generatedDate 生成日期
func (o *options) generatedDate() string {
	return o.locale.LongDate(o.now())
}
