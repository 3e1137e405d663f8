package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/opdss/report/contracts/locker"
	locks "github.com/opdss/report/locker"
	"github.com/opdss/report/metrics"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
)

// ErrBusy 同一个触发源的导出还没结束
var ErrBusy = errs.Class("export busy")

// DefaultLockTTL 导出锁的最长持有时间
const DefaultLockTTL = 5 * time.Minute

// Result 一次导出的结果
type Result struct {
	Format   Format
	FileName string //带后缀
	MimeType string
	Data     []byte
	Rows     int
}

// Run 按格式导出到内存
func Run(ctx context.Context, format Format, req *Request, opts ...Option) (*Result, error) {
	e, err := New(format, req, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err = e.ExportTo(ctx, &buf); err != nil {
		return nil, err
	}
	return &Result{
		Format:   format,
		FileName: e.(interface{ FileName() string }).FileName(),
		MimeType: format.MimeType(),
		Data:     buf.Bytes(),
		Rows:     len(req.Rows),
	}, nil
}

// StorageKey 文件存储上的key，同名导出不会互相覆盖
func (r *Result) StorageKey(now time.Time) string {
	suf := r.Format.Suffix()
	return storageKey(strings.TrimSuffix(r.FileName, "."+suf), suf, now)
}

type ServiceConfig struct {
	MaxRows      int           `help:"单次导出最大行数" default:"100000"`
	LockTTL      time.Duration `help:"导出锁的最长持有时间" default:"5m"`
	Organization string        `help:"默认机构名" default:"Residencia NNA"`
}

// Service 带并发保护、指标和日志的导出服务
type Service struct {
	conf    ServiceConfig
	lockers locker.Provider
	metrics *metrics.Collector
	log     *zap.Logger
	opts    []Option
}

// NewService lockers为nil时使用进程内锁，collector可以为nil
func NewService(conf ServiceConfig, lockers locker.Provider, collector *metrics.Collector, log *zap.Logger, opts ...Option) *Service {
	if lockers == nil {
		lockers = locks.NewMemory()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if conf.LockTTL <= 0 {
		conf.LockTTL = DefaultLockTTL
	}
	base := []Option{WithLogger(log), WithMaxRows(conf.MaxRows), WithOrganization(conf.Organization)}
	return &Service{
		conf:    conf,
		lockers: lockers,
		metrics: collector,
		log:     log,
		opts:    append(base, opts...),
	}
}

// Run 导出，同一个trigger同时只允许一个导出，忙时返回ErrBusy
func (s *Service) Run(ctx context.Context, trigger string, format Format, req *Request, opts ...Option) (res *Result, err error) {
	lock := s.lockers.NewLocker("export:" + trigger + ":" + string(format))
	if err = lock.Lock(s.conf.LockTTL); err != nil {
		if errors.Is(err, locks.ErrFailure) {
			return nil, ErrBusy.New("trigger %q is exporting %s", trigger, format)
		}
		return nil, Error.Wrap(err)
	}
	defer func() {
		if uerr := lock.Unlock(); uerr != nil {
			s.log.Warn("export unlock failed", zap.String("trigger", trigger), zap.Error(uerr))
		}
	}()

	done := s.metrics.Start()
	defer done()
	start := time.Now()
	res, err = Run(ctx, format, req, append(s.opts[:len(s.opts):len(s.opts)], opts...)...)
	size := 0
	if res != nil {
		size = len(res.Data)
	}
	s.metrics.RecordExport(string(format), len(req.Rows), size, time.Since(start), err)
	if err != nil {
		s.log.Warn("export failed",
			zap.String("trigger", trigger),
			zap.String("format", string(format)),
			zap.String("file", req.FileName),
			zap.Error(err))
		return nil, err
	}
	s.log.Info("export finished",
		zap.String("trigger", trigger),
		zap.String("format", string(format)),
		zap.String("file", res.FileName),
		zap.Int("rows", res.Rows),
		zap.Int("bytes", size),
		zap.Duration("took", time.Since(start)))
	return res, nil
}
