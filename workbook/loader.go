package workbook

import (
	"context"
	"sync"
	"time"

	"github.com/opdss/report/contracts/workbook"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Config struct {
	DisableLocal bool          `help:"不使用进程内excelize" default:"false"`
	Remote       string        `help:"远程表格服务地址，为空不启用" default:""`
	Timeout      time.Duration `help:"远程表格服务超时，0为不超时" default:"0s"`
}

// Loader 按顺序尝试各个来源，成功后缓存，进程内只解析一次
type Loader struct {
	sources []workbook.Source
	log     *zap.Logger

	group singleflight.Group
	mu    sync.RWMutex
	lib   workbook.Library
}

func NewLoader(log *zap.Logger, sources ...workbook.Source) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{sources: sources, log: log}
}

// NewLoaderFromConfig 先进程内再远程
func NewLoaderFromConfig(conf Config, log *zap.Logger) *Loader {
	sources := []workbook.Source{&LocalSource{Disabled: conf.DisableLocal}}
	if conf.Remote != "" {
		sources = append(sources, NewRemoteSource(conf.Remote, conf.Timeout))
	}
	return NewLoader(log, sources...)
}

// Library 获取表格库，失败不缓存，下次调用重新解析
func (l *Loader) Library(ctx context.Context) (workbook.Library, error) {
	if lib := l.cached(); lib != nil {
		return lib, nil
	}
	v, err, _ := l.group.Do("library", func() (any, error) {
		if lib := l.cached(); lib != nil {
			return lib, nil
		}
		lib, err := l.resolve(ctx)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.lib = lib
		l.mu.Unlock()
		return lib, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(workbook.Library), nil
}

// Resolved 是否已经解析成功
func (l *Loader) Resolved() bool {
	return l.cached() != nil
}

func (l *Loader) cached() workbook.Library {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lib
}

func (l *Loader) resolve(ctx context.Context) (workbook.Library, error) {
	var group errs.Group
	for _, s := range l.sources {
		lib, err := s.Resolve(ctx)
		if err == nil {
			l.log.Info("workbook library resolved", zap.String("source", s.Name()), zap.String("library", lib.Name()))
			return lib, nil
		}
		l.log.Warn("workbook source failed", zap.String("source", s.Name()), zap.Error(err))
		group.Add(err)
		if ctx.Err() != nil {
			break
		}
	}
	if err := group.Err(); err != nil {
		return nil, Error.New("no workbook library available: %v", err)
	}
	return nil, Error.New("no workbook source configured")
}

var (
	defaultMu     sync.Mutex
	defaultLoader *Loader
)

// Default 进程级的Loader，首次使用时创建，不会释放
func Default() *Loader {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLoader == nil {
		defaultLoader = NewLoader(zap.L(), &LocalSource{})
	}
	return defaultLoader
}

// SetDefault 替换进程级的Loader，需在首次导出前调用
func SetDefault(l *Loader) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLoader = l
}
