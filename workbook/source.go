package workbook

import (
	"context"

	"github.com/opdss/report/contracts/workbook"
)

var _ workbook.Source = (*LocalSource)(nil)

// LocalSource 进程内的excelize，Disabled时不可用
type LocalSource struct {
	Disabled bool
}

func (s *LocalSource) Name() string {
	return "local"
}

func (s *LocalSource) Resolve(ctx context.Context) (workbook.Library, error) {
	if s.Disabled {
		return nil, ErrUnavailable.New("local library disabled")
	}
	return NewExcelize(), nil
}

// StaticSource 直接使用给定的表格库
type StaticSource struct {
	Library workbook.Library
}

func (s *StaticSource) Name() string {
	if s.Library == nil {
		return "static"
	}
	return s.Library.Name()
}

func (s *StaticSource) Resolve(ctx context.Context) (workbook.Library, error) {
	if s.Library == nil {
		return nil, ErrUnavailable.New("no library")
	}
	return s.Library, nil
}
