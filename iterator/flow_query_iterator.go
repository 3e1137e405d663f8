package iterator

import (
	"context"
	"time"

	"github.com/opdss/report/contracts/iterator"
)

var _ iterator.Iterator[any] = (*FlowQueryIterator[any])(nil)

type FlowQueryIteratorFn[T any] func(ctx context.Context, lastModel T, first bool, limit int) ([]T, error)

type FlowQueryIteratorOption[T any] func(provider *FlowQueryIterator[T])

// WithFlowQueryIteratorLimit 数据批量查询数量
func WithFlowQueryIteratorLimit[T any](n int) FlowQueryIteratorOption[T] {
	return func(provider *FlowQueryIterator[T]) {
		if n > 0 {
			provider.limit = n
		}
	}
}

// WithFlowQueryIteratorQueryTimeout 单次查询超时控制
func WithFlowQueryIteratorQueryTimeout[T any](t time.Duration) FlowQueryIteratorOption[T] {
	return func(provider *FlowQueryIterator[T]) {
		if t > 0 {
			provider.queryTimeout = t
		}
	}
}

// WithFlowQueryIteratorContext 查询使用的父context
func WithFlowQueryIteratorContext[T any](ctx context.Context) FlowQueryIteratorOption[T] {
	return func(provider *FlowQueryIterator[T]) {
		if ctx != nil {
			provider.ctx = ctx
		}
	}
}

// FlowQueryIterator 按上一条记录继续查询的迭代器
type FlowQueryIterator[T any] struct {
	ctx          context.Context
	lastModel    T
	first        bool
	limit        int
	hasMore      bool
	err          error
	queryTimeout time.Duration
	sliceIter    *SliceIterator[T]
	queryFn      FlowQueryIteratorFn[T]
}

// NewFlowQueryIterator 瀑布流式获取记录流水，数据获取一定是按照主键的顺序
func NewFlowQueryIterator[T any](queryFn FlowQueryIteratorFn[T], opts ...FlowQueryIteratorOption[T]) *FlowQueryIterator[T] {
	g := &FlowQueryIterator[T]{
		ctx:          context.Background(),
		first:        true,
		limit:        2000,
		hasMore:      true,
		queryTimeout: time.Second * 30,
		sliceIter:    NewSliceIterator(make([]T, 0)),
		queryFn:      queryFn,
	}

	for i := range opts {
		opts[i](g)
	}
	return g
}

func (dp *FlowQueryIterator[T]) Next() bool {
	if dp.sliceIter.Next() {
		return true
	}
	if !dp.hasMore {
		return false
	}
	ctx, cancel := context.WithTimeout(dp.ctx, dp.queryTimeout)
	defer cancel()
	list, err := dp.queryFn(ctx, dp.lastModel, dp.first, dp.limit)
	if err != nil {
		dp.err = err
		dp.hasMore = false
		return false
	}
	dp.first = false
	if len(list) == 0 {
		dp.hasMore = false
		return false
	}
	if len(list) < dp.limit {
		dp.hasMore = false
	}
	dp.sliceIter = NewSliceIterator(list)
	return dp.sliceIter.Next()
}

func (dp *FlowQueryIterator[T]) Value() T {
	dp.lastModel = dp.sliceIter.Value()
	return dp.lastModel
}

// Err 查询出错时迭代提前结束，返回该错误
func (dp *FlowQueryIterator[T]) Err() error {
	return dp.err
}
