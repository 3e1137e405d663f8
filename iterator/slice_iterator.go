package iterator

import "github.com/opdss/report/contracts/iterator"

var _ iterator.Iterator[any] = (*SliceIterator[any])(nil)

// SliceIterator 切片迭代器，Value返回当前元素并前进
type SliceIterator[T any] struct {
	data []T
	pos  int
}

func NewSliceIterator[T any](data []T) *SliceIterator[T] {
	return &SliceIterator[T]{data: data}
}

func (it *SliceIterator[T]) Next() bool {
	return it.pos < len(it.data)
}

func (it *SliceIterator[T]) Value() T {
	var v T
	if it.pos < len(it.data) {
		v = it.data[it.pos]
	}
	it.pos++
	return v
}

// Remaining 还没读取的数量
func (it *SliceIterator[T]) Remaining() int {
	return max(len(it.data)-it.pos, 0)
}
