package iterator

// Iterator 逐条读取数据，Next返回true后才能调用Value
type Iterator[T any] interface {
	Next() bool
	Value() T
}

// Failable 数据源出错时迭代会提前结束，Err返回原因
type Failable interface {
	Err() error
}

// Err 迭代结束后的错误，不支持Err的迭代器返回nil
func Err[T any](it Iterator[T]) error {
	if f, ok := it.(Failable); ok {
		return f.Err()
	}
	return nil
}
