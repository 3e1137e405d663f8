package export

import (
	"context"
	"reflect"
	"time"

	"github.com/opdss/report/contracts/iterator"
	iter "github.com/opdss/report/iterator"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagName 结构体字段对应的列名tag
const TagName = "export"

// DataProvider 数据提供者
type DataProvider iterator.Iterator[any]

// NewSliceDataProvider 数组数据迭代器
func NewSliceDataProvider(data []any) DataProvider {
	return iter.NewSliceIterator(data)
}

type GormDataProviderOption func(provider *gormOptions)

type gormOptions struct {
	limit        int
	queryTimeout time.Duration
}

// WithGormDataProviderLimit 数据批量查询数量
func WithGormDataProviderLimit(n int) GormDataProviderOption {
	return func(o *gormOptions) {
		o.limit = n
	}
}

// WithGormDataProviderQueryTimeout 单次查询超时控制
func WithGormDataProviderQueryTimeout(t time.Duration) GormDataProviderOption {
	return func(o *gormOptions) {
		o.queryTimeout = t
	}
}

// NewGormDataProvider Gorm分页查询，每行是map[string]any
func NewGormDataProvider(tx *gorm.DB, opts ...GormDataProviderOption) DataProvider {
	o := &gormOptions{}
	for i := range opts {
		opts[i](o)
	}
	it := iter.NewPageQueryIterator[any](func(ctx context.Context, offset, limit int) ([]any, error) {
		var list []map[string]any
		if err := tx.WithContext(ctx).Offset(offset).Limit(limit).Find(&list).Error; err != nil {
			return nil, err
		}
		res := make([]any, len(list))
		for i := range list {
			res[i] = list[i]
		}
		return res, nil
	},
		iter.WithPageQueryIteratorLimit[any](o.limit),
		iter.WithPageQueryIteratorQueryTimeout[any](o.queryTimeout),
		iter.WithPageQueryIteratorContext[any](tx.Statement.Context),
	)
	return it
}

// NewKeysetDataProvider 按key列递增的游标查询，适合大表
func NewKeysetDataProvider(tx *gorm.DB, key string, opts ...GormDataProviderOption) DataProvider {
	o := &gormOptions{}
	for i := range opts {
		opts[i](o)
	}
	column := clause.Column{Name: key}
	return iter.NewFlowQueryIterator[any](func(ctx context.Context, last any, first bool, limit int) ([]any, error) {
		q := tx.WithContext(ctx).Order(clause.OrderByColumn{Column: column})
		if !first {
			lastRow, _ := last.(map[string]any)
			q = q.Where(clause.Gt{Column: column, Value: lastRow[key]})
		}
		var list []map[string]any
		if err := q.Limit(limit).Find(&list).Error; err != nil {
			return nil, err
		}
		res := make([]any, len(list))
		for i := range list {
			res[i] = list[i]
		}
		return res, nil
	},
		iter.WithFlowQueryIteratorLimit[any](o.limit),
		iter.WithFlowQueryIteratorQueryTimeout[any](o.queryTimeout),
		iter.WithFlowQueryIteratorContext[any](tx.Statement.Context),
	)
}

// NewSqlDataProvider 原生sql查询，作为子查询分页
func NewSqlDataProvider(db *gorm.DB, selectSql string, opts ...GormDataProviderOption) DataProvider {
	return NewGormDataProvider(db.Table("(?) AS export_rows", db.Raw(selectSql)), opts...)
}

// Collect 读取全部数据为行，超过max时返回ErrMaximumLimit，max<=0为MaxRows
func Collect(dp DataProvider, max int) ([]Row, error) {
	if max <= 0 {
		max = MaxRows
	}
	rows := make([]Row, 0)
	for dp.Next() {
		if len(rows) >= max {
			return nil, ErrMaximumLimit
		}
		rows = append(rows, ToRow(dp.Value()))
	}
	if err := iterator.Err[any](dp); err != nil {
		return nil, Error.Wrap(err)
	}
	return rows, nil
}

// ToRow 把map或结构体转为行，结构体字段名可以用export tag指定
func ToRow(v any) Row {
	switch x := v.(type) {
	case Row:
		return x
	case map[string]Value:
		return x
	case map[string]any:
		row := make(Row, len(x))
		for k, val := range x {
			row[k] = ValueOf(val)
		}
		return row
	}
	return rowFromReflect(reflect.ValueOf(v))
}

func rowFromReflect(rv reflect.Value) Row {
	if !rv.IsValid() {
		return Row{}
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Row{}
		}
		return rowFromReflect(rv.Elem())
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Row{}
		}
		row := make(Row, rv.Len())
		it := rv.MapRange()
		for it.Next() {
			row[it.Key().String()] = ValueOf(it.Value().Interface())
		}
		return row
	case reflect.Struct:
		typ := rv.Type()
		row := make(Row, typ.NumField())
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			key := field.Name
			//读取tag
			if k, ok := field.Tag.Lookup(TagName); ok {
				if k == "-" {
					continue
				}
				key = k
			}
			row[key] = ValueOf(rv.Field(i).Interface())
		}
		return row
	}
	return Row{}
}
