package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/spf13/cast"
)

// Kind 单元格值类型
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindText
	KindDate
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindDate:
		return "date"
	default:
		return "other"
	}
}

// Value 单元格值，零值为Null
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string //Text的内容，Other的字符串形式
	t    time.Time
}

func Null() Value { return Value{} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

func Text(s string) Value { return Value{kind: KindText, s: s} }

func Date(t time.Time) Value { return Value{kind: KindDate, t: t} }

// Other 其他可转为字符串的值
func Other(v fmt.Stringer) Value { return Value{kind: KindOther, s: v.String()} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Bool() bool { return v.b }

func (v Value) Number() float64 { return v.n }

func (v Value) Text() string { return v.s }

func (v Value) Time() time.Time { return v.t }

// ValueOf 把任意值转为Value
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case *Value:
		if x == nil {
			return Null()
		}
		return *x
	case bool:
		return Bool(x)
	case float32:
		n, _ := strconv.ParseFloat(strconv.FormatFloat(float64(x), 'g', -1, 32), 64)
		return Number(n)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float64:
		return Number(cast.ToFloat64(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return Number(f)
		}
		return Text(x.String())
	case string:
		return Text(x)
	case []byte:
		return Text(string(x))
	case time.Time:
		return Date(x)
	case *time.Time:
		if x == nil {
			return Null()
		}
		return ValueOf(*x)
	case error:
		if isNilPointer(v) {
			return Null()
		}
		return Value{kind: KindOther, s: x.Error()}
	case fmt.Stringer:
		if isNilPointer(v) {
			return Null()
		}
		return Value{kind: KindOther, s: x.String()}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Null()
		}
		return ValueOf(rv.Elem().Interface())
	}
	if s, err := cast.ToStringE(v); err == nil {
		return Value{kind: KindOther, s: s}
	}
	return Value{kind: KindOther, s: fmt.Sprint(v)}
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// dateKey 请求中日期的显式写法 {"date": "2026-03-05"}，普通字符串始终是Text
const dateKey = "date"

// MarshalJSON Date输出为 {"date": RFC3339}
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.n)
	case KindDate:
		return json.Marshal(map[string]string{dateKey: v.t.Format(time.RFC3339)})
	default:
		return json.Marshal(v.s)
	}
}

// UnmarshalJSON 只有 {"date": ...} 形式按Date处理
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*v = fromDecoded(raw)
	return nil
}

// UnmarshalYAML yaml.v2
func (v *Value) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*v = fromDecoded(raw)
	return nil
}

func fromDecoded(raw any) Value {
	switch x := raw.(type) {
	case map[string]any:
		if len(x) == 1 {
			if d, ok := parseDate(x[dateKey]); ok {
				return d
			}
		}
	case map[any]any:
		if len(x) == 1 {
			if d, ok := parseDate(x[dateKey]); ok {
				return d
			}
		}
	}
	return ValueOf(raw)
}

func parseDate(raw any) (Value, bool) {
	switch x := raw.(type) {
	case time.Time:
		return Date(x), true
	case string:
		for _, layout := range []string{time.RFC3339, time.DateOnly} {
			if t, err := time.Parse(layout, x); err == nil {
				return Date(t), true
			}
		}
	}
	return Value{}, false
}

func (v Value) GoString() string {
	return fmt.Sprintf("export.Value{%s %s}", v.kind, strconv.Quote(Normalize(v, nil)))
}
