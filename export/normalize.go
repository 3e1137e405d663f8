package export

import (
	"fmt"
	"strconv"
	"time"
)

// Placeholder 空值占位符
const Placeholder = "—"

// Locale 日期格式
type Locale struct {
	Name       string
	ShortDate  string     //单元格日期，time.Format布局
	Months     [12]string //长日期的月份名
	LongFormat string     //长日期，依次为日、月份名、年
	Location   *time.Location
}

// EsCL 默认的es-CL格式
var EsCL = &Locale{
	Name:      "es-CL",
	ShortDate: "02-01-2006",
	Months: [12]string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	},
	LongFormat: "%d de %s de %d",
}

// Date 单元格日期
func (l *Locale) Date(t time.Time) string {
	return l.in(t).Format(l.ShortDate)
}

// LongDate 生成日期，例如"17 de octubre de 2026"
func (l *Locale) LongDate(t time.Time) string {
	t = l.in(t)
	return fmt.Sprintf(l.LongFormat, t.Day(), l.Months[t.Month()-1], t.Year())
}

func (l *Locale) in(t time.Time) time.Time {
	if l.Location != nil {
		return t.In(l.Location)
	}
	return t
}

// Normalize 单元格值转为显示文本，所有格式共用
func Normalize(v Value, loc *Locale) string {
	if loc == nil {
		loc = EsCL
	}
	switch v.kind {
	case KindNull:
		return Placeholder
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindDate:
		return loc.Date(v.t)
	default:
		return v.s
	}
}
