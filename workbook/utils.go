package workbook

import (
	"github.com/zeebo/errs"
)

var Error = errs.Class("workbook")

// ErrUnavailable 来源不可用
var ErrUnavailable = errs.Class("workbook unavailable")
