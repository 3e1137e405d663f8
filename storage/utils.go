package storage

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/zeebo/errs"
)

var ErrStorage = errs.Class("storage")

// 导出文件的固定类型，其余按内容探测
var knownTypes = map[string]string{
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".csv":  "text/csv; charset=utf-8",
	".html": "text/html; charset=utf-8",
}

// ContentType 文件内容类型
func ContentType(file string, content []byte) string {
	if t, ok := knownTypes[strings.ToLower(filepath.Ext(file))]; ok {
		return t
	}
	return mimetype.Detect(content).String()
}
