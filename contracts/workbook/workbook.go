package workbook

import (
	"context"
	"io"
)

// Style 行样式
type Style int

const (
	StylePlain Style = iota
	StyleOrganization
	StyleTitle
	StyleSubtitle
	StyleDate
	StyleHeader
)

// Row 一行数据，Merge为true时整行合并为一个单元格(只取Cells[0])
type Row struct {
	Cells []string `json:"cells"`
	Style Style    `json:"style"`
	Merge bool     `json:"merge"`
}

// Sheet 工作表
type Sheet struct {
	Name         string    `json:"name"`
	Columns      int       `json:"columns"`       //列数，合并行按此宽度合并
	ColumnWidths []float64 `json:"column_widths"` //每列宽度(字符数)
	Rows         []Row     `json:"rows"`
}

// Workbook 工作簿
type Workbook interface {
	// AddSheet 添加工作表，只支持单个工作表
	AddSheet(sheet *Sheet) error
	// WriteFile 把xlsx写入w，ctx取消时远程渲染随之中止
	WriteFile(ctx context.Context, w io.Writer) (int64, error)
	Close() error
}

// Library 表格库，导出只依赖这个能力
type Library interface {
	Name() string
	NewWorkbook() (Workbook, error)
}

// Source 表格库的来源，进程内或远程
type Source interface {
	Name() string
	Resolve(ctx context.Context) (Library, error)
}
