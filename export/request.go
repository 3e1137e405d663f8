package export

import (
	"path/filepath"
	"strings"
)

// Column 导出列
type Column struct {
	Key   string `json:"key" yaml:"key"`               //字段名，同一请求内唯一
	Label string `json:"label" yaml:"label"`           //列名
	Width int    `json:"width,omitempty" yaml:"width"` //列宽(字符数)，只对表格生效
}

// Row 一行数据，没有的key按空值处理
type Row map[string]Value

// Request 导出请求
type Request struct {
	Title        string   `json:"title" yaml:"title"`
	Subtitle     string   `json:"subtitle,omitempty" yaml:"subtitle"`
	FileName     string   `json:"fileName" yaml:"fileName"` //不带后缀
	Organization string   `json:"organization,omitempty" yaml:"organization"`
	Columns      []Column `json:"columns" yaml:"columns"`
	Rows         []Row    `json:"rows" yaml:"rows"`
}

// Validate 校验请求，行数为0是允许的
func (r *Request) Validate() error {
	if len(r.Columns) == 0 {
		return ErrInvalidRequest.New("columns is empty")
	}
	keys := make(map[string]struct{}, len(r.Columns))
	for i, c := range r.Columns {
		if c.Key == "" {
			return ErrInvalidRequest.New("column %d has empty key", i)
		}
		if _, ok := keys[c.Key]; ok {
			return ErrInvalidRequest.New("duplicate column key %q", c.Key)
		}
		if c.Width < 0 {
			return ErrInvalidRequest.New("column %q has negative width", c.Key)
		}
		keys[c.Key] = struct{}{}
	}
	if strings.TrimSpace(r.FileName) == "" {
		return ErrInvalidRequest.New("fileName is empty")
	}
	if ext := filepath.Ext(r.FileName); ext != "" {
		return ErrInvalidRequest.New("fileName %q must not include an extension", r.FileName)
	}
	if strings.ContainsAny(r.FileName, `/\`) {
		return ErrInvalidRequest.New("fileName %q must not include a path", r.FileName)
	}
	return nil
}

// organization 未设置时使用默认机构名
func (r *Request) organization(def string) string {
	if r.Organization != "" {
		return r.Organization
	}
	return def
}
