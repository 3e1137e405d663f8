package export

import "github.com/opdss/report/markup"

type columns struct {
	fields []string  //导出字段名
	titles []string  //导出列名
	widths []float64 //列宽度，0为默认
	nums   int       //列数量
}

func newColumns(cols []Column) *columns {
	size := len(cols)
	c := &columns{
		fields: make([]string, size),
		titles: make([]string, size),
		widths: make([]float64, size),
		nums:   size,
	}
	for i := 0; i < size; i++ {
		c.fields[i] = cols[i].Key
		c.titles[i] = cols[i].Label
		c.widths[i] = float64(cols[i].Width)
	}
	return c
}

// processRow 按列顺序取出一行的显示文本
func (c *columns) processRow(row Row, loc *Locale) []string {
	cells := make([]string, c.nums)
	for i, field := range c.fields {
		cells[i] = Normalize(row[field], loc)
	}
	return cells
}

// document 生成标记文档
func (c *columns) document(req *Request, org, date string, loc *Locale) markup.Document {
	doc := markup.Document{
		Organization: org,
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Date:         date,
		Headers:      c.titles,
		Rows:         make([][]string, len(req.Rows)),
	}
	for i := range req.Rows {
		doc.Rows[i] = c.processRow(req.Rows[i], loc)
	}
	return doc
}
