// Package markup 生成报表导出用的标记文本：Word(WordprocessingML)正文和打印用HTML。
// 所有调用方提供的文本在写入前都会经过转义。
package markup

import "fmt"

// Document 已经归一化为文本的报表内容
type Document struct {
	Organization string
	Title        string
	Subtitle     string     //可选
	Date         string     //生成日期，已按区域格式化
	Headers      []string   //列名，顺序即输出顺序
	Rows         [][]string //每行的单元格文本，与Headers对齐
}

// RowCountLabel 行数说明，单数和复数不同
func RowCountLabel(n int) string {
	if n == 1 {
		return "1 registro"
	}
	return fmt.Sprintf("%d registros", n)
}

// FooterText 报表末尾的合计行
func FooterText(n int) string {
	return "Total: " + RowCountLabel(n)
}

// GeneratedText 生成日期说明
func GeneratedText(date string) string {
	return "Generado el " + date
}
