package markup

import (
	"strconv"
	"strings"
)

// PrintDelay 页面加载完成后延迟多久调用打印，给布局留出时间
const PrintDelay = 300 // ms

const printStyle = `@page { size: A4 landscape; margin: 12mm; }
* { box-sizing: border-box; }
body { font-family: Arial, Helvetica, sans-serif; color: #222; margin: 0; }
.header { text-align: center; margin-bottom: 12px; border-bottom: 2px solid #1F4E79; padding-bottom: 8px; }
.header .org { font-size: 13px; font-weight: bold; color: #1F4E79; }
.header h1 { font-size: 18px; margin: 4px 0; }
.header .subtitle { font-size: 13px; font-style: italic; color: #595959; }
.header .date { font-size: 10px; color: #7F7F7F; margin-top: 4px; }
table { width: 100%; border-collapse: collapse; font-size: 10px; }
thead { display: table-header-group; }
th { background: #1F4E79; color: #FFFFFF; font-weight: bold; text-align: left; padding: 5px 6px; border: 1px solid #BFBFBF; }
td { padding: 4px 6px; border: 1px solid #BFBFBF; }
tbody tr:nth-child(odd) { background: #F2F2F2; }
tr { page-break-inside: avoid; }
.footer { text-align: right; font-size: 10px; font-style: italic; margin-top: 8px; }
@media print { th, tbody tr:nth-child(odd) { -webkit-print-color-adjust: exact; print-color-adjust: exact; } }
`

// PrintHTML 生成用于打印预览的完整HTML页面，页面加载后自动弹出打印对话框
func PrintHTML(doc Document, pageTitle string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"es\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + EscapeHTML(pageTitle) + "</title>\n")
	b.WriteString("<style>\n" + printStyle + "</style>\n</head>\n<body>\n")

	b.WriteString("<div class=\"header\">\n")
	b.WriteString("<div class=\"org\">" + EscapeHTML(doc.Organization) + "</div>\n")
	b.WriteString("<h1>" + EscapeHTML(doc.Title) + "</h1>\n")
	if doc.Subtitle != "" {
		b.WriteString("<div class=\"subtitle\">" + EscapeHTML(doc.Subtitle) + "</div>\n")
	}
	b.WriteString("<div class=\"date\">" + EscapeHTML(GeneratedText(doc.Date)) + "</div>\n")
	b.WriteString("</div>\n")

	b.WriteString("<table>\n<thead><tr>")
	for _, h := range doc.Headers {
		b.WriteString("<th>" + EscapeHTML(h) + "</th>")
	}
	b.WriteString("</tr></thead>\n<tbody>\n")
	for _, row := range doc.Rows {
		b.WriteString("<tr>")
		for j := range doc.Headers {
			var text string
			if j < len(row) {
				text = row[j]
			}
			b.WriteString("<td>" + EscapeHTML(text) + "</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")
	b.WriteString("<div class=\"footer\">" + EscapeHTML(FooterText(len(doc.Rows))) + "</div>\n")

	b.WriteString("<script>\nwindow.onload = function () {\n  setTimeout(function () { window.print(); }, ")
	b.WriteString(strconv.Itoa(PrintDelay))
	b.WriteString(");\n};\n</script>\n</body>\n</html>\n")
	return b.String()
}
