package markup

import (
	"strconv"
	"strings"
)

const (
	XMLHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

	wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relsNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	// GridColWidth 表格每列固定宽度(twip)，列宽提示在Word中不生效
	GridColWidth = 2000

	HeaderFill  = "1F4E79"
	HeaderColor = "FFFFFF"
	BandFill    = "F2F2F2"
)

// run 段落中的一段文字及其样式
type run struct {
	text   string
	bold   bool
	italic bool
	color  string
	size   int //半磅
}

// WordDocument 生成 word/document.xml 的完整内容
func WordDocument(doc Document) string {
	var b strings.Builder
	b.WriteString(XMLHeader)
	b.WriteString(`<w:document xmlns:w="` + wordNamespace + `" xmlns:r="` + relsNamespace + `">`)
	b.WriteString("<w:body>")

	//标题区
	writeCentered(&b, run{text: doc.Organization, bold: true, color: HeaderFill, size: 24})
	writeCentered(&b, run{text: doc.Title, bold: true, size: 32})
	if doc.Subtitle != "" {
		writeCentered(&b, run{text: doc.Subtitle, italic: true, color: "595959", size: 24})
	}
	writeCentered(&b, run{text: GeneratedText(doc.Date), color: "7F7F7F", size: 18})
	writeRule(&b)

	writeTable(&b, doc.Headers, doc.Rows)

	//合计
	b.WriteString(`<w:p><w:pPr><w:spacing w:before="200"/><w:jc w:val="right"/></w:pPr>`)
	writeRun(&b, run{text: FooterText(len(doc.Rows)), italic: true, size: 18})
	b.WriteString("</w:p>")

	//A4横向
	b.WriteString(`<w:sectPr><w:pgSz w:w="16838" w:h="11906" w:orient="landscape"/>`)
	b.WriteString(`<w:pgMar w:top="1134" w:right="1134" w:bottom="1134" w:left="1134" w:header="708" w:footer="708" w:gutter="0"/></w:sectPr>`)
	b.WriteString("</w:body></w:document>")
	return b.String()
}

func writeCentered(b *strings.Builder, r run) {
	b.WriteString(`<w:p><w:pPr><w:spacing w:after="60"/><w:jc w:val="center"/></w:pPr>`)
	writeRun(b, r)
	b.WriteString("</w:p>")
}

// writeRule 用段落下边框画一条横线
func writeRule(b *strings.Builder) {
	b.WriteString(`<w:p><w:pPr><w:pBdr><w:bottom w:val="single" w:sz="8" w:space="1" w:color="` + HeaderFill + `"/></w:pBdr>`)
	b.WriteString(`<w:spacing w:after="200"/></w:pPr></w:p>`)
}

func writeRun(b *strings.Builder, r run) {
	b.WriteString("<w:r>")
	if r.bold || r.italic || r.color != "" || r.size > 0 {
		b.WriteString("<w:rPr>")
		if r.bold {
			b.WriteString("<w:b/>")
		}
		if r.italic {
			b.WriteString("<w:i/>")
		}
		if r.color != "" {
			b.WriteString(`<w:color w:val="` + r.color + `"/>`)
		}
		if r.size > 0 {
			b.WriteString(`<w:sz w:val="` + strconv.Itoa(r.size) + `"/>`)
		}
		b.WriteString("</w:rPr>")
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(EscapeXML(r.text))
	b.WriteString("</w:t></w:r>")
}

func writeTable(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("<w:tbl><w:tblPr>")
	b.WriteString(`<w:tblW w:w="5000" w:type="pct"/>`)
	b.WriteString("<w:tblBorders>")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		b.WriteString(`<w:` + side + ` w:val="single" w:sz="4" w:space="0" w:color="BFBFBF"/>`)
	}
	b.WriteString("</w:tblBorders></w:tblPr>")

	b.WriteString("<w:tblGrid>")
	for range headers {
		b.WriteString(`<w:gridCol w:w="` + strconv.Itoa(GridColWidth) + `"/>`)
	}
	b.WriteString("</w:tblGrid>")

	//表头，跨页重复
	b.WriteString("<w:tr><w:trPr><w:tblHeader/></w:trPr>")
	for _, h := range headers {
		writeCell(b, HeaderFill, run{text: h, bold: true, color: HeaderColor, size: 20})
	}
	b.WriteString("</w:tr>")

	for i, row := range rows {
		fill := ""
		if i%2 == 0 {
			fill = BandFill
		}
		b.WriteString("<w:tr>")
		for j := range headers {
			var text string
			if j < len(row) {
				text = row[j]
			}
			writeCell(b, fill, run{text: text, size: 20})
		}
		b.WriteString("</w:tr>")
	}
	b.WriteString("</w:tbl>")
}

func writeCell(b *strings.Builder, fill string, r run) {
	b.WriteString(`<w:tc><w:tcPr><w:tcW w:w="` + strconv.Itoa(GridColWidth) + `" w:type="dxa"/>`)
	if fill != "" {
		b.WriteString(`<w:shd w:val="clear" w:color="auto" w:fill="` + fill + `"/>`)
	}
	b.WriteString("</w:tcPr><w:p>")
	writeRun(b, r)
	b.WriteString("</w:p></w:tc>")
}
