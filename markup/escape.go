package markup

import (
	"strings"
	"unicode/utf8"
)

// EscapeXML 转义XML文本和属性中的5个保留字符 & < > " '
// XML 1.0 不允许的控制字符和非法UTF-8字节替换为 U+FFFD
func EscapeXML(s string) string {
	if !needsXMLEscape(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			if !isXMLChar(r) {
				b.WriteRune('\uFFFD')
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EscapeHTML 转义HTML文本和双引号属性中的4个保留字符 & < > "
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func needsXMLEscape(s string) bool {
	if !utf8.ValidString(s) {
		return true
	}
	for _, r := range s {
		switch r {
		case '&', '<', '>', '"', '\'':
			return true
		}
		if !isXMLChar(r) {
			return true
		}
	}
	return false
}

func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}
