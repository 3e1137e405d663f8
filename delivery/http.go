package delivery

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// Attachment 以附件下载的方式返回
func Attachment(c *gin.Context, name, mime string, data []byte) {
	c.Header("Content-Disposition", ContentDisposition("attachment", name))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, mime, data)
}

// Inline 直接在浏览器打开，打印预览使用
func Inline(c *gin.Context, name, mime string, data []byte) {
	c.Header("Content-Disposition", ContentDisposition("inline", name))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, mime, data)
}

// ContentDisposition 文件名带非ASCII字符时同时给出filename*
func ContentDisposition(kind, name string) string {
	ascii := make([]rune, 0, len(name))
	for _, r := range name {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			r = '_'
		}
		ascii = append(ascii, r)
	}
	return fmt.Sprintf(`%s; filename="%s"; filename*=UTF-8''%s`, kind, string(ascii), url.PathEscape(name))
}
