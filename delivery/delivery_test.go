package delivery

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/opdss/report/storage"
)

func TestSaveFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := SaveFile(dir, "reporte.docx", []byte("hola"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reporte.docx"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hola", string(data))

	// 覆盖写入，不留下临时文件
	_, err = SaveFile(dir, "reporte.docx", []byte("chao"))
	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestSaveFileStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveFile(dir, "../../escape.csv", []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.csv"), path)
}

func TestSaveToStorage(t *testing.T) {
	root := t.TempDir()
	fs, err := storage.NewLocal(storage.LocalConfig{Endpoint: "http://files.local/", Root: root})
	require.NoError(t, err)

	url, err := SaveToStorage(context.Background(), fs, "2026/reporte.csv", []byte("nombre\nAna\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://files.local/2026/reporte.csv", url)

	data, err := os.ReadFile(filepath.Join(root, "2026", "reporte.csv"))
	require.NoError(t, err)
	assert.Equal(t, "nombre\nAna\n", string(data))
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t,
		`attachment; filename="reporte.docx"; filename*=UTF-8''reporte.docx`,
		ContentDisposition("attachment", "reporte.docx"))
	assert.Equal(t,
		`inline; filename="ni_os.html"; filename*=UTF-8''ni%C3%B1os.html`,
		ContentDisposition("inline", "niños.html"))
}

func TestAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/file", func(c *gin.Context) {
		Attachment(c, "reporte.csv", "text/csv", []byte("a,b\n"))
	})
	r.GET("/print", func(c *gin.Context) {
		Inline(c, "reporte.html", "text/html; charset=utf-8", []byte("<html></html>"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/file", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), "attachment;"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Equal(t, "a,b\n", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/print", nil))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), "inline;"))
	assert.Equal(t, "<html></html>", w.Body.String())
}

func TestPreview(t *testing.T) {
	dir := t.TempDir()
	var opened string
	opener := OpenerFunc(func(ctx context.Context, target string) error {
		opened = target
		return nil
	})
	var notice bytes.Buffer

	path, err := NewPreviewer(opener, &notice, nil).WithDir(dir).Preview(context.Background(), "reporte", "<html>ok</html>")
	require.NoError(t, err)
	assert.Equal(t, path, opened)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".html"))
	assert.Empty(t, notice.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", string(data))
}

func TestPreviewBlocked(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	opener := OpenerFunc(func(ctx context.Context, target string) error {
		return errors.New("popup blocked")
	})
	var notice bytes.Buffer

	path, err := NewPreviewer(opener, &notice, zap.New(core)).WithDir(t.TempDir()).Preview(context.Background(), "reporte", "<html/>")
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Contains(t, notice.String(), "La ventana de impresión fue bloqueada")
	assert.Contains(t, notice.String(), path)
	assert.Equal(t, 1, logs.FilterMessage("print preview blocked").Len())
}
