package delivery

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

// BlockedNotice 无法打开预览时给用户的提示
const BlockedNotice = "La ventana de impresión fue bloqueada. Abra manualmente el archivo: %s\n"

// Opener 在新的浏览上下文中打开地址
type Opener interface {
	Open(ctx context.Context, target string) error
}

// OpenerFunc 函数形式的Opener
type OpenerFunc func(ctx context.Context, target string) error

func (f OpenerFunc) Open(ctx context.Context, target string) error {
	return f(ctx, target)
}

// SystemOpener 使用系统浏览器打开
type SystemOpener struct{}

func (SystemOpener) Open(ctx context.Context, target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", target)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", target)
	}
	return cmd.Run()
}

// Previewer 打印预览
type Previewer struct {
	opener Opener
	notice io.Writer
	dir    string
	log    *zap.Logger
}

// NewPreviewer opener为nil时使用系统浏览器，notice为nil时输出到stderr
func NewPreviewer(opener Opener, notice io.Writer, log *zap.Logger) *Previewer {
	if opener == nil {
		opener = SystemOpener{}
	}
	if notice == nil {
		notice = os.Stderr
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Previewer{opener: opener, notice: notice, log: log}
}

// WithDir 预览文件保存目录，默认系统临时目录
func (p *Previewer) WithDir(dir string) *Previewer {
	p.dir = dir
	return p
}

// Preview 写入html并打开，打开失败时给出提示并保留文件，不返回错误
func (p *Previewer) Preview(ctx context.Context, name, html string) (string, error) {
	dir := p.dir
	if dir == "" {
		dir = os.TempDir()
	}
	f, err := os.CreateTemp(dir, filepath.Base(name)+"_*.html")
	if err != nil {
		return "", Error.Wrap(err)
	}
	path := f.Name()
	_, err = io.WriteString(f, html)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", Error.Wrap(err)
	}

	if err = p.opener.Open(ctx, path); err != nil {
		p.log.Warn("print preview blocked", zap.String("file", path), zap.Error(err))
		_, _ = fmt.Fprintf(p.notice, BlockedNotice, path)
		return path, nil
	}
	p.log.Debug("print preview opened", zap.String("file", path))
	return path, nil
}
