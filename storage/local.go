package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/opdss/report/contracts/storage"
)

type LocalConfig struct {
	Endpoint string `help:"访问地址" default:"http://localhost:8989/files" json:"endpoint"`
	Root     string `help:"根目录" default:"$ROOT/reports" json:"root"`
}

var _ storage.FileSystem = (*Local)(nil)

// Local 本地磁盘存储
type Local struct {
	root     string
	endpoint string
}

func NewLocal(config LocalConfig) (*Local, error) {
	if config.Root == "" {
		return nil, ErrStorage.New("local root is empty")
	}
	return &Local{
		root:     config.Root,
		endpoint: strings.TrimSuffix(config.Endpoint, "/"),
	}, nil
}

func (r *Local) Delete(ctx context.Context, files ...string) error {
	for _, file := range files {
		fileInfo, err := os.Stat(r.fullPath(file))
		if err != nil {
			return err
		}
		if fileInfo.IsDir() {
			return ErrStorage.New("can't delete directory: %s", file)
		}
	}
	for _, file := range files {
		if err := os.Remove(r.fullPath(file)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Local) Exists(ctx context.Context, file string) bool {
	_, err := os.Stat(r.fullPath(file))
	return err == nil
}

func (r *Local) Get(ctx context.Context, file string) ([]byte, error) {
	rs, err := r.GetStream(ctx, file)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rs.Close()
	}()
	return io.ReadAll(rs)
}

func (r *Local) GetStream(ctx context.Context, file string) (io.ReadCloser, error) {
	return os.Open(r.fullPath(file))
}

func (r *Local) Path(file string) string {
	return r.fullPath(file)
}

func (r *Local) Put(ctx context.Context, file string, content []byte) error {
	return r.PutStream(ctx, file, bytes.NewReader(content))
}

func (r *Local) PutStream(ctx context.Context, file string, rs io.Reader) error {
	file = r.fullPath(file)
	if err := os.MkdirAll(filepath.Dir(file), os.ModePerm); err != nil {
		return err
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	if _, err = io.Copy(f, rs); err != nil {
		return err
	}
	return nil
}

func (r *Local) Url(file string) string {
	return r.endpoint + "/" + strings.TrimPrefix(filepath.ToSlash(file), "/")
}

// fullPath 文件在根目录下的路径，不允许跳出根目录
func (r *Local) fullPath(path string) string {
	realPath := filepath.Clean("/" + path)
	if realPath == "/" {
		return r.root
	}
	return filepath.Join(r.root, realPath)
}
