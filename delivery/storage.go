package delivery

import (
	"bytes"
	"context"

	"github.com/opdss/report/contracts/report"
)

// SaveToStorage 保存到文件存储，返回下载地址
func SaveToStorage(ctx context.Context, fs report.FileStorage, key string, data []byte) (string, error) {
	if err := fs.PutStream(ctx, key, bytes.NewReader(data)); err != nil {
		return "", Error.Wrap(err)
	}
	return fs.Url(key), nil
}
