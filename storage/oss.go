package storage

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/opdss/report/contracts/storage"
)

type OssConfig struct {
	AccessKeyId     string `help:"accessKeyId" default:"" json:"access_key_id"`
	AccessKeySecret string `help:"accessKeySecret" default:"" json:"access_key_secret"`
	Bucket          string `help:"存储桶" default:"" json:"bucket"`
	Url             string `help:"访问地址，为空时使用 bucket.endpoint" default:"" json:"url"`
	Endpoint        string `help:"api入口，如 https://oss-cn-hangzhou.aliyuncs.com" default:"" json:"endpoint"`
}

var _ storage.FileSystem = (*Oss)(nil)

// Oss 阿里云对象存储
// https://help.aliyun.com/document_detail/32144.html
type Oss struct {
	url    string
	bucket *oss.Bucket
}

func NewOss(config OssConfig) (*Oss, error) {
	if config.AccessKeyId == "" || config.AccessKeySecret == "" || config.Bucket == "" || config.Endpoint == "" {
		return nil, ErrStorage.New("please set oss configuration")
	}

	client, err := oss.New(config.Endpoint, config.AccessKeyId, config.AccessKeySecret)
	if err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	bucket, err := client.Bucket(config.Bucket)
	if err != nil {
		return nil, ErrStorage.Wrap(err)
	}

	publicUrl := config.Url
	if publicUrl == "" {
		if publicUrl, err = bucketUrl(config.Endpoint, config.Bucket); err != nil {
			return nil, err
		}
	}
	return &Oss{
		url:    strings.TrimSuffix(publicUrl, "/"),
		bucket: bucket,
	}, nil
}

// bucketUrl oss的公开地址是 scheme://bucket.endpoint
func bucketUrl(endpoint, bucket string) (string, error) {
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", ErrStorage.Wrap(err)
	}
	if u.Host == "" {
		return "", ErrStorage.New("invalid oss endpoint: %s", endpoint)
	}
	return u.Scheme + "://" + bucket + "." + u.Host, nil
}

func (r *Oss) Delete(ctx context.Context, files ...string) error {
	if len(files) == 0 {
		return nil
	}
	_, err := r.bucket.DeleteObjects(files, oss.WithContext(ctx), oss.DeleteObjectsQuiet(true))
	return ErrStorage.Wrap(err)
}

func (r *Oss) Exists(ctx context.Context, file string) bool {
	exist, err := r.bucket.IsObjectExist(file, oss.WithContext(ctx))
	return err == nil && exist
}

func (r *Oss) Get(ctx context.Context, file string) ([]byte, error) {
	rs, err := r.GetStream(ctx, file)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rs.Close()
	}()
	data, err := io.ReadAll(rs)
	return data, ErrStorage.Wrap(err)
}

func (r *Oss) GetStream(ctx context.Context, file string) (io.ReadCloser, error) {
	rc, err := r.bucket.GetObject(file, oss.WithContext(ctx))
	if err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	return rc, nil
}

func (r *Oss) Put(ctx context.Context, file string, content []byte) error {
	return ErrStorage.Wrap(r.bucket.PutObject(file, bytes.NewReader(content),
		oss.WithContext(ctx), oss.ContentType(ContentType(file, content))))
}

func (r *Oss) PutStream(ctx context.Context, file string, rs io.Reader) error {
	return ErrStorage.Wrap(r.bucket.PutObject(file, rs, oss.WithContext(ctx)))
}

func (r *Oss) Url(file string) string {
	return r.url + "/" + strings.TrimPrefix(file, "/")
}
