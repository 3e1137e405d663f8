package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/opdss/report/contracts/storage"
	"github.com/tencentyun/cos-go-sdk-v5"
)

type CosConfig struct {
	AccessKeyId     string `help:"accessKeyId" default:"" json:"access_key_id"`
	AccessKeySecret string `help:"accessKeySecret" default:"" json:"access_key_secret"`
	Url             string `help:"访问地址，为空时使用存储桶地址" default:"" json:"url"`
	Endpoint        string `help:"存储桶地址，如 https://bucket-1250000000.cos.ap-guangzhou.myqcloud.com" default:"" json:"endpoint"`
}

var _ storage.FileSystem = (*Cos)(nil)

// Cos 腾讯云对象存储
// https://cloud.tencent.com/document/product/436/31215
type Cos struct {
	url    string
	client *cos.Client
}

func NewCos(config CosConfig) (*Cos, error) {
	if config.AccessKeyId == "" || config.AccessKeySecret == "" || config.Endpoint == "" {
		return nil, ErrStorage.New("please set cos configuration")
	}

	u, err := url.Parse(config.Endpoint)
	if err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, ErrStorage.New("invalid cos endpoint: %s", config.Endpoint)
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: u}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  config.AccessKeyId,
			SecretKey: config.AccessKeySecret,
		},
	})

	publicUrl := config.Url
	if publicUrl == "" {
		publicUrl = config.Endpoint
	}
	return &Cos{
		url:    strings.TrimSuffix(publicUrl, "/"),
		client: client,
	}, nil
}

func (r *Cos) Delete(ctx context.Context, files ...string) error {
	if len(files) == 0 {
		return nil
	}
	objects := make([]cos.Object, 0, len(files))
	for _, v := range files {
		objects = append(objects, cos.Object{Key: v})
	}
	_, _, err := r.client.Object.DeleteMulti(ctx, &cos.ObjectDeleteMultiOptions{
		Objects: objects,
		Quiet:   true,
	})
	return ErrStorage.Wrap(err)
}

func (r *Cos) Exists(ctx context.Context, file string) bool {
	ok, err := r.client.Object.IsExist(ctx, file)
	return err == nil && ok
}

func (r *Cos) Get(ctx context.Context, file string) ([]byte, error) {
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

func (r *Cos) GetStream(ctx context.Context, file string) (io.ReadCloser, error) {
	resp, err := r.client.Object.Get(ctx, file, nil)
	if err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	return resp.Body, nil
}

func (r *Cos) Put(ctx context.Context, file string, content []byte) error {
	_, err := r.client.Object.Put(ctx, file, bytes.NewReader(content), &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType: ContentType(file, content),
		},
	})
	return ErrStorage.Wrap(err)
}

func (r *Cos) PutStream(ctx context.Context, file string, rs io.Reader) error {
	_, err := r.client.Object.Put(ctx, file, rs, nil)
	return ErrStorage.Wrap(err)
}

func (r *Cos) Url(file string) string {
	return r.url + "/" + strings.TrimPrefix(file, "/")
}
