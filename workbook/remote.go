package workbook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/opdss/report/contracts/workbook"
)

// DescriptorPath 远程表格服务的描述地址
const DescriptorPath = "/workbook.json"

// Descriptor 远程表格服务描述
type Descriptor struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Render  string `json:"render"` //渲染地址，相对地址基于Endpoint
}

var _ workbook.Source = (*RemoteSource)(nil)

// RemoteSource 远程表格服务，Resolve时取一次描述
type RemoteSource struct {
	endpoint string
	client   *http.Client
}

// NewRemoteSource timeout为0时不超时，只受ctx控制
func NewRemoteSource(endpoint string, timeout time.Duration) *RemoteSource {
	return &RemoteSource{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

// WithClient 替换http客户端
func (s *RemoteSource) WithClient(client *http.Client) *RemoteSource {
	s.client = client
	return s
}

func (s *RemoteSource) Name() string {
	return "remote"
}

func (s *RemoteSource) Resolve(ctx context.Context) (workbook.Library, error) {
	if s.endpoint == "" {
		return nil, ErrUnavailable.New("remote endpoint not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+DescriptorPath, nil)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, ErrUnavailable.Wrap(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, ErrUnavailable.New("descriptor %s: %s", req.URL, resp.Status)
	}
	var desc Descriptor
	if err = json.NewDecoder(resp.Body).Decode(&desc); err != nil {
		return nil, ErrUnavailable.Wrap(err)
	}
	if desc.Render == "" {
		return nil, ErrUnavailable.New("descriptor %s: no render address", req.URL)
	}
	render, err := req.URL.Parse(desc.Render)
	if err != nil {
		return nil, ErrUnavailable.Wrap(err)
	}
	return &remoteLibrary{desc: desc, render: render, client: s.client}, nil
}

var _ workbook.Library = (*remoteLibrary)(nil)

type remoteLibrary struct {
	desc   Descriptor
	render *url.URL
	client *http.Client
}

func (l *remoteLibrary) Name() string {
	if l.desc.Version == "" {
		return l.desc.Name
	}
	return fmt.Sprintf("%s@%s", l.desc.Name, l.desc.Version)
}

func (l *remoteLibrary) NewWorkbook() (workbook.Workbook, error) {
	return &remoteBook{lib: l}, nil
}

var _ workbook.Workbook = (*remoteBook)(nil)

// remoteBook 把工作表提交到远程服务渲染成xlsx
type remoteBook struct {
	lib   *remoteLibrary
	sheet *workbook.Sheet
}

func (b *remoteBook) AddSheet(sheet *workbook.Sheet) error {
	if b.sheet != nil {
		return Error.New("only one sheet per workbook")
	}
	b.sheet = sheet
	return nil
}

func (b *remoteBook) WriteFile(ctx context.Context, w io.Writer) (int64, error) {
	if b.sheet == nil {
		return 0, Error.New("empty workbook")
	}
	body, err := json.Marshal(b.sheet)
	if err != nil {
		return 0, Error.Wrap(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.lib.render.String(), bytes.NewReader(body))
	if err != nil {
		return 0, Error.Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := b.lib.client.Do(req)
	if err != nil {
		return 0, Error.Wrap(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return 0, Error.New("render %s: %s", b.lib.render, resp.Status)
	}
	n, err := io.Copy(w, resp.Body)
	return n, Error.Wrap(err)
}

func (b *remoteBook) Close() error {
	b.sheet = nil
	return nil
}
