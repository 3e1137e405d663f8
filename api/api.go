package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/opdss/report/contracts/storage"
	"github.com/opdss/report/delivery"
	"github.com/opdss/report/export"
	"github.com/opdss/report/jwt"
	"github.com/opdss/report/metrics"
	"github.com/opdss/report/workbook"
)

type Config struct {
	TriggerHeader string `help:"标识导出触发源的请求头，为空时使用客户端IP" default:"X-Export-Trigger"`
}

// Handler 导出相关的http接口
type Handler struct {
	conf    Config
	service *export.Service
	files   storage.FileSystem
	tokens  *jwt.Jwt
	metrics *metrics.Collector
	log     *zap.Logger
	now     func() time.Time
}

// NewHandler files和tokens为nil时不提供存储和下载接口
func NewHandler(conf Config, service *export.Service, files storage.FileSystem, tokens *jwt.Jwt, collector *metrics.Collector, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		conf:    conf,
		service: service,
		files:   files,
		tokens:  tokens,
		metrics: collector,
		log:     log,
		now:     time.Now,
	}
}

// Register 注册路由
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.health)
	r.GET("/formats", h.formats)
	r.POST("/exports/:format", h.export)
	if h.files != nil && h.tokens != nil {
		r.POST("/exports/:format/store", h.store)
		r.GET("/downloads/:token", h.download)
	}
	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) formats(c *gin.Context) {
	list := make([]gin.H, 0, len(export.Formats))
	for _, f := range export.Formats {
		list = append(list, gin.H{"format": f, "suffix": f.Suffix(), "mime": f.MimeType()})
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) export(c *gin.Context) {
	res, ok := h.run(c)
	if !ok {
		return
	}
	if res.Format == export.FormatPrint {
		delivery.Inline(c, res.FileName, res.MimeType, res.Data)
		return
	}
	delivery.Attachment(c, res.FileName, res.MimeType, res.Data)
}

func (h *Handler) store(c *gin.Context) {
	res, ok := h.run(c)
	if !ok {
		return
	}
	key := res.StorageKey(h.now())
	url, err := delivery.SaveToStorage(c.Request.Context(), h.files, key, res.Data)
	if err != nil {
		h.fail(c, err)
		return
	}
	token, expires, err := h.tokens.CreateToken(jwt.TokenPayload{Key: key, FileName: res.FileName, MimeType: res.MimeType})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"key":      key,
		"url":      url,
		"download": "downloads/" + token,
		"expires":  expires,
		"fileName": res.FileName,
		"rows":     res.Rows,
	})
}

func (h *Handler) download(c *gin.Context) {
	payload, err := h.tokens.ValidateToken(c.Param("token"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	if !h.files.Exists(ctx, payload.Key) {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	rc, err := h.files.GetStream(ctx, payload.Key)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer func() { _ = rc.Close() }()

	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, -1, payload.MimeType, rc, map[string]string{
		"Content-Disposition": delivery.ContentDisposition("attachment", payload.FileName),
	})
}

func (h *Handler) run(c *gin.Context) (*export.Result, bool) {
	format, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	var req export.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, export.ErrInvalidRequest.Wrap(err))
		return nil, false
	}
	res, err := h.service.Run(c.Request.Context(), h.trigger(c), format, &req)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return res, true
}

// trigger 同一个触发源同时只能有一个同格式的导出
func (h *Handler) trigger(c *gin.Context) string {
	if h.conf.TriggerHeader != "" {
		if v := c.GetHeader(h.conf.TriggerHeader); v != "" {
			return v
		}
	}
	return c.ClientIP()
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("export request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// StatusOf 错误对应的http状态码
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case export.ErrInvalidRequest.Has(err):
		return http.StatusBadRequest
	case errors.Is(err, export.ErrMaximumLimit):
		return http.StatusRequestEntityTooLarge
	case export.ErrBusy.Has(err):
		return http.StatusConflict
	case jwt.ErrExpired.Has(err):
		return http.StatusGone
	case jwt.ErrInvalid.Has(err):
		return http.StatusUnauthorized
	case workbook.ErrUnavailable.Has(err), workbook.Error.Has(err):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
