package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	Enabled   bool   `help:"是否开启指标" default:"true"`
	Namespace string `help:"指标命名空间" default:"reportx"`
}

// Collector 导出相关的prometheus指标，nil时所有方法都是空操作
type Collector struct {
	registry *prometheus.Registry
	exports  *prometheus.CounterVec
	rows     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	bytes    *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewCollector registry为nil时新建
func NewCollector(conf Config, registry *prometheus.Registry) *Collector {
	if !conf.Enabled {
		return nil
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if conf.Namespace == "" {
		conf.Namespace = "reportx"
	}
	c := &Collector{
		registry: registry,
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: conf.Namespace,
			Name:      "exports_total",
			Help:      "Number of exports by format and status.",
		}, []string{"format", "status"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: conf.Namespace,
			Name:      "export_rows_total",
			Help:      "Number of rows written by format.",
		}, []string{"format"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: conf.Namespace,
			Name:      "export_duration_seconds",
			Help:      "Export duration by format.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"format"}),
		bytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: conf.Namespace,
			Name:      "export_size_bytes",
			Help:      "Size of produced documents by format.",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		}, []string{"format"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: conf.Namespace,
			Name:      "exports_in_flight",
			Help:      "Exports currently running.",
		}),
	}
	registry.MustRegister(c.exports, c.rows, c.duration, c.bytes, c.inFlight)
	return c
}

// Start 开始一次导出，返回的函数在结束时调用
func (c *Collector) Start() func() {
	if c == nil {
		return func() {}
	}
	c.inFlight.Inc()
	return c.inFlight.Dec
}

// RecordExport 记录一次导出结果
func (c *Collector) RecordExport(format string, rows, size int, d time.Duration, err error) {
	if c == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.exports.WithLabelValues(format, status).Inc()
	c.duration.WithLabelValues(format).Observe(d.Seconds())
	if err != nil {
		return
	}
	c.rows.WithLabelValues(format).Add(float64(rows))
	c.bytes.WithLabelValues(format).Observe(float64(size))
}

// Handler /metrics
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}
