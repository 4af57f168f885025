package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sigval/internal/domain"
	"sigval/internal/usecase"
)

// Collector owns the service's prometheus registry.
type Collector struct {
	registry *prometheus.Registry

	validationsTotal   *prometheus.CounterVec
	validationDuration *prometheus.HistogramVec
	signaturesTotal    *prometheus.CounterVec
	cacheLookups       *prometheus.CounterVec
	httpRequestsTotal  *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,
		validationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sigval_validations_total",
			Help: "Document validations by policy and global indication",
		}, []string{"policy", "indication"}),
		validationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sigval_validation_duration_seconds",
			Help:    "Time spent running the validation engine",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"policy"}),
		signaturesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sigval_signatures_total",
			Help: "Validated signatures by indication and sub-indication",
		}, []string{"indication", "sub_indication"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sigval_report_cache_lookups_total",
			Help: "Report cache lookups by result",
		}, []string{"result"}),
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sigval_http_requests_total",
			Help: "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sigval_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (c *Collector) ObserveValidation(policyName string, report *domain.SimpleReport, elapsed time.Duration) {
	if report == nil {
		return
	}
	c.validationsTotal.WithLabelValues(policyName, string(report.Global.Indication)).Inc()
	c.validationDuration.WithLabelValues(policyName).Observe(elapsed.Seconds())
	for _, sig := range report.Signatures {
		c.signaturesTotal.WithLabelValues(string(sig.Indication), string(sig.SubIndication)).Inc()
	}
}

func (c *Collector) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveHTTP records one served request. route is the matched route pattern,
// not the raw path.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

var _ usecase.ValidationMetrics = (*Collector)(nil)
