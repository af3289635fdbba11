package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once               sync.Once
	resolutionDuration prom.Histogram
	resolutions        *prom.CounterVec
	exports            *prom.CounterVec
	watchReloads       *prom.CounterVec
	lastResolution     prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.resolutionDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "konanbridge",
			Name:      "resolution_duration_seconds",
			Help:      "Duration of build-setting resolutions",
			Buckets:   prom.DefBuckets,
		})
		pr.resolutions = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "konanbridge",
			Name:      "resolutions_total",
			Help:      "Resolution counts by outcome",
		}, []string{"outcome"})
		pr.exports = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "konanbridge",
			Name:      "exports_total",
			Help:      "Snapshot export counts by result",
		}, []string{"result"})
		pr.watchReloads = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "konanbridge",
			Name:      "watch_reloads_total",
			Help:      "Watch-mode re-resolutions by trigger",
		}, []string{"trigger"})
		pr.lastResolution = prom.NewGauge(prom.GaugeOpts{
			Namespace: "konanbridge",
			Name:      "last_resolution_timestamp_seconds",
			Help:      "Unix time of the most recent successful resolution",
		})
		reg.MustRegister(pr.resolutionDuration, pr.resolutions, pr.exports, pr.watchReloads, pr.lastResolution)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveResolutionDuration(d time.Duration) {
	if p == nil || p.resolutionDuration == nil {
		return
	}
	p.resolutionDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncResolution(outcome OutcomeLabel) {
	if p == nil || p.resolutions == nil {
		return
	}
	p.resolutions.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncExport(result string) {
	if p == nil || p.exports == nil {
		return
	}
	p.exports.WithLabelValues(result).Inc()
}

func (p *PrometheusRecorder) IncWatchReload(trigger string) {
	if p == nil || p.watchReloads == nil {
		return
	}
	p.watchReloads.WithLabelValues(trigger).Inc()
}

func (p *PrometheusRecorder) SetLastResolutionTime(t time.Time) {
	if p == nil || p.lastResolution == nil {
		return
	}
	p.lastResolution.Set(float64(t.Unix()))
}
