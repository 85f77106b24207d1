package observability

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
)

// Metrics is a small Prometheus text-format registry for the API process.
type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	leadsByStat *GaugeVec
	leadsBySrc  *GaugeVec
	collectErrs *Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("consorcio_http_requests_total", "HTTP requests by method, route and status.", []string{"method", "route", "status"}),
		apiLatency:  NewHistogramVec("consorcio_http_request_duration_seconds", "HTTP request latency.", []string{"method", "route"}, nil),
		apiInflight: NewGauge("consorcio_http_inflight_requests", "Requests currently being served."),
		leadsByStat: NewGaugeVec("consorcio_leads", "Stored leads by status.", []string{"status"}),
		leadsBySrc:  NewGaugeVec("consorcio_leads_by_source", "Stored leads by capture source.", []string{"source"}),
		collectErrs: NewCounter("consorcio_metrics_collect_errors_total", "Failed lead gauge refreshes."),
	}
}

func (m *Metrics) APIInflightInc() {
	if m != nil {
		m.apiInflight.Inc()
	}
}

func (m *Metrics) APIInflightDec() {
	if m != nil {
		m.apiInflight.Dec()
	}
}

func (m *Metrics) ObserveAPI(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(d.Seconds(), method, route)
}

// LeadCounter is the slice of the lead statistics the collector needs.
type LeadCounter interface {
	GroupCount(ctx context.Context, field string) (map[string]int64, error)
}

// StartLeadCollector refreshes the lead gauges every interval until ctx is done.
func (m *Metrics) StartLeadCollector(ctx context.Context, log *logger.Logger, src LeadCounter, interval time.Duration) {
	if m == nil || src == nil {
		return
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	refresh := func() {
		for field, gauge := range map[string]*GaugeVec{"status": m.leadsByStat, "source": m.leadsBySrc} {
			counts, err := src.GroupCount(ctx, field)
			if err != nil {
				m.collectErrs.Inc()
				if log != nil {
					log.Warn("metrics: lead count failed", "field", field, "error", err)
				}
				continue
			}
			gauge.Reset()
			for k, n := range counts {
				gauge.Set(float64(n), k)
			}
		}
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		refresh()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refresh()
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.leadsByStat,
		m.leadsBySrc,
		m.collectErrs,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

// ---- metric primitives ----

func writeHeader(w io.Writer, name, help, kind string) error {
	_, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
	return err
}

// labeled holds one float per label set; counters and gauges differ only in TYPE.
type labeled struct {
	name       string
	help       string
	kind       string
	labelNames []string
	mu         sync.RWMutex
	values     map[string]float64
}

func (l *labeled) add(v float64, values []string) {
	lbl := labelString(l.labelNames, values)
	l.mu.Lock()
	l.values[lbl] += v
	l.mu.Unlock()
}

func (l *labeled) set(v float64, values []string) {
	lbl := labelString(l.labelNames, values)
	l.mu.Lock()
	l.values[lbl] = v
	l.mu.Unlock()
}

func (l *labeled) WritePrometheus(w io.Writer) error {
	if err := writeHeader(w, l.name, l.help, l.kind); err != nil {
		return err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.values))
	for k := range l.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s%s %g\n", l.name, k, l.values[k]); err != nil {
			return err
		}
	}
	return nil
}

func newLabeled(name, help, kind string, labels []string) *labeled {
	return &labeled{name: name, help: help, kind: kind, labelNames: labels, values: map[string]float64{}}
}

type CounterVec struct{ *labeled }

func NewCounterVec(name, help string, labels []string) *CounterVec {
	return &CounterVec{newLabeled(name, help, "counter", labels)}
}

func (c *CounterVec) Inc(values ...string) { c.add(1, values) }

type Counter struct{ *labeled }

func NewCounter(name, help string) *Counter {
	return &Counter{newLabeled(name, help, "counter", nil)}
}

func (c *Counter) Inc() { c.add(1, nil) }

func (c *Counter) Value() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[""]
}

type Gauge struct{ *labeled }

func NewGauge(name, help string) *Gauge {
	return &Gauge{newLabeled(name, help, "gauge", nil)}
}

func (g *Gauge) Inc() { g.add(1, nil) }
func (g *Gauge) Dec() { g.add(-1, nil) }

type GaugeVec struct{ *labeled }

func NewGaugeVec(name, help string, labels []string) *GaugeVec {
	return &GaugeVec{newLabeled(name, help, "gauge", labels)}
}

func (g *GaugeVec) Set(v float64, values ...string) { g.set(v, values) }

// Reset drops every label set, so values that disappeared stop being exported.
func (g *GaugeVec) Reset() {
	g.mu.Lock()
	g.values = map[string]float64{}
	g.mu.Unlock()
}

type HistogramVec struct {
	name       string
	help       string
	labelNames []string
	buckets    []float64
	mu         sync.RWMutex
	values     map[string]*histogram
}

type histogram struct {
	counts []uint64
	sum    float64
	total  uint64
}

func NewHistogramVec(name, help string, labels []string, buckets []float64) *HistogramVec {
	if len(buckets) == 0 {
		buckets = []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2}
	}
	return &HistogramVec{name: name, help: help, labelNames: labels, buckets: buckets, values: map[string]*histogram{}}
}

func (h *HistogramVec) Observe(v float64, values ...string) {
	lbl := labelString(h.labelNames, values)
	h.mu.Lock()
	defer h.mu.Unlock()
	hist, ok := h.values[lbl]
	if !ok {
		hist = &histogram{counts: make([]uint64, len(h.buckets))}
		h.values[lbl] = hist
	}
	hist.sum += v
	hist.total++
	for i, b := range h.buckets {
		if v <= b {
			hist.counts[i]++
		}
	}
}

func (h *HistogramVec) WritePrometheus(w io.Writer) error {
	if err := writeHeader(w, h.name, h.help, "histogram"); err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for k, v := range h.values {
		for i, b := range h.buckets {
			if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n", h.name, withLe(k, fmt.Sprintf("%g", b)), v.counts[i]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n%s_sum%s %g\n%s_count%s %d\n",
			h.name, withLe(k, "+Inf"), v.total, h.name, k, v.sum, h.name, k, v.total); err != nil {
			return err
		}
	}
	return nil
}

func labelString(names []string, values []string) string {
	if len(names) == 0 {
		return ""
	}
	parts := make([]string, 0, len(names))
	for i, name := range names {
		val := "unknown"
		if i < len(values) && values[i] != "" {
			val = values[i]
		}
		parts = append(parts, name+`="`+escapeLabel(val)+`"`)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func escapeLabel(v string) string { return labelEscaper.Replace(v) }

func withLe(labels string, le string) string {
	if labels == "" {
		return `{le="` + le + `"}`
	}
	return strings.TrimSuffix(labels, "}") + `,le="` + le + `"}`
}
