package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Generation steps tracked by the counters.
const (
	StepResume = "resume"
	StepCover  = "cover"
)

var (
	started   = newCounterVec()
	completed = newCounterVec()
	failed    = newCounterVec()

	submissionsCreated counter
	regenerations      counter

	generationDuration = newHistogram([]float64{500, 1000, 2500, 5000, 10000, 30000, 60000, 120000})
)

// IncGenerationStarted increments the started counter for a step.
func IncGenerationStarted(step string) {
	started.inc(step)
}

// IncGenerationCompleted increments the completed counter for a step.
func IncGenerationCompleted(step string) {
	completed.inc(step)
}

// IncGenerationFailed increments the failed counter for a step and failure reason.
func IncGenerationFailed(step, reason string) {
	failed.inc(step + "," + reason)
}

// IncSubmissionCreated counts persisted submissions.
func IncSubmissionCreated() {
	submissionsCreated.inc()
}

// IncRegeneration counts in-place regenerations.
func IncRegeneration() {
	regenerations.inc()
}

// ObserveGenerationDuration records a model call duration.
func ObserveGenerationDuration(d time.Duration) {
	ms := float64(d.Microseconds()) / 1000.0
	if ms < 0 {
		ms = 0
	}
	generationDuration.Observe(ms)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounterVec(&buf, "generation_started_total", "Model generations started", []string{"step"}, started.snapshot())
	writeCounterVec(&buf, "generation_completed_total", "Model generations completed", []string{"step"}, completed.snapshot())
	writeCounterVec(&buf, "generation_failed_total", "Model generations failed", []string{"step", "reason"}, failed.snapshot())
	writeCounter(&buf, "submissions_created_total", "Submissions persisted", submissionsCreated.load())
	writeCounter(&buf, "submissions_regenerated_total", "Submissions regenerated in place", regenerations.load())
	writeHistogram(&buf, "generation_duration_ms", "Model call duration in milliseconds", generationDuration.Snapshot())
	return buf.String()
}

type counter struct {
	mu sync.Mutex
	n  uint64
}

func (c *counter) inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *counter) load() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// counterVec keys values by a comma-joined label tuple.
type counterVec struct {
	mu     sync.Mutex
	values map[string]uint64
}

func newCounterVec() *counterVec {
	return &counterVec{values: make(map[string]uint64)}
}

func (v *counterVec) inc(key string) {
	v.mu.Lock()
	v.values[key]++
	v.mu.Unlock()
}

func (v *counterVec) snapshot() map[string]uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make(map[string]uint64, len(v.values))
	for k, n := range v.values {
		out[k] = n
	}
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe records value in the first bucket that bounds it; Render accumulates.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeCounterVec(buf *bytes.Buffer, name, help string, labels []string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(buf, "%s{%s} %d\n", name, formatLabels(labels, key), values[key])
	}
}

func formatLabels(labels []string, key string) string {
	parts := splitKey(key, len(labels))
	var b bytes.Buffer
	for i, label := range labels {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%q", label, parts[i])
	}
	return b.String()
}

func splitKey(key string, n int) []string {
	out := make([]string, 0, n)
	start := 0
	for i := 0; i < len(key) && len(out) < n-1; i++ {
		if key[i] == ',' {
			out = append(out, key[start:i])
			start = i + 1
		}
	}
	out = append(out, key[start:])
	for len(out) < n {
		out = append(out, "")
	}
	return out
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
