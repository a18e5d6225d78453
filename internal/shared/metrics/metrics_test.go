package metrics

import (
	"strings"
	"testing"
	"time"
)

func TestRenderIncludesLabelledCounters(t *testing.T) {
	IncGenerationStarted(StepResume)
	IncGenerationFailed(StepCover, "parse")

	out := Render()
	for _, want := range []string{
		`generation_started_total{step="resume"}`,
		`generation_failed_total{step="cover",reason="parse"}`,
		"# TYPE submissions_created_total counter",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("count = %d, want 3", snap.count)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("unexpected per-bucket counts %v", snap.counts)
	}

	ObserveGenerationDuration(2 * time.Second)
	out := Render()
	if !strings.Contains(out, `generation_duration_ms_bucket{le="2500"}`) {
		t.Fatalf("missing histogram bucket in output:\n%s", out)
	}
}
