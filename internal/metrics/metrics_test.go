package metrics

import (
	"errors"
	"testing"
	"time"
)

// captureBackend records calls for assertion.
type captureBackend struct {
	counters   []string
	histograms []string
	labels     []Labels
}

func (c *captureBackend) IncCounter(name string, delta float64, labels Labels) {
	c.counters = append(c.counters, name)
	c.labels = append(c.labels, labels)
}

func (c *captureBackend) ObserveHistogram(name string, value float64, labels Labels) {
	c.histograms = append(c.histograms, name)
}

func (c *captureBackend) Flush() error { return nil }

func TestRecordStep(t *testing.T) {
	b := &captureBackend{}
	SetBackend(b)
	defer SetBackend(nopBackend{})

	RecordStep("edu", "fetch_enrollment", nil, 2*time.Second)
	RecordStep("edu", "load_spending", errors.New("boom"), time.Second)

	if len(b.counters) != 2 || b.counters[0] != "pipeline_step_total" {
		t.Fatalf("counters = %v", b.counters)
	}
	if len(b.histograms) != 2 || b.histograms[0] != "pipeline_step_duration_seconds" {
		t.Fatalf("histograms = %v", b.histograms)
	}
	if b.labels[0]["status"] != "success" || b.labels[1]["status"] != "failure" {
		t.Errorf("statuses = %v / %v", b.labels[0], b.labels[1])
	}
}

func TestRecordRowsSkipsNonPositive(t *testing.T) {
	b := &captureBackend{}
	SetBackend(b)
	defer SetBackend(nopBackend{})

	RecordRows("edu", "loaded", 0)
	RecordRows("edu", "loaded", -3)
	RecordRows("edu", "loaded", 7)

	if len(b.counters) != 1 {
		t.Errorf("counters = %v, want exactly one", b.counters)
	}
}

func TestSetBackendNilKeepsCurrent(t *testing.T) {
	b := &captureBackend{}
	SetBackend(b)
	defer SetBackend(nopBackend{})

	SetBackend(nil)
	RecordDataset("edu", 1)
	if len(b.counters) != 1 {
		t.Errorf("nil SetBackend replaced the backend; counters = %v", b.counters)
	}
}
