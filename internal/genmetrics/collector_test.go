package genmetrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/angaza/nexus-keycode-go/internal/genmetrics"
)

func TestRecordKeycode(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := genmetrics.NewCollector(reg)

	c.RecordKeycode("full", "ADD_CREDIT")
	c.RecordKeycode("full", "ADD_CREDIT")
	c.RecordKeycode("small", "SET_CREDIT")

	metric := &dto.Metric{}
	if err := c.KeycodesGenerated.WithLabelValues("full", "ADD_CREDIT").Write(metric); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Errorf("full/ADD_CREDIT count = %v, want 2", got)
	}

	metric = &dto.Metric{}
	if err := c.KeycodesGenerated.WithLabelValues("small", "SET_CREDIT").Write(metric); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 1 {
		t.Errorf("small/SET_CREDIT count = %v, want 1", got)
	}
}

func TestRecordError(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := genmetrics.NewCollector(reg)

	c.RecordError("full", "OutOfRangeBodyValue")

	metric := &dto.Metric{}
	if err := c.ConstructionErrors.WithLabelValues("full", "OutOfRangeBodyValue").Write(metric); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 1 {
		t.Errorf("count = %v, want 1", got)
	}
}

func TestRecordCollisionRetry(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := genmetrics.NewCollector(reg)

	c.RecordCollisionRetry()
	c.RecordCollisionRetry()

	metric := &dto.Metric{}
	if err := c.ExtendedSmallCollisionRetries.Write(metric); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Errorf("count = %v, want 2", got)
	}
}
