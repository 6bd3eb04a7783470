package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestHealthz(t *testing.T) {
	tests := []struct {
		name   string
		fn     HealthFunc
		status int
	}{
		{name: "healthy", fn: func(context.Context) error { return nil }, status: http.StatusOK},
		{name: "unhealthy", fn: func(context.Context) error { return errors.New("redis down") }, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Handler(tt.fn).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestWorkflowCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWorkflow(reg)

	m.OnPredicted()
	m.OnPredicted()
	m.OnRejected("same_team")
	m.OnFailed("request")
	m.OnLatency(150 * time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				got[f.GetName()] += metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				got[f.GetName()] += float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}

	want := map[string]float64{
		"predictor_web_predictions_total":           2,
		"predictor_web_validation_rejections_total": 1,
		"predictor_web_failures_total":              1,
		"predictor_web_upstream_seconds":            1,
	}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("%s = %v, want %v", name, got[name], v)
		}
	}
}
