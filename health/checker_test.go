package health

import (
	"context"
	"errors"
	"testing"
)

// TestStatus_String verifies status string representations.
func TestStatus_String(t *testing.T) {
	cases := []struct {
		status Status
		want   string
	}{
		{StatusHealthy, "healthy"},
		{StatusDegraded, "degraded"},
		{StatusUnhealthy, "unhealthy"},
		{Status(99), "unknown"},
	}

	for _, tc := range cases {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("Status(%d).String() = %q, want %q", tc.status, got, tc.want)
		}
	}
}

// TestResult_Factories verifies the result constructor helpers.
func TestResult_Factories(t *testing.T) {
	h := Healthy("all good")
	if h.Status != StatusHealthy || h.Message != "all good" {
		t.Errorf("unexpected healthy result: %+v", h)
	}
	if h.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	d := Degraded("slowing down")
	if d.Status != StatusDegraded || d.Message != "slowing down" {
		t.Errorf("unexpected degraded result: %+v", d)
	}

	cause := errors.New("connection refused")
	u := Unhealthy("provider down", cause)
	if u.Status != StatusUnhealthy || !errors.Is(u.Error, cause) {
		t.Errorf("unexpected unhealthy result: %+v", u)
	}
}

// TestResult_WithDetails verifies details are attached without losing fields.
func TestResult_WithDetails(t *testing.T) {
	r := Healthy("ok").WithDetails(map[string]any{"tokens": 5.0})

	if r.Status != StatusHealthy {
		t.Errorf("expected healthy status, got %v", r.Status)
	}
	if r.Details["tokens"] != 5.0 {
		t.Errorf("expected tokens detail, got %v", r.Details)
	}
}

// TestCheckerFunc verifies the function adapter.
func TestCheckerFunc(t *testing.T) {
	checker := NewCheckerFunc("anthropic", func(ctx context.Context) Result {
		return Healthy("ok")
	})

	if checker.Name() != "anthropic" {
		t.Errorf("expected name 'anthropic', got %q", checker.Name())
	}

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("expected healthy, got %v", result.Status)
	}
}
