package routing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeProvider struct {
	estimate *RouteEstimate
	err      error
	calls    int
}

func (f *fakeProvider) EstimateRoute(ctx context.Context, waypoints []Waypoint) (*RouteEstimate, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.estimate, nil
}

func (f *fakeProvider) Name() string { return "fake" }

func wp(locations ...string) []Waypoint {
	out := make([]Waypoint, len(locations))
	for i, l := range locations {
		out[i] = Waypoint{Location: l}
	}
	return out
}

func TestEstimateCachesResults(t *testing.T) {
	provider := &fakeProvider{
		estimate: &RouteEstimate{DistanceKm: 22, DurationMinutes: 55, Provider: "fake"},
	}
	svc := NewService(ServiceConfig{Provider: provider, Logger: zerolog.Nop()})

	route := wp("Ikeja", "Victoria Island")

	first, err := svc.Estimate(context.Background(), route)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	second, err := svc.Estimate(context.Background(), route)
	if err != nil {
		t.Fatalf("Estimate() second call error = %v", err)
	}

	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
	if first.DistanceKm != second.DistanceKm {
		t.Errorf("cached estimate differs: %v vs %v", first, second)
	}
}

func TestEstimateServesStaleOnFailure(t *testing.T) {
	provider := &fakeProvider{
		estimate: &RouteEstimate{DistanceKm: 22, DurationMinutes: 55, Provider: "fake"},
	}
	svc := NewService(ServiceConfig{
		Provider: provider,
		Logger:   zerolog.Nop(),
		CacheTTL: time.Nanosecond,
		StaleTTL: time.Hour,
	})

	route := wp("Ikeja", "Victoria Island")

	if _, err := svc.Estimate(context.Background(), route); err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}

	time.Sleep(time.Millisecond)
	provider.err = errors.New("quota exceeded")

	got, err := svc.Estimate(context.Background(), route)
	if err != nil {
		t.Fatalf("Estimate() with failing provider error = %v, want stale hit", err)
	}
	if got.DistanceKm != 22 {
		t.Errorf("DistanceKm = %v, want stale 22", got.DistanceKm)
	}
}

func TestEstimatePropagatesErrorWithoutCache(t *testing.T) {
	provider := &fakeProvider{err: ErrProviderUnavailable}
	svc := NewService(ServiceConfig{Provider: provider, Logger: zerolog.Nop()})

	_, err := svc.Estimate(context.Background(), wp("Ikeja", "Lekki"))
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("error = %v, want ErrProviderUnavailable", err)
	}
}

type fakeCacheMetrics struct {
	hits   int
	misses int
}

func (m *fakeCacheMetrics) RecordCacheHit(_, _ string)  { m.hits++ }
func (m *fakeCacheMetrics) RecordCacheMiss(_, _ string) { m.misses++ }

func TestEstimateRecordsCacheMetrics(t *testing.T) {
	provider := &fakeProvider{
		estimate: &RouteEstimate{DistanceKm: 22, DurationMinutes: 55, Provider: "fake"},
	}
	metrics := &fakeCacheMetrics{}
	svc := NewService(ServiceConfig{Provider: provider, Logger: zerolog.Nop(), Metrics: metrics})

	route := wp("Ikeja", "Victoria Island")

	if _, err := svc.Estimate(context.Background(), route); err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if _, err := svc.Estimate(context.Background(), route); err != nil {
		t.Fatalf("Estimate() second call error = %v", err)
	}

	if metrics.misses != 1 {
		t.Errorf("misses = %d, want 1", metrics.misses)
	}
	if metrics.hits != 1 {
		t.Errorf("hits = %d, want 1", metrics.hits)
	}
}

func TestCacheKeyIsDirectional(t *testing.T) {
	ab := CacheKey(wp("Ikeja", "Lekki"))
	ba := CacheKey(wp("Lekki", "Ikeja"))
	if ab == ba {
		t.Errorf("CacheKey should distinguish direction: %q", ab)
	}
}

func TestWaypointString(t *testing.T) {
	w := Waypoint{Location: "Ikeja"}
	if got := w.String(); got != "Ikeja, Lagos, Nigeria" {
		t.Errorf("String() = %q", got)
	}

	w = Waypoint{Location: "Ikeja", Address: "23 Allen Avenue"}
	if got := w.String(); got != "23 Allen Avenue, Ikeja, Lagos, Nigeria" {
		t.Errorf("String() = %q", got)
	}
}
