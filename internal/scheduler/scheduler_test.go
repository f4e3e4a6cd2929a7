package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/weather-forecast-pipeline/internal/weather"
)

type recordingRunner struct {
	mu    sync.Mutex
	calls []weather.Coordinates
	ran   chan weather.Location
}

func (r *recordingRunner) RunCycle(ctx context.Context, loc weather.Location, coords weather.Coordinates) weather.CycleResult {
	r.mu.Lock()
	r.calls = append(r.calls, coords)
	r.mu.Unlock()
	if r.ran != nil {
		r.ran <- loc
	}
	return weather.CycleResult{}
}

type countingGeocoder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (g *countingGeocoder) Geocode(ctx context.Context, query string) (weather.Coordinates, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return weather.Coordinates{}, g.err
	}
	return weather.Coordinates{Latitude: 59.91, Longitude: 10.75}, nil
}

func TestRunGeocodesOnce(t *testing.T) {
	runner := &recordingRunner{}
	geo := &countingGeocoder{}
	s := New([]Target{{Location: weather.Location{Name: "Oslo"}}}, time.Hour, time.Second, runner, geo, nil)

	s.run(context.Background(), s.jobs[0])
	s.run(context.Background(), s.jobs[0])

	if geo.calls != 1 {
		t.Fatalf("expected one geocoding call, got %d", geo.calls)
	}
	if len(runner.calls) != 2 || runner.calls[1].Latitude != 59.91 {
		t.Fatalf("unexpected runner calls %+v", runner.calls)
	}
}

func TestRunSkipsCycleOnGeocodingFailure(t *testing.T) {
	runner := &recordingRunner{}
	geo := &countingGeocoder{err: errors.New("no match")}
	s := New([]Target{{Location: weather.Location{Name: "Atlantis"}}}, time.Hour, time.Second, runner, geo, nil)

	s.run(context.Background(), s.jobs[0])
	if len(runner.calls) != 0 {
		t.Fatalf("expected cycle to be skipped, got %d runs", len(runner.calls))
	}

	// The failure is not cached; the next cycle retries geocoding.
	geo.err = nil
	s.run(context.Background(), s.jobs[0])
	if geo.calls != 2 || len(runner.calls) != 1 {
		t.Fatalf("expected retry on next cycle, geocoder=%d runs=%d", geo.calls, len(runner.calls))
	}
}

func TestPinnedCoordinatesSkipGeocoding(t *testing.T) {
	runner := &recordingRunner{}
	alt := 12
	pinned := &weather.Coordinates{Latitude: 60.39, Longitude: 5.32, Altitude: &alt}
	s := New([]Target{{Location: weather.Location{Name: "Bergen"}, Coordinates: pinned}}, time.Hour, time.Second, runner, nil, nil)

	s.run(context.Background(), s.jobs[0])
	if len(runner.calls) != 1 || runner.calls[0].Latitude != 60.39 {
		t.Fatalf("unexpected runner calls %+v", runner.calls)
	}
}

func TestStartRunsEveryLocationAndStopCancels(t *testing.T) {
	runner := &recordingRunner{ran: make(chan weather.Location, 4)}
	targets := []Target{
		{Location: weather.Location{Name: "Oslo"}, Coordinates: &weather.Coordinates{}},
		{Location: weather.Location{Name: "Bergen"}, Coordinates: &weather.Coordinates{}},
	}
	s := New(targets, time.Hour, time.Second, runner, nil, nil)

	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[string]bool{}
	timeout := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case loc := <-runner.ran:
			seen[loc.Key()] = true
		case <-timeout:
			t.Fatalf("timed out waiting for initial runs, saw %v", seen)
		}
	}

	s.Stop()
	if s.ctx.Err() == nil {
		t.Fatal("expected Stop to cancel the root context")
	}

	// Runs after Stop are no-ops.
	s.run(s.ctx, s.jobs[0])
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if len(runner.calls) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runner.calls))
	}
}

func TestNewDefaults(t *testing.T) {
	s := New(nil, 0, 0, &recordingRunner{}, nil, nil)
	if s.interval != defaultInterval || s.cycleTimeout != defaultCycleTimeout {
		t.Fatalf("unexpected defaults %s/%s", s.interval, s.cycleTimeout)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("expected no error without locations, got %v", err)
	}
	s.Stop()
}
