package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-forecast-pipeline/internal/weather"
)

const (
	defaultInterval     = 15 * time.Minute
	defaultCycleTimeout = 30 * time.Second
)

// Runner runs one update cycle for a location.
type Runner interface {
	RunCycle(ctx context.Context, loc weather.Location, coords weather.Coordinates) weather.CycleResult
}

// Geocoder resolves a free-text location into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (weather.Coordinates, error)
}

// Target is a location to keep updated. Coordinates, when set, skip geocoding.
type Target struct {
	Location    weather.Location
	Coordinates *weather.Coordinates
}

type job struct {
	target Target

	mu     sync.Mutex
	coords *weather.Coordinates
}

// Scheduler runs one periodic, non-overlapping job per location.
type Scheduler struct {
	scheduler    *gocron.Scheduler
	runner       Runner
	geocoder     Geocoder
	jobs         []*job
	interval     time.Duration
	cycleTimeout time.Duration
	logger       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Scheduler.
func New(targets []Target, interval, cycleTimeout time.Duration, runner Runner, geocoder Geocoder, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	if cycleTimeout <= 0 {
		cycleTimeout = defaultCycleTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	jobs := make([]*job, 0, len(targets))
	for _, t := range targets {
		jobs = append(jobs, &job{target: t, coords: t.Coordinates})
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler:    gocron.NewScheduler(time.UTC),
		runner:       runner,
		geocoder:     geocoder,
		jobs:         jobs,
		interval:     interval,
		cycleTimeout: cycleTimeout,
		logger:       logger.With("component", "scheduler"),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start schedules one job per location and starts the underlying scheduler.
// Jobs run immediately and then every interval; a run still in progress when
// the next tick fires causes that tick to be skipped.
func (s *Scheduler) Start() error {
	if len(s.jobs) == 0 {
		s.logger.Warn("no locations configured; nothing to schedule")
		return nil
	}

	for _, j := range s.jobs {
		j := j
		_, err := s.scheduler.Every(s.interval).SingletonMode().Do(func() {
			s.run(s.ctx, j)
		})
		if err != nil {
			return fmt.Errorf("schedule %s: %w", j.target.Location.Key(), err)
		}
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", "locations", len(s.jobs), "interval", s.interval)
	return nil
}

// Stop cancels in-flight cycles and stops the scheduler.
func (s *Scheduler) Stop() {
	s.cancel()
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) run(parent context.Context, j *job) {
	if parent.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(parent, s.cycleTimeout)
	defer cancel()

	loc := j.target.Location
	coords, err := s.resolve(ctx, j)
	if err != nil {
		s.logger.Warn("geocoding failed; skipping cycle", "location", loc.Key(), "error", err)
		return
	}

	s.runner.RunCycle(ctx, loc, coords)
}

// resolve returns the job's coordinates, geocoding them on first use.
func (s *Scheduler) resolve(ctx context.Context, j *job) (weather.Coordinates, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.coords != nil {
		return *j.coords, nil
	}
	if s.geocoder == nil {
		return weather.Coordinates{}, fmt.Errorf("no coordinates and no geocoder for %q", j.target.Location.Name)
	}

	c, err := s.geocoder.Geocode(ctx, j.target.Location.Name)
	if err != nil {
		return weather.Coordinates{}, err
	}
	j.coords = &c
	s.logger.Info("location geocoded", "location", j.target.Location.Key(), "lat", c.Latitude, "lon", c.Longitude)
	return c, nil
}
