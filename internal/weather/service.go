package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultForecastDays is used whenever the configured window is out of range.
const DefaultForecastDays = 5

// MaxForecastDays is the longest supported forecast window.
const MaxForecastDays = 10

var errNoForecastDays = errors.New("no forecast days in window")

// Options controls how the forecast table is built and rendered.
type Options struct {
	ForecastDays      int
	DateFormat        string
	TemperatureUnit   TemperatureUnit
	PrecipitationMode PrecipitationMode
	IconBaseURL       string
}

// Service runs update cycles and publishes their artifacts to a Store.
type Service struct {
	store    Store
	current  CurrentResolver
	forecast SeriesSource
	icons    IconResolver
	opts     Options
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new Service. Out-of-range options are replaced with defaults.
func NewService(store Store, current CurrentResolver, forecast SeriesSource, icons IconResolver, opts Options, logger *slog.Logger) *Service {
	if opts.ForecastDays < 1 || opts.ForecastDays > MaxForecastDays {
		opts.ForecastDays = DefaultForecastDays
	}
	if !ValidDateLayout(opts.DateFormat) {
		opts.DateFormat = DefaultDateFormat
	}
	if opts.TemperatureUnit == "" {
		opts.TemperatureUnit = Celsius
	}
	if opts.PrecipitationMode == "" {
		opts.PrecipitationMode = PrecipitationSum
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		store:    store,
		current:  current,
		forecast: forecast,
		icons:    icons,
		opts:     opts,
		logger:   logger.With("component", "weather-service"),
		now:      time.Now,
	}
}

// RunCycle fetches the current conditions and the forecast table for loc and
// publishes whichever half succeeded. It never returns an error: failures are
// logged and the previously published value for that half stays in place.
// Nothing is published when ctx is done by the time both halves finish.
func (s *Service) RunCycle(ctx context.Context, loc Location, coords Coordinates) CycleResult {
	result := CycleResult{CycleID: uuid.NewString()}
	logger := s.logger.With("cycle_id", result.CycleID, "location", loc.Key())
	now := s.now().UTC()

	var (
		current  *CurrentConditions
		forecast *Forecast
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.buildCurrent(gctx, loc, coords, now)
		if err != nil {
			logger.Warn("current conditions not updated", "error", err)
			return nil
		}
		c.CycleID = result.CycleID
		current = &c
		return nil
	})
	g.Go(func() error {
		f, err := s.buildForecast(gctx, loc, coords, now, logger)
		if err != nil {
			logger.Warn("forecast not updated", "error", err)
			return nil
		}
		f.CycleID = result.CycleID
		forecast = &f
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		logger.Warn("cycle cancelled, nothing published", "error", err)
		return result
	}

	if current != nil {
		s.store.SaveCurrent(loc, *current)
		result.Current = current
	}
	if forecast != nil {
		s.store.SaveForecast(loc, *forecast)
		result.Forecast = forecast
	}

	logger.Info("cycle finished",
		"current_published", result.Current != nil,
		"forecast_published", result.Forecast != nil,
	)
	return result
}

func (s *Service) buildCurrent(ctx context.Context, loc Location, coords Coordinates, now time.Time) (CurrentConditions, error) {
	if s.current == nil {
		return CurrentConditions{}, errors.New("no current resolver configured")
	}
	reading, err := s.current.ResolveCurrent(ctx, coords)
	if err != nil {
		return CurrentConditions{}, err
	}
	if reading == nil {
		return CurrentConditions{}, errors.New("no current reading")
	}

	cur := BuildCurrent(loc, *reading)
	if cur.ObservedAt.IsZero() {
		cur.ObservedAt = now
	}
	cur.IconURL = s.iconURL(ctx, cur.IconID)
	return cur, nil
}

func (s *Service) buildForecast(ctx context.Context, loc Location, coords Coordinates, now time.Time, logger *slog.Logger) (Forecast, error) {
	if s.forecast == nil {
		return Forecast{}, errors.New("no forecast source configured")
	}
	points, err := s.forecast.FetchSeries(ctx, coords)
	if err != nil {
		return Forecast{}, fmt.Errorf("fetch %s series: %w", s.forecast.Name(), err)
	}

	start := StartOfDay(now).AddDate(0, 0, 1)
	buckets, stats := Bucketize(points, start, s.opts.ForecastDays)
	if stats.Unparsable > 0 {
		logger.Debug("dropped points with unparsable timestamps", "count", stats.Unparsable)
	}

	days := make([]time.Time, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	entries := make([]ForecastEntry, 0, len(days))
	for _, day := range days {
		row := AggregateWithMode(day, buckets[day], s.opts.PrecipitationMode)
		entries = append(entries, NewForecastEntry(row, s.iconURL(ctx, row.IconID), s.opts))
	}
	if len(entries) == 0 {
		return Forecast{}, errNoForecastDays
	}

	return Forecast{
		Location:    loc,
		GeneratedAt: now,
		Days:        entries,
	}, nil
}

func (s *Service) iconURL(ctx context.Context, iconID string) string {
	if s.icons == nil {
		return ""
	}
	return s.icons.ResolveIconURL(ctx, s.opts.IconBaseURL, iconID)
}

// Options returns the effective options after defaulting.
func (s *Service) Options() Options {
	return s.opts
}

// GetCurrent delegates to the underlying store.
func (s *Service) GetCurrent(loc Location) (CurrentConditions, error) {
	return s.store.GetCurrent(loc)
}

// GetForecast delegates to the underlying store.
func (s *Service) GetForecast(loc Location) (Forecast, error) {
	return s.store.GetForecast(loc)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(loc Location, from, to time.Time) ([]CurrentConditions, error) {
	return s.store.GetRange(loc, from, to)
}
