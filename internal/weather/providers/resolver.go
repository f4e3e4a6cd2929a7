package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/i474232898/weather-forecast-pipeline/internal/weather"
)

// CurrentResolver picks the "now" point from the primary source and falls back
// to the secondary one on any failure (transport, status, empty series).
type CurrentResolver struct {
	primary   weather.SeriesSource
	secondary weather.SeriesSource
	logger    *slog.Logger
	now       func() time.Time
}

func NewCurrentResolver(primary, secondary weather.SeriesSource, logger *slog.Logger) *CurrentResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &CurrentResolver{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With("component", "current-resolver"),
		now:       time.Now,
	}
}

// ResolveCurrent returns the entry closest to now from the first source that
// answers with a non-empty series.
func (r *CurrentResolver) ResolveCurrent(ctx context.Context, coords weather.Coordinates) (*weather.CurrentReading, error) {
	var errs []error
	for _, src := range []weather.SeriesSource{r.primary, r.secondary} {
		if src == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		points, err := src.FetchSeries(ctx, coords)
		if err == nil && len(points) == 0 {
			err = ErrEmptySeries
		}
		if err != nil {
			r.logger.Warn("current source failed", "source", src.Name(), "error", err)
			errs = append(errs, err)
			continue
		}

		point, _ := weather.ClosestToNow(points, r.now().UTC())
		return &weather.CurrentReading{Point: point, Source: src.Name()}, nil
	}

	if len(errs) == 0 {
		return nil, errors.New("no current sources configured")
	}
	return nil, fmt.Errorf("all current sources failed: %w", errors.Join(errs...))
}
