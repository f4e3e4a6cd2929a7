package weather

import (
	"context"
	"time"
)

// SeriesSource abstracts an endpoint returning a properties.timeseries document
// (e.g. the MET nowcast or locationforecast APIs).
type SeriesSource interface {
	Name() string
	FetchSeries(ctx context.Context, coords Coordinates) ([]TimeSeriesPoint, error)
}

// CurrentResolver picks the point describing "now", falling back across sources.
type CurrentResolver interface {
	ResolveCurrent(ctx context.Context, coords Coordinates) (*CurrentReading, error)
}

// IconResolver turns an icon id into a renderable URL. It never fails.
type IconResolver interface {
	ResolveIconURL(ctx context.Context, baseURL, iconID string) string
}

// Store is the contract the in-memory publication store must satisfy.
type Store interface {
	SaveCurrent(loc Location, current CurrentConditions)
	SaveForecast(loc Location, forecast Forecast)
	GetCurrent(loc Location) (CurrentConditions, error)
	GetForecast(loc Location) (Forecast, error)
	GetRange(loc Location, from, to time.Time) ([]CurrentConditions, error)
}
