package weather

import (
	"strings"
	"time"
)

// Location represents a logical place for which we publish weather.
type Location struct {
	Name string `json:"name"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return strings.ToLower(strings.TrimSpace(l.Name))
}

// Coordinates is a geocoded position. Altitude (meters) is optional and only
// forwarded to endpoints that correct temperatures for it.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  *int    `json:"altitude,omitempty"`
}

// TimeSeriesPoint is one entry of the provider's properties.timeseries array.
// Every nested object is optional; Time stays a raw string so that a single
// malformed timestamp does not fail decoding of the whole document.
type TimeSeriesPoint struct {
	Time string    `json:"time"`
	Data PointData `json:"data"`
}

type PointData struct {
	Instant    *Instant      `json:"instant,omitempty"`
	Next1Hours *PeriodValues `json:"next_1_hours,omitempty"`
	Next6Hours *PeriodValues `json:"next_6_hours,omitempty"`
}

type Instant struct {
	Details *InstantDetails `json:"details,omitempty"`
}

type InstantDetails struct {
	AirTemperature        *float64 `json:"air_temperature,omitempty"`
	AirPressureAtSeaLevel *float64 `json:"air_pressure_at_sea_level,omitempty"`
	RelativeHumidity      *float64 `json:"relative_humidity,omitempty"`
	WindSpeed             *float64 `json:"wind_speed,omitempty"`
	WindFromDirection     *float64 `json:"wind_from_direction,omitempty"`
	WindSpeedOfGust       *float64 `json:"wind_speed_of_gust,omitempty"`
	CloudAreaFraction     *float64 `json:"cloud_area_fraction,omitempty"`
}

// PeriodValues covers the forward-looking next_1_hours / next_6_hours blocks.
type PeriodValues struct {
	Summary *PeriodSummary `json:"summary,omitempty"`
	Details *PeriodDetails `json:"details,omitempty"`
}

type PeriodSummary struct {
	SymbolCode string `json:"symbol_code"`
}

type PeriodDetails struct {
	PrecipitationAmount   *float64 `json:"precipitation_amount,omitempty"`
	PrecipitationCategory *string  `json:"precipitation_category,omitempty"`
}

// ParsedTime parses the point's ISO-8601 timestamp and returns it in UTC.
func (p TimeSeriesPoint) ParsedTime() (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(p.Time))
	if err != nil {
		return time.Time{}, err
	}
	return ts.UTC(), nil
}

// Details returns the instant details or nil when the point has none.
func (p TimeSeriesPoint) Details() *InstantDetails {
	if p.Data.Instant == nil {
		return nil
	}
	return p.Data.Instant.Details
}

// Symbol6h returns next_6_hours.summary.symbol_code, empty when absent.
func (p TimeSeriesPoint) Symbol6h() string {
	return p.Data.Next6Hours.symbol()
}

// Precip6h returns next_6_hours.details.precipitation_amount.
func (p TimeSeriesPoint) Precip6h() (float64, bool) {
	return p.Data.Next6Hours.precipitation()
}

// Symbol1h returns next_1_hours.summary.symbol_code, empty when absent.
func (p TimeSeriesPoint) Symbol1h() string {
	return p.Data.Next1Hours.symbol()
}

// Precip1h returns next_1_hours.details.precipitation_amount.
func (p TimeSeriesPoint) Precip1h() (float64, bool) {
	return p.Data.Next1Hours.precipitation()
}

// PrecipCategory1h returns next_1_hours.details.precipitation_category, empty when absent.
func (p TimeSeriesPoint) PrecipCategory1h() string {
	v := p.Data.Next1Hours
	if v == nil || v.Details == nil || v.Details.PrecipitationCategory == nil {
		return ""
	}
	return *v.Details.PrecipitationCategory
}

func (v *PeriodValues) symbol() string {
	if v == nil || v.Summary == nil {
		return ""
	}
	return strings.TrimSpace(v.Summary.SymbolCode)
}

func (v *PeriodValues) precipitation() (float64, bool) {
	if v == nil || v.Details == nil || v.Details.PrecipitationAmount == nil {
		return 0, false
	}
	return *v.Details.PrecipitationAmount, true
}

// CurrentReading is the point picked as "now" together with the endpoint that served it.
type CurrentReading struct {
	Point  TimeSeriesPoint
	Source string
}

// DailyForecastRow is the aggregate of one UTC calendar day.
// Symbol is empty when no point in the bucket carried a 6-hour symbol.
// WindCompass is empty when no point carried a wind direction.
type DailyForecastRow struct {
	Date               time.Time `json:"date"`
	Symbol             string    `json:"symbol,omitempty"`
	TempMax            float64   `json:"tempMax"`
	TempMin            float64   `json:"tempMin"`
	HasInstant         bool      `json:"hasInstant"`
	PrecipitationTotal float64   `json:"precipitationTotal"`
	AvgWindSpeed       float64   `json:"avgWindSpeed"`
	AvgWindDirection   float64   `json:"avgWindDirection"`
	WindCompass        string    `json:"windCompass,omitempty"`
	HasWindDirection   bool      `json:"hasWindDirection"`
	IconID             string    `json:"iconId"`
	Description        string    `json:"description"`
}

// ForecastEntry is a presentation-ready forecast table row.
type ForecastEntry struct {
	DateLabel     string           `json:"dateLabel"`
	Description   string           `json:"description"`
	IconID        string           `json:"iconId"`
	IconURL       string           `json:"iconUrl"`
	Temperature   string           `json:"temperature"`
	Precipitation string           `json:"precipitation"`
	Wind          string           `json:"wind"`
	Row           DailyForecastRow `json:"row"`
}

// Forecast is the published multi-day table. Days are ordered by date ascending.
type Forecast struct {
	Location    Location        `json:"location"`
	CycleID     string          `json:"cycleId"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Days        []ForecastEntry `json:"days"`
}

// CurrentConditions is the published "current conditions" snapshot.
type CurrentConditions struct {
	Location      Location  `json:"location"`
	CycleID       string    `json:"cycleId"`
	Source        string    `json:"source"`
	ObservedAt    time.Time `json:"observedAt"` // always UTC
	Condition     string    `json:"condition"`
	Description   string    `json:"description"`
	IconID        string    `json:"iconId"`
	IconURL       string    `json:"iconUrl"`
	Temperature   *float64  `json:"temperatureC,omitempty"`
	FeelsLike     *float64  `json:"feelsLikeC,omitempty"`
	Pressure      *float64  `json:"pressureHpa,omitempty"`
	Humidity      *float64  `json:"humidityPercent,omitempty"`
	WindSpeed     *float64  `json:"windSpeed,omitempty"`
	WindDirection *float64  `json:"windDirection,omitempty"`
	WindCompass   string    `json:"windCompass,omitempty"`
	WindGust      *float64  `json:"windGust,omitempty"`
	CloudFraction *float64  `json:"cloudFraction,omitempty"`
	RainRate      *float64  `json:"rainRateMmH,omitempty"`
	SnowRate      *float64  `json:"snowRateMmH,omitempty"`
}

// CycleResult is what one update cycle managed to publish. Either half may be nil.
type CycleResult struct {
	CycleID  string
	Current  *CurrentConditions
	Forecast *Forecast
}
