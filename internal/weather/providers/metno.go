package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-forecast-pipeline/internal/weather"
)

const (
	DefaultNowcastURL  = "https://api.met.no/weatherapi/nowcast/2.0/complete"
	DefaultForecastURL = "https://api.met.no/weatherapi/locationforecast/2.0/complete"

	SourceNowcast  = "nowcast"
	SourceForecast = "forecast"

	coordinateDecimals = 4
)

// ErrEmptySeries is returned when a successful response carries no time-series entries.
var ErrEmptySeries = errors.New("empty time series")

// MetClient fetches a properties.timeseries document from one MET Norway endpoint.
type MetClient struct {
	name         string
	baseURL      string
	sendAltitude bool
	httpCfg      HTTPClientConfig
	circuit      *gobreaker.CircuitBreaker
}

// NewNowcastClient creates the primary, short-range client.
func NewNowcastClient(client *http.Client, baseURL, userAgent string, limiter *rate.Limiter) *MetClient {
	return newMetClient(SourceNowcast, client, orDefault(baseURL, DefaultNowcastURL), userAgent, limiter, false)
}

// NewLocationforecastClient creates the secondary, long-range client. It forwards
// altitude when the coordinates carry one.
func NewLocationforecastClient(client *http.Client, baseURL, userAgent string, limiter *rate.Limiter) *MetClient {
	return newMetClient(SourceForecast, client, orDefault(baseURL, DefaultForecastURL), userAgent, limiter, true)
}

func newMetClient(name string, client *http.Client, baseURL, userAgent string, limiter *rate.Limiter, altitude bool) *MetClient {
	return &MetClient{
		name:         name,
		baseURL:      baseURL,
		sendAltitude: altitude,
		httpCfg: HTTPClientConfig{
			Client:    client,
			UserAgent: userAgent,
			Limiter:   limiter,
		},
		circuit: newCircuitBreaker("metno-" + name),
	}
}

func (c *MetClient) Name() string {
	return c.name
}

// FetchSeries returns the endpoint's time series for coords.
func (c *MetClient) FetchSeries(ctx context.Context, coords weather.Coordinates) ([]weather.TimeSeriesPoint, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", formatCoordinate(coords.Latitude))
		values.Set("lon", formatCoordinate(coords.Longitude))
		if c.sendAltitude && coords.Altitude != nil {
			values.Set("altitude", strconv.Itoa(*coords.Altitude))
		}

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Properties struct {
			Timeseries []weather.TimeSeriesPoint `json:"timeseries"`
		} `json:"properties"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", c.name, err)
	}

	if len(payload.Properties.Timeseries) == 0 {
		return nil, fmt.Errorf("%s: %w", c.name, ErrEmptySeries)
	}
	return payload.Properties.Timeseries, nil
}

// formatCoordinate truncates to 4 decimals on the shortest decimal form of v,
// so values that already have 4 decimals are sent unchanged.
func formatCoordinate(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > coordinateDecimals {
		frac = frac[:coordinateDecimals]
	}
	frac += strings.Repeat("0", coordinateDecimals-len(frac))
	if whole == "-0" && strings.Trim(frac, "0") == "" {
		whole = "0"
	}
	return whole + "." + frac
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
