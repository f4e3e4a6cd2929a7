// Package geocode resolves free-text location names into coordinates.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-forecast-pipeline/internal/weather"
)

// API Docs: https://nominatim.org/release-docs/develop/api/Search/
const DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"

// ErrNoMatch is returned when the query matched no place.
var ErrNoMatch = errors.New("no geocoding match")

// Geocoder returns the first match for a free-text query.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (weather.Coordinates, error)
}

// New returns a Google geocoder when apiKey is set and a Nominatim client otherwise.
func New(client *http.Client, userAgent, apiKey string) Geocoder {
	if apiKey != "" {
		return NewGoogleGeocoder(apiKey)
	}
	return NewNominatimClient(client, DefaultNominatimURL, userAgent)
}

// NominatimClient queries the OpenStreetMap Nominatim search API.
type NominatimClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewNominatimClient(client *http.Client, baseURL, userAgent string) *NominatimClient {
	if client == nil {
		client = &http.Client{}
	}
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	return &NominatimClient{
		httpClient: client,
		baseURL:    baseURL,
		userAgent:  userAgent,
	}
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (c *NominatimClient) Geocode(ctx context.Context, query string) (weather.Coordinates, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return weather.Coordinates{}, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return weather.Coordinates{}, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return weather.Coordinates{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(results) == 0 {
		return weather.Coordinates{}, fmt.Errorf("%w: %q", ErrNoMatch, query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	return weather.Coordinates{Latitude: lat, Longitude: lon}, nil
}

// GoogleGeocoder uses the Google Geocoding API through kelvins/geocoder.
type GoogleGeocoder struct {
	apiKey string
}

// the library keeps its key in a package variable
var googleMu sync.Mutex

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{apiKey: apiKey}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, query string) (weather.Coordinates, error) {
	type result struct {
		loc geocoder.Location
		err error
	}
	done := make(chan result, 1)

	go func() {
		googleMu.Lock()
		defer googleMu.Unlock()

		geocoder.ApiKey = g.apiKey
		loc, err := geocoder.Geocoding(geocoder.Address{City: query})
		done <- result{loc: loc, err: err}
	}()

	select {
	case <-ctx.Done():
		return weather.Coordinates{}, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return weather.Coordinates{}, fmt.Errorf("%w: %v", ErrNoMatch, r.err)
		}
		return weather.Coordinates{Latitude: r.loc.Latitude, Longitude: r.loc.Longitude}, nil
	}
}
