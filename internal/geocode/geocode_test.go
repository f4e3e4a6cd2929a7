package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNominatimGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Oslo" {
			t.Errorf("expected q=Oslo, got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("expected limit=1, got %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "test-agent/1.0" {
			t.Errorf("expected user agent, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"59.9133301","lon":"10.7389701","display_name":"Oslo, Norway"}]`))
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.Client(), srv.URL, "test-agent/1.0")
	coords, err := c.Geocode(context.Background(), "Oslo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coords.Latitude != 59.9133301 || coords.Longitude != 10.7389701 {
		t.Fatalf("unexpected coordinates: %+v", coords)
	}
}

func TestNominatimNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.Client(), srv.URL, "")
	_, err := c.Geocode(context.Background(), "Atlantis")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestNominatimStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.Client(), srv.URL, "")
	if _, err := c.Geocode(context.Background(), "Oslo"); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestNewSelectsBackend(t *testing.T) {
	if _, ok := New(nil, "ua", "").(*NominatimClient); !ok {
		t.Fatal("expected Nominatim client without api key")
	}
	if _, ok := New(nil, "ua", "key").(*GoogleGeocoder); !ok {
		t.Fatal("expected Google geocoder with api key")
	}
}
