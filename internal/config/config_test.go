package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/i474232898/weather-forecast-pipeline/internal/weather"
)

func TestParseForecastDays(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"0", 5, false},
		{"11", 5, false},
		{"abc", 5, false},
		{"", 5, false},
		{"-3", 5, false},
		{"1", 1, true},
		{"10", 10, true},
		{" 7 ", 7, true},
	}

	for _, tt := range tests {
		got, ok := parseForecastDays(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseForecastDays(%q) = (%d, %v), want (%d, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func writeINI(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.ini")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Weather.ForecastDays != 5 {
		t.Errorf("expected 5 forecast days, got %d", cfg.Weather.ForecastDays)
	}
	if cfg.Weather.DateFormat != weather.DefaultDateFormat {
		t.Errorf("expected default date format, got %q", cfg.Weather.DateFormat)
	}
	if cfg.Weather.TemperatureUnit != weather.Celsius || cfg.Weather.PrecipitationMode != weather.PrecipitationSum {
		t.Errorf("unexpected unit/mode: %s/%s", cfg.Weather.TemperatureUnit, cfg.Weather.PrecipitationMode)
	}
	if len(cfg.Locations) != 1 || cfg.Locations[0].Name != "Oslo" {
		t.Errorf("unexpected locations: %+v", cfg.Locations)
	}
	if cfg.SchedulerInterval != 15*time.Minute || cfg.StoreMaxHistory != 96 || cfg.Port != "8080" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.MetNo.UserAgent != DefaultUserAgent {
		t.Errorf("expected default user agent, got %q", cfg.MetNo.UserAgent)
	}
	if len(cfg.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", cfg.Warnings)
	}
}

func TestLoadINI(t *testing.T) {
	path := writeINI(t, `
[weather]
forecast_days = 10
date_format = 2006-01-02
temperature_unit = f
precipitation_mode = slots
icon_base_url = https://icons.example.com/set
locations = Bergen, Tromsø ,
latitude = 60.3913
longitude = 5.3221
altitude = 12

[scheduler]
interval = 5m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Weather.ForecastDays != 10 {
		t.Errorf("expected 10 forecast days, got %d", cfg.Weather.ForecastDays)
	}
	if cfg.Weather.DateFormat != "2006-01-02" {
		t.Errorf("unexpected date format %q", cfg.Weather.DateFormat)
	}
	if cfg.Weather.TemperatureUnit != weather.Fahrenheit || cfg.Weather.PrecipitationMode != weather.PrecipitationSlots {
		t.Errorf("unexpected unit/mode: %s/%s", cfg.Weather.TemperatureUnit, cfg.Weather.PrecipitationMode)
	}
	if cfg.Weather.IconBaseURL != "https://icons.example.com/set" {
		t.Errorf("unexpected icon base url %q", cfg.Weather.IconBaseURL)
	}
	if len(cfg.Locations) != 2 || cfg.Locations[1].Name != "Tromsø" {
		t.Errorf("unexpected locations: %+v", cfg.Locations)
	}
	pin := cfg.PinnedCoordinates
	if pin == nil || pin.Latitude != 60.3913 || pin.Longitude != 5.3221 || pin.Altitude == nil || *pin.Altitude != 12 {
		t.Errorf("unexpected pinned coordinates: %+v", pin)
	}
	if cfg.SchedulerInterval != 5*time.Minute {
		t.Errorf("expected 5m interval, got %s", cfg.SchedulerInterval)
	}
	if len(cfg.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", cfg.Warnings)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	path := writeINI(t, `
[weather]
forecast_days = 11
date_format = nothing here
temperature_unit = K
precipitation_mode = hourly
icon_base_url = not-a-url
latitude = 123
longitude = 5

[scheduler]
interval = soon
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Weather.ForecastDays != 5 {
		t.Errorf("expected 5 forecast days, got %d", cfg.Weather.ForecastDays)
	}
	if cfg.Weather.DateFormat != weather.DefaultDateFormat {
		t.Errorf("expected default date format, got %q", cfg.Weather.DateFormat)
	}
	if cfg.Weather.TemperatureUnit != weather.Celsius || cfg.Weather.PrecipitationMode != weather.PrecipitationSum {
		t.Errorf("unexpected unit/mode: %s/%s", cfg.Weather.TemperatureUnit, cfg.Weather.PrecipitationMode)
	}
	if cfg.Weather.IconBaseURL != "" {
		t.Errorf("expected icon base url to be cleared, got %q", cfg.Weather.IconBaseURL)
	}
	if cfg.PinnedCoordinates != nil {
		t.Errorf("expected invalid coordinates to be ignored, got %+v", cfg.PinnedCoordinates)
	}
	if cfg.SchedulerInterval != 15*time.Minute {
		t.Errorf("expected default interval, got %s", cfg.SchedulerInterval)
	}
	if len(cfg.Warnings) != 7 {
		t.Errorf("expected 7 warnings, got %d: %v", len(cfg.Warnings), cfg.Warnings)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeINI(t, "[weather]\nforecast_days = 3\n")
	t.Setenv("WEATHER_FORECAST_DAYS", "abc")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Weather.ForecastDays != 5 {
		t.Errorf("expected env value to be rejected and defaulted to 5, got %d", cfg.Weather.ForecastDays)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogConfig{Level: "warn", Format: "json"})

	logger.Info("dropped")
	logger.Warn("kept", "component", "test")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected a single JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "kept" || rec["component"] != "test" {
		t.Fatalf("unexpected record: %v", rec)
	}
}
