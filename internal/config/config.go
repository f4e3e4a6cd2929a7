package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/i474232898/weather-forecast-pipeline/internal/weather"
)

const (
	DefaultUserAgent         = "weather-forecast-pipeline/1.0 github.com/i474232898/weather-forecast-pipeline"
	defaultLocations         = "Oslo"
	defaultSchedulerInterval = 15 * time.Minute
	defaultCycleTimeout      = 30 * time.Second
	defaultHTTPTimeout       = 10 * time.Second
	defaultPort              = "8080"
	defaultStoreMaxHistory   = 96 // roughly 24h at 15-minute intervals
	defaultStoreMaxAge       = 24 * time.Hour
	defaultRequestsPerSecond = 10.0
	defaultBurst             = 5
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("timelayout", func(fl validator.FieldLevel) bool {
		return weather.ValidDateLayout(fl.Field().String())
	})
	return v
}

type MetNoConfig struct {
	NowcastURL        string
	ForecastURL       string
	UserAgent         string
	RequestsPerSecond float64
	Burst             int
}

type LogConfig struct {
	Level  string
	Format string
}

type AppConfig struct {
	Weather weather.Options

	// Locations to track. PinnedCoordinates, when set, belong to the first one.
	Locations         []weather.Location
	PinnedCoordinates *weather.Coordinates

	MetNo MetNoConfig
	Log   LogConfig

	// SchedulerInterval controls how often we refresh each location.
	SchedulerInterval time.Duration
	CycleTimeout      time.Duration
	HTTPTimeout       time.Duration

	// In-memory store retention.
	StoreMaxHistory int           // max number of current snapshots per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of current snapshots (0 = unlimited)

	GeocoderAPIKey string
	Port           string

	// Warnings lists every value that was invalid and replaced by its default.
	Warnings []string
}

// Load reads configuration from an optional .env file, an optional INI file
// and the environment (SECTION_KEY, e.g. WEATHER_FORECAST_DAYS). Invalid values
// never fail loading: they are replaced with defaults and listed in Warnings.
// An empty path searches config.ini in . and ./config.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		cfg.warnf(".env not loaded: %v", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.SetConfigType("ini")
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !(path != "" && errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg.fromViper(v)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("weather.forecast_days", weather.DefaultForecastDays)
	v.SetDefault("weather.date_format", weather.DefaultDateFormat)
	v.SetDefault("weather.temperature_unit", string(weather.Celsius))
	v.SetDefault("weather.precipitation_mode", string(weather.PrecipitationSum))
	v.SetDefault("weather.icon_base_url", "")
	v.SetDefault("weather.locations", defaultLocations)
	v.SetDefault("weather.latitude", "")
	v.SetDefault("weather.longitude", "")
	v.SetDefault("weather.altitude", "")

	v.SetDefault("metno.nowcast_url", "")
	v.SetDefault("metno.forecast_url", "")
	v.SetDefault("metno.user_agent", DefaultUserAgent)
	v.SetDefault("metno.requests_per_second", defaultRequestsPerSecond)
	v.SetDefault("metno.burst", defaultBurst)

	v.SetDefault("scheduler.interval", defaultSchedulerInterval.String())
	v.SetDefault("scheduler.cycle_timeout", defaultCycleTimeout.String())
	v.SetDefault("http.timeout", defaultHTTPTimeout.String())
	v.SetDefault("server.port", defaultPort)
	v.SetDefault("store.max_history", defaultStoreMaxHistory)
	v.SetDefault("store.max_age", defaultStoreMaxAge.String())
	v.SetDefault("geocoder.api_key", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func (c *AppConfig) fromViper(v *viper.Viper) {
	days, ok := parseForecastDays(v.GetString("weather.forecast_days"))
	if !ok {
		c.warnf("weather.forecast_days %q out of range [1,%d]; using %d", v.GetString("weather.forecast_days"), weather.MaxForecastDays, days)
	}
	c.Weather.ForecastDays = days

	c.Weather.DateFormat = v.GetString("weather.date_format")
	if err := validate.Var(c.Weather.DateFormat, "timelayout"); err != nil {
		c.warnf("weather.date_format %q is not a time layout; using %q", c.Weather.DateFormat, weather.DefaultDateFormat)
		c.Weather.DateFormat = weather.DefaultDateFormat
	}

	unit, err := weather.ParseTemperatureUnit(v.GetString("weather.temperature_unit"))
	if err != nil {
		c.warnf("weather.temperature_unit: %v; using %s", err, unit)
	}
	c.Weather.TemperatureUnit = unit

	mode, err := weather.ParsePrecipitationMode(v.GetString("weather.precipitation_mode"))
	if err != nil {
		c.warnf("weather.precipitation_mode: %v; using %s", err, mode)
	}
	c.Weather.PrecipitationMode = mode

	c.Weather.IconBaseURL = strings.TrimSpace(v.GetString("weather.icon_base_url"))
	if err := validate.Var(c.Weather.IconBaseURL, "omitempty,url,startswith=http"); err != nil {
		c.warnf("weather.icon_base_url %q is not an absolute http(s) URL; using vendor icons", c.Weather.IconBaseURL)
		c.Weather.IconBaseURL = ""
	}

	c.Locations = parseLocations(v.GetString("weather.locations"))
	if len(c.Locations) == 0 {
		c.warnf("weather.locations is empty; using %q", defaultLocations)
		c.Locations = parseLocations(defaultLocations)
	}
	c.PinnedCoordinates = c.parseCoordinates(v)

	c.MetNo = MetNoConfig{
		NowcastURL:        strings.TrimSpace(v.GetString("metno.nowcast_url")),
		ForecastURL:       strings.TrimSpace(v.GetString("metno.forecast_url")),
		UserAgent:         strings.TrimSpace(v.GetString("metno.user_agent")),
		RequestsPerSecond: c.floatOrDefault(v, "metno.requests_per_second", defaultRequestsPerSecond, "gt=0"),
		Burst:             c.intOrDefault(v, "metno.burst", defaultBurst, "min=1"),
	}
	if c.MetNo.UserAgent == "" {
		c.MetNo.UserAgent = DefaultUserAgent
	}
	for _, key := range []string{"metno.nowcast_url", "metno.forecast_url"} {
		if raw := v.GetString(key); validate.Var(raw, "omitempty,url") != nil {
			c.warnf("%s %q is not a URL; using the default endpoint", key, raw)
			if key == "metno.nowcast_url" {
				c.MetNo.NowcastURL = ""
			} else {
				c.MetNo.ForecastURL = ""
			}
		}
	}

	c.SchedulerInterval = c.durationOrDefault(v, "scheduler.interval", defaultSchedulerInterval)
	c.CycleTimeout = c.durationOrDefault(v, "scheduler.cycle_timeout", defaultCycleTimeout)
	c.HTTPTimeout = c.durationOrDefault(v, "http.timeout", defaultHTTPTimeout)
	c.StoreMaxAge = c.durationOrDefault(v, "store.max_age", defaultStoreMaxAge)
	c.StoreMaxHistory = c.intOrDefault(v, "store.max_history", defaultStoreMaxHistory, "min=0")

	c.Port = strings.TrimSpace(v.GetString("server.port"))
	if n, err := strconv.Atoi(c.Port); err != nil || validate.Var(n, "min=1,max=65535") != nil {
		c.warnf("server.port %q is invalid; using %s", c.Port, defaultPort)
		c.Port = defaultPort
	}

	c.GeocoderAPIKey = strings.TrimSpace(v.GetString("geocoder.api_key"))
	c.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
}

// parseForecastDays accepts integers in [1,10]. Anything else yields the default
// and false.
func parseForecastDays(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return weather.DefaultForecastDays, false
	}
	if err := validate.Var(n, fmt.Sprintf("min=1,max=%d", weather.MaxForecastDays)); err != nil {
		return weather.DefaultForecastDays, false
	}
	return n, true
}

func parseLocations(raw string) []weather.Location {
	var locs []weather.Location
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		locs = append(locs, weather.Location{Name: name})
	}
	return locs
}

func (c *AppConfig) parseCoordinates(v *viper.Viper) *weather.Coordinates {
	latRaw := strings.TrimSpace(v.GetString("weather.latitude"))
	lonRaw := strings.TrimSpace(v.GetString("weather.longitude"))
	if latRaw == "" && lonRaw == "" {
		return nil
	}
	if validate.Var(latRaw, "required,latitude") != nil || validate.Var(lonRaw, "required,longitude") != nil {
		c.warnf("weather.latitude/longitude %q,%q are invalid; geocoding instead", latRaw, lonRaw)
		return nil
	}

	lat, _ := strconv.ParseFloat(latRaw, 64)
	lon, _ := strconv.ParseFloat(lonRaw, 64)
	coords := &weather.Coordinates{Latitude: lat, Longitude: lon}

	if altRaw := strings.TrimSpace(v.GetString("weather.altitude")); altRaw != "" {
		alt, err := strconv.Atoi(altRaw)
		if err != nil {
			c.warnf("weather.altitude %q is not an integer; ignoring it", altRaw)
		} else {
			coords.Altitude = &alt
		}
	}
	return coords
}

func (c *AppConfig) durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		c.warnf("%s %q is not a positive duration; using %s", key, raw, def)
		return def
	}
	return d
}

func (c *AppConfig) intOrDefault(v *viper.Viper, key string, def int, tag string) int {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil || validate.Var(n, tag) != nil {
		c.warnf("%s %q is invalid; using %d", key, raw, def)
		return def
	}
	return n
}

func (c *AppConfig) floatOrDefault(v *viper.Viper, key string, def float64, tag string) float64 {
	raw := strings.TrimSpace(v.GetString(key))
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || validate.Var(f, tag) != nil {
		c.warnf("%s %q is invalid; using %g", key, raw, def)
		return def
	}
	return f
}

func (c *AppConfig) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}
