package weather

import (
	"fmt"
	"strings"
	"time"
)

// TemperatureUnit is the unit forecast rows are rendered in. Values are always
// stored in Celsius.
type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "C"
	Fahrenheit TemperatureUnit = "F"
)

// DefaultDateFormat is the Go layout used for forecast row labels.
const DefaultDateFormat = "Mon 02 Jan"

// ParseTemperatureUnit accepts "C" or "F" in any case.
func ParseTemperatureUnit(s string) (TemperatureUnit, error) {
	switch TemperatureUnit(strings.ToUpper(strings.TrimSpace(s))) {
	case Celsius:
		return Celsius, nil
	case Fahrenheit:
		return Fahrenheit, nil
	default:
		return Celsius, fmt.Errorf("unknown temperature unit %q", s)
	}
}

// Convert converts a Celsius value into u.
func (u TemperatureUnit) Convert(celsius float64) float64 {
	if u == Fahrenheit {
		return celsius*9/5 + 32
	}
	return celsius
}

// ValidDateLayout reports whether layout contains at least one Go time layout element.
// Two instants that differ in every calendar field must render differently.
func ValidDateLayout(layout string) bool {
	if strings.TrimSpace(layout) == "" {
		return false
	}
	a := time.Date(2001, time.February, 3, 4, 5, 6, 0, time.UTC)
	b := time.Date(2012, time.November, 14, 21, 18, 27, 0, time.UTC)
	return a.Format(layout) != b.Format(layout)
}

// FormatTemperatureRange renders "max/min °U". Days without instant data render as "-".
func FormatTemperatureRange(row DailyForecastRow, unit TemperatureUnit) string {
	if !row.HasInstant {
		return "-"
	}
	return fmt.Sprintf("%.1f/%.1f °%s", unit.Convert(row.TempMax), unit.Convert(row.TempMin), unitOrDefault(unit))
}

func FormatPrecipitation(mm float64) string {
	return fmt.Sprintf("%.1f mm", mm)
}

func FormatWind(speed float64, compass string) string {
	return fmt.Sprintf("%.1f m/s %s", speed, compass)
}

// FormatRowWind renders a day's wind. Days without direction samples drop the
// compass point, and days without any instant data render as "-".
func FormatRowWind(row DailyForecastRow) string {
	switch {
	case row.HasWindDirection:
		return FormatWind(row.AvgWindSpeed, row.WindCompass)
	case row.HasInstant:
		return fmt.Sprintf("%.1f m/s", row.AvgWindSpeed)
	default:
		return "-"
	}
}

// FormatDateLabel renders date with layout, falling back to DefaultDateFormat.
func FormatDateLabel(date time.Time, layout string) string {
	if !ValidDateLayout(layout) {
		layout = DefaultDateFormat
	}
	return date.UTC().Format(layout)
}

// NewForecastEntry builds the presentation row for an aggregated day.
func NewForecastEntry(row DailyForecastRow, iconURL string, opts Options) ForecastEntry {
	return ForecastEntry{
		DateLabel:     FormatDateLabel(row.Date, opts.DateFormat),
		Description:   row.Description,
		IconID:        row.IconID,
		IconURL:       iconURL,
		Temperature:   FormatTemperatureRange(row, opts.TemperatureUnit),
		Precipitation: FormatPrecipitation(row.PrecipitationTotal),
		Wind:          FormatRowWind(row),
		Row:           row,
	}
}

func unitOrDefault(u TemperatureUnit) TemperatureUnit {
	if u == "" {
		return Celsius
	}
	return u
}
