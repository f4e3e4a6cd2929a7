package weather

import (
	"math"
	"strings"
	"time"
)

// BuildCurrent turns the point resolved as "now" into a current-conditions
// record. Icon URL and cycle id are left for the caller to fill in.
func BuildCurrent(loc Location, reading CurrentReading) CurrentConditions {
	p := reading.Point

	symbol := p.Symbol1h()
	precip, hasPrecip := p.Precip1h()
	if symbol == "" {
		symbol = p.Symbol6h()
		precip, hasPrecip = p.Precip6h()
	}

	var amount *float64
	if hasPrecip {
		amount = &precip
	}
	iconID, description := Classify(symbol, amount)

	cur := CurrentConditions{
		Location:    loc,
		Source:      reading.Source,
		Condition:   symbol,
		Description: description,
		IconID:      iconID,
	}
	if ts, err := p.ParsedTime(); err == nil {
		cur.ObservedAt = ts
	}

	if d := p.Details(); d != nil {
		cur.Temperature = d.AirTemperature
		cur.Pressure = d.AirPressureAtSeaLevel
		cur.Humidity = d.RelativeHumidity
		cur.WindSpeed = d.WindSpeed
		cur.WindDirection = d.WindFromDirection
		cur.WindGust = d.WindSpeedOfGust
		cur.CloudFraction = d.CloudAreaFraction
		if d.WindFromDirection != nil {
			cur.WindCompass = CompassLabel(*d.WindFromDirection)
		}
		if d.AirTemperature != nil {
			feels := ApparentTemperature(*d.AirTemperature, valueOrZero(d.RelativeHumidity), valueOrZero(d.WindSpeed))
			cur.FeelsLike = &feels
		}
	}

	if rate, ok := p.Precip1h(); ok {
		if isSnow(p.Symbol1h(), p.PrecipCategory1h()) {
			cur.SnowRate = &rate
		} else {
			cur.RainRate = &rate
		}
	}

	return cur
}

func isSnow(symbol, category string) bool {
	return strings.Contains(strings.ToLower(symbol), "snow") || strings.EqualFold(category, "snow")
}

// ApparentTemperature is Steadman's apparent temperature (shade, no radiation)
// for air temperature in °C, relative humidity in % and wind speed in m/s.
func ApparentTemperature(tempC, humidity, windSpeed float64) float64 {
	vapour := humidity / 100 * 6.105 * math.Exp(17.27*tempC/(237.7+tempC))
	at := tempC + 0.33*vapour - 0.70*windSpeed - 4.00
	return math.Round(at*10) / 10
}

// closestPoint returns the index of the point whose timestamp is nearest to now.
// Equal distances keep the earlier entry. If no timestamp parses, 0 is returned.
func closestPoint(points []TimeSeriesPoint, now time.Time) int {
	best := -1
	var bestDist time.Duration
	for i, p := range points {
		ts, err := p.ParsedTime()
		if err != nil {
			continue
		}
		dist := ts.Sub(now)
		if dist < 0 {
			dist = -dist
		}
		if best == -1 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best == -1 {
		return 0
	}
	return best
}

// ClosestToNow picks the entry used as "current" from a series.
func ClosestToNow(points []TimeSeriesPoint, now time.Time) (TimeSeriesPoint, bool) {
	if len(points) == 0 {
		return TimeSeriesPoint{}, false
	}
	return points[closestPoint(points, now)], true
}
