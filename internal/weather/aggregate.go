package weather

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// PrecipitationMode selects how a day's precipitation total is derived.
type PrecipitationMode string

const (
	// PrecipitationSum adds every point's next_6_hours amount. Hourly points
	// overlap, so this overstates the daily total; it is kept as the default.
	PrecipitationSum PrecipitationMode = "sum"
	// PrecipitationSlots takes one next_6_hours amount per 6-hour UTC slot.
	PrecipitationSlots PrecipitationMode = "slots"
)

// ParsePrecipitationMode accepts "sum" or "slots" (case-insensitive).
func ParsePrecipitationMode(s string) (PrecipitationMode, error) {
	switch PrecipitationMode(strings.ToLower(strings.TrimSpace(s))) {
	case PrecipitationSum:
		return PrecipitationSum, nil
	case PrecipitationSlots:
		return PrecipitationSlots, nil
	default:
		return PrecipitationSum, fmt.Errorf("unknown precipitation mode %q", s)
	}
}

// NoSymbolLabel is shown for a day where no point carried a 6-hour symbol.
const NoSymbolLabel = "No Data"

// Aggregate reduces one day's bucket into a forecast row using PrecipitationSum.
func Aggregate(date time.Time, points []TimeSeriesPoint) DailyForecastRow {
	return AggregateWithMode(date, points, PrecipitationSum)
}

// AggregateWithMode reduces one day's bucket into a forecast row.
//
// The result does not depend on the order of points: every float sum is taken
// over sorted values and ties are broken on values, never on position.
func AggregateWithMode(date time.Time, points []TimeSeriesPoint, mode PrecipitationMode) DailyForecastRow {
	row := DailyForecastRow{
		Date: StartOfDay(date),
	}

	var (
		temps      []float64
		speeds     []float64
		directions []float64
		precips    []float64
		maxPrecip  float64
	)

	for _, p := range points {
		if d := p.Details(); d != nil {
			// A missing reading counts as 0, not as absent.
			temps = append(temps, valueOrZero(d.AirTemperature))
			speeds = append(speeds, valueOrZero(d.WindSpeed))
			if d.WindFromDirection != nil {
				directions = append(directions, *d.WindFromDirection)
			}
		}

		if amount, ok := p.Precip6h(); ok {
			precips = append(precips, amount)
			if amount > maxPrecip {
				maxPrecip = amount
			}
		}
	}

	if len(temps) > 0 {
		row.HasInstant = true
		row.TempMax, row.TempMin = temps[0], temps[0]
		for _, t := range temps[1:] {
			row.TempMax = math.Max(row.TempMax, t)
			row.TempMin = math.Min(row.TempMin, t)
		}
		row.AvgWindSpeed = sortedSum(speeds) / float64(len(speeds))
	}

	if len(directions) > 0 {
		row.HasWindDirection = true
		row.AvgWindDirection = meanDirection(directions)
		row.WindCompass = CompassLabel(row.AvgWindDirection)
	}

	switch mode {
	case PrecipitationSlots:
		row.PrecipitationTotal = slotPrecipitation(points)
	default:
		row.PrecipitationTotal = sortedSum(precips)
	}

	row.Symbol = representativeSymbol(points)
	if row.Symbol == "" {
		row.IconID = defaultIconID
		row.Description = NoSymbolLabel
	} else {
		row.IconID, row.Description = Classify(row.Symbol, &maxPrecip)
	}

	return row
}

type symbolGroup struct {
	symbol  string
	count   int
	precips []float64
}

// representativeSymbol picks the most frequent next_6_hours symbol. Ties go to
// the larger summed precipitation, then to the lexicographically smaller symbol.
func representativeSymbol(points []TimeSeriesPoint) string {
	groups := make(map[string]*symbolGroup)
	for _, p := range points {
		sym := p.Symbol6h()
		if sym == "" {
			continue
		}
		g, ok := groups[sym]
		if !ok {
			g = &symbolGroup{symbol: sym}
			groups[sym] = g
		}
		g.count++
		if amount, ok := p.Precip6h(); ok {
			g.precips = append(g.precips, amount)
		}
	}

	var (
		best       *symbolGroup
		bestPrecip float64
	)
	for _, g := range groups {
		precip := sortedSum(g.precips)
		switch {
		case best == nil,
			g.count > best.count,
			g.count == best.count && precip > bestPrecip,
			g.count == best.count && precip == bestPrecip && g.symbol < best.symbol:
			best, bestPrecip = g, precip
		}
	}

	if best == nil {
		return ""
	}
	return best.symbol
}

// slotPrecipitation sums one next_6_hours amount per 6-hour UTC slot, taken from
// the earliest point of the slot (the larger amount wins on equal timestamps).
func slotPrecipitation(points []TimeSeriesPoint) float64 {
	type pick struct {
		at     time.Time
		amount float64
	}
	slots := make(map[int]pick)

	for _, p := range points {
		amount, ok := p.Precip6h()
		if !ok {
			continue
		}
		ts, err := p.ParsedTime()
		if err != nil {
			continue
		}
		slot := ts.Hour() / 6
		cur, seen := slots[slot]
		if !seen || ts.Before(cur.at) || (ts.Equal(cur.at) && amount > cur.amount) {
			slots[slot] = pick{at: ts, amount: amount}
		}
	}

	amounts := make([]float64, 0, len(slots))
	for _, s := range slots {
		amounts = append(amounts, s.amount)
	}
	return sortedSum(amounts)
}

// sortedSum adds values in ascending order so the result is independent of input order.
func sortedSum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return sum
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
