package weather

import "math"

var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// CompassLabel converts degrees to the nearest of the 8 compass points.
func CompassLabel(degrees float64) string {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return compassPoints[0]
	}
	d := normalizeDegrees(degrees)
	idx := int(math.Round(d/45)) % len(compassPoints)
	return compassPoints[idx]
}

// normalizeDegrees folds any angle into [0,360).
func normalizeDegrees(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// meanDirection averages wind directions as unit vectors, so 350° and 10° give 0°.
// When the vectors cancel out there is no meaningful heading and the arithmetic
// mean is used instead.
func meanDirection(degrees []float64) float64 {
	if len(degrees) == 0 {
		return 0
	}

	sines := make([]float64, len(degrees))
	cosines := make([]float64, len(degrees))
	for i, d := range degrees {
		rad := d * math.Pi / 180
		sines[i] = math.Sin(rad)
		cosines[i] = math.Cos(rad)
	}

	sumSin := sortedSum(sines)
	sumCos := sortedSum(cosines)
	if math.Hypot(sumSin, sumCos) < 1e-9 {
		return normalizeDegrees(sortedSum(degrees) / float64(len(degrees)))
	}

	mean := math.Atan2(sumSin, sumCos) * 180 / math.Pi
	mean = math.Round(mean*1e6) / 1e6
	return normalizeDegrees(mean)
}
