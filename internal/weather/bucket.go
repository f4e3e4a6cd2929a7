package weather

import "time"

// BucketStats counts the points Bucketize dropped.
type BucketStats struct {
	Unparsable  int
	OutOfWindow int
}

// Dropped returns the total number of points not placed in any bucket.
func (s BucketStats) Dropped() int {
	return s.Unparsable + s.OutOfWindow
}

// StartOfDay truncates t to midnight UTC of its calendar day.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Bucketize groups points by UTC calendar day over [startDay, startDay+days).
// Keys are midnight UTC. Points with unparsable timestamps or outside the window
// are dropped and counted; days without points are absent from the result.
func Bucketize(points []TimeSeriesPoint, startDay time.Time, days int) (map[time.Time][]TimeSeriesPoint, BucketStats) {
	var stats BucketStats
	buckets := make(map[time.Time][]TimeSeriesPoint)

	start := StartOfDay(startDay)
	end := start.AddDate(0, 0, days)

	for _, p := range points {
		ts, err := p.ParsedTime()
		if err != nil {
			stats.Unparsable++
			continue
		}

		day := StartOfDay(ts)
		if day.Before(start) || !day.Before(end) {
			stats.OutOfWindow++
			continue
		}

		buckets[day] = append(buckets[day], p)
	}

	return buckets, stats
}
