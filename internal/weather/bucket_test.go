package weather

import (
	"testing"
	"time"
)

func TestBucketize(t *testing.T) {
	start := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	points := []TimeSeriesPoint{
		point("2024-03-01T23:00:00Z"), // before window
		point("2024-03-02T00:00:00Z"),
		point("2024-03-02T18:00:00Z"),
		point("2024-03-03T01:00:00+02:00"), // 2024-03-02T23:00Z
		point("2024-03-04T06:00:00Z"),
		point("2024-03-05T00:00:00Z"), // after window
		point("not a time"),
		point(""),
	}

	buckets, stats := Bucketize(points, start, 3)

	if stats.Unparsable != 2 || stats.OutOfWindow != 2 || stats.Dropped() != 4 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	day2 := start
	day4 := start.AddDate(0, 0, 2)
	if got := len(buckets[day2]); got != 3 {
		t.Fatalf("expected 3 points on %s, got %d", day2, got)
	}
	if got := len(buckets[day4]); got != 1 {
		t.Fatalf("expected 1 point on %s, got %d", day4, got)
	}
	if _, ok := buckets[start.AddDate(0, 0, 1)]; ok {
		t.Fatal("expected empty day to be absent")
	}

	total := 0
	for _, b := range buckets {
		total += len(b)
	}
	if total+stats.Dropped() != len(points) {
		t.Fatalf("points lost: %d bucketed + %d dropped != %d", total, stats.Dropped(), len(points))
	}
}

func TestBucketizeNormalizesStartDay(t *testing.T) {
	start := time.Date(2024, 3, 2, 15, 30, 0, 0, time.UTC)
	buckets, _ := Bucketize([]TimeSeriesPoint{point("2024-03-02T01:00:00Z")}, start, 1)

	if len(buckets[StartOfDay(start)]) != 1 {
		t.Fatalf("expected point at 01:00 to land in the start day bucket, got %v", buckets)
	}
}
