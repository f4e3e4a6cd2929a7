package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-forecast-pipeline/internal/weather"
)

var (
	// ErrNotFound is returned when no data is available for a given location.
	ErrNotFound = errors.New("no weather data for location")
)

// locationData holds what has been published for one location.
type locationData struct {
	// time-ordered current-conditions history, newest last
	current  []weather.CurrentConditions
	forecast *weather.Forecast
}

// MemoryStore is a concurrency-safe in-memory implementation of weather.Store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key
	data map[string]*locationData

	// retention configuration
	maxHistory int           // max number of current snapshots per location
	maxAge     time.Duration // optional max age for current snapshots

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*locationData),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

func (s *MemoryStore) entry(key string) *locationData {
	d, ok := s.data[key]
	if !ok {
		d = &locationData{}
		s.data[key] = d
	}
	return d
}

// SaveCurrent appends a current-conditions snapshot and enforces retention.
// The newest snapshot is always kept.
func (s *MemoryStore) SaveCurrent(loc weather.Location, current weather.CurrentConditions) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.entry(loc.Key())
	d.current = append(d.current, current)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(d.current) > s.maxHistory {
		over := len(d.current) - s.maxHistory
		d.current = d.current[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(d.current)-1; i++ {
			if !d.current[i].ObservedAt.Before(cutoff) {
				break
			}
		}
		d.current = d.current[i:]
	}
}

// SaveForecast replaces the published forecast table.
func (s *MemoryStore) SaveForecast(loc weather.Location, forecast weather.Forecast) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.entry(loc.Key())
	d.forecast = &forecast
}

// GetCurrent returns the most recent current-conditions snapshot for a location.
func (s *MemoryStore) GetCurrent(loc weather.Location) (weather.CurrentConditions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.data[loc.Key()]
	if !ok || len(d.current) == 0 {
		return weather.CurrentConditions{}, ErrNotFound
	}
	return d.current[len(d.current)-1], nil
}

// GetForecast returns the last published forecast table for a location.
func (s *MemoryStore) GetForecast(loc weather.Location) (weather.Forecast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.data[loc.Key()]
	if !ok || d.forecast == nil {
		return weather.Forecast{}, ErrNotFound
	}
	return *d.forecast, nil
}

// GetRange returns all current snapshots observed between from and to (inclusive).
func (s *MemoryStore) GetRange(loc weather.Location, from, to time.Time) ([]weather.CurrentConditions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.data[loc.Key()]
	if !ok || len(d.current) == 0 {
		return nil, ErrNotFound
	}

	var result []weather.CurrentConditions
	for _, c := range d.current {
		if !c.ObservedAt.Before(from) && !c.ObservedAt.After(to) {
			result = append(result, c)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}
