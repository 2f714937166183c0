package util

import (
	"fmt"
	"sync"
	"time"
)

// TimeProvider handles timezone-aware "now" for every component that needs a clock.
type TimeProvider struct {
	location *time.Location
	now      func() time.Time
	mu       sync.RWMutex
}

// NewTimeProvider creates a provider for the given timezone ("" or "Local" uses the system zone).
func NewTimeProvider(timezone string) (*TimeProvider, error) {
	tp := &TimeProvider{now: time.Now}
	if err := tp.SetTimezone(timezone); err != nil {
		return nil, err
	}
	return tp, nil
}

// NewFixedTimeProvider returns a provider whose clock is frozen at t.
func NewFixedTimeProvider(t time.Time) *TimeProvider {
	return &TimeProvider{
		location: t.Location(),
		now:      func() time.Time { return t },
	}
}

func (tp *TimeProvider) SetTimezone(timezone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, Europe/Madrid, America/New_York", timezone, err)
		}
		loc = l
	}
	tp.location = loc
	return nil
}

// Now returns the current time in the configured timezone
func (tp *TimeProvider) Now() time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.now().In(tp.location)
}

// Location returns the configured timezone
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.location
}
