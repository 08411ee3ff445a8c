package usecase

import "time"

// Clock returns the current time. Adapters take one so tests can pin "now".
type Clock func() time.Time

// Windows are the per-category freshness windows.
type Windows struct {
	Quote        time.Duration
	History      time.Duration
	Fundamentals time.Duration
	Research     time.Duration
}

func DefaultWindows() Windows {
	return Windows{
		Quote:        2 * time.Minute,
		History:      12 * time.Hour,
		Fundamentals: 24 * time.Hour,
		Research:     12 * time.Hour,
	}
}

// IsFresh reports whether a record written at updatedAt is still inside window.
// A zero updatedAt is never fresh.
func IsFresh(now, updatedAt time.Time, window time.Duration) bool {
	if updatedAt.IsZero() {
		return false
	}
	return now.Sub(updatedAt) < window
}
