// Package adapters contains one client per directly-integrated job board.
// Each adapter fetches from the board's public JSON API, applies the
// request's filters the way that board allows (server-side where the API
// supports it, post-filtering otherwise) and returns canonical records.
package adapters

import (
	"time"

	"jobgate/internal/normalize"
)

// window applies offset/limit slicing with clamping, mirroring how results
// paging works across all boards: skip offset rows, return at most limit.
// A zero limit yields zero rows.
func window[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// hoursCutoff returns the oldest acceptable posting time for a freshness
// filter, or the zero time when no filter applies.
func hoursCutoff(hoursOld int) time.Time {
	if hoursOld <= 0 {
		return time.Time{}
	}
	return time.Now().Add(-time.Duration(hoursOld) * time.Hour)
}

// positiveFloat coerces a salary bound, treating zero and negative values
// as absent.
func positiveFloat(v any) *float64 {
	f := normalize.Float(v)
	if f == nil || *f <= 0 {
		return nil
	}
	return f
}
