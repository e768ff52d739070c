// Package datepkg provides the bonus calendar used by the daily login bonus.
package datepkg

import "time"

// JST is the fixed UTC+9 offset the bonus calendar is pinned to. Calendar
// dates in this zone are the sole idempotency key for the daily bonus.
var JST = time.FixedZone("JST", 9*60*60)

// Today returns the calendar date of t in JST as YYYY-MM-DD.
func Today(t time.Time) string {
	return t.In(JST).Format("2006-01-02")
}
