package service

import "time"

// now returns the current time as stored by both database engines, so a
// value returned from a create compares equal to the same row read back.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
