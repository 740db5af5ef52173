package profile

import (
	"math"
	"time"
)

// Profile is the single local user. JoinDate never changes once set.
type Profile struct {
	Name     string
	JoinDate time.Time // UTC midnight
}

// New returns the profile used before the user has ever been persisted. The
// join date is the UTC calendar day of now.
func New(name string, now time.Time) Profile {
	now = now.UTC()

	return Profile{
		Name:     name,
		JoinDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// DaysActive is the number of started days between joinDate and now,
// regardless of direction.
func DaysActive(joinDate, now time.Time) int {
	diff := now.Sub(joinDate)
	if diff < 0 {
		diff = -diff
	}

	return int(math.Ceil(diff.Hours() / 24))
}
