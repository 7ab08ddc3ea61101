package rental

import (
	"fmt"
	"time"
)

// allowTransition is the rental state machine. Finished is terminal:
// re-finishing a rental is rejected instead of re-stamping the return
// date.
var allowTransition = map[Status][]Status{
	StatusActive:   {StatusFinished},
	StatusFinished: {},
}

// CanTransition reports whether from -> to is an allowed transition.
func CanTransition(from, to Status) bool {
	for _, s := range allowTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyFinish closes a rental: status becomes Finished, the return date
// is stamped with the calendar date of now, and the active key is
// cleared so the vehicle's unique-active slot frees up.
func ApplyFinish(r *Rental, now time.Time) error {
	if r == nil {
		return fmt.Errorf("rental is nil")
	}
	if !CanTransition(r.Status, StatusFinished) {
		return fmt.Errorf("invalid rental status transition: %s -> %s", r.Status, StatusFinished)
	}
	r.Status = StatusFinished
	r.ReturnDate = now.Format(DateLayout)
	r.ActiveKey = nil
	return nil
}

// DaysInUse returns the whole days elapsed between a rental's start date
// and now. A missing or malformed start date counts as 0 rather than
// failing the listing.
func DaysInUse(startDate string, now time.Time) int {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return 0
	}
	d := int(now.Sub(start).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
