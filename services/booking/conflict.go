package booking

import (
	"time"

	bookingRepo "medibook/database/repository/booking"
)

// ConflictWindow is the fixed exclusion window immediately preceding and
// including a requested appointment instant.
const ConflictWindow = 30 * time.Minute

// ConflictChecker reports whether a requested instant collides with an
// existing booking. Pure read, no side effects; used as a pre-flight check
// before any payment call.
type ConflictChecker interface {
	HasConflict(at time.Time) (bool, error)
}

// RepoConflictChecker checks conflicts against the booking repository.
type RepoConflictChecker struct {
	Repo bookingRepo.BookingRepository
}

// HasConflict reports whether any existing booking's instant falls within
// [at-ConflictWindow, at], both ends inclusive.
func (c *RepoConflictChecker) HasConflict(at time.Time) (bool, error) {
	return c.Repo.ExistsInWindow(at, ConflictWindow)
}
