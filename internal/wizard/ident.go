package wizard

import (
	"strconv"
	"time"
)

const (
	DefaultIDPrefix = "PG-2024-001-"
	DefaultIDDigits = 6
)

// IDGenerator mints submission ids when Confirm is entered.
type IDGenerator interface {
	SubmissionID(now time.Time) string
}

// ClockIDs derives ids from the Unix millisecond clock: Prefix followed by
// the last Digits decimal digits of the timestamp.
type ClockIDs struct {
	Prefix string
	Digits int
}

// SubmissionID implements IDGenerator.
func (g ClockIDs) SubmissionID(now time.Time) string {
	digits := g.Digits
	if digits <= 0 {
		digits = DefaultIDDigits
	}
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > digits {
		ms = ms[len(ms)-digits:]
	}
	return g.Prefix + ms
}
