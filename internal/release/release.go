// Package release defines the seat release event log shared by the
// generator and the feature pipeline.
//
// The event log is the only contract between the two: a flat table with one
// row per released seat, written and read as CSV.
package release

import "time"

// TimestampLayout is the wire format of release_timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Event is one seat released by a club member ahead of a match.
type Event struct {
	MatchID    int
	SeatID     int
	ZoneID     string
	MemberID   int
	ReleasedAt time.Time
	Released   int
}

// Date is a calendar day with no time of day or location. It is comparable
// and safe to use as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time().Format(DateLayout)
}

// Schedule places matches on the calendar: match m is played Stagger days
// after the previous one, starting from Anchor.
type Schedule struct {
	Anchor  Date
	Stagger int
}

// DefaultSchedule anchors match day zero on 2025-10-26 with matches two
// weeks apart.
func DefaultSchedule() Schedule {
	return Schedule{
		Anchor:  Date{Year: 2025, Month: time.October, Day: 26},
		Stagger: 14,
	}
}

// MatchDate returns the calendar day match matchID is played.
func (s Schedule) MatchDate(matchID int) Date {
	return s.Anchor.AddDays(matchID * s.Stagger)
}

// Kickoff returns the instant used as the match start for release timing.
func (s Schedule) Kickoff(matchID int) time.Time {
	return s.MatchDate(matchID).Time()
}
