package features

import (
	"fmt"

	"github.com/louisbranch/seatrelease/internal/release"
)

// VelocityWindow is the number of days summed into release_velocity_7d,
// including the current day.
const VelocityWindow = 7

// Params sizes the scaffold.
type Params struct {
	NumMatches int
	NumDays    int
	Zones      []string
	Schedule   release.Schedule
}

// DefaultParams returns the standard ten match, ninety day, four zone grid.
func DefaultParams() Params {
	return Params{
		NumMatches: 10,
		NumDays:    90,
		Zones:      []string{"A", "B", "C", "D"},
		Schedule:   release.DefaultSchedule(),
	}
}

// Validate reports parameters that cannot produce a scaffold.
func (p Params) Validate() error {
	if p.NumMatches < 1 {
		return fmt.Errorf("num matches must be >= 1, got %d", p.NumMatches)
	}
	if p.NumDays < 1 {
		return fmt.Errorf("num days must be >= 1, got %d", p.NumDays)
	}
	if len(p.Zones) == 0 {
		return fmt.Errorf("at least one zone is required")
	}
	seen := make(map[string]bool, len(p.Zones))
	for _, zone := range p.Zones {
		if zone == "" {
			return fmt.Errorf("zone ids must not be empty")
		}
		if seen[zone] {
			return fmt.Errorf("duplicate zone %q", zone)
		}
		seen[zone] = true
	}
	return nil
}

// SeriesKey identifies one (match, zone) time series.
type SeriesKey struct {
	MatchID int
	ZoneID  string
}

// Less orders keys by match then zone.
func (k SeriesKey) Less(other SeriesKey) bool {
	if k.MatchID != other.MatchID {
		return k.MatchID < other.MatchID
	}
	return k.ZoneID < other.ZoneID
}
