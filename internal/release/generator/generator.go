// Package generator synthesizes a seat release event log.
//
// Release volume per match and zone is drawn around an average rate, and
// release times are skewed towards match day with a Beta(1, 5) lead time so
// most seats come back in the final days, as they do in practice.
package generator

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/louisbranch/seatrelease/internal/platform/progress"
	"github.com/louisbranch/seatrelease/internal/release"
)

const (
	// FirstMemberID is the lowest member id in the shared member pool.
	FirstMemberID = 100001

	// releaseRateStdDev is the spread of the per match/zone release rate.
	releaseRateStdDev = 0.05

	// leadTimeBeta is the beta shape of the Beta(1, b) lead time draw.
	leadTimeBeta = 5.0
)

// Params controls the size and shape of the generated log.
type Params struct {
	NumMatches     int
	NumDays        int
	Zones          []string
	SeatsPerZone   int
	AvgReleaseRate float64
	Schedule       release.Schedule
}

// DefaultParams returns the standard ten match, four zone configuration.
func DefaultParams() Params {
	return Params{
		NumMatches:     10,
		NumDays:        90,
		Zones:          []string{"A", "B", "C", "D"},
		SeatsPerZone:   5000,
		AvgReleaseRate: 0.40,
		Schedule:       release.DefaultSchedule(),
	}
}

func (p Params) validate() error {
	if p.NumMatches < 1 {
		return fmt.Errorf("num matches must be >= 1, got %d", p.NumMatches)
	}
	if p.NumDays < 1 {
		return fmt.Errorf("num days must be >= 1, got %d", p.NumDays)
	}
	if len(p.Zones) == 0 {
		return fmt.Errorf("at least one zone is required")
	}
	if p.SeatsPerZone < 1 {
		return fmt.Errorf("seats per zone must be >= 1, got %d", p.SeatsPerZone)
	}
	if p.AvgReleaseRate < 0 || p.AvgReleaseRate > 1 {
		return fmt.Errorf("average release rate must be within [0, 1], got %v", p.AvgReleaseRate)
	}
	return nil
}

// Generate builds the event log sorted by match and release time.
//
// Seats are drawn from the zone's own contiguous id block and members from
// a pool shared by all zones; neither repeats within a match/zone.
func Generate(ctx context.Context, p Params, rng *rand.Rand, report *progress.Reporter) ([]release.Event, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}

	report.Stepf("Starting dataset generation...")
	totalSeats := p.SeatsPerZone * len(p.Zones)

	var events []release.Event
	for matchID := 1; matchID <= p.NumMatches; matchID++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Detailf("Generating data for match_id: %d...", matchID)
		kickoff := p.Schedule.Kickoff(matchID)

		for zoneIndex, zone := range p.Zones {
			n := releaseCount(rng, p.SeatsPerZone, p.AvgReleaseRate)
			seats := sampleDistinct(rng, zoneIndex*p.SeatsPerZone+1, p.SeatsPerZone, n)
			members := sampleDistinct(rng, FirstMemberID, totalSeats, n)

			for i := 0; i < n; i++ {
				days := leadTimeDays(rng) * float64(p.NumDays)
				lead := secondsDuration(days * 24 * 60 * 60)
				events = append(events, release.Event{
					MatchID:    matchID,
					SeatID:     seats[i],
					ZoneID:     zone,
					MemberID:   members[i],
					ReleasedAt: kickoff.Add(-lead).Truncate(time.Second),
					Released:   1,
				})
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].MatchID != events[j].MatchID {
			return events[i].MatchID < events[j].MatchID
		}
		return events[i].ReleasedAt.Before(events[j].ReleasedAt)
	})
	report.Stepf("Generation complete: %d releases.", len(events))
	return events, nil
}

// releaseCount draws how many seats of a zone are released for one match.
func releaseCount(rng *rand.Rand, seats int, avgRate float64) int {
	rate := clamp01(avgRate + releaseRateStdDev*rng.NormFloat64())
	return int(float64(seats) * rate)
}

// leadTimeDays draws a Beta(1, 5) fraction of the window by inverse CDF.
func leadTimeDays(rng *rand.Rand) float64 {
	return 1 - math.Pow(1-rng.Float64(), 1/leadTimeBeta)
}

// sampleDistinct draws n distinct ids from [base, base+size) with a partial
// Fisher-Yates shuffle.
func sampleDistinct(rng *rand.Rand, base, size, n int) []int {
	if n > size {
		n = size
	}
	pool := make([]int, size)
	for i := range pool {
		pool[i] = base + i
	}
	for i := 0; i < n; i++ {
		j := i + rng.Intn(size-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n:n]
}

// secondsDuration converts fractional seconds to a Duration at microsecond
// resolution.
func secondsDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds*1e6)) * time.Microsecond
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
