package features

import (
	"fmt"
	"math"
	"math/rand"

	apperrors "github.com/louisbranch/seatrelease/internal/platform/errors"
)

const (
	minExcitement = 0.1
	maxExcitement = 1.0

	// DrawProbability is the fixed chance the previous match was drawn.
	DrawProbability = 0.15

	derbyProbability = 0.1
	opponentTableLen = 20
	teamPositionMax  = 4
)

// StaticRow holds the match context that does not change with the
// prediction date.
type StaticRow struct {
	MatchID          int
	OpponentPosition int
	IsDerby          bool
	TeamPosition     int
	LastMatchLost    bool
	TopPlayerInjured bool
}

// Odds are the previous result probabilities implied by a match's
// excitement factor.
type Odds struct {
	Excitement float64
	Win        float64
	Draw       float64
	Loss       float64
}

// OddsFor derives result probabilities from excitement. Win grows linearly
// with excitement; loss takes what win and draw leave and is clamped to
// [0, 1], so excitement above 1.0 yields a zero loss chance instead of a
// negative one.
func OddsFor(excitement float64) Odds {
	win := clampProbability(0.1 + 0.7*excitement)
	return Odds{
		Excitement: excitement,
		Win:        win,
		Draw:       DrawProbability,
		Loss:       clampProbability(1 - win - DrawProbability),
	}
}

// GenerateStatic draws one StaticRow per match from rng.
func GenerateStatic(numMatches int, rng *rand.Rand) ([]StaticRow, error) {
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	rows := make([]StaticRow, 0, max(numMatches, 0))
	for matchID := 1; matchID <= numMatches; matchID++ {
		row, err := drawStatic(matchID, rng)
		if err != nil {
			return nil, fmt.Errorf("match %d: %w", matchID, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func drawStatic(matchID int, rng *rand.Rand) (StaticRow, error) {
	odds := OddsFor(minExcitement + (maxExcitement-minExcitement)*rng.Float64())

	row := StaticRow{
		MatchID:          matchID,
		OpponentPosition: 1 + rng.Intn(opponentTableLen),
	}
	var err error
	if row.IsDerby, err = bernoulli(rng, "is_derby", derbyProbability); err != nil {
		return StaticRow{}, err
	}
	row.TeamPosition = 1 + rng.Intn(teamPositionMax)
	if row.LastMatchLost, err = bernoulli(rng, "last_match_lost", odds.Loss); err != nil {
		return StaticRow{}, err
	}
	if row.TopPlayerInjured, err = bernoulli(rng, "top_player_injured", 1-odds.Excitement); err != nil {
		return StaticRow{}, err
	}
	return row, nil
}

// bernoulli draws true with probability p. p outside [0, 1] is rejected
// rather than passed to the sampler.
func bernoulli(rng *rand.Rand, name string, p float64) (bool, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return false, apperrors.WithMetadata(apperrors.CodeProbabilityRange,
			fmt.Sprintf("%s probability %v outside [0, 1]", name, p),
			map[string]string{"feature": name},
		)
	}
	return rng.Float64() < p, nil
}

func clampProbability(p float64) float64 {
	return math.Min(1, math.Max(0, p))
}
