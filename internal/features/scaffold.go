package features

import "github.com/louisbranch/seatrelease/internal/release"

// ScaffoldRow is one (match, zone, day) cell of the dense grid.
type ScaffoldRow struct {
	MatchID        int
	ZoneID         string
	PredictionDate release.Date
	MatchDate      release.Date
	DaysUntilMatch int
}

// Key returns the series the row belongs to.
func (r ScaffoldRow) Key() SeriesKey {
	return SeriesKey{MatchID: r.MatchID, ZoneID: r.ZoneID}
}

// BuildScaffold returns every (match, zone, days_until_match) combination
// for days 1..NumDays. Callers must not rely on the row order.
func BuildScaffold(p Params) []ScaffoldRow {
	if p.NumMatches < 1 || p.NumDays < 1 || len(p.Zones) == 0 {
		return nil
	}
	rows := make([]ScaffoldRow, 0, p.NumMatches*p.NumDays*len(p.Zones))
	for matchID := 1; matchID <= p.NumMatches; matchID++ {
		matchDate := p.Schedule.MatchDate(matchID)
		for daysBefore := p.NumDays; daysBefore >= 1; daysBefore-- {
			predictionDate := matchDate.AddDays(-daysBefore)
			for _, zone := range p.Zones {
				rows = append(rows, ScaffoldRow{
					MatchID:        matchID,
					ZoneID:         zone,
					PredictionDate: predictionDate,
					MatchDate:      matchDate,
					DaysUntilMatch: daysBefore,
				})
			}
		}
	}
	return rows
}
