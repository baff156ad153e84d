package features

import "github.com/louisbranch/seatrelease/internal/release"

// FeatureRow is one row of the training table. Static is nil when no static
// row exists for the match.
type FeatureRow struct {
	TimeSeriesRow
	Static             *StaticRow
	FinalReleasedSeats int
}

// Targets counts every release per series over the whole log, including
// releases on or after match day that fall outside the scaffold.
func Targets(events []release.Event) map[SeriesKey]int {
	targets := make(map[SeriesKey]int)
	for _, ev := range events {
		targets[SeriesKey{MatchID: ev.MatchID, ZoneID: ev.ZoneID}]++
	}
	return targets
}

// Assemble left-joins static rows on match and targets on (match, zone)
// onto the time series. The output has one row per time series row, in the
// same order. Series with no releases get a zero target.
func Assemble(series []TimeSeriesRow, static []StaticRow, targets map[SeriesKey]int) []FeatureRow {
	byMatch := make(map[int]*StaticRow, len(static))
	for i := range static {
		row := static[i]
		byMatch[row.MatchID] = &row
	}

	out := make([]FeatureRow, len(series))
	for i, row := range series {
		out[i] = FeatureRow{
			TimeSeriesRow:      row,
			Static:             byMatch[row.MatchID],
			FinalReleasedSeats: targets[row.Key()],
		}
	}
	return out
}
