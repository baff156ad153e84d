package features

import (
	"fmt"
	"sort"

	"github.com/louisbranch/seatrelease/internal/release"
)

// TimeSeriesRow is a scaffold row with its release counters.
type TimeSeriesRow struct {
	ScaffoldRow
	DailyReleases      int
	SeatsReleasedSoFar int
	ReleaseVelocity7d  int
}

type dayKey struct {
	series SeriesKey
	date   release.Date
}

// dailyReleases counts events per series and calendar day of release.
func dailyReleases(events []release.Event) map[dayKey]int {
	counts := make(map[dayKey]int)
	for _, ev := range events {
		key := dayKey{
			series: SeriesKey{MatchID: ev.MatchID, ZoneID: ev.ZoneID},
			date:   release.DateOf(ev.ReleasedAt),
		}
		counts[key]++
	}
	return counts
}

// BuildTimeSeries joins daily release counts onto the scaffold and derives
// the running total and trailing window sum of each series.
//
// Days without releases count as zero. Releases dated on or after match day
// have no scaffold cell and are left out here; Targets still counts them.
// Rows come back sorted by match, zone and prediction date.
func BuildTimeSeries(scaffold []ScaffoldRow, events []release.Event) ([]TimeSeriesRow, error) {
	counts := dailyReleases(events)

	groups := make(map[SeriesKey][]TimeSeriesRow)
	seen := make(map[dayKey]bool, len(scaffold))
	for _, row := range scaffold {
		key := dayKey{series: row.Key(), date: row.PredictionDate}
		if seen[key] {
			return nil, fmt.Errorf("duplicate scaffold row for match %d zone %s on %s", row.MatchID, row.ZoneID, row.PredictionDate)
		}
		seen[key] = true
		groups[key.series] = append(groups[key.series], TimeSeriesRow{
			ScaffoldRow:   row,
			DailyReleases: counts[key],
		})
	}

	keys := make([]SeriesKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	out := make([]TimeSeriesRow, 0, len(scaffold))
	for _, key := range keys {
		series := groups[key]
		sort.Slice(series, func(i, j int) bool {
			return series[i].PredictionDate.Before(series[j].PredictionDate)
		})
		accumulate(series)
		out = append(out, series...)
	}
	return out, nil
}

// accumulate fills the running total and the trailing VelocityWindow sum of
// one series already sorted by prediction date. The window shrinks at the
// start of the series.
func accumulate(series []TimeSeriesRow) {
	total, window := 0, 0
	for i := range series {
		total += series[i].DailyReleases
		window += series[i].DailyReleases
		if i >= VelocityWindow {
			window -= series[i-VelocityWindow].DailyReleases
		}
		series[i].SeatsReleasedSoFar = total
		series[i].ReleaseVelocity7d = window
	}
}
