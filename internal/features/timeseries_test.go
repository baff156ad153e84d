package features

import (
	"math/rand"
	"testing"
	"time"

	"github.com/louisbranch/seatrelease/internal/release"
)

func singleSeriesParams(days int) Params {
	return Params{NumMatches: 1, NumDays: days, Zones: []string{"A"}, Schedule: release.DefaultSchedule()}
}

// releasesAt returns n events for match 1 zone A, daysBefore days before
// kickoff at the given clock time.
func releasesAt(p Params, zone string, daysBefore, n int, clock time.Duration) []release.Event {
	ts := p.Schedule.Kickoff(1).AddDate(0, 0, -daysBefore).Add(clock)
	events := make([]release.Event, n)
	for i := range events {
		events[i] = release.Event{MatchID: 1, SeatID: i + 1, ZoneID: zone, MemberID: 100001 + i, ReleasedAt: ts, Released: 1}
	}
	return events
}

func TestBuildTimeSeriesExampleScenario(t *testing.T) {
	p := singleSeriesParams(3)
	var events []release.Event
	events = append(events, releasesAt(p, "A", 3, 2, 9*time.Hour)...)
	events = append(events, releasesAt(p, "A", 1, 1, 23*time.Hour+59*time.Minute)...)

	rows, err := BuildTimeSeries(BuildScaffold(p), events)
	if err != nil {
		t.Fatalf("build time series: %v", err)
	}

	wantDays := []int{3, 2, 1}
	wantDaily := []int{2, 0, 1}
	wantSoFar := []int{2, 2, 3}
	wantVelocity := []int{2, 2, 3}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.DaysUntilMatch != wantDays[i] {
			t.Fatalf("row %d: days = %d, want %d", i, row.DaysUntilMatch, wantDays[i])
		}
		if row.DailyReleases != wantDaily[i] {
			t.Fatalf("row %d: daily = %d, want %d", i, row.DailyReleases, wantDaily[i])
		}
		if row.SeatsReleasedSoFar != wantSoFar[i] {
			t.Fatalf("row %d: so far = %d, want %d", i, row.SeatsReleasedSoFar, wantSoFar[i])
		}
		if row.ReleaseVelocity7d != wantVelocity[i] {
			t.Fatalf("row %d: velocity = %d, want %d", i, row.ReleaseVelocity7d, wantVelocity[i])
		}
	}
}

func TestBuildTimeSeriesExcludesMatchDayReleases(t *testing.T) {
	p := singleSeriesParams(3)
	events := releasesAt(p, "A", 0, 4, 10*time.Hour)
	events = append(events, releasesAt(p, "A", -1, 1, 0)...)
	events = append(events, releasesAt(p, "A", 10, 1, 0)...)

	rows, err := BuildTimeSeries(BuildScaffold(p), events)
	if err != nil {
		t.Fatalf("build time series: %v", err)
	}
	for _, row := range rows {
		if row.DailyReleases != 0 || row.SeatsReleasedSoFar != 0 || row.ReleaseVelocity7d != 0 {
			t.Fatalf("expected out-of-window releases to be excluded, got %+v", row)
		}
	}
}

func TestBuildTimeSeriesWindowDropsOldDays(t *testing.T) {
	p := singleSeriesParams(10)
	var events []release.Event
	// One release on each of days_until_match 10..1, i.e. daily = [1..10].
	for daysBefore := 10; daysBefore >= 1; daysBefore-- {
		events = append(events, releasesAt(p, "A", daysBefore, 11-daysBefore, time.Hour)...)
	}

	rows, err := BuildTimeSeries(BuildScaffold(p), events)
	if err != nil {
		t.Fatalf("build time series: %v", err)
	}
	for i, row := range rows {
		if row.DailyReleases != i+1 {
			t.Fatalf("row %d: daily = %d, want %d", i, row.DailyReleases, i+1)
		}
		wantWindow := 0
		for j := max(0, i-6); j <= i; j++ {
			wantWindow += j + 1
		}
		if row.ReleaseVelocity7d != wantWindow {
			t.Fatalf("row %d: velocity = %d, want %d", i, row.ReleaseVelocity7d, wantWindow)
		}
		if row.SeatsReleasedSoFar != (i+1)*(i+2)/2 {
			t.Fatalf("row %d: so far = %d, want %d", i, row.SeatsReleasedSoFar, (i+1)*(i+2)/2)
		}
	}
}

func TestBuildTimeSeriesWindowStaysInSeries(t *testing.T) {
	p := Params{NumMatches: 1, NumDays: 3, Zones: []string{"A", "B"}, Schedule: release.DefaultSchedule()}
	events := releasesAt(p, "A", 1, 5, 0)

	rows, err := BuildTimeSeries(BuildScaffold(p), events)
	if err != nil {
		t.Fatalf("build time series: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}
	// Rows are sorted A then B; the first B row must not inherit A's tail.
	first := rows[3]
	if first.ZoneID != "B" || first.DaysUntilMatch != 3 {
		t.Fatalf("expected first row of zone B, got %+v", first.ScaffoldRow)
	}
	if first.ReleaseVelocity7d != 0 || first.SeatsReleasedSoFar != 0 {
		t.Fatalf("expected zone B to start from zero, got %+v", first)
	}
	if rows[2].SeatsReleasedSoFar != 5 {
		t.Fatalf("expected zone A total 5, got %d", rows[2].SeatsReleasedSoFar)
	}
}

func TestBuildTimeSeriesSortsShuffledScaffold(t *testing.T) {
	p := Params{NumMatches: 3, NumDays: 12, Zones: []string{"D", "A", "C"}, Schedule: release.DefaultSchedule()}
	scaffold := BuildScaffold(p)
	rand.New(rand.NewSource(4)).Shuffle(len(scaffold), func(i, j int) {
		scaffold[i], scaffold[j] = scaffold[j], scaffold[i]
	})
	events := releasesAt(p, "C", 2, 3, 0)

	rows, err := BuildTimeSeries(scaffold, events)
	if err != nil {
		t.Fatalf("build time series: %v", err)
	}
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if cur.Key().Less(prev.Key()) {
			t.Fatalf("row %d: series out of order", i)
		}
		if cur.Key() == prev.Key() {
			if !prev.PredictionDate.Before(cur.PredictionDate) {
				t.Fatalf("row %d: dates out of order", i)
			}
			if cur.SeatsReleasedSoFar < prev.SeatsReleasedSoFar {
				t.Fatalf("row %d: cumulative decreased", i)
			}
		}
	}
}

func TestBuildTimeSeriesPropertiesOnGeneratedLog(t *testing.T) {
	p := Params{NumMatches: 2, NumDays: 20, Zones: []string{"A", "B"}, Schedule: release.DefaultSchedule()}
	rng := rand.New(rand.NewSource(21))
	var events []release.Event
	for matchID := 1; matchID <= p.NumMatches; matchID++ {
		kickoff := p.Schedule.Kickoff(matchID)
		for _, zone := range p.Zones {
			for i := 0; i < 300; i++ {
				lead := time.Duration(rng.Int63n(int64(25 * 24 * time.Hour)))
				events = append(events, release.Event{MatchID: matchID, ZoneID: zone, ReleasedAt: kickoff.Add(-lead), Released: 1})
			}
		}
	}

	rows, err := BuildTimeSeries(BuildScaffold(p), events)
	if err != nil {
		t.Fatalf("build time series: %v", err)
	}

	start := 0
	for start < len(rows) {
		end := start
		for end < len(rows) && rows[end].Key() == rows[start].Key() {
			end++
		}
		series := rows[start:end]
		sum := 0
		for i, row := range series {
			sum += row.DailyReleases
			if row.SeatsReleasedSoFar != sum {
				t.Fatalf("%+v day %d: so far = %d, want %d", row.Key(), row.DaysUntilMatch, row.SeatsReleasedSoFar, sum)
			}
			window := 0
			for j := max(0, i-VelocityWindow+1); j <= i; j++ {
				window += series[j].DailyReleases
			}
			if row.ReleaseVelocity7d != window {
				t.Fatalf("%+v day %d: velocity = %d, want %d", row.Key(), row.DaysUntilMatch, row.ReleaseVelocity7d, window)
			}
		}
		if series[0].ReleaseVelocity7d != series[0].DailyReleases {
			t.Fatalf("%+v: first velocity should equal its own daily releases", series[0].Key())
		}
		start = end
	}
}

func TestBuildTimeSeriesRejectsDuplicateScaffoldRows(t *testing.T) {
	p := singleSeriesParams(2)
	scaffold := BuildScaffold(p)
	scaffold = append(scaffold, scaffold[0])

	if _, err := BuildTimeSeries(scaffold, nil); err == nil {
		t.Fatal("expected error for duplicate scaffold rows")
	}
}

func TestBuildTimeSeriesDoesNotModifyInput(t *testing.T) {
	p := singleSeriesParams(4)
	scaffold := BuildScaffold(p)
	original := append([]ScaffoldRow(nil), scaffold...)

	if _, err := BuildTimeSeries(scaffold, releasesAt(p, "A", 2, 1, 0)); err != nil {
		t.Fatalf("build time series: %v", err)
	}
	for i := range scaffold {
		if scaffold[i] != original[i] {
			t.Fatalf("scaffold row %d modified", i)
		}
	}
}
