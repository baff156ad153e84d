package features

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultOutputPath is where the feature table is written by default.
var DefaultOutputPath = filepath.Join("data", "03_synthetic", "match_data_timeseries.csv")

// TableColumns is the feature table header in output order.
var TableColumns = []string{
	"match_id",
	"zone_id",
	"prediction_date",
	"match_date",
	"days_until_match",
	"daily_releases",
	"seats_released_so_far",
	"release_velocity_7d",
	"opponent_position",
	"is_derby",
	"team_position",
	"last_match_lost",
	"top_player_injured",
	"final_released_seats",
}

// Record formats row as CSV fields matching TableColumns. Static columns
// are empty when the row has no static match context.
func (row FeatureRow) Record() []string {
	record := []string{
		strconv.Itoa(row.MatchID),
		row.ZoneID,
		row.PredictionDate.String(),
		row.MatchDate.String(),
		strconv.Itoa(row.DaysUntilMatch),
		strconv.Itoa(row.DailyReleases),
		strconv.Itoa(row.SeatsReleasedSoFar),
		strconv.Itoa(row.ReleaseVelocity7d),
		"", "", "", "", "",
		strconv.Itoa(row.FinalReleasedSeats),
	}
	if s := row.Static; s != nil {
		record[8] = strconv.Itoa(s.OpponentPosition)
		record[9] = formatBool(s.IsDerby)
		record[10] = strconv.Itoa(s.TeamPosition)
		record[11] = formatBool(s.LastMatchLost)
		record[12] = formatBool(s.TopPlayerInjured)
	}
	return record
}

// WriteTable writes rows with a header as CSV.
func WriteTable(w io.Writer, rows []FeatureRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TableColumns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveTable writes rows to path, creating the output directory if absent.
func SaveTable(path string, rows []FeatureRow) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create feature table: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close feature table: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := WriteTable(w, rows); err != nil {
		return fmt.Errorf("write feature table: %w", err)
	}
	return w.Flush()
}

func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
