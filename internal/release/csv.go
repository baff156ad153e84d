package release

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/seatrelease/internal/platform/errors"
)

// Column names of the event log, in the order they are written.
const (
	ColumnMatchID          = "match_id"
	ColumnSeatID           = "seat_id"
	ColumnZoneID           = "zone_id"
	ColumnMemberID         = "member_id"
	ColumnReleaseTimestamp = "release_timestamp"
	ColumnReleased         = "released"
)

// Columns lists the event log header.
var Columns = []string{
	ColumnMatchID,
	ColumnSeatID,
	ColumnZoneID,
	ColumnMemberID,
	ColumnReleaseTimestamp,
	ColumnReleased,
}

// WriteCSV writes events with a header row.
func WriteCSV(w io.Writer, events []Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	record := make([]string, len(Columns))
	for _, ev := range events {
		record[0] = strconv.Itoa(ev.MatchID)
		record[1] = strconv.Itoa(ev.SeatID)
		record[2] = ev.ZoneID
		record[3] = strconv.Itoa(ev.MemberID)
		record[4] = ev.ReleasedAt.Format(TimestampLayout)
		record[5] = strconv.Itoa(ev.Released)
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses an event log. Columns are located by header name. Any row
// whose key or timestamp fields fail to parse aborts the read with a
// malformed-record error; rows are never skipped. source names the input
// in error messages.
func ReadCSV(r io.Reader, source string) ([]Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.MalformedRecord(source, 1, "header", errors.New("empty file"))
		}
		return nil, apperrors.MalformedRecord(source, 1, "header", err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, apperrors.MalformedRecord(source, 1, "header", err)
	}

	var events []Event
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, apperrors.MalformedRecord(source, line, "row", err)
		}
		ev, column, err := parseRecord(record, index)
		if err != nil {
			return nil, apperrors.MalformedRecord(source, line, column, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
	}
	var missing []string
	for _, name := range Columns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func parseRecord(record []string, index map[string]int) (Event, string, error) {
	field := func(name string) (string, error) {
		i := index[name]
		if i >= len(record) {
			return "", errors.New("field missing")
		}
		return strings.TrimSpace(record[i]), nil
	}
	intField := func(name string) (int, error) {
		s, err := field(name)
		if err != nil {
			return 0, err
		}
		return strconv.Atoi(s)
	}

	var ev Event
	var err error
	if ev.MatchID, err = intField(ColumnMatchID); err != nil {
		return Event{}, ColumnMatchID, err
	}
	if ev.MatchID < 1 {
		return Event{}, ColumnMatchID, fmt.Errorf("match_id must be >= 1, got %d", ev.MatchID)
	}
	if ev.SeatID, err = intField(ColumnSeatID); err != nil {
		return Event{}, ColumnSeatID, err
	}
	if ev.ZoneID, err = field(ColumnZoneID); err != nil {
		return Event{}, ColumnZoneID, err
	}
	if ev.ZoneID == "" {
		return Event{}, ColumnZoneID, errors.New("zone_id is empty")
	}
	if ev.MemberID, err = intField(ColumnMemberID); err != nil {
		return Event{}, ColumnMemberID, err
	}
	ts, err := field(ColumnReleaseTimestamp)
	if err != nil {
		return Event{}, ColumnReleaseTimestamp, err
	}
	if ev.ReleasedAt, err = time.Parse(TimestampLayout, ts); err != nil {
		return Event{}, ColumnReleaseTimestamp, err
	}
	if ev.Released, err = intField(ColumnReleased); err != nil {
		return Event{}, ColumnReleased, err
	}
	return ev, "", nil
}
