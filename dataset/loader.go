package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"park-server/models"
)

var (
	// ErrSourceNotFound is returned when the source path does not exist.
	ErrSourceNotFound = errors.New("source not found")
	// ErrParseFailure is returned when the source content cannot be read as a table.
	ErrParseFailure = errors.New("source could not be parsed")
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"2006/01/02 15:04:05",
	"01/02/2006",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
}

// Load reads the CSV at path and returns its valid records.
func Load(path string, schema Schema, valid ValidRange) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailure, path, err)
	}
	defer f.Close()

	records, err := LoadReader(f, schema, valid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// LoadReader parses CSV content. Rows whose field count differs from the
// header and rows with an unparseable date are skipped.
func LoadReader(r io.Reader, schema Schema, valid ValidRange) ([]models.Record, error) {
	df, err := readFrame(r, schema)
	if err != nil {
		return nil, err
	}
	if df.Nrow() == 0 {
		return []models.Record{}, nil
	}

	df = renameColumns(df, schema)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, df.Err)
	}

	return toRecords(df, schema.Source, valid), nil
}

func readFrame(r io.Reader, schema Schema) (dataframe.DataFrame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: no header row", ErrParseFailure)
	}

	header := rows[0]
	if err := checkHeader(header, schema); err != nil {
		return dataframe.DataFrame{}, err
	}
	kept := make([][]string, 0, len(rows))
	kept = append(kept, header)
	for _, row := range rows[1:] {
		if len(row) == len(header) {
			kept = append(kept, row)
		}
	}
	if len(kept) == 1 {
		return dataframe.DataFrame{}, nil
	}

	df := dataframe.LoadRecords(kept,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %v", ErrParseFailure, df.Err)
	}
	return df, nil
}

// checkHeader requires the date, attraction and wait columns after renaming,
// so a header-only file is a valid empty load only when its header is.
func checkHeader(header []string, schema Schema) error {
	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		if canonical, ok := schema.Columns[name]; ok {
			name = canonical
		}
		present[name] = struct{}{}
	}
	for _, required := range []string{ColDate, ColAttraction, ColWaitTimeMax} {
		if _, ok := present[required]; !ok {
			return fmt.Errorf("%w: missing column %q", ErrParseFailure, required)
		}
	}
	return nil
}

func renameColumns(df dataframe.DataFrame, schema Schema) dataframe.DataFrame {
	for _, name := range df.Names() {
		canonical, ok := schema.Columns[name]
		if !ok || canonical == name || hasColumn(df, canonical) {
			continue
		}
		df = df.Rename(canonical, name)
	}
	return df
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// column returns the raw strings of a column, or nil if it is absent.
func column(df dataframe.DataFrame, name string) []string {
	if !hasColumn(df, name) {
		return nil
	}
	return df.Col(name).Records()
}

func toRecords(df dataframe.DataFrame, source models.Source, valid ValidRange) []models.Record {
	dates := column(df, ColDate)
	attractions := column(df, ColAttraction)
	waits := column(df, ColWaitTimeMax)
	attendance := column(df, ColAttendance)
	hours := column(df, ColHour)
	slots := column(df, ColTimeSlot)
	guests := column(df, ColGuestsCarried)
	capacity := column(df, ColCapacity)
	maxUnits := column(df, ColMaxUnits)

	out := make([]models.Record, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		day, clock, ok := parseDate(dates[i])
		if !ok || !valid.Contains(day) {
			continue
		}
		name := strings.TrimSpace(attractions[i])
		if name == "" || isNA(name) {
			continue
		}

		rec := models.Record{
			Attraction:    name,
			Date:          day,
			WaitTimeMax:   nonNegative(parseFloat(at(waits, i), 0)),
			Attendance:    int(nonNegative(parseFloat(at(attendance, i), 0))),
			GuestsCarried: int(nonNegative(parseFloat(at(guests, i), 0))),
			Capacity:      int(parseFloat(at(capacity, i), 1)),
			MaxUnits:      int(nonNegative(parseFloat(at(maxUnits, i), 0))),
			TimeSlot:      strings.TrimSpace(at(slots, i)),
			Source:        source,
		}
		if rec.Capacity < 1 {
			rec.Capacity = 1
		}
		rec.Hour = resolveHour(at(hours, i), rec.TimeSlot, clock)
		rec.CapacityUtilization = float64(rec.GuestsCarried) / float64(rec.Capacity) * 100
		out = append(out, rec)
	}
	return out
}

func at(col []string, i int) string {
	if col == nil {
		return ""
	}
	return col[i]
}

func isNA(s string) bool {
	switch strings.ToLower(s) {
	case "", "na", "nan", "null", "none", "nat":
		return true
	}
	return false
}

func parseFloat(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	if isNA(s) {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// parseDate returns the calendar date, the time of day (nil when the value
// carried no clock) and whether parsing succeeded.
func parseDate(s string) (time.Time, *time.Time, bool) {
	s = strings.TrimSpace(s)
	if isNA(s) {
		return time.Time{}, nil, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if len(layout) > len("2006-01-02") {
			return day, &t, true
		}
		return day, nil, true
	}
	return time.Time{}, nil, false
}

// resolveHour prefers the hour column, then the time slot, then the clock of
// the date column. Missing hours default to 0.
func resolveHour(raw, slot string, clock *time.Time) int {
	if h, ok := parseHour(raw); ok {
		return h
	}
	if h, ok := parseHour(slot); ok {
		return h
	}
	if clock != nil {
		return clock.Hour()
	}
	return 0
}

func parseHour(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if isNA(s) {
		return 0, false
	}
	if idx := strings.Index(s, ":"); idx >= 0 {
		s = s[:idx]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 23 {
		return 0, false
	}
	return int(v), true
}
