// Package auditlog keeps an append-only CSV trail of detection runs
// and manual overrides, so a reviewer can reconstruct why a row was
// treated as a total.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the detection log.
type Entry struct {
	Timestamp  time.Time
	SessionID  string
	Action     string // e.g. "detect_totals", "manual_override"
	Details    string
	RowIndex   int // -1 when the action is not row-scoped
	Confidence float64
}

// Header is the CSV header for detection-log.csv.
const Header = "timestamp,session_id,action,details,row,confidence"

const (
	numFields     = 6
	logDir        = "logs"
	logFile       = "logs/detection-log.csv"
	colTimestamp  = 0
	colSessionID  = 1
	colAction     = 2
	colDetails    = 3
	colRow        = 4
	colConfidence = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colSessionID] = e.SessionID
	row[colAction] = e.Action
	row[colDetails] = e.Details
	if e.RowIndex >= 0 {
		row[colRow] = strconv.Itoa(e.RowIndex)
	}
	row[colConfidence] = strconv.FormatFloat(e.Confidence, 'f', 2, 64)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	rowIndex := -1
	if record[colRow] != "" {
		rowIndex, err = strconv.Atoi(record[colRow])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing row %q: %w", record[colRow], err)
		}
	}

	confidence := 0.0
	if record[colConfidence] != "" {
		confidence, err = strconv.ParseFloat(record[colConfidence], 64)
		if err != nil {
			return Entry{}, fmt.Errorf("parsing confidence %q: %w", record[colConfidence], err)
		}
	}

	return Entry{
		Timestamp:  ts,
		SessionID:  record[colSessionID],
		Action:     record[colAction],
		Details:    record[colDetails],
		RowIndex:   rowIndex,
		Confidence: confidence,
	}, nil
}

// Append writes entries to <workDir>/logs/detection-log.csv, creating
// the file and header if needed.
func Append(workDir string, entries []Entry) error {
	dir := filepath.Join(workDir, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(workDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening detection log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <workDir>/logs/detection-log.csv.
// Returns an empty slice if the file does not exist.
func Read(workDir string) ([]Entry, error) {
	path := filepath.Join(workDir, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening detection log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading detection log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
