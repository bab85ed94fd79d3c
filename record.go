package tripstats

import (
	"strconv"
	"strings"

	"github.com/ridereport/tripstats/csv"
	"github.com/ridereport/tripstats/warnings"
)

// Record is one validated trip pickup observation.
type Record struct {
	// PickupZone is the normalized zone identifier: trimmed, upper-cased,
	// never empty.
	PickupZone string
	// PickupHour is the pickup hour of day in [0, 23].
	PickupHour int
}

// Field layout of a trip record row. Rows may carry extra trailing fields.
const (
	fieldTripID = iota
	fieldPickupZone
	fieldDropoffZone
	fieldPickupTime
	fieldTripDistance
	fieldFareAmount

	minFields = 6
)

// Parser extracts pickup observations from raw trip record lines.
//
// The input format is assumed dirty: embedded header rows, ragged rows, mixed
// 12-hour and 24-hour timestamps and stray whitespace all occur in real
// files. The parser rejects what it cannot use and never fails harder than
// that.
type Parser struct {
	// Dialect controls how lines are split into fields. The zero value is
	// standard CSV.
	Dialect csv.Dialect
}

// Parse parses one raw record line, already stripped of its line terminator.
//
// The returned error is always a warnings.RowWarning describing why the row
// was rejected. lineNumber only annotates warnings; pass 0 if unknown.
func (p Parser) Parse(lineNumber int, line string) (Record, error) {
	fields := p.Dialect.Split(line)
	if isHeader(fields[0]) {
		return Record{}, warnings.HeaderRow{LineNumber: lineNumber}
	}
	if len(fields) < minFields {
		return Record{}, warnings.TooFewFields{LineNumber: lineNumber, NumFields: len(fields)}
	}
	zone := strings.ToUpper(strings.TrimSpace(fields[fieldPickupZone]))
	if zone == "" {
		return Record{}, warnings.EmptyPickupZone{LineNumber: lineNumber}
	}
	hour, ok := parsePickupHour(fields[fieldPickupTime])
	if !ok {
		return Record{}, warnings.BadPickupTime{LineNumber: lineNumber, Value: fields[fieldPickupTime]}
	}
	return Record{PickupZone: zone, PickupHour: hour}, nil
}

// ParseRecord parses one raw record line with the default CSV dialect.
func ParseRecord(line string) (Record, error) {
	return Parser{}.Parse(0, line)
}

// isHeader reports whether a row starting with this field is a header row.
// Dirty files repeat the header mid-file, so every row gets checked.
func isHeader(firstField string) bool {
	return strings.EqualFold(strings.TrimSpace(firstField), "TripID")
}

// parsePickupHour extracts the hour of day from a raw timestamp field.
//
// The hour is the run of one or two digits immediately before the first colon.
// Timestamps containing AM or PM are read on the 12-hour clock, everything
// else on the 24-hour clock. No other part of the timestamp is interpreted.
func parsePickupHour(raw string) (int, bool) {
	ts := strings.TrimSpace(raw)
	colon := strings.IndexByte(ts, ':')
	if colon < 0 {
		return 0, false
	}
	start := colon
	for start > 0 && isDigit(ts[start-1]) {
		start--
	}
	digits := ts[start:colon]
	if len(digits) == 0 || len(digits) > 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	upper := strings.ToUpper(ts)
	switch {
	case strings.Contains(upper, "PM"):
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour != 12 {
			hour += 12
		}
	case strings.Contains(upper, "AM"):
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour > 23 {
			return 0, false
		}
	}
	return hour, true
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}
