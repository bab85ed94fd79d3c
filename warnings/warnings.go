// Package warnings defines the reasons a trip record row is skipped during
// ingestion. Every warning is an ordinary error value; none of them abort an
// ingestion pass.
package warnings

import "fmt"

// RowWarning is implemented by all warnings about a skipped row.
type RowWarning interface {
	// Line is the 1-based line number of the skipped row, or 0 if the row did
	// not come from a line-oriented source.
	Line() int
	Error() string
}

// HeaderRow is reported for any row whose first field is the TripID header
// token. Header rows can appear anywhere in a dirty input file, not just at
// the top.
type HeaderRow struct {
	LineNumber int
}

func (w HeaderRow) Line() int {
	return w.LineNumber
}

func (w HeaderRow) Error() string {
	return fmt.Sprintf("skipping line %d because it is a header row", w.LineNumber)
}

// TooFewFields is reported for rows that do not have enough fields to carry a
// pickup zone and a pickup time.
type TooFewFields struct {
	LineNumber int
	NumFields  int
}

func (w TooFewFields) Line() int {
	return w.LineNumber
}

func (w TooFewFields) Error() string {
	return fmt.Sprintf("skipping line %d because it has only %d fields", w.LineNumber, w.NumFields)
}

// EmptyPickupZone is reported for rows whose pickup zone field is empty or
// all whitespace.
type EmptyPickupZone struct {
	LineNumber int
}

func (w EmptyPickupZone) Line() int {
	return w.LineNumber
}

func (w EmptyPickupZone) Error() string {
	return fmt.Sprintf("skipping line %d because the pickup zone is empty", w.LineNumber)
}

// BadPickupTime is reported for rows whose pickup time field does not contain
// a recognizable hour of day.
type BadPickupTime struct {
	LineNumber int
	Value      string
}

func (w BadPickupTime) Line() int {
	return w.LineNumber
}

func (w BadPickupTime) Error() string {
	return fmt.Sprintf("skipping line %d because %q does not contain a valid hour", w.LineNumber, w.Value)
}
