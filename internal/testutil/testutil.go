// Package testutil builds trip record fixtures shared by tests.
package testutil

import (
	"strings"
	"testing"

	"github.com/ridereport/tripstats"
)

// Header is the column header row of the trip record corpora.
const Header = "TripID,PickupZoneID,DropoffZoneID,PickupDateTime,TripDistance,FareAmount"

// Row builds a well-formed trip record line. The remaining columns carry
// plausible filler values; only the pickup zone and pickup time matter to the
// analyzer.
func Row(id, zone, pickupTime string) string {
	return strings.Join([]string{id, zone, "Z900", pickupTime, "2.5", "14.75"}, ",")
}

// Rows joins lines into file content with a trailing newline.
func Rows(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// Ingest runs one ingestion pass over content with the default dialect and
// returns the loaded analyzer and its summary.
func Ingest(t *testing.T, content string) (*tripstats.Analyzer, tripstats.IngestSummary) {
	t.Helper()
	a := tripstats.NewAnalyzer()
	sum := a.IngestReader(strings.NewReader(content), tripstats.Parser{})
	return a, sum
}

// DirtyCorpus is file content that exercises the skip rules: an embedded
// header, a ragged row, a blank zone, a malformed time and AM/PM variants.
// Ingesting it yields 6 trips: ZONEA with 3 (hours 8, 8, 20), ZONEB with 2
// (hours 9, 9) and ZONEC with 1 (hour 0).
func DirtyCorpus() string {
	return Rows(
		Header,
		Row("T1", "ZoneA", "2024-03-01 08:15:00"),
		Row("T2", " zonea ", "2024-03-01 08:45:10"),
		Row("T3", "ZoneB", "2024-03-01 09:05:59"),
		Row("T4", "ZoneA", "2024-03-01 8:20 PM"),
		Header,
		Row("T5", "", "2024-03-01 10:00:00"),
		"T6,ZoneX,Z900",
		Row("T7", "ZoneX", "2024-03-01 99:00:00"),
		Row("T8", "ZoneB", "2024-03-01 9:59 AM"),
		Row("T9", "ZoneC", "2024-03-01 12:01 AM"),
	)
}
