// Package report renders aggregated trip statistics for people and programs.
package report

import (
	"strings"
	"time"

	"github.com/ridereport/tripstats"
)

// DefaultK is the number of entries per ranking when no explicit k is
// requested.
const DefaultK = 10

// Report is a point-in-time snapshot of an analyzer's rankings and totals.
type Report struct {
	GeneratedAt time.Time             `json:"generated_at"`
	K           int                   `json:"k"`
	RowsSeen    int                   `json:"rows_seen"`
	RowsSkipped int                   `json:"rows_skipped"`
	Trips       int                   `json:"trips"`
	Zones       int                   `json:"zones"`
	TopZones    []tripstats.ZoneCount `json:"top_zones"`
	TopSlots    []tripstats.SlotCount `json:"top_slots"`
}

// Build snapshots the analyzer's rankings, limited to k entries each. The
// summary should come from the ingestion pass that populated the analyzer;
// pass the zero value if the analyzer was populated directly.
func Build(a *tripstats.Analyzer, sum tripstats.IngestSummary, k int) Report {
	zones := a.TopZones(k)
	if zones == nil {
		zones = []tripstats.ZoneCount{}
	}
	slots := a.TopBusySlots(k)
	if slots == nil {
		slots = []tripstats.SlotCount{}
	}
	return Report{
		GeneratedAt: time.Now().UTC(),
		K:           k,
		RowsSeen:    sum.RowsSeen,
		RowsSkipped: sum.RowsSkipped,
		Trips:       a.TotalTrips(),
		Zones:       a.NumZones(),
		TopZones:    zones,
		TopSlots:    slots,
	}
}

// Format describes the encoding of an exported report.
type Format int32

const (
	FormatText Format = 0
	FormatJSON Format = 1
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	default:
		return "text"
	}
}

// ParseFormat parses a format name. The empty string parses as FormatText.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, true
	case "json":
		return FormatJSON, true
	default:
		return FormatText, false
	}
}
