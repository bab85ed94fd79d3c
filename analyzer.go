// Package tripstats ingests ride-hailing trip records and ranks pickup zones
// and (zone, hour) slots by trip volume.
package tripstats

import "strings"

// ZoneCount is the total number of trips picked up in a zone.
type ZoneCount struct {
	Zone  string `json:"zone"`
	Count int    `json:"count"`
}

// SlotCount is the number of trips picked up in a zone during one hour of day.
type SlotCount struct {
	Zone  string `json:"zone"`
	Hour  int    `json:"hour"`
	Count int    `json:"count"`
}

type slotKey struct {
	zone string
	hour int
}

// Analyzer accumulates pickup counts and answers top-K queries over them.
//
// An analyzer owns its counts exclusively. They are cleared at the start of
// every ingestion pass, grow monotonically while records are added, and are
// read-only while queries run. For every zone the zone count equals the sum
// of that zone's slot counts.
type Analyzer struct {
	zoneCounts map[string]int
	slotCounts map[slotKey]int
	trips      int
}

// NewAnalyzer returns an empty analyzer.
func NewAnalyzer() *Analyzer {
	a := &Analyzer{}
	a.Reset()
	return a
}

// Reset clears all accumulated counts.
func (a *Analyzer) Reset() {
	a.zoneCounts = map[string]int{}
	a.slotCounts = map[slotKey]int{}
	a.trips = 0
}

// Record adds one pickup observation for the zone at the given hour of day.
//
// The zone is normalized the way the parser normalizes it. Observations with
// an empty zone or an hour outside [0, 23] are dropped so that the zone and
// slot counts cannot drift apart.
func (a *Analyzer) Record(zone string, hour int) {
	zone = strings.ToUpper(strings.TrimSpace(zone))
	if zone == "" || hour < 0 || hour > 23 {
		return
	}
	if a.zoneCounts == nil {
		a.Reset()
	}
	a.zoneCounts[zone]++
	a.slotCounts[slotKey{zone, hour}]++
	a.trips++
}

// NumZones is the number of distinct zones observed.
func (a *Analyzer) NumZones() int {
	return len(a.zoneCounts)
}

// TotalTrips is the number of observations recorded since the last reset.
func (a *Analyzer) TotalTrips() int {
	return a.trips
}

// TopZones returns the k busiest zones ordered by trip count descending, with
// ties broken by zone ascending. It returns fewer than k entries when fewer
// zones have been observed, and no entries when k <= 0.
func (a *Analyzer) TopZones(k int) []ZoneCount {
	if k <= 0 {
		return nil
	}
	sel := newTopK(k, zoneBetter)
	for zone, count := range a.zoneCounts {
		sel.offer(ZoneCount{Zone: zone, Count: count})
	}
	return sel.take()
}

// TopBusySlots returns the k busiest (zone, hour) slots ordered by trip count
// descending, with ties broken by zone ascending then hour ascending. Slots
// with no trips never appear. It returns no entries when k <= 0.
func (a *Analyzer) TopBusySlots(k int) []SlotCount {
	if k <= 0 {
		return nil
	}
	sel := newTopK(k, slotBetter)
	for key, count := range a.slotCounts {
		sel.offer(SlotCount{Zone: key.zone, Hour: key.hour, Count: count})
	}
	return sel.take()
}

// HourlyCounts returns the zone's trip count for each hour of day. The zone
// is normalized the way Record normalizes it; an unknown zone yields all
// zeroes.
func (a *Analyzer) HourlyCounts(zone string) [24]int {
	zone = strings.ToUpper(strings.TrimSpace(zone))
	var counts [24]int
	for h := range counts {
		counts[h] = a.slotCounts[slotKey{zone, h}]
	}
	return counts
}

// zoneBetter reports whether a ranks above b: count descending, then zone
// ascending.
func zoneBetter(a, b ZoneCount) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Zone < b.Zone
}

// slotBetter reports whether a ranks above b: count descending, then zone
// ascending, then hour ascending.
func slotBetter(a, b SlotCount) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	if a.Zone != b.Zone {
		return a.Zone < b.Zone
	}
	return a.Hour < b.Hour
}
