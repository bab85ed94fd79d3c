package dashboard

import "github.com/ridereport/tripstats/report"

// reportLoadedMsg carries the result of one ingestion pass.
type reportLoadedMsg struct {
	report report.Report
	// topZoneHours is the trips-per-hour series for the highest ranked zone.
	topZoneHours [24]int
	// fingerprint identifies the report content so that reloads producing
	// the same rankings do not redraw.
	fingerprint string
}

// fileChangedMsg is sent when the watched input file settles after a change.
type fileChangedMsg struct{}

// watchErrMsg carries a file watcher error.
type watchErrMsg struct {
	err error
}
