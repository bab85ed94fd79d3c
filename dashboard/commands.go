package dashboard

import (
	"crypto/md5"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ridereport/tripstats"
	"github.com/ridereport/tripstats/report"
)

// loadReportCmd returns a command that re-ingests the input file and builds a
// fresh report. Every reload uses a new analyzer, so a reload in flight can
// never observe half-updated counts.
func loadReportCmd(opts Options) tea.Cmd {
	return func() tea.Msg {
		a := tripstats.NewAnalyzer()
		sum := a.IngestFile(opts.Path, tripstats.Parser{Dialect: opts.Dialect})
		r := report.Build(a, sum, opts.K)

		var hours [24]int
		if len(r.TopZones) > 0 {
			hours = a.HourlyCounts(r.TopZones[0].Zone)
		}

		h := md5.New()
		r.Hash(h)
		return reportLoadedMsg{
			report:       r,
			topZoneHours: hours,
			fingerprint:  fmt.Sprintf("%x", h.Sum(nil)),
		}
	}
}

// waitForChangeCmd returns a command that waits for the next settled file
// change.
func waitForChangeCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		_, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// waitForWatchErrCmd returns a command that waits for the next watcher error.
func waitForWatchErrCmd(ch <-chan error) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return watchErrMsg{err: err}
	}
}
