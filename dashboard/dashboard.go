// Package dashboard implements a live terminal view of the trip rankings.
// It re-ingests the input file whenever the file changes on disk.
package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/ridereport/tripstats/csv"
	"github.com/ridereport/tripstats/report"
)

// Options configures the dashboard.
type Options struct {
	// Path is the trip record file to ingest and watch.
	Path string
	// Dialect is the file's CSV dialect.
	Dialect csv.Dialect
	// K is the ranking size. Non-positive values produce empty rankings.
	K int
	// Debounce is how long to wait after a file change before re-ingesting.
	Debounce time.Duration
}

type viewID int

const (
	viewRankings viewID = iota
	viewChart
)

// Model is the bubbletea model for the dashboard.
type Model struct {
	opts Options

	report       report.Report
	topZoneHours [24]int
	fingerprint  string
	reloads      int

	changes   <-chan struct{}
	watchErrs <-chan error

	table   table.Model
	spinner spinner.Model
	keys    keyMap
	styles  Styles

	view    viewID
	loading bool
	ready   bool
	err     error

	width  int
	height int
}

// New builds the dashboard model. changes delivers settled file change
// notifications and watchErrs delivers watcher failures; either may be nil,
// which disables live reloading.
func New(opts Options, changes <-chan struct{}, watchErrs <-chan error) *Model {
	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Zone", Width: 24},
		{Title: "Trips", Width: 8},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true)
	ts.Selected = ts.Selected.Bold(true)
	t.SetStyles(ts)

	return &Model{
		opts:      opts,
		changes:   changes,
		watchErrs: watchErrs,
		table:     t,
		spinner:   sp,
		keys:      defaultKeyMap(),
		styles:    styles,
		loading:   true,
	}
}

// Init starts the first ingestion pass and subscribes to file changes.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, loadReportCmd(m.opts)}
	if m.changes != nil {
		cmds = append(cmds, waitForChangeCmd(m.changes))
	}
	if m.watchErrs != nil {
		cmds = append(cmds, waitForWatchErrCmd(m.watchErrs))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.table.SetHeight(max(3, m.height-14))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, loadReportCmd(m.opts))
		case key.Matches(msg, m.keys.ToggleView):
			if m.view == viewRankings {
				m.view = viewChart
			} else {
				m.view = viewRankings
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case reportLoadedMsg:
		m.loading = false
		if msg.fingerprint == m.fingerprint {
			return m, nil
		}
		m.applyReport(msg)
		return m, nil

	case fileChangedMsg:
		m.loading = true
		cmds := []tea.Cmd{m.spinner.Tick, loadReportCmd(m.opts)}
		if m.changes != nil {
			cmds = append(cmds, waitForChangeCmd(m.changes))
		}
		return m, tea.Batch(cmds...)

	case watchErrMsg:
		m.err = msg.err
		if m.watchErrs != nil {
			return m, waitForWatchErrCmd(m.watchErrs)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) applyReport(msg reportLoadedMsg) {
	m.report = msg.report
	m.topZoneHours = msg.topZoneHours
	m.fingerprint = msg.fingerprint
	m.reloads++

	rows := make([]table.Row, len(m.report.TopZones))
	for i, z := range m.report.TopZones {
		rows[i] = table.Row{strconv.Itoa(i + 1), z.Zone, strconv.Itoa(z.Count)}
	}
	m.table.SetRows(rows)
}

// View renders the dashboard.
func (m *Model) View() string {
	if !m.ready {
		return fmt.Sprintf("\n  %s Ingesting %s\n", m.spinner.View(), m.opts.Path)
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Trip Pickup Rankings"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtle.Render(m.opts.Path))
	b.WriteString("\n\n")
	b.WriteString(m.renderSummary())
	b.WriteString("\n")

	if m.view == viewChart {
		b.WriteString(m.renderChart())
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(m.renderSlots())
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("watch error: %s", m.err)))
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *Model) renderSummary() string {
	r := m.report
	line := fmt.Sprintf("%d trips in %d zones (%d of %d rows skipped)",
		r.Trips, r.Zones, r.RowsSkipped, r.RowsSeen)
	if m.loading {
		line = fmt.Sprintf("%s %s", m.spinner.View(), line)
	}
	if r.GeneratedAt.IsZero() {
		return line + "\n"
	}
	detail := m.styles.Subtle.Render(fmt.Sprintf("updated %s, reload %d",
		r.GeneratedAt.Local().Format("15:04:05"), m.reloads))
	return line + "\n" + detail + "\n"
}

func (m *Model) renderSlots() string {
	if len(m.report.TopSlots) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Section.Render("Busiest hours"))
	b.WriteString("\n")
	for _, s := range m.report.TopSlots {
		b.WriteString(fmt.Sprintf("  %-24s %02d:00 %6d\n", s.Zone, s.Hour, s.Count))
	}
	return b.String()
}

func (m *Model) renderChart() string {
	if len(m.report.TopZones) == 0 {
		return m.styles.Subtle.Render("No data available") + "\n"
	}
	series := make([]float64, len(m.topZoneHours))
	for i, c := range m.topZoneHours {
		series[i] = float64(c)
	}
	width := m.width - 12
	if width < 20 {
		width = 20
	}
	height := m.height - 14
	if height < 5 {
		height = 5
	}
	if height > 12 {
		height = 12
	}
	graph := asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("trips per hour of day in %s", m.report.TopZones[0].Zone)),
	)
	return m.styles.Chart.Render(graph) + "\n"
}

func (m *Model) renderHelp() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	return m.styles.Help.Render(strings.Join(parts, "   "))
}

// Run starts the dashboard and blocks until the user quits.
func Run(opts Options) error {
	if opts.Debounce <= 0 {
		opts.Debounce = 100 * time.Millisecond
	}
	w, err := newWatcher(opts.Path, opts.Debounce)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", opts.Path, err)
	}
	defer w.Close()

	m := New(opts, w.changes, w.errs)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}
	return nil
}
