package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/jwulff/eclipse/internal/brush"
	"github.com/jwulff/eclipse/internal/config"
	"github.com/jwulff/eclipse/internal/eclipse"
	"github.com/jwulff/eclipse/internal/loader"
	"github.com/jwulff/eclipse/internal/session"
	"github.com/jwulff/eclipse/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// LoadFunc produces the catalog.
type LoadFunc func(ctx context.Context) (loader.Result, error)

// Options wires a Model to its collaborators.
type Options struct {
	Config config.Config
	Load   LoadFunc
	Logger *slog.Logger
}

// pressState tracks a held left button on the chart.
type pressState struct {
	active   bool
	dragging bool
	onPoint  bool
	pointID  int
}

// Model is the root bubbletea model for the eclipse explorer.
type Model struct {
	cfg  config.Config
	load LoadFunc
	log  *slog.Logger
	keys KeyMap

	// Catalog and the chart session driving the panes
	catalog    *eclipse.Catalog
	controller *session.Controller
	globe      *globePane
	chart      *chartPane
	detail     *detailPanel

	// Load state
	loading    bool
	loadFailed bool
	fromCache  bool
	fetchedAt  time.Time
	spinner    spinner.Model

	// UI state
	width     int
	height    int
	layout    layout
	resizeGen int
	press     pressState
	showHelp  bool

	// Errors
	errorMessage   string
	errorTransient bool
}

// New creates a Model that starts loading on Init.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.SpinnerStyle

	return Model{
		cfg:     opts.Config,
		load:    opts.Load,
		log:     log,
		keys:    DefaultKeyMap(),
		loading: true,
		spinner: s,
	}
}

// Init starts the spinner and the catalog load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadCmd(m.load))
}

// loadCmd runs the catalog load off the event loop.
func loadCmd(load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		if load == nil {
			return LoadErrorMsg{Err: fmt.Errorf("no catalog source")}
		}
		res, err := load(context.Background())
		if err != nil {
			return LoadErrorMsg{Err: err}
		}
		return CatalogLoadedMsg{Result: res}
	}
}

// resizeCmd fires ResizeSettledMsg for gen after the debounce period.
func resizeCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ResizeSettledMsg{Gen: gen}
	})
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout = computeLayout(msg.Width, msg.Height)
		m.resizeGen++
		return m, resizeCmd(m.cfg.ResizeDebounce, m.resizeGen)

	case ResizeSettledMsg:
		if msg.Gen != m.resizeGen {
			return m, nil
		}
		cmd := m.rebuild()
		return m, cmd

	case CatalogLoadedMsg:
		m.loading = false
		m.loadFailed = false
		m.errorMessage = ""
		m.catalog = msg.Result.Catalog
		m.fromCache = msg.Result.FromCache
		m.fetchedAt = msg.Result.FetchedAt

		m.globe = newGlobePane()
		m.chart = newChartPane(m.catalog.Records(), m.cfg.DurationMin, m.cfg.DurationMax)
		m.detail = newDetailPanel()
		m.controller = session.NewController(m.catalog, session.Options{
			DateMin:      m.cfg.DateMin,
			DateMax:      m.cfg.DateMax,
			DefaultStart: m.cfg.DateStart,
			Width:        m.cfg.WindowWidth,
		}, session.Targets{Surface: m.globe, Chart: m.chart, Panel: m.detail}, m.log)

		m.log.Info("catalog ready",
			slog.Int("records", m.catalog.Len()),
			slog.Bool("from_cache", m.fromCache),
		)
		cmd := m.rebuild()
		return m, cmd

	case LoadErrorMsg:
		m.loading = false
		m.loadFailed = true
		m.errorMessage = msg.Err.Error()
		m.errorTransient = false
		m.log.Error("catalog load failed", slog.String("error", msg.Err.Error()))
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	return m, nil
}

// rebuild sizes the panes to the current layout and lets the controller
// rebuild the chart when the track width changed.
func (m *Model) rebuild() tea.Cmd {
	if m.controller == nil || m.width == 0 {
		return nil
	}
	l := m.layout
	m.globe.resize(l.width, l.globeRows)
	m.detail.resize(l.detailWidth, l.bottomRows)

	cmd := m.dispatch(session.Resized{TrackWidth: float64(l.plotCols)})
	if s := m.controller.Session(); s != nil {
		m.chart.resize(l.plotCols, l.plotRows, s.Brush().Scale())
	}
	return cmd
}

// dispatch sends ev to the controller. Failures are logged and shown as a
// transient error; the explorer keeps running.
func (m *Model) dispatch(ev session.Event) tea.Cmd {
	if m.controller == nil {
		return nil
	}
	if err := m.controller.Dispatch(ev); err != nil {
		m.log.Warn("event failed", slog.String("error", err.Error()))
		m.errorMessage = err.Error()
		m.errorTransient = true
		return clearTransientErrorCmd()
	}
	return nil
}

func (m Model) session() *session.Session {
	if m.controller == nil {
		return nil
	}
	return m.controller.Session()
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		if !m.loadFailed || m.loading {
			return m, nil
		}
		m.loading = true
		m.loadFailed = false
		m.errorMessage = ""
		return m, tea.Batch(m.spinner.Tick, loadCmd(m.load))
	}

	if m.session() == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		cmd := m.nudge(-1)
		return m, cmd
	case key.Matches(msg, m.keys.Right):
		cmd := m.nudge(1)
		return m, cmd
	case key.Matches(msg, m.keys.FastLeft):
		cmd := m.nudge(-10)
		return m, cmd
	case key.Matches(msg, m.keys.FastRight):
		cmd := m.nudge(10)
		return m, cmd
	case key.Matches(msg, m.keys.Next):
		cmd := m.cycleHover(1)
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		cmd := m.cycleHover(-1)
		return m, cmd
	case key.Matches(msg, m.keys.Select):
		if r, ok := m.session().Hovered(); ok {
			cmd := m.dispatch(session.PointClicked{ID: r.ID})
			return m, cmd
		}
	case key.Matches(msg, m.keys.Clear):
		cmd := m.dispatch(session.GlobeClicked{Hit: nil})
		return m, cmd
	case key.Matches(msg, m.keys.Reset):
		cmd := m.dispatch(session.SelectionCleared{})
		return m, cmd
	case key.Matches(msg, m.keys.Basemap):
		m.globe.toggleBasemap()
	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		m.detail.Update(msg)
	}
	return m, nil
}

// nudge moves the brush by cols columns as a complete synthetic drag.
func (m *Model) nudge(cols int) tea.Cmd {
	x0, _ := m.session().Brush().Extent()
	var cmds []tea.Cmd
	cmds = append(cmds, m.dispatch(session.DragStart{X: x0}))
	cmds = append(cmds, m.dispatch(session.DragMove{X: x0 + float64(cols)}))
	cmds = append(cmds, m.dispatch(session.DragEnd{}))
	return tea.Batch(cmds...)
}

// cycleHover moves the hover to the next or previous record in the window.
func (m *Model) cycleHover(dir int) tea.Cmd {
	selected := m.chart.selectedRecords()
	if len(selected) == 0 {
		return nil
	}
	cur, hovering := m.session().Hovered()
	next := 0
	if dir < 0 {
		next = len(selected) - 1
	}
	if hovering {
		for i, r := range selected {
			if r.ID == cur.ID {
				next = (i + dir + len(selected)) % len(selected)
				break
			}
		}
	}
	return m.setHover(selected[next].ID, true)
}

// setHover moves the hover to id, or clears it when hit is false.
func (m *Model) setHover(id int, hit bool) tea.Cmd {
	if !m.chart.enabled {
		return nil
	}
	cur, hovering := m.session().Hovered()
	if hovering && hit && cur.ID == id {
		return nil
	}
	var cmds []tea.Cmd
	if hovering {
		cmds = append(cmds, m.dispatch(session.PointUnhovered{ID: cur.ID}))
	}
	if hit {
		cmds = append(cmds, m.dispatch(session.PointHovered{ID: id}))
	}
	return tea.Batch(cmds...)
}

// handleMouse turns terminal mouse events into session events. Pressing on
// empty plot space drags the brush; pressing and releasing on a point clicks
// it; motion with no button hovers.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.session() == nil || m.showHelp {
		return m, nil
	}
	l := m.layout

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			m.detail.Update(msg)
			return m, nil
		}
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if col, row, ok := l.plotCell(msg.X, msg.Y); ok {
			if id, hit := m.chart.pointAt(col, row); hit && m.chart.enabled {
				m.press = pressState{active: true, onPoint: true, pointID: id}
				return m, nil
			}
			m.press = pressState{active: true, dragging: true}
			cmd := m.dispatch(session.DragStart{X: float64(col) + 0.5})
			return m, cmd
		}
		if col, row, ok := l.globeCell(msg.X, msg.Y); ok {
			cmd := m.dispatch(session.GlobeClicked{Hit: m.globe.hitAt(col, row)})
			return m, cmd
		}

	case tea.MouseActionMotion:
		if m.press.dragging {
			// Keeps tracking outside the plot until release.
			col := msg.X - l.plotLeft
			cmd := m.dispatch(session.DragMove{X: float64(col) + 0.5})
			return m, cmd
		}
		if m.press.active || msg.Button != tea.MouseButtonNone {
			return m, nil
		}
		col, row, ok := l.plotCell(msg.X, msg.Y)
		id, hit := 0, false
		if ok {
			id, hit = m.chart.pointAt(col, row)
		}
		cmd := m.setHover(id, hit)
		return m, cmd

	case tea.MouseActionRelease:
		p := m.press
		m.press = pressState{}
		if p.dragging {
			cmd := m.dispatch(session.DragEnd{})
			return m, cmd
		}
		if p.onPoint {
			if col, row, ok := l.plotCell(msg.X, msg.Y); ok {
				if id, hit := m.chart.pointAt(col, row); hit && id == p.pointID {
					cmd := m.dispatch(session.PointClicked{ID: id})
					return m, cmd
				}
			}
		}
	}
	return m, nil
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	l := m.layout
	divider := ui.DividerStyle.Render(strings.Repeat("─", m.width))

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, divider)
	sections = append(sections, m.renderGlobe(l))
	sections = append(sections, divider)
	sections = append(sections, m.renderBottom(l))
	sections = append(sections, divider)
	sections = append(sections, m.renderErrorBar())
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("ECLIPSE")
	info := ui.DimStyle.Render(fmt.Sprintf(" — solar eclipses %.0f–%.0f", m.cfg.DateMin, m.cfg.DateMax))
	if m.catalog == nil {
		return title + info
	}
	source := "live"
	if m.fromCache {
		source = "cached " + m.fetchedAt.Local().Format("2006-01-02 15:04")
	}
	return title + info + ui.StatusStyle.Render(fmt.Sprintf("  [%d paths, %s]", m.catalog.Len(), source))
}

func (m Model) renderStatusBar() string {
	s := m.session()
	if s == nil {
		if m.loading {
			return ui.IdleBadgeStyle.Render("○ LOADING")
		}
		return ui.IdleBadgeStyle.Render("○ IDLE")
	}

	var badge string
	if s.Brush().State() == brush.Dragging {
		badge = ui.DragBadgeStyle.Render("● DRAG")
	} else {
		badge = ui.IdleBadgeStyle.Render("○ IDLE")
	}

	groups := eclipse.Aggregate(m.chart.selectedRecords())
	parts := []string{badge, ui.PanelTitleStyle.Render(s.Window().Label())}
	for _, c := range eclipse.Categories {
		parts = append(parts, ui.CategoryStyle(c).Render(fmt.Sprintf("%s %d", c, len(groups.Group(c)))))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderGlobe(l layout) string {
	if m.session() != nil {
		return m.globe.render()
	}

	var lines []string
	switch {
	case m.loading:
		lines = append(lines, "  "+m.spinner.View()+" Loading data...")
	case m.loadFailed:
		lines = append(lines, ui.ErrorStyle.Render("  Could not load eclipse paths."))
		lines = append(lines, ui.DimStyle.Render("  Press r to retry"))
	}
	for len(lines) < l.globeRows {
		lines = append(lines, "")
	}
	return strings.Join(lines[:l.globeRows], "\n")
}

func (m Model) renderBottom(l layout) string {
	if m.session() == nil {
		return strings.Repeat("\n", max(0, l.bottomRows-1))
	}

	chartLines := strings.Split(m.chart.render(l.chartWidth), "\n")
	detailLines := strings.Split(m.detail.render(), "\n")
	divider := ui.DividerStyle.Render("│")

	rows := make([]string, 0, l.bottomRows)
	for i := 0; i < l.bottomRows; i++ {
		cl, dl := "", ""
		if i < len(chartLines) {
			cl = chartLines[i]
		}
		if i < len(detailLines) {
			dl = detailLines[i]
		}
		rows = append(rows, padRight(cl, l.chartWidth)+divider+dl)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderErrorBar() string {
	if m.errorMessage == "" {
		return ""
	}
	return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.errorMessage)
}

func (m Model) renderFooter() string {
	var parts []string
	hint := func(b key.Binding) {
		h := b.Help()
		parts = append(parts, ui.FooterKeyStyle.Render(h.Key)+ui.FooterDescStyle.Render(" "+h.Desc))
	}

	if m.session() != nil {
		hint(m.keys.Left)
		hint(m.keys.Right)
		hint(m.keys.Next)
		hint(m.keys.Select)
		hint(m.keys.Basemap)
	}
	if m.loadFailed {
		hint(m.keys.Retry)
	}
	hint(m.keys.Help)
	hint(m.keys.Quit)

	return strings.Join(parts, "  ")
}

func (m Model) renderHelp() string {
	var lines []string
	lines = append(lines, ui.TitleStyle.Render("Solar eclipses 1600–2200"))
	lines = append(lines, "")
	lines = append(lines, "Drag the band on the chart to pick a window of years.")
	lines = append(lines, "Eclipse paths in the window are drawn on the map.")
	lines = append(lines, "Click a dot or a path to jump to that eclipse.")
	lines = append(lines, "")
	for _, b := range m.keys.helpBindings() {
		h := b.Help()
		lines = append(lines, ui.FooterKeyStyle.Render(fmt.Sprintf("%-8s", h.Key))+" "+ui.FooterDescStyle.Render(h.Desc))
	}
	lines = append(lines, "")
	lines = append(lines, ui.DimStyle.Render("Data: NASA eclipse paths via an ArcGIS feature service"))
	lines = append(lines, ui.DimStyle.Render("Press any key to close"))

	box := ui.HelpBoxStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Helpers

func padRight(s string, width int) string {
	// Get visible length (ignoring ANSI codes)
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	// Simple truncation for non-styled strings
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}
