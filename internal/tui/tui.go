// Package tui provides a Bubble Tea inspector for cast files: header
// metadata, markers, and the event stream. It lists metadata only; it
// does not play back or render terminal output.
package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robmoss/asciinema-scripted/internal/cast"
)

// ── Styles ────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Background(lipgloss.Color("235"))

	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	kindOutputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	kindInputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	kindMarkerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	kindResizeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// ── Tab definitions ─────────────────

type tabID int

const (
	tabSummary tabID = iota
	tabMarkers
	tabEvents
	tabCount
)

var tabNames = [tabCount]string{"Summary", "Markers", "Events"}

// ── Model ────────────────────

// Model is the root Bubble Tea model for the cast inspector.
type Model struct {
	cast      *cast.AsciiCast
	filename  string
	activeTab tabID
	viewports [tabCount]viewport.Model
	width     int
	height    int
	ready     bool
}

// New creates an inspector model for the given cast and source filename.
func New(c *cast.AsciiCast, filename string) Model {
	return Model{cast: c, filename: filepath.Base(filename)}
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "l", "right":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab", "h", "left":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		case "1", "2", "3":
			m.activeTab = tabID(msg.String()[0] - '1')
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.initViewports()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render("  ascript  " + m.filename)

	var tabParts []string
	for i := tabID(0); i < tabCount; i++ {
		label := fmt.Sprintf(" %d %s ", i+1, tabNames[i])
		if i == m.activeTab {
			tabParts = append(tabParts, activeTabStyle.Render(label))
		} else {
			tabParts = append(tabParts, inactiveTabStyle.Render(label))
		}
		if i < tabCount-1 {
			tabParts = append(tabParts, tabSepStyle.Render("│"))
		}
	}
	tabRow := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabParts...))

	content := m.viewports[m.activeTab].View()

	hint := "  ←/→ tab  ↑/↓ scroll  1-3 jump  q quit"
	pct := fmt.Sprintf("%3.0f%%", m.viewports[m.activeTab].ScrollPercent()*100)
	pad := m.width - lipgloss.Width(hint) - len(pct) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(
		hint + strings.Repeat(" ", pad) + pct,
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabRow, content, statusBar)
}

// ── Viewport management ───────────────────────────────────────────────────────

func (m *Model) initViewports() {
	// title(1) + tabRow(1) + statusBar(1) = 3 fixed rows
	vpHeight := m.height - 3
	if vpHeight < 1 {
		vpHeight = 1
	}
	for i := tabID(0); i < tabCount; i++ {
		vp := viewport.New(m.width, vpHeight)
		vp.SetContent(m.renderTab(i))
		m.viewports[i] = vp
	}
}

// ── Tab renderers ─────────────────────────────────────────────────────────────

func (m *Model) renderTab(t tabID) string {
	switch t {
	case tabSummary:
		return m.renderSummary()
	case tabMarkers:
		return m.renderMarkers()
	case tabEvents:
		return m.renderEvents()
	}
	return ""
}

func heading(s string) string {
	return "\n" + sectionHeader.Render("  "+s) + "\n\n"
}

func (m *Model) renderSummary() string {
	h := m.cast.Header
	var sb strings.Builder
	sb.WriteString(heading("Cast Summary"))

	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-14s", label)) + "  " + value + "\n")
	}
	row("Version:", strconv.Itoa(h.Version))
	row("Geometry:", fmt.Sprintf("%d × %d", h.Width, h.Height))
	if h.Title != "" {
		row("Title:", h.Title)
	}
	if h.Command != "" {
		row("Command:", h.Command)
	}
	if h.Timestamp != nil {
		row("Timestamp:", strconv.FormatInt(*h.Timestamp, 10))
	}
	if h.Duration != nil {
		row("Duration:", formatSeconds(*h.Duration))
	}
	if h.IdleTimeLimit != nil {
		row("Idle limit:", formatSeconds(*h.IdleTimeLimit))
	}

	counts := map[cast.EventKind]int{}
	for _, ev := range m.cast.Events {
		counts[ev.Kind]++
	}
	sb.WriteString(heading("Events"))
	row("Output:", strconv.Itoa(counts[cast.Output]))
	row("Input:", strconv.Itoa(counts[cast.Input]))
	row("Markers:", strconv.Itoa(counts[cast.Marker]))
	row("Resizes:", strconv.Itoa(counts[cast.Resize]))
	if n := len(m.cast.Events); n > 0 {
		row("End time:", formatSeconds(m.cast.Events[n-1].Time))
	}
	return sb.String()
}

func (m *Model) renderMarkers() string {
	var markers []cast.Event
	for _, ev := range m.cast.Events {
		if ev.Kind == cast.Marker {
			markers = append(markers, ev)
		}
	}

	var sb strings.Builder
	sb.WriteString(heading(fmt.Sprintf("Markers (%d)", len(markers))))
	if len(markers) == 0 {
		sb.WriteString(dimStyle.Render("  (none)") + "\n")
		return sb.String()
	}
	for i, ev := range markers {
		num := dimStyle.Render(fmt.Sprintf("  %3d.", i+1))
		ts := timeStyle.Render(fmt.Sprintf("%10s", formatSeconds(ev.Time)))
		sb.WriteString(fmt.Sprintf("%s  %s  %s\n\n", num, ts, ev.Data))
	}
	return sb.String()
}

func (m *Model) renderEvents() string {
	var sb strings.Builder
	sb.WriteString(heading(fmt.Sprintf("Events (%d)", len(m.cast.Events))))
	if len(m.cast.Events) == 0 {
		sb.WriteString(dimStyle.Render("  (none)") + "\n")
		return sb.String()
	}
	for _, ev := range m.cast.Events {
		ts := timeStyle.Render(fmt.Sprintf("  %10s", formatSeconds(ev.Time)))
		var badge, text string
		switch ev.Kind {
		case cast.Output:
			badge = kindOutputStyle.Render("  OUT   ")
			text = preview(ev.Data)
		case cast.Input:
			badge = kindInputStyle.Render("  IN    ")
			text = preview(ev.Data)
		case cast.Marker:
			badge = kindMarkerStyle.Render("  MARK  ")
			text = ev.Data
		case cast.Resize:
			badge = kindResizeStyle.Render("  SIZE  ")
			text = fmt.Sprintf("%d × %d", ev.Cols, ev.Rows)
		case cast.Comment:
			badge = kindMarkerStyle.Render("  NOTE  ")
			text = ev.Data
		}
		sb.WriteString(ts + badge + text + "\n")
	}
	return sb.String()
}

// preview renders event text with control characters escaped, truncated
// to a single displayable line.
func preview(s string) string {
	const maxLen = 60
	quoted := strconv.Quote(s)
	quoted = quoted[1 : len(quoted)-1]
	if len(quoted) > maxLen {
		return quoted[:maxLen] + dimStyle.Render("…")
	}
	return quoted
}

func formatSeconds(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64) + "s"
}

// Run starts the inspector for the given cast.
func Run(c *cast.AsciiCast, filename string) error {
	p := tea.NewProgram(New(c, filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
