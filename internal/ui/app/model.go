package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analysisdto "healthlog/internal/modules/analysis/dto"
	exportdto "healthlog/internal/modules/export/dto"
	recorddto "healthlog/internal/modules/record/dto"
	"healthlog/internal/ui/components"
	"healthlog/internal/ui/theme"
	analysisview "healthlog/internal/ui/views/analysis"
	recordsview "healthlog/internal/ui/views/records"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type recordPort interface {
	ListRecords(ctx context.Context) ([]recorddto.RecordOutput, error)
	DeleteRecord(ctx context.Context, date string) (recorddto.DeleteOutput, error)
	DeleteToday(ctx context.Context) (recorddto.DeleteOutput, error)
	Reindex(ctx context.Context) (recorddto.ReindexOutput, error)
}

type analysisPort interface {
	Analyze(ctx context.Context) (analysisdto.AnalysisOutput, error)
	ActiveFactors(ctx context.Context, date string) (analysisdto.ActiveFactorsOutput, error)
}

type exportPort interface {
	ExportToDir(ctx context.Context, input exportdto.ExportInput, dir string) (string, exportdto.ExportOutput, error)
}

// ─── tabs ────────────────────────────────────────────────────────────────────

type tabID int

const (
	tabRecords tabID = iota
	tabAnalysis
	tabCount
)

var tabLabels = [tabCount]string{"Records", "Analysis"}

// ─── async messages ──────────────────────────────────────────────────────────

type deletedMsg struct {
	out recorddto.DeleteOutput
	err error
}

type exportedMsg struct {
	path    string
	records int
	err     error
}

type reindexedMsg struct {
	out recorddto.ReindexOutput
	err error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Analyze key.Binding
	Export  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete record")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Analyze: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "re-run analysis")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export json")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Delete, k.Refresh},
		{k.Analyze, k.Export},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes keys between the Records and
// Analysis tabs and runs palette commands against the ports.
type Model struct {
	exportDir string

	records recordPort
	export  exportPort

	recordsView  recordsview.Model
	analysisView analysisview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// NewModel wires the TUI. export may be nil, in which case export commands
// report an error in the status bar.
func NewModel(exportDir string, records recordPort, analysis analysisPort, export exportPort) Model {
	return Model{
		exportDir:    exportDir,
		records:      records,
		export:       export,
		recordsView:  recordsview.New(recordsPortBridge{records: records, analysis: analysis}),
		analysisView: analysisview.New(analysis),
		activeTab:    tabRecords,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.recordsView.Init(), m.analysisView.Init())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case recordsview.LoadedMsg, recordsview.FactorsLoadedMsg:
		var cmd tea.Cmd
		m.recordsView, cmd = m.recordsView.Update(msg)
		return m, cmd

	case analysisview.ResultMsg:
		var cmd tea.Cmd
		m.analysisView, cmd = m.analysisView.Update(msg)
		return m, cmd

	case deletedMsg:
		switch {
		case msg.err != nil:
			m.status = "delete failed: " + msg.err.Error()
		case !msg.out.Removed:
			m.status = "no record for " + msg.out.Date
		default:
			m.status = "deleted " + msg.out.Date
		}
		return m, tea.Batch(m.recordsView.Reload(), m.analysisView.Run())

	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("exported %d records to %s", msg.records, msg.path)
		}
		return m, nil

	case reindexedMsg:
		if msg.err != nil {
			m.status = "reindex failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("reindexed %d records", msg.out.Indexed)
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.activeTab == tabRecords && m.recordsView.Filtering() {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "d":
			if m.activeTab == tabRecords {
				if date, ok := m.recordsView.SelectedDate(); ok {
					return m, m.deleteCmd(date)
				}
			}
		case "r":
			return m, tea.Batch(m.recordsView.Reload(), m.analysisView.Run())
		case "a":
			m.activeTab = tabAnalysis
			m.status = "analysis refreshed"
			return m, m.analysisView.Run()
		case "e":
			return m, m.exportCmd(exportdto.ExportInput{Format: "json"})
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabRecords:
		m.recordsView, tabCmd = m.recordsView.Update(msg)
	case tabAnalysis:
		m.analysisView, tabCmd = m.analysisView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabAnalysis:
		content = m.analysisView.View()
	default:
		content = m.recordsView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "healthlog  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette ─────────────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "analyze":
		m.activeTab = tabAnalysis
		return m, m.analysisView.Run()
	case "delete":
		if len(parts) < 2 {
			m.status = "usage: delete <date>"
			return m, nil
		}
		return m, m.deleteCmd(parts[1])
	case "delete:today":
		return m, m.deleteTodayCmd()
	case "export":
		format := "json"
		if len(parts) >= 2 {
			format = parts[1]
		}
		return m, m.exportCmd(exportdto.ExportInput{Format: format})
	case "export:plugin":
		if len(parts) < 2 {
			m.status = "usage: export:plugin <name>"
			return m, nil
		}
		return m, m.exportCmd(exportdto.ExportInput{Format: "plugin", PluginName: parts[1]})
	case "reindex":
		return m, m.reindexCmd()
	case "refresh":
		return m, tea.Batch(m.recordsView.Reload(), m.analysisView.Run())
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.recordsView, _ = m.recordsView.Update(sz)
	m.analysisView, _ = m.analysisView.Update(sz)
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) deleteCmd(date string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.records.DeleteRecord(context.Background(), date)
		return deletedMsg{out: out, err: err}
	}
}

func (m Model) deleteTodayCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.records.DeleteToday(context.Background())
		return deletedMsg{out: out, err: err}
	}
}

func (m Model) exportCmd(input exportdto.ExportInput) tea.Cmd {
	return func() tea.Msg {
		if m.export == nil {
			return exportedMsg{err: fmt.Errorf("export is not configured")}
		}
		path, out, err := m.export.ExportToDir(context.Background(), input, m.exportDir)
		return exportedMsg{path: path, records: out.Records, err: err}
	}
}

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.records.Reindex(context.Background())
		return reindexedMsg{out: out, err: err}
	}
}

// ─── port bridges ────────────────────────────────────────────────────────────

type recordsPortBridge struct {
	records  recordPort
	analysis analysisPort
}

func (b recordsPortBridge) ListRecords(ctx context.Context) ([]recorddto.RecordOutput, error) {
	return b.records.ListRecords(ctx)
}

func (b recordsPortBridge) ActiveFactors(ctx context.Context, date string) (analysisdto.ActiveFactorsOutput, error) {
	return b.analysis.ActiveFactors(ctx, date)
}
