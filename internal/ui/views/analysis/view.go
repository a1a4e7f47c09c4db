package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analysisdto "healthlog/internal/modules/analysis/dto"
	"healthlog/internal/ui/theme"
)

type Port interface {
	Analyze(ctx context.Context) (analysisdto.AnalysisOutput, error)
}

type ResultMsg struct {
	Output analysisdto.AnalysisOutput
	Err    error
}

type Model struct {
	port   Port
	body   viewport.Model
	out    analysisdto.AnalysisOutput
	err    error
	ready  bool
	width  int
	height int
}

func New(port Port) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1, 2)
	return Model{port: port, body: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Run()
}

// Run recomputes the analysis from the current records.
func (m Model) Run() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return ResultMsg{Err: fmt.Errorf("analysis is not configured")}
		}
		out, err := m.port.Analyze(context.Background())
		return ResultMsg{Output: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = max(msg.Width-2, 1)
		m.body.Height = max(msg.Height-2, 1)
		m.body.SetContent(m.render())
		return m, nil
	case ResultMsg:
		m.ready = true
		m.out = msg.Output
		m.err = msg.Err
		m.body.SetContent(m.render())
		m.body.GotoTop()
		return m, nil
	}
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return theme.Pane.Padding(0).Width(max(m.width-2, 1)).Height(max(m.height-2, 1)).Render(m.body.View())
}

// Output is the last computed analysis.
func (m Model) Output() analysisdto.AnalysisOutput {
	return m.out
}

func (m Model) render() string {
	if !m.ready {
		return theme.Muted.Render("Analyzing…")
	}
	if m.err != nil {
		return theme.Bad.Render("analysis failed: " + m.err.Error())
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Correlations") + "  " + theme.Muted.Render(fmt.Sprintf("%d records", m.out.RecordCount)) + "\n\n")
	if !m.out.Sufficient {
		sb.WriteString(fmt.Sprintf("Not enough data yet. Record at least %d days to see correlations.\n", m.out.MinRecords))
		return sb.String()
	}
	if len(m.out.Correlations) == 0 {
		sb.WriteString("No clear correlations found.\n")
	}
	symptomW, factorW := 0, 0
	for _, c := range m.out.Correlations {
		symptomW = max(symptomW, len(c.SymptomLabel))
		factorW = max(factorW, len(c.FactorLabel))
	}
	for i, c := range m.out.Correlations {
		sb.WriteString(fmt.Sprintf("%3d. %-*s  %-*s  %5.1f%%  ", i+1, symptomW, c.SymptomLabel, factorW, c.FactorLabel, c.Percentage))
		sb.WriteString(theme.Strength(c.Strength))
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("  %d/%d", c.WithFactor, c.Total)) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("strong ≥ 80%  moderate 65-79%  weak 50-64%  ·  a: re-run"))
	return sb.String()
}
