package records

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analysisdto "healthlog/internal/modules/analysis/dto"
	recorddto "healthlog/internal/modules/record/dto"
	"healthlog/internal/ui/theme"
)

type Port interface {
	ListRecords(ctx context.Context) ([]recorddto.RecordOutput, error)
	ActiveFactors(ctx context.Context, date string) (analysisdto.ActiveFactorsOutput, error)
}

type LoadedMsg struct {
	Records []recorddto.RecordOutput
	Err     error
}

type FactorsLoadedMsg struct {
	Factors analysisdto.ActiveFactorsOutput
	Err     error
}

type recordItem struct {
	record recorddto.RecordOutput
}

func (i recordItem) Title() string { return i.record.Date }
func (i recordItem) Description() string {
	if len(i.record.Symptoms) == 0 {
		return "no symptoms"
	}
	return strings.Join(i.record.Symptoms, ", ")
}
func (i recordItem) FilterValue() string {
	return i.record.Date + " " + strings.Join(i.record.Symptoms, " ")
}

type Model struct {
	port    Port
	list    list.Model
	factors analysisdto.ActiveFactorsOutput
	detail  viewport.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Records"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, detail: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the records again, e.g. after a mutation.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		records, err := m.port.ListRecords(context.Background())
		return LoadedMsg{Records: records, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			m.detail.SetContent(theme.Bad.Render(msg.Err.Error()))
			return m, nil
		}
		items := make([]list.Item, len(msg.Records))
		for i, r := range msg.Records {
			items[i] = recordItem{record: r}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Records) > 0 {
			cmds = append(cmds, m.loadFactorsCmd(msg.Records[0].Date))
		}
		m.detail.SetContent(m.renderDetail())

	case FactorsLoadedMsg:
		if msg.Err == nil {
			m.factors = msg.Factors
		}
		m.detail.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		prev := m.list.Index()
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
		if m.list.Index() != prev {
			if date, ok := m.SelectedDate(); ok {
				cmds = append(cmds, m.loadFactorsCmd(date))
			}
		}
		m.detail, cmd = m.detail.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.spinner.View()+" Loading records…")
	}
	listW := m.width * 4 / 10
	detailW := m.width - listW
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := theme.Pane.Padding(0).Width(max(detailW-2, 1)).Height(max(m.height-2, 1)).Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) SelectedDate() (string, bool) {
	if item, ok := m.list.SelectedItem().(recordItem); ok {
		return item.record.Date, true
	}
	return "", false
}

// Filtering reports whether the list filter has the keyboard.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = max(detailW-4, 1)
	m.detail.Height = max(m.height-4, 1)
}

func (m Model) selected() (recorddto.RecordOutput, bool) {
	if item, ok := m.list.SelectedItem().(recordItem); ok {
		return item.record, true
	}
	return recorddto.RecordOutput{}, false
}

func (m Model) renderDetail() string {
	r, ok := m.selected()
	if !ok {
		return theme.Muted.Render("No records yet. Add one with `healthlog record add`.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(r.Date) + "\n\n")
	field := func(label, value string) {
		if value == "" {
			value = theme.Muted.Render("-")
		}
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-15s", label)) + value + "\n")
	}
	field("meals", strings.Join(r.Meals, ", "))
	sleep := ""
	if r.SleepHours > 0 {
		sleep = fmt.Sprintf("%dh", r.SleepHours)
	}
	field("sleep", sleep)
	field("stress", r.Stress)
	field("exercise", r.Exercise)
	field("bowel", r.Bowel)
	field("commute", r.Commute)
	field("work count", r.WorkCount)
	field("relax time", r.RelaxTime)
	field("freelance time", r.FreelanceTime)
	field("ahj", r.AHJ)
	sb.WriteString("\n")
	if len(r.Symptoms) == 0 {
		field("symptoms", theme.Good.Render("none"))
	} else {
		field("symptoms", theme.Hot.Render(strings.Join(r.Symptoms, ", ")))
	}
	if m.factors.Date == r.Date {
		sb.WriteString("\n" + theme.Title.Render("Active factors") + "\n")
		if len(m.factors.Factors) == 0 {
			sb.WriteString(theme.Muted.Render("  none") + "\n")
		}
		for _, f := range m.factors.Factors {
			sb.WriteString("  • " + f.Label + "\n")
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("d: delete  r: refresh"))
	return sb.String()
}

func (m Model) loadFactorsCmd(date string) tea.Cmd {
	return func() tea.Msg {
		factors, err := m.port.ActiveFactors(context.Background(), date)
		return FactorsLoadedMsg{Factors: factors, Err: err}
	}
}
