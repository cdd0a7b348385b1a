package panels

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/budgetsim/internal/simulation"
	"github.com/zappabad/budgetsim/tui/styles"
)

// PeriodsPanel lists every simulated period in a table.
type PeriodsPanel struct {
	table   table.Model
	periods []simulation.PeriodSummary
	stopped bool

	focused bool
	width   int
	height  int
}

// NewPeriodsPanel creates an empty periods panel.
func NewPeriodsPanel() *PeriodsPanel {
	t := table.New(
		table.WithColumns(periodColumns()),
		table.WithHeight(5),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.BorderColor).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.TextSecondaryColor)
	s.Selected = s.Selected.
		Foreground(styles.TextColor).
		Background(styles.BorderColor).
		Bold(false)
	t.SetStyles(s)

	return &PeriodsPanel{table: t}
}

func periodColumns() []table.Column {
	return []table.Column{
		{Title: "Period", Width: 6},
		{Title: "Listings", Width: 8},
		{Title: "Sold", Width: 5},
		{Title: "Rewards", Width: 11},
		{Title: "Spent", Width: 11},
		{Title: "Budget Left", Width: 12},
	}
}

// Init initializes the panel.
func (p *PeriodsPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *PeriodsPanel) Update(msg tea.Msg) (*PeriodsPanel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	before := p.table.Cursor()
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)

	if after := p.table.Cursor(); after != before && after >= 0 && after < len(p.periods) {
		selected := p.periods[after]
		return p, tea.Batch(cmd, func() tea.Msg { return PeriodSelectedMsg{Summary: selected} })
	}
	return p, cmd
}

// View renders the panel.
func (p *PeriodsPanel) View() string {
	var body string
	if len(p.periods) == 0 {
		body = styles.MutedStyle.Render("Submit the parameters to run a simulation.")
	} else {
		body = p.table.View()
	}

	if p.stopped {
		body = lipgloss.JoinVertical(lipgloss.Left,
			styles.BannerStyle.Render("Stopped: budget fell below "+styles.FormatAmount(simulation.MinBudget)+" ETH"),
			body,
		)
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("Periods", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, body)

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetResult replaces the table rows with the periods of res.
func (p *PeriodsPanel) SetResult(res simulation.Result) {
	p.periods = res.Periods
	p.stopped = res.StoppedEarly()

	rows := make([]table.Row, 0, len(res.Periods))
	for _, ps := range res.Periods {
		rows = append(rows, table.Row{
			strconv.Itoa(ps.Period),
			strconv.Itoa(len(ps.Artifacts)),
			strconv.Itoa(ps.Sold()),
			styles.FormatAmount(ps.CreatorRewards),
			styles.FormatAmount(ps.SpentOnArtifacts),
			styles.FormatAmount(ps.BudgetLeft),
		})
	}
	p.table.SetRows(rows)
	p.table.SetCursor(0)
}

// Selected returns the period under the cursor.
func (p *PeriodsPanel) Selected() (simulation.PeriodSummary, bool) {
	i := p.table.Cursor()
	if i < 0 || i >= len(p.periods) {
		return simulation.PeriodSummary{}, false
	}
	return p.periods[i], true
}

// Rows returns the rendered table rows.
func (p *PeriodsPanel) Rows() []table.Row {
	return p.table.Rows()
}

// SetFocus sets the focus state of the panel.
func (p *PeriodsPanel) SetFocus(focused bool) {
	p.focused = focused
	if focused {
		p.table.Focus()
	} else {
		p.table.Blur()
	}
}

// SetSize sets the panel dimensions.
func (p *PeriodsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	h := height - 6
	if p.stopped {
		h--
	}
	if h < 3 {
		h = 3
	}
	p.table.SetHeight(h)
}

// PeriodSelectedMsg is sent when the period cursor moves.
type PeriodSelectedMsg struct {
	Summary simulation.PeriodSummary
}
