package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/budgetsim/internal/simulation"
	"github.com/zappabad/budgetsim/tui/styles"
)

// ChartPoint is one period's column in the chart.
type ChartPoint struct {
	Period     int
	Rewards    float64
	Spent      float64
	BudgetLeft float64
}

// ChartPanel plots rewards and spend as bars and the remaining budget as a
// marker, one column group per period.
type ChartPanel struct {
	points []ChartPoint

	focused bool
	width   int
	height  int
}

// NewChartPanel creates an empty chart panel.
func NewChartPanel() *ChartPanel {
	return &ChartPanel{}
}

// Init initializes the panel.
func (p *ChartPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *ChartPanel) Update(msg tea.Msg) (*ChartPanel, tea.Cmd) {
	return p, nil
}

// View renders the panel.
func (p *ChartPanel) View() string {
	var content strings.Builder

	chartHeight := p.height - 7
	if chartHeight < 5 {
		chartHeight = 5
	}

	if len(p.points) == 0 {
		content.WriteString(styles.MutedStyle.Render("No simulation yet..."))
	} else {
		content.WriteString(p.renderChart(p.width-6, chartHeight))
		content.WriteString("\n")
		content.WriteString(p.renderLegend())
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("Budget over Periods", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// Each period takes 4 columns: rewards bar, spent bar, budget marker, gap.
const columnsPerPeriod = 4

func (p *ChartPanel) renderChart(width, height int) string {
	// Reserve space: 10 chars for the value axis, 1 for the separator.
	plotWidth := width - 11
	if plotWidth < columnsPerPeriod {
		plotWidth = columnsPerPeriod
	}
	show := plotWidth / columnsPerPeriod
	if show > len(p.points) {
		show = len(p.points)
	}
	points := p.points[len(p.points)-show:]

	minValue, maxValue := valueRange(points)

	var result strings.Builder
	for row := 0; row < height; row++ {
		rowValue := yToValue(row, minValue, maxValue, height)
		label := fmt.Sprintf("%9s │", trimAmount(rowValue))
		result.WriteString(styles.ChartAxisStyle.Render(label))

		for _, pt := range points {
			result.WriteString(styles.RewardStyle.Render(string(barChar(pt.Rewards, row, minValue, maxValue, height))))
			result.WriteString(styles.SpentStyle.Render(string(barChar(pt.Spent, row, minValue, maxValue, height))))
			marker := ' '
			if valueToY(pt.BudgetLeft, minValue, maxValue, height) == row {
				marker = '●'
			}
			result.WriteString(styles.BudgetStyle.Render(string(marker)))
			result.WriteString(" ")
		}
		result.WriteString("\n")
	}

	result.WriteString(styles.ChartAxisStyle.Render("──────────┴"))
	for range points {
		result.WriteString(styles.ChartAxisStyle.Render(strings.Repeat("─", columnsPerPeriod)))
	}
	result.WriteString("\n")

	result.WriteString(strings.Repeat(" ", 11))
	for i, pt := range points {
		if i == 0 || i == len(points)-1 || pt.Period%5 == 0 {
			result.WriteString(styles.ChartLabelStyle.Render(fmt.Sprintf("%-4d", pt.Period)))
		} else {
			result.WriteString(strings.Repeat(" ", columnsPerPeriod))
		}
	}

	return result.String()
}

func (p *ChartPanel) renderLegend() string {
	return strings.Join([]string{
		styles.RewardStyle.Render("█ Creator Rewards"),
		styles.SpentStyle.Render("█ Spent on Artifacts"),
		styles.BudgetStyle.Render("● Budget Left"),
	}, "  ")
}

// valueRange spans every plotted value and always includes zero so bars
// have a baseline.
func valueRange(points []ChartPoint) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, pt := range points {
		lo = min(lo, pt.Rewards, pt.Spent, pt.BudgetLeft)
		hi = max(hi, pt.Rewards, pt.Spent, pt.BudgetLeft)
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

// barChar draws a bar rising from zero to v.
func barChar(v float64, row int, minValue, maxValue float64, height int) rune {
	if v <= 0 {
		return ' '
	}
	top := valueToY(v, minValue, maxValue, height)
	base := valueToY(0, minValue, maxValue, height)
	if row >= top && row <= base {
		return '█'
	}
	return ' '
}

func valueToY(v, minValue, maxValue float64, height int) int {
	if maxValue == minValue {
		return height / 2
	}
	ratio := (maxValue - v) / (maxValue - minValue)
	y := int(ratio*float64(height-1) + 0.5)
	if y < 0 {
		y = 0
	}
	if y >= height {
		y = height - 1
	}
	return y
}

func yToValue(y int, minValue, maxValue float64, height int) float64 {
	if height <= 1 {
		return minValue
	}
	ratio := float64(y) / float64(height-1)
	return maxValue - ratio*(maxValue-minValue)
}

func trimAmount(v float64) string {
	s := styles.FormatAmount(v)
	if len(s) > 9 {
		s = s[:9]
	}
	return s
}

// SetFocus sets the focus state of the panel.
func (p *ChartPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *ChartPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetResult replaces the plotted data.
func (p *ChartPanel) SetResult(res simulation.Result) {
	p.points = make([]ChartPoint, 0, len(res.Periods))
	for _, ps := range res.Periods {
		p.points = append(p.points, ChartPoint{
			Period:     ps.Period,
			Rewards:    ps.CreatorRewards,
			Spent:      ps.SpentOnArtifacts,
			BudgetLeft: ps.BudgetLeft,
		})
	}
}

// Points returns the plotted data.
func (p *ChartPanel) Points() []ChartPoint {
	return p.points
}
