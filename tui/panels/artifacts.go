package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/budgetsim/internal/artifact"
	"github.com/zappabad/budgetsim/internal/simulation"
	"github.com/zappabad/budgetsim/tui/styles"
)

// ArtifactsPanel shows the artifacts generated in one period.
type ArtifactsPanel struct {
	period       int
	artifacts    []artifact.Artifact
	hasPeriod    bool
	scrollOffset int

	focused bool
	width   int
	height  int
}

// NewArtifactsPanel creates an empty artifacts panel.
func NewArtifactsPanel() *ArtifactsPanel {
	return &ArtifactsPanel{}
}

// Init initializes the panel.
func (p *ArtifactsPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *ArtifactsPanel) Update(msg tea.Msg) (*ArtifactsPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if p.scrollOffset > 0 {
				p.scrollOffset--
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if p.scrollOffset < len(p.artifacts)-1 {
				p.scrollOffset++
			}
		}
	}
	return p, nil
}

// View renders the panel.
func (p *ArtifactsPanel) View() string {
	var content strings.Builder

	titleText := "Artifacts"
	if p.hasPeriod {
		titleText = fmt.Sprintf("Artifacts - Period %d", p.period)
	}

	switch {
	case !p.hasPeriod:
		content.WriteString(styles.MutedStyle.Render("Select a period to see its artifacts."))
	case len(p.artifacts) == 0:
		content.WriteString(styles.MutedStyle.Render("No artifacts were listed this period."))
	default:
		header := fmt.Sprintf("%-14s %11s %11s %5s", "Name", "Price", "Reward", "Sold")
		content.WriteString(styles.HeaderStyle.Render(header))
		content.WriteString("\n")

		visible := p.height - 6
		if visible < 1 {
			visible = 1
		}
		end := min(p.scrollOffset+visible, len(p.artifacts))
		for i := p.scrollOffset; i < end; i++ {
			a := p.artifacts[i]
			row := fmt.Sprintf("%-14s %11s %11s ", a.Name, styles.FormatAmount(a.Price), styles.FormatAmount(a.CreatorRewards))
			sold := styles.MutedStyle.Render("  no")
			if a.Sold {
				sold = styles.SoldStyle.Render(" yes")
			}
			content.WriteString(styles.RowStyle.Render(row) + sold)
			if i < end-1 {
				content.WriteString("\n")
			}
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle(titleText, p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetPeriod shows the artifacts of ps.
func (p *ArtifactsPanel) SetPeriod(ps simulation.PeriodSummary) {
	p.period = ps.Period
	p.artifacts = ps.Artifacts
	p.hasPeriod = true
	p.scrollOffset = 0
}

// Clear empties the panel.
func (p *ArtifactsPanel) Clear() {
	p.artifacts = nil
	p.hasPeriod = false
	p.scrollOffset = 0
}

// Period returns the displayed period index and whether one is set.
func (p *ArtifactsPanel) Period() (int, bool) {
	return p.period, p.hasPeriod
}

// SetFocus sets the focus state of the panel.
func (p *ArtifactsPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *ArtifactsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
