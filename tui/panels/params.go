package panels

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/budgetsim/internal/simulation"
	"github.com/zappabad/budgetsim/tui/styles"
)

// ParamsField identifies a row of the parameter form.
type ParamsField int

const (
	FieldBudget ParamsField = iota
	FieldBudgetPerPeriod
	FieldCreatorRewards
	FieldAvgListings
	FieldAvgPrice
	FieldAvgPercentageSold
	FieldMaxPeriods
	FieldSubmit
)

const inputFieldCount = int(FieldSubmit)

var fieldLabels = [inputFieldCount]string{
	"Initial Budget (ETH)",
	"Budget per Period (ETH)",
	"Creator Rewards (%)",
	"Avg Listings per Period",
	"Avg Price per Artifact (ETH)",
	"Avg % of Artifacts Sold",
	"Max Periods",
}

// ParamsPanel is the simulation parameter form.
type ParamsPanel struct {
	inputs       [inputFieldCount]textinput.Model
	currentField ParamsField
	err          error

	focused bool
	width   int
	height  int
}

// NewParamsPanel creates a form pre-filled with p.
func NewParamsPanel(p simulation.Params) *ParamsPanel {
	panel := &ParamsPanel{}
	for i := range panel.inputs {
		in := textinput.New()
		in.Width = 12
		in.CharLimit = 16
		in.Placeholder = "0"
		panel.inputs[i] = in
	}
	panel.SetParams(p)
	return panel
}

// Init initializes the panel.
func (p *ParamsPanel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the panel.
func (p *ParamsPanel) Update(msg tea.Msg) (*ParamsPanel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("down"))):
			p.nextField()
			return p, nil
		case key.Matches(msg, key.NewBinding(key.WithKeys("up"))):
			p.prevField()
			return p, nil
		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			if p.currentField == FieldSubmit {
				return p, p.submit()
			}
			p.nextField()
			return p, nil
		case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+r"))):
			p.SetParams(simulation.DefaultParams())
			return p, nil
		}
	}

	if p.currentField == FieldSubmit {
		return p, nil
	}

	var cmd tea.Cmd
	p.inputs[p.currentField], cmd = p.inputs[p.currentField].Update(msg)
	return p, cmd
}

// View renders the panel.
func (p *ParamsPanel) View() string {
	var content strings.Builder

	for i := range p.inputs {
		field := ParamsField(i)
		labelStyle := styles.LabelStyle
		inputStyle := styles.InputStyle
		if p.currentField == field && p.focused {
			labelStyle = labelStyle.Foreground(styles.PrimaryColor)
			inputStyle = styles.FocusedInputStyle
		}
		label := labelStyle.Render(fmt.Sprintf("%-29s", fieldLabels[i]))
		content.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, label, inputStyle.Render(p.inputs[i].View())))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	submitStyle := styles.InputStyle
	if p.currentField == FieldSubmit && p.focused {
		submitStyle = styles.FocusedInputStyle.Bold(true).Foreground(styles.PrimaryColor)
	}
	content.WriteString(submitStyle.Render("  [Run Simulation]  "))

	if p.err != nil {
		content.WriteString("\n\n")
		for _, line := range strings.Split(p.err.Error(), "\n") {
			content.WriteString(styles.ErrorStyle.Render(line))
			content.WriteString("\n")
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("Simulation Parameters", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// Params parses the form. Parse failures and validation failures are
// reported together.
func (p *ParamsPanel) Params() (simulation.Params, error) {
	var errs []error
	number := func(field ParamsField) float64 {
		raw := strings.TrimSpace(p.inputs[field].Value())
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not a number", fieldLabels[field], raw))
		}
		return v
	}

	params := simulation.Params{
		Budget:               number(FieldBudget),
		BudgetPerPeriod:      number(FieldBudgetPerPeriod),
		CreatorRewards:       number(FieldCreatorRewards),
		AvgListingsPerPeriod: number(FieldAvgListings),
		AvgPricePerArtifact:  number(FieldAvgPrice),
		AvgPercentageSold:    number(FieldAvgPercentageSold),
	}

	raw := strings.TrimSpace(p.inputs[FieldMaxPeriods].Value())
	periods, err := strconv.Atoi(raw)
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: %q is not a whole number", fieldLabels[FieldMaxPeriods], raw))
	}
	params.MaxPeriods = periods

	if len(errs) > 0 {
		return params, errors.Join(errs...)
	}
	return params, params.Validate()
}

// SetParams fills every field from params.
func (p *ParamsPanel) SetParams(params simulation.Params) {
	values := [inputFieldCount]string{
		formatFloat(params.Budget),
		formatFloat(params.BudgetPerPeriod),
		formatFloat(params.CreatorRewards),
		formatFloat(params.AvgListingsPerPeriod),
		formatFloat(params.AvgPricePerArtifact),
		formatFloat(params.AvgPercentageSold),
		strconv.Itoa(params.MaxPeriods),
	}
	for i, v := range values {
		p.inputs[i].SetValue(v)
	}
	p.err = nil
}

// Err returns the last submit error, if any.
func (p *ParamsPanel) Err() error {
	return p.err
}

// CurrentField returns the focused form row.
func (p *ParamsPanel) CurrentField() ParamsField {
	return p.currentField
}

// Editing reports whether a text field currently has the cursor.
func (p *ParamsPanel) Editing() bool {
	return p.focused && p.currentField != FieldSubmit
}

func (p *ParamsPanel) submit() tea.Cmd {
	params, err := p.Params()
	p.err = err
	if err != nil {
		return nil
	}
	return func() tea.Msg {
		return ParamsSubmitMsg{Params: params}
	}
}

func (p *ParamsPanel) nextField() {
	p.setField((p.currentField + 1) % (FieldSubmit + 1))
}

func (p *ParamsPanel) prevField() {
	if p.currentField == 0 {
		p.setField(FieldSubmit)
		return
	}
	p.setField(p.currentField - 1)
}

func (p *ParamsPanel) setField(field ParamsField) {
	if p.currentField != FieldSubmit {
		p.inputs[p.currentField].Blur()
	}
	p.currentField = field
	if field != FieldSubmit && p.focused {
		p.inputs[field].Focus()
	}
}

// SetFocus sets the focus state of the panel.
func (p *ParamsPanel) SetFocus(focused bool) {
	p.focused = focused
	for i := range p.inputs {
		p.inputs[i].Blur()
	}
	if focused && p.currentField != FieldSubmit {
		p.inputs[p.currentField].Focus()
	}
}

// SetSize sets the panel dimensions.
func (p *ParamsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParamsSubmitMsg is sent when the form holds valid params and is submitted.
type ParamsSubmitMsg struct {
	Params simulation.Params
}
