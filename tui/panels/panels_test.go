package panels

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zappabad/budgetsim/internal/artifact"
	"github.com/zappabad/budgetsim/internal/simulation"
)

// collectMsgs runs cmd and flattens any batch into its messages.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func testResult() simulation.Result {
	return simulation.Result{
		RunID:  "test",
		Params: simulation.DefaultParams(),
		Periods: []simulation.PeriodSummary{
			{
				Period:           0,
				CreatorRewards:   0.005,
				SpentOnArtifacts: 0.25,
				BudgetLeft:       0.755,
				Artifacts: []artifact.Artifact{
					{ID: 1, Name: "Artifact 1", Price: 0.25, CreatorRewards: 0.0025, Sold: true},
					{ID: 2, Name: "Artifact 2", Price: 0.25, CreatorRewards: 0.0025},
				},
			},
			{
				Period:           1,
				CreatorRewards:   0.001,
				SpentOnArtifacts: 0,
				BudgetLeft:       0.756,
				Artifacts: []artifact.Artifact{
					{ID: 1, Name: "Artifact 1", Price: 0.1, CreatorRewards: 0.001},
				},
			},
		},
		StopReason: simulation.StopMaxPeriods,
	}
}

func TestParamsPanelDefaultsParse(t *testing.T) {
	p := NewParamsPanel(simulation.DefaultParams())
	got, err := p.Params()
	if err != nil {
		t.Fatalf("default params should parse: %v", err)
	}
	if got != simulation.DefaultParams() {
		t.Errorf("Params() = %+v, want %+v", got, simulation.DefaultParams())
	}
}

func TestParamsPanelRejectsText(t *testing.T) {
	p := NewParamsPanel(simulation.DefaultParams())
	p.inputs[FieldBudget].SetValue("abc")
	p.inputs[FieldMaxPeriods].SetValue("1.5")

	_, err := p.Params()
	if err == nil {
		t.Fatal("expected parse error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "Initial Budget") || !strings.Contains(msg, "Max Periods") {
		t.Errorf("error should name both fields, got %q", msg)
	}
}

func TestParamsPanelValidates(t *testing.T) {
	params := simulation.DefaultParams()
	params.BudgetPerPeriod = params.Budget * 2
	p := NewParamsPanel(params)

	_, err := p.Params()
	if !errors.Is(err, simulation.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestParamsPanelSubmit(t *testing.T) {
	p := NewParamsPanel(simulation.DefaultParams())
	p.SetFocus(true)

	// Walk down to the submit row.
	for i := 0; i < inputFieldCount; i++ {
		p.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if p.CurrentField() != FieldSubmit {
		t.Fatalf("current field = %d, want submit", p.CurrentField())
	}
	if p.Editing() {
		t.Error("submit row should not count as editing")
	}

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := collectMsgs(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	submit, ok := msgs[0].(ParamsSubmitMsg)
	if !ok {
		t.Fatalf("expected ParamsSubmitMsg, got %T", msgs[0])
	}
	if submit.Params != simulation.DefaultParams() {
		t.Errorf("submitted %+v", submit.Params)
	}
}

func TestParamsPanelSubmitInvalidKeepsError(t *testing.T) {
	params := simulation.DefaultParams()
	params.Budget = 0
	p := NewParamsPanel(params)
	p.SetFocus(true)
	p.Update(tea.KeyMsg{Type: tea.KeyUp}) // wraps to submit

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("invalid params must not submit")
	}
	if p.Err() == nil {
		t.Error("expected the validation error to be kept for display")
	}

	p.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if p.Err() != nil {
		t.Errorf("reset should clear the error, got %v", p.Err())
	}
	if _, err := p.Params(); err != nil {
		t.Errorf("reset should restore valid defaults: %v", err)
	}
}

func TestParamsPanelIgnoresKeysWhenBlurred(t *testing.T) {
	p := NewParamsPanel(simulation.DefaultParams())
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if p.CurrentField() != FieldBudget {
		t.Errorf("blurred panel moved to field %d", p.CurrentField())
	}
}

func TestPeriodsPanelSelection(t *testing.T) {
	p := NewPeriodsPanel()
	p.SetSize(80, 20)
	p.SetResult(testResult())

	if rows := p.Rows(); len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	first, ok := p.Selected()
	if !ok || first.Period != 0 {
		t.Fatalf("expected period 0 selected, got %d (ok=%v)", first.Period, ok)
	}

	p.SetFocus(true)
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyDown})

	var selected *PeriodSelectedMsg
	for _, msg := range collectMsgs(cmd) {
		if m, ok := msg.(PeriodSelectedMsg); ok {
			selected = &m
		}
	}
	if selected == nil {
		t.Fatal("expected PeriodSelectedMsg")
	}
	if selected.Summary.Period != 1 {
		t.Errorf("selected period %d, want 1", selected.Summary.Period)
	}
}

func TestPeriodsPanelBanner(t *testing.T) {
	p := NewPeriodsPanel()
	p.SetSize(80, 20)

	res := testResult()
	p.SetResult(res)
	if strings.Contains(p.View(), "Stopped") {
		t.Error("no banner expected when the period limit was reached")
	}

	res.StopReason = simulation.StopBudgetExhausted
	p.SetResult(res)
	if !strings.Contains(p.View(), "Stopped") {
		t.Error("expected the early-stop banner")
	}
}

func TestChartPanelPoints(t *testing.T) {
	p := NewChartPanel()
	p.SetResult(testResult())

	pts := p.Points()
	if len(pts) != 2 {
		t.Fatalf("expected 2 points, got %d", len(pts))
	}
	want := ChartPoint{Period: 0, Rewards: 0.005, Spent: 0.25, BudgetLeft: 0.755}
	if pts[0] != want {
		t.Errorf("points[0] = %+v, want %+v", pts[0], want)
	}

	p.SetSize(100, 20)
	if view := p.View(); !strings.Contains(view, "Budget Left") {
		t.Error("chart view should include the legend")
	}
}

func TestValueToY(t *testing.T) {
	if y := valueToY(10, 0, 10, 11); y != 0 {
		t.Errorf("max value at y=%d, want 0", y)
	}
	if y := valueToY(0, 0, 10, 11); y != 10 {
		t.Errorf("min value at y=%d, want 10", y)
	}
	if y := valueToY(5, 0, 10, 11); y != 5 {
		t.Errorf("mid value at y=%d, want 5", y)
	}
	if v := yToValue(5, 0, 10, 11); v != 5 {
		t.Errorf("yToValue(5) = %v, want 5", v)
	}
}

func TestArtifactsPanel(t *testing.T) {
	p := NewArtifactsPanel()
	p.SetSize(60, 20)
	if _, ok := p.Period(); ok {
		t.Error("new panel should have no period")
	}

	p.SetPeriod(testResult().Periods[0])
	period, ok := p.Period()
	if !ok || period != 0 {
		t.Fatalf("Period() = %d, %v; want 0, true", period, ok)
	}
	if view := p.View(); !strings.Contains(view, "Artifact 2") {
		t.Errorf("view should list the artifacts:\n%s", view)
	}

	p.Clear()
	if _, ok := p.Period(); ok {
		t.Error("Clear should drop the period")
	}
}
