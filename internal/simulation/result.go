package simulation

import "github.com/zappabad/budgetsim/internal/artifact"

// StopReason records why a run ended.
type StopReason uint8

const (
	// StopMaxPeriods means every allowed period was simulated.
	StopMaxPeriods StopReason = iota
	// StopBudgetExhausted means the budget fell below MinBudget before a
	// period could start.
	StopBudgetExhausted
)

func (r StopReason) String() string {
	switch r {
	case StopMaxPeriods:
		return "max_periods"
	case StopBudgetExhausted:
		return "budget_exhausted"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r StopReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// PeriodSummary is the outcome of one simulated period.
type PeriodSummary struct {
	Period           int                 `json:"period" yaml:"period"`
	CreatorRewards   float64             `json:"creatorRewards" yaml:"creator_rewards"`
	SpentOnArtifacts float64             `json:"spentOnArtifacts" yaml:"spent_on_artifacts"`
	BudgetLeft       float64             `json:"budgetLeft" yaml:"budget_left"`
	Artifacts        []artifact.Artifact `json:"artifacts" yaml:"artifacts"`
}

// Sold returns the number of artifacts bought this period.
func (ps PeriodSummary) Sold() int {
	return artifact.CountSold(ps.Artifacts)
}

// Result is the ordered output of a run. Consumers must treat it as read-only.
type Result struct {
	RunID      string          `json:"runId" yaml:"run_id"`
	Params     Params          `json:"params" yaml:"params"`
	Periods    []PeriodSummary `json:"periods" yaml:"periods"`
	StopReason StopReason      `json:"stopReason" yaml:"stop_reason"`
}

// StoppedEarly reports whether the run halted on budget exhaustion.
func (r Result) StoppedEarly() bool {
	return r.StopReason == StopBudgetExhausted
}

// FinalBudget is the budget after the last simulated period, or the
// starting budget when no period ran.
func (r Result) FinalBudget() float64 {
	if len(r.Periods) == 0 {
		return r.Params.Budget
	}
	return r.Periods[len(r.Periods)-1].BudgetLeft
}

// Totals aggregates a run.
type Totals struct {
	Periods        int     `json:"periods" yaml:"periods"`
	Listings       int     `json:"listings" yaml:"listings"`
	Sold           int     `json:"sold" yaml:"sold"`
	CreatorRewards float64 `json:"creatorRewards" yaml:"creator_rewards"`
	Spent          float64 `json:"spent" yaml:"spent"`
	FinalBudget    float64 `json:"finalBudget" yaml:"final_budget"`
}

// Totals sums every period of the run.
func (r Result) Totals() Totals {
	t := Totals{Periods: len(r.Periods), FinalBudget: r.FinalBudget()}
	for _, p := range r.Periods {
		t.Listings += len(p.Artifacts)
		t.Sold += p.Sold()
		t.CreatorRewards += p.CreatorRewards
		t.Spent += p.SpentOnArtifacts
	}
	return t
}

// BudgetSeries returns the budget at the start followed by every period's
// BudgetLeft, suitable for charting.
func (r Result) BudgetSeries() []float64 {
	series := make([]float64, 0, len(r.Periods)+1)
	series = append(series, r.Params.Budget)
	for _, p := range r.Periods {
		series = append(series, p.BudgetLeft)
	}
	return series
}
