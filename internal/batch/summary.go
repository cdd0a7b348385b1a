package batch

import (
	"math"

	"github.com/zappabad/budgetsim/internal/sampling"
	"github.com/zappabad/budgetsim/internal/simulation"
)

// Summary aggregates the outcomes of a batch.
type Summary struct {
	Params     simulation.Params `json:"params" yaml:"params"`
	Runs       int               `json:"runs" yaml:"runs"`
	EarlyStops int               `json:"earlyStops" yaml:"early_stops"`

	MeanPeriods float64 `json:"meanPeriods" yaml:"mean_periods"`
	MinPeriods  int     `json:"minPeriods" yaml:"min_periods"`
	MaxPeriods  int     `json:"maxPeriods" yaml:"max_periods"`

	MeanFinalBudget float64 `json:"meanFinalBudget" yaml:"mean_final_budget"`
	MinFinalBudget  float64 `json:"minFinalBudget" yaml:"min_final_budget"`
	MaxFinalBudget  float64 `json:"maxFinalBudget" yaml:"max_final_budget"`

	MeanSpent          float64 `json:"meanSpent" yaml:"mean_spent"`
	MeanCreatorRewards float64 `json:"meanCreatorRewards" yaml:"mean_creator_rewards"`
}

// EarlyStopRate is the fraction of runs that exhausted their budget.
func (s Summary) EarlyStopRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.EarlyStops) / float64(s.Runs)
}

// Summarize aggregates outcomes in slice order. Amounts are rounded to the
// five decimals prices carry.
func Summarize(params simulation.Params, outcomes []Outcome) Summary {
	s := Summary{Params: params, Runs: len(outcomes)}
	if len(outcomes) == 0 {
		return s
	}

	s.MinPeriods = math.MaxInt
	s.MinFinalBudget = math.Inf(1)
	s.MaxFinalBudget = math.Inf(-1)

	var periods, budget, spent, rewards float64
	for _, out := range outcomes {
		res := out.Result
		if res.StoppedEarly() {
			s.EarlyStops++
		}

		tot := res.Totals()
		s.MinPeriods = min(s.MinPeriods, tot.Periods)
		s.MaxPeriods = max(s.MaxPeriods, tot.Periods)
		s.MinFinalBudget = math.Min(s.MinFinalBudget, tot.FinalBudget)
		s.MaxFinalBudget = math.Max(s.MaxFinalBudget, tot.FinalBudget)

		periods += float64(tot.Periods)
		budget += tot.FinalBudget
		spent += tot.Spent
		rewards += tot.CreatorRewards
	}

	n := float64(len(outcomes))
	s.MeanPeriods = sampling.Round(periods/n, 2)
	s.MeanFinalBudget = sampling.Round(budget/n, 5)
	s.MeanSpent = sampling.Round(spent/n, 5)
	s.MeanCreatorRewards = sampling.Round(rewards/n, 5)
	s.MinFinalBudget = sampling.Round(s.MinFinalBudget, 5)
	s.MaxFinalBudget = sampling.Round(s.MaxFinalBudget, 5)
	return s
}
