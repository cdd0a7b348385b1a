// Package simulation drives the period-by-period budget simulation.
package simulation

import (
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/zappabad/budgetsim/internal/artifact"
	"github.com/zappabad/budgetsim/internal/sampling"
)

const (
	// MinBudget is the smallest budget a period may start with.
	MinBudget = 0.00001
	// ListingsStdDevRatio scales the mean listing count into its standard
	// deviation; the deviation never drops below MinListingsStdDev.
	ListingsStdDevRatio = 0.2
	MinListingsStdDev   = 1.0
	// SoldPercentStdDev is the standard deviation of the sold percentage.
	SoldPercentStdDev = 10.0
)

// Simulator runs simulations against a single uniform source.
// It is not safe for concurrent use; create one per goroutine.
type Simulator struct {
	src    sampling.Source
	logger *slog.Logger
}

// NewSimulator creates a Simulator with the given configuration.
func NewSimulator(cfg Config) *Simulator {
	if cfg.Source == nil {
		cfg.Source = sampling.NewSource(cfg.Seed)
	}
	if cfg.Logger == nil {
		cfg.Logger = DefaultConfig().Logger
	}
	return &Simulator{src: cfg.Source, logger: cfg.Logger}
}

// Run simulates periods until MaxPeriods is reached or the budget falls
// below MinBudget before a period can start.
func (s *Simulator) Run(p Params) Result {
	res := Result{
		RunID:      uuid.NewString(),
		Params:     p,
		Periods:    make([]PeriodSummary, 0, max(p.MaxPeriods, 0)),
		StopReason: StopMaxPeriods,
	}
	budget := p.Budget

	for period := 0; period < p.MaxPeriods; period++ {
		if !(budget >= MinBudget) {
			res.StopReason = StopBudgetExhausted
			break
		}

		summary := s.Step(p, period, budget)
		budget = summary.BudgetLeft
		res.Periods = append(res.Periods, summary)
	}

	s.logger.Info("simulation finished",
		"run_id", res.RunID,
		"periods", len(res.Periods),
		"stop_reason", res.StopReason.String(),
		"budget_left", res.FinalBudget(),
	)
	return res
}

// Step simulates a single period starting from budget and returns its summary.
func (s *Simulator) Step(p Params, period int, budget float64) PeriodSummary {
	listingsStdDev := math.Max(MinListingsStdDev, p.AvgListingsPerPeriod*ListingsStdDevRatio)
	numListings := roundCount(sampling.Normal(s.src, p.AvgListingsPerPeriod, listingsStdDev))

	maxPrice := math.Min(p.BudgetPerPeriod, budget)
	artifacts := artifact.Generate(s.src, numListings, p.AvgPricePerArtifact, p.CreatorRewards, maxPrice)

	soldPercent := sampling.Clamp(sampling.Normal(s.src, p.AvgPercentageSold, SoldPercentStdDev), 0, 100)
	numToBuy := roundCount(soldPercent / 100 * float64(len(artifacts)))

	selection := artifact.SelectToBuy(s.src, artifacts, numToBuy, p.BudgetPerPeriod)
	selection.Apply(artifacts)

	rewards := artifact.TotalRewards(artifacts)
	spent := artifact.TotalSpent(artifacts)
	budgetLeft := budget + rewards - spent

	s.logger.Debug("period simulated",
		"period", period,
		"listings", len(artifacts),
		"to_buy", numToBuy,
		"sold", len(selection),
		"rewards", rewards,
		"spent", spent,
		"budget_left", budgetLeft,
	)

	return PeriodSummary{
		Period:           period,
		CreatorRewards:   rewards,
		SpentOnArtifacts: spent,
		BudgetLeft:       budgetLeft,
		Artifacts:        artifacts,
	}
}

// roundCount rounds a sampled count to the nearest integer, clamping
// negatives and NaN to zero.
func roundCount(x float64) int {
	if !(x > 0) {
		return 0
	}
	return int(math.Round(x))
}
