package simulation

import (
	"math"
	"testing"

	"github.com/zappabad/budgetsim/internal/artifact"
)

const tolerance = 1e-5

// assertPeriodBound asserts the run produced at most MaxPeriods summaries
// numbered 0..n-1.
func assertPeriodBound(t *testing.T, res Result) {
	t.Helper()
	if len(res.Periods) > res.Params.MaxPeriods {
		t.Errorf("assertPeriodBound: %d periods > max %d", len(res.Periods), res.Params.MaxPeriods)
	}
	for i, ps := range res.Periods {
		if ps.Period != i {
			t.Errorf("assertPeriodBound: summary %d has period index %d", i, ps.Period)
		}
	}
}

// assertBudgetRecurrence asserts every BudgetLeft follows from the previous
// one plus rewards minus spend.
func assertBudgetRecurrence(t *testing.T, res Result) {
	t.Helper()
	prev := res.Params.Budget
	for _, ps := range res.Periods {
		want := prev + ps.CreatorRewards - ps.SpentOnArtifacts
		if math.Abs(ps.BudgetLeft-want) > tolerance {
			t.Errorf("assertBudgetRecurrence: period %d: budget left %.6f, want %.6f", ps.Period, ps.BudgetLeft, want)
		}
		prev = ps.BudgetLeft
	}
}

// assertSpendMatchesSold asserts spend equals the sold prices and fits the cap.
func assertSpendMatchesSold(t *testing.T, res Result) {
	t.Helper()
	for _, ps := range res.Periods {
		var sum float64
		for _, a := range ps.Artifacts {
			if a.Sold {
				sum += a.Price
			}
		}
		if math.Abs(sum-ps.SpentOnArtifacts) > tolerance {
			t.Errorf("assertSpendMatchesSold: period %d: spent %.6f, sold prices sum %.6f", ps.Period, ps.SpentOnArtifacts, sum)
		}
		if ps.SpentOnArtifacts > res.Params.BudgetPerPeriod+1e-9 {
			t.Errorf("assertSpendMatchesSold: period %d: spent %.6f exceeds cap %.6f", ps.Period, ps.SpentOnArtifacts, res.Params.BudgetPerPeriod)
		}
	}
}

// assertPriceBounds asserts every price sits within the floor and the
// per-period maximum, allowing for the 5-decimal rounding of prices.
func assertPriceBounds(t *testing.T, res Result) {
	t.Helper()
	start := res.Params.Budget
	for _, ps := range res.Periods {
		limit := math.Min(res.Params.BudgetPerPeriod, start)
		for _, a := range ps.Artifacts {
			if a.Price < artifact.MinPrice {
				t.Errorf("assertPriceBounds: period %d: %s price %.6f below floor", ps.Period, a.Name, a.Price)
			}
			if a.Price > limit+0.5e-5 {
				t.Errorf("assertPriceBounds: period %d: %s price %.6f above limit %.6f", ps.Period, a.Name, a.Price, limit)
			}
		}
		start = ps.BudgetLeft
	}
}

// assertRewards asserts each reward is the rounded percentage of its price.
func assertRewards(t *testing.T, res Result) {
	t.Helper()
	rate := res.Params.CreatorRewards / 100
	for _, ps := range res.Periods {
		var sum float64
		for _, a := range ps.Artifacts {
			if math.Abs(a.CreatorRewards-a.Price*rate) > 0.5e-5+1e-12 {
				t.Errorf("assertRewards: period %d: %s reward %.6f, want ~%.6f", ps.Period, a.Name, a.CreatorRewards, a.Price*rate)
			}
			sum += a.CreatorRewards
		}
		if math.Abs(sum-ps.CreatorRewards) > tolerance {
			t.Errorf("assertRewards: period %d: rewards %.6f, listing sum %.6f", ps.Period, ps.CreatorRewards, sum)
		}
	}
}

// assertStartingBudgets asserts each included period began at or above MinBudget.
func assertStartingBudgets(t *testing.T, res Result) {
	t.Helper()
	start := res.Params.Budget
	for _, ps := range res.Periods {
		if start < MinBudget {
			t.Errorf("assertStartingBudgets: period %d started with %.6f", ps.Period, start)
		}
		start = ps.BudgetLeft
	}
}

func assertAllInvariants(t *testing.T, res Result) {
	t.Helper()
	assertPeriodBound(t, res)
	assertBudgetRecurrence(t, res)
	assertSpendMatchesSold(t, res)
	assertPriceBounds(t, res)
	assertRewards(t, res)
	assertStartingBudgets(t, res)
}
