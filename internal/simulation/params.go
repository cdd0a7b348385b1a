package simulation

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is wrapped by every error Validate returns.
var ErrInvalidParams = errors.New("invalid simulation params")

// Params are the inputs of a single run. The simulator assumes they already
// passed Validate and does not check them again.
type Params struct {
	// Budget is the total starting funds.
	Budget float64 `json:"budget" yaml:"budget" env:"BUDGET"`
	// BudgetPerPeriod is the hard spending cap of each period.
	BudgetPerPeriod float64 `json:"budgetPerPeriod" yaml:"budget_per_period" env:"BUDGET_PER_PERIOD"`
	// CreatorRewards is the percent of every listing's price paid to the agent.
	CreatorRewards float64 `json:"creatorRewards" yaml:"creator_rewards" env:"CREATOR_REWARDS"`
	// AvgListingsPerPeriod is the mean number of artifacts generated per period.
	AvgListingsPerPeriod float64 `json:"avgListingsPerPeriod" yaml:"avg_listings_per_period" env:"AVG_LISTINGS_PER_PERIOD"`
	// AvgPricePerArtifact is the mean artifact price.
	AvgPricePerArtifact float64 `json:"avgPricePerArtifact" yaml:"avg_price_per_artifact" env:"AVG_PRICE_PER_ARTIFACT"`
	// AvgPercentageSold is the mean percent of listings purchased.
	AvgPercentageSold float64 `json:"avgPercentageSold" yaml:"avg_percentage_sold" env:"AVG_PERCENTAGE_SOLD"`
	// MaxPeriods bounds the number of periods simulated.
	MaxPeriods int `json:"maxPeriods" yaml:"max_periods" env:"MAX_PERIODS"`
}

// Lower bounds accepted by Validate.
const (
	MinStartBudget     = 0.1
	MinBudgetPerPeriod = 0.05
	MinCreatorRewards  = 1.0
	MaxCreatorRewards  = 50.0
	MinAvgListings     = 1.0
	MinAvgPrice        = 0.00001
	MinPercentageSold  = 0.0
	MaxPercentageSold  = 100.0
	MinMaxPeriods      = 1
)

// DefaultParams returns the parameters the input form starts with.
func DefaultParams() Params {
	return Params{
		Budget:               1,
		BudgetPerPeriod:      0.5,
		CreatorRewards:       10,
		AvgListingsPerPeriod: 5,
		AvgPricePerArtifact:  0.1,
		AvgPercentageSold:    50,
		MaxPeriods:           10,
	}
}

// Validate checks ranges and cross-field constraints. All violations are
// reported together.
func (p Params) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidParams}, args...)...))
		}
	}

	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

	check(finite(p.Budget) && p.Budget >= MinStartBudget,
		"budget must be at least %g, got %g", MinStartBudget, p.Budget)
	check(finite(p.BudgetPerPeriod) && p.BudgetPerPeriod >= MinBudgetPerPeriod,
		"budget per period must be at least %g, got %g", MinBudgetPerPeriod, p.BudgetPerPeriod)
	check(finite(p.CreatorRewards) && p.CreatorRewards >= MinCreatorRewards && p.CreatorRewards <= MaxCreatorRewards,
		"creator rewards must be between %g%% and %g%%, got %g", MinCreatorRewards, MaxCreatorRewards, p.CreatorRewards)
	check(finite(p.AvgListingsPerPeriod) && p.AvgListingsPerPeriod >= MinAvgListings,
		"average listings per period must be at least %g, got %g", MinAvgListings, p.AvgListingsPerPeriod)
	check(finite(p.AvgPricePerArtifact) && p.AvgPricePerArtifact >= MinAvgPrice,
		"average price per artifact must be at least %g, got %g", MinAvgPrice, p.AvgPricePerArtifact)
	check(finite(p.AvgPercentageSold) && p.AvgPercentageSold >= MinPercentageSold && p.AvgPercentageSold <= MaxPercentageSold,
		"average percentage sold must be between %g and %g, got %g", MinPercentageSold, MaxPercentageSold, p.AvgPercentageSold)
	check(p.MaxPeriods >= MinMaxPeriods,
		"max periods must be at least %d, got %d", MinMaxPeriods, p.MaxPeriods)

	if len(errs) == 0 {
		check(p.BudgetPerPeriod <= p.Budget,
			"budget per period %g exceeds budget %g", p.BudgetPerPeriod, p.Budget)
		check(p.AvgPricePerArtifact <= p.BudgetPerPeriod,
			"average price per artifact %g exceeds budget per period %g", p.AvgPricePerArtifact, p.BudgetPerPeriod)
	}

	return errors.Join(errs...)
}
