package artifact

import (
	"github.com/zappabad/budgetsim/internal/sampling"
)

// PriceStdDevRatio scales the mean price into the sampling standard deviation.
const PriceStdDevRatio = 0.3

// Generate creates count artifacts with prices drawn around meanPrice.
// Prices are clamped to [MinPrice, maxPrice] and rounded; the reward is
// rewardRatePct percent of the rounded price. count <= 0 yields an empty slice.
func Generate(src sampling.Source, count int, meanPrice, rewardRatePct, maxPrice float64) []Artifact {
	if count < 0 {
		count = 0
	}
	artifacts := make([]Artifact, 0, count)
	stdDev := meanPrice * PriceStdDevRatio

	for i := 0; i < count; i++ {
		price := sampling.Normal(src, meanPrice, stdDev)
		// min before max: a maxPrice below the floor still yields MinPrice.
		if price > maxPrice {
			price = maxPrice
		}
		if !(price >= MinPrice) {
			price = MinPrice
		}
		price = sampling.Round(price, PriceDecimals)

		id := ID(i + 1)
		artifacts = append(artifacts, Artifact{
			ID:             id,
			Name:           "Artifact " + id.String(),
			Price:          price,
			CreatorRewards: sampling.Round(price*rewardRatePct/100, PriceDecimals),
		})
	}

	return artifacts
}
