// Package artifact generates a period's listings and decides which of them
// the agent buys under a per-period spending cap.
package artifact

import "strconv"

// MinPrice is the floor applied to every sampled price.
const MinPrice = 0.00001

// PriceDecimals is the number of decimal places prices and rewards keep.
const PriceDecimals = 5

// ID is the 1-based position of an artifact within its period.
type ID int

func (id ID) String() string { return strconv.Itoa(int(id)) }

// Artifact is a single listing generated during a period.
// Everything except Sold is fixed at generation time.
type Artifact struct {
	ID             ID      `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Price          float64 `json:"price" yaml:"price"`
	CreatorRewards float64 `json:"creatorRewards" yaml:"creator_rewards"`
	Sold           bool    `json:"sold" yaml:"sold"`
}

// TotalRewards sums the reward of every artifact, sold or not.
func TotalRewards(artifacts []Artifact) float64 {
	var sum float64
	for _, a := range artifacts {
		sum += a.CreatorRewards
	}
	return sum
}

// TotalSpent sums the price of sold artifacts.
func TotalSpent(artifacts []Artifact) float64 {
	var sum float64
	for _, a := range artifacts {
		if a.Sold {
			sum += a.Price
		}
	}
	return sum
}

// CountSold returns how many artifacts are marked sold.
func CountSold(artifacts []Artifact) int {
	n := 0
	for _, a := range artifacts {
		if a.Sold {
			n++
		}
	}
	return n
}
