package artifact

import (
	"sort"

	"github.com/zappabad/budgetsim/internal/sampling"
)

// Selection is the set of purchased artifacts, as indices into the slice
// passed to SelectToBuy. Order is the order items were accepted.
type Selection []int

// Apply marks every selected artifact as sold.
func (s Selection) Apply(artifacts []Artifact) {
	for _, i := range s {
		artifacts[i].Sold = true
	}
}

// Total sums the prices of the selected artifacts.
func (s Selection) Total(artifacts []Artifact) float64 {
	var sum float64
	for _, i := range s {
		sum += artifacts[i].Price
	}
	return sum
}

// Contains reports whether index i is selected.
func (s Selection) Contains(i int) bool {
	for _, j := range s {
		if j == i {
			return true
		}
	}
	return false
}

// SelectToBuy picks up to numToBuy artifacts whose prices sum to at most
// budgetCap. It runs in three phases:
//
//  1. a uniform random permutation; the first numToBuy become candidates
//  2. candidates are sorted by price descending and the most expensive is
//     dropped until the total fits the cap
//  3. the remaining artifacts, cheapest first, are added while both the cap
//     and the count still allow it
//
// The input slice is not modified.
func SelectToBuy(src sampling.Source, artifacts []Artifact, numToBuy int, budgetCap float64) Selection {
	if numToBuy <= 0 || len(artifacts) == 0 {
		return Selection{}
	}

	order := make([]int, len(artifacts))
	for i := range order {
		order[i] = i
	}
	sampling.Shuffle(src, len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	take := numToBuy
	if take > len(order) {
		take = len(order)
	}
	selected := append(Selection(nil), order[:take]...)

	sort.SliceStable(selected, func(a, b int) bool {
		return artifacts[selected[a]].Price > artifacts[selected[b]].Price
	})

	total := selected.Total(artifacts)
	for total > budgetCap && len(selected) > 0 {
		selected = selected[1:]
		total = selected.Total(artifacts)
	}

	inSelection := make([]bool, len(artifacts))
	for _, i := range selected {
		inSelection[i] = true
	}
	pool := make([]int, 0, len(artifacts)-len(selected))
	for i := range artifacts {
		if !inSelection[i] {
			pool = append(pool, i)
		}
	}
	sort.SliceStable(pool, func(a, b int) bool {
		return artifacts[pool[a]].Price < artifacts[pool[b]].Price
	})

	// Full scan, no early exit on the first rejection.
	for _, i := range pool {
		price := artifacts[i].Price
		if total+price <= budgetCap && len(selected) < numToBuy {
			selected = append(selected, i)
			total += price
		}
	}

	return selected
}
