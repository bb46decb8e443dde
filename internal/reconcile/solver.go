package reconcile

import (
	"math"

	hungarian "github.com/oddg/hungarian-algorithm"
)

// Solver computes a partial injective assignment of expected-field rows to
// candidate-pair columns. Every returned pairing satisfies
// cost <= threshold.
type Solver interface {
	Solve(costs [][]float64, threshold float64) map[int]int
}

// GreedySolver repeatedly takes the globally cheapest unused cell until no
// remaining cell is under the threshold.
type GreedySolver struct{}

func (GreedySolver) Solve(costs [][]float64, threshold float64) map[int]int {
	assigned := make(map[int]int)
	if len(costs) == 0 || len(costs[0]) == 0 {
		return assigned
	}
	usedRow := make([]bool, len(costs))
	usedCol := make([]bool, len(costs[0]))
	for {
		bestI, bestJ, bestCost := -1, -1, math.Inf(1)
		for i := range costs {
			if usedRow[i] {
				continue
			}
			for j := range costs[i] {
				if usedCol[j] {
					continue
				}
				if costs[i][j] < bestCost {
					bestI, bestJ, bestCost = i, j, costs[i][j]
				}
			}
		}
		if bestI < 0 || bestCost > threshold {
			return assigned
		}
		usedRow[bestI] = true
		usedCol[bestJ] = true
		assigned[bestI] = bestJ
	}
}

// HungarianSolver computes the minimum-cost one-to-one assignment exactly.
// The rectangular matrix is padded to square with the ceiling cost and
// costs are scaled to integers for the underlying implementation; pairings
// above the threshold are discarded after solving, so padding can never be
// accepted. Any solver failure falls back to the greedy matcher.
type HungarianSolver struct{}

const costScale = 10000

func (HungarianSolver) Solve(costs [][]float64, threshold float64) map[int]int {
	rows := len(costs)
	if rows == 0 {
		return map[int]int{}
	}
	cols := len(costs[0])
	if cols == 0 {
		return map[int]int{}
	}

	n := rows
	if cols > n {
		n = cols
	}
	square := make([][]int, n)
	for i := range square {
		square[i] = make([]int, n)
		for j := range square[i] {
			c := CeilingCost
			if i < rows && j < cols {
				c = costs[i][j]
			}
			square[i][j] = int(math.Round(c * costScale))
		}
	}

	cols4rows, err := hungarian.Solve(square)
	if err != nil || len(cols4rows) < rows {
		return GreedySolver{}.Solve(costs, threshold)
	}

	assigned := make(map[int]int)
	for i := 0; i < rows; i++ {
		j := cols4rows[i]
		if j < 0 || j >= cols {
			continue
		}
		if costs[i][j] <= threshold {
			assigned[i] = j
		}
	}
	return assigned
}
