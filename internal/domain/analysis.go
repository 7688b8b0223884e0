package domain

import (
	"cmp"
	"math"
	"slices"
)

// DefaultSalinityTolerance is the tolerance used by salinity searches when none is given.
const DefaultSalinityTolerance = 0.1

// Summary bundles the analytical results for a set of seas.
type Summary struct {
	Count           int     `json:"count"`
	DeepestIndex    int     `json:"deepest_index"`
	LeastSaltyIndex int     `json:"least_salty_index"`
	AverageDepthM   float64 `json:"average_depth_m"`
}

// FindDeepestSeaIndex returns the index of the deepest sea, or NotFound for
// an empty slice. Among equal depths the first occurrence wins.
func FindDeepestSeaIndex(seas []Sea) int {
	if len(seas) == 0 {
		return NotFound
	}

	best := 0
	for i := 1; i < len(seas); i++ {
		if seas[i].DepthM > seas[best].DepthM {
			best = i
		}
	}
	return best
}

// FindLeastSaltySeaIndex returns the index of the sea with the lowest
// salinity, or NotFound for an empty slice. Among equal salinities the first
// occurrence wins.
func FindLeastSaltySeaIndex(seas []Sea) int {
	if len(seas) == 0 {
		return NotFound
	}

	best := 0
	for i := 1; i < len(seas); i++ {
		if seas[i].SalinityPpt < seas[best].SalinityPpt {
			best = i
		}
	}
	return best
}

// CalculateAverageDepth returns the mean depth, or 0 for an empty slice.
func CalculateAverageDepth(seas []Sea) float64 {
	if len(seas) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, s := range seas {
		sum += s.DepthM
	}
	return sum / float64(len(seas))
}

// SortSeasByDepth sorts seas in place, deepest first.
// Seas of equal depth keep their relative order.
func SortSeasByDepth(seas []Sea) {
	slices.SortStableFunc(seas, func(a, b Sea) int {
		return cmp.Compare(b.DepthM, a.DepthM)
	})
}

// FindSeasBySalinity returns the indices of seas whose salinity is within
// tolerance of target, in input order.
func FindSeasBySalinity(seas []Sea, target, tolerance float64) []int {
	tolerance = math.Abs(tolerance)

	matches := make([]int, 0)
	for i, s := range seas {
		if math.Abs(s.SalinityPpt-target) <= tolerance {
			matches = append(matches, i)
		}
	}
	return matches
}

// Summarize runs every analytical query over seas.
func Summarize(seas []Sea) Summary {
	return Summary{
		Count:           len(seas),
		DeepestIndex:    FindDeepestSeaIndex(seas),
		LeastSaltyIndex: FindLeastSaltySeaIndex(seas),
		AverageDepthM:   CalculateAverageDepth(seas),
	}
}
