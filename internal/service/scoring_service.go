package service

import (
	"fmt"
	"log"
	"math"

	"dealerpulse/internal/catalog"
	"dealerpulse/internal/model"
)

// ScoringService aggregates raw department scores into category averages and
// a single weighted overall score. All methods are pure functions of their
// inputs plus the injected weight table.
type ScoringService struct {
	weights map[string]catalog.CategoryWeight
}

// NewScoringService creates a scoring service over a category weight table.
func NewScoringService(weights map[string]catalog.CategoryWeight) *ScoringService {
	return &ScoringService{weights: weights}
}

// CalculateWeightedScore computes the overall maturity score in [0,100].
//
// Invalid entries (NaN values, unknown departments) are dropped with a
// warning. When the surviving categories cover less than the full weight,
// the weighted sum is renormalized by the covered weight so partial
// submissions are not deflated. The result is clamped to [0,100] and rounded
// half up. With zero valid scores it returns 0 together with a non-fatal
// error for the caller to log.
func (s *ScoringService) CalculateWeightedScore(departmentScores map[string]float64) (int, error) {
	type bucket struct {
		sum    float64
		count  int
		weight float64
	}
	buckets := make(map[string]*bucket)

	for dept, score := range departmentScores {
		if math.IsNaN(score) || math.IsInf(score, 0) {
			log.Printf("scoring: dropping non-numeric score for department %q", dept)
			continue
		}
		cw, ok := s.weights[dept]
		if !ok {
			log.Printf("scoring: dropping unknown department %q", dept)
			continue
		}
		b := buckets[cw.Category]
		if b == nil {
			b = &bucket{weight: cw.Weight}
			buckets[cw.Category] = b
		}
		b.sum += score
		b.count++
	}

	if len(buckets) == 0 {
		return 0, fmt.Errorf("no valid department scores")
	}

	var weightedSum, coveredWeight float64
	for _, b := range buckets {
		avg := b.sum / float64(b.count)
		weightedSum += avg * b.weight
		coveredWeight += b.weight
	}

	// Partial submissions: divide by the covered weight instead of
	// pretending the missing categories scored zero.
	if coveredWeight > 0 && coveredWeight < 1 {
		weightedSum /= coveredWeight
	}

	return clampScore(roundHalfUp(weightedSum)), nil
}

// CalculateCategoryScores exposes the per-category breakdown: raw average,
// fixed weight and weighted contribution (rounded to two decimals). It is
// served for transparency and reporting; the overall score is computed
// independently by CalculateWeightedScore.
func (s *ScoringService) CalculateCategoryScores(departmentScores map[string]float64) map[string]model.CategoryScore {
	type bucket struct {
		sum    float64
		count  int
		weight float64
	}
	buckets := make(map[string]*bucket)

	for dept, score := range departmentScores {
		if math.IsNaN(score) || math.IsInf(score, 0) {
			continue
		}
		cw, ok := s.weights[dept]
		if !ok {
			continue
		}
		b := buckets[cw.Category]
		if b == nil {
			b = &bucket{weight: cw.Weight}
			buckets[cw.Category] = b
		}
		b.sum += score
		b.count++
	}

	result := make(map[string]model.CategoryScore, len(buckets))
	for category, b := range buckets {
		avg := b.sum / float64(b.count)
		result[category] = model.CategoryScore{
			Score:                round2(avg),
			Weight:               b.weight,
			WeightedContribution: round2(avg * b.weight),
		}
	}
	return result
}

// roundHalfUp rounds to the nearest integer with .5 going up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
