package usecase

import (
	"cmp"
	"slices"

	"github.com/filtersfast/backend/internal/domain"
)

// DefaultMaxResults is the most matches the ranker ever returns
const DefaultMaxResults = 5

// ResultRanker scores a whole catalog and keeps the best matches
type ResultRanker struct {
	scorer     *ScoringEngine
	maxResults int
}

// rankedIndex ties a result back to its position in the catalog slice
type rankedIndex struct {
	index  int
	result domain.MatchResult
}

// NewResultRanker creates a ranker. maxResults outside 1..DefaultMaxResults
// falls back to DefaultMaxResults.
func NewResultRanker(scorer *ScoringEngine, maxResults int) *ResultRanker {
	if maxResults <= 0 || maxResults > DefaultMaxResults {
		maxResults = DefaultMaxResults
	}
	if scorer == nil {
		scorer = NewScoringEngine(DefaultTolerance)
	}
	return &ResultRanker{scorer: scorer, maxResults: maxResults}
}

// Rank returns the highest scoring catalog items, best first. Items that fail
// a hard filter or score zero are dropped; ties keep catalog order.
func (r *ResultRanker) Rank(c *domain.ConstraintSet, catalog []domain.CatalogItem) []domain.MatchResult {
	ranked := r.rank(c, catalog)
	results := make([]domain.MatchResult, len(ranked))
	for i, rr := range ranked {
		results[i] = rr.result
	}
	return results
}

func (r *ResultRanker) rank(c *domain.ConstraintSet, catalog []domain.CatalogItem) []rankedIndex {
	ranked := make([]rankedIndex, 0, len(catalog))
	for i := range catalog {
		item := &catalog[i]
		if !passesHardFilters(c, item) {
			continue
		}
		result := r.scorer.Score(c, item)
		if result.Score == 0 {
			continue
		}
		ranked = append(ranked, rankedIndex{index: i, result: result})
	}

	slices.SortStableFunc(ranked, func(a, b rankedIndex) int {
		return cmp.Compare(b.result.Score, a.result.Score)
	})

	if len(ranked) > r.maxResults {
		ranked = ranked[:r.maxResults]
	}
	return ranked
}

// passesHardFilters excludes items whose environment, system, brand or series
// differ from a supplied constraint.
func passesHardFilters(c *domain.ConstraintSet, item *domain.CatalogItem) bool {
	if c.Environment != nil && *c.Environment != item.Environment {
		return false
	}
	if c.System != nil && *c.System != item.System {
		return false
	}
	if c.Brand != nil && *c.Brand != item.Brand {
		return false
	}
	if c.Series != nil && (item.Series == nil || *item.Series != *c.Series) {
		return false
	}
	return true
}
