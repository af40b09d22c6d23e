package clauses

import "github.com/kirillkom/legistra/internal/core/domain"

// Classify returns each present type's occurrence count as a percentage of
// the number of distinct types present, not of the clause count. A type seen
// twice among two distinct types therefore reports 100.
func Classify(clauses []domain.Clause) map[domain.ClauseType]float64 {
	counts := make(map[domain.ClauseType]int, len(clauses))
	for _, clause := range clauses {
		counts[clause.Type]++
	}

	out := make(map[domain.ClauseType]float64, len(counts))
	distinct := len(counts)
	if distinct == 0 {
		return out
	}
	for clauseType, n := range counts {
		out[clauseType] = float64(n) / float64(distinct) * 100
	}
	return out
}
