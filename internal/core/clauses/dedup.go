package clauses

import (
	"strings"

	"github.com/kirillkom/legistra/internal/core/domain"
)

// DedupAndLimit keeps the first clause seen for each normalized heading and
// caps the result at maxCount entries. A non-positive maxCount disables the cap.
func DedupAndLimit(candidates []domain.Clause, maxCount int) []domain.Clause {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]domain.Clause, 0, len(candidates))
	for _, clause := range candidates {
		key := strings.ToLower(strings.TrimSpace(clause.Heading))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, clause)
	}
	if maxCount > 0 && len(out) > maxCount {
		out = out[:maxCount]
	}
	return out
}
