package clauses

import (
	"fmt"

	"github.com/kirillkom/legistra/internal/core/domain"
)

type RiskRule struct {
	Type    domain.ClauseType
	Message string
}

// RiskTable is evaluated in definition order.
type RiskTable []RiskRule

var englishRisks = RiskTable{
	{Type: domain.ClauseTermination, Message: "Termination clauses detected - review termination conditions"},
	{Type: domain.ClauseLiability, Message: "Liability limitation clauses - review liability caps"},
	{Type: domain.ClauseConfidentiality, Message: "Confidentiality obligations - ensure compliance"},
	{Type: domain.ClausePaymentTerms, Message: "Payment terms - verify payment schedule"},
	{Type: domain.ClauseDisputeResolution, Message: "Dispute resolution clause - arbitration required"},
}

var multilingualRisks = englishRisks[:4]

var fastRisks = RiskTable{
	{Type: domain.ClauseConfidentiality, Message: "Confidentiality obligations detected"},
	{Type: domain.ClauseTermination, Message: "Termination clauses detected - review conditions"},
	{Type: domain.ClausePaymentTerms, Message: "Payment terms identified - verify schedule"},
	{Type: domain.ClauseLiability, Message: "Liability clauses found - review limits"},
}

// PresentTypes returns the set of clause types found in clauses.
func PresentTypes(clauses []domain.Clause) map[domain.ClauseType]struct{} {
	present := make(map[domain.ClauseType]struct{}, len(clauses))
	for _, clause := range clauses {
		present[clause.Type] = struct{}{}
	}
	return present
}

// DeriveRisks emits one message per present type that has a rule, in table
// order. Messages for a non-English language carry a "(language)" suffix.
func DeriveRisks(present map[domain.ClauseType]struct{}, table RiskTable, language string) []string {
	risks := make([]string, 0, len(table))
	for _, rule := range table {
		if _, ok := present[rule.Type]; !ok {
			continue
		}
		msg := rule.Message
		if language != "" && language != domain.LanguageEnglish {
			msg = fmt.Sprintf("%s (%s)", msg, language)
		}
		risks = append(risks, msg)
	}
	return risks
}
