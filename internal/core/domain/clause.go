package domain

// ClauseType is the fixed category label attached to an extracted clause.
type ClauseType string

const (
	ClauseConfidentiality      ClauseType = "confidentiality"
	ClauseIndemnity            ClauseType = "indemnity"
	ClauseLiability            ClauseType = "liability"
	ClauseTermination          ClauseType = "termination"
	ClauseGoverningLaw         ClauseType = "governing_law"
	ClauseDisputeResolution    ClauseType = "dispute_resolution"
	ClausePaymentTerms         ClauseType = "payment_terms"
	ClauseIntellectualProperty ClauseType = "intellectual_property"
	ClauseWarranties           ClauseType = "warranties"
	ClauseDefinitions          ClauseType = "definitions"
	ClauseOther                ClauseType = "other"
)

// ClauseTypes lists every tag in declaration order.
var ClauseTypes = []ClauseType{
	ClauseConfidentiality,
	ClauseIndemnity,
	ClauseLiability,
	ClauseTermination,
	ClauseGoverningLaw,
	ClauseDisputeResolution,
	ClausePaymentTerms,
	ClauseIntellectualProperty,
	ClauseWarranties,
	ClauseDefinitions,
	ClauseOther,
}

type Clause struct {
	Type     ClauseType `json:"type"`
	Heading  string     `json:"heading"`
	Content  string     `json:"content"`
	Language string     `json:"language,omitempty"`
}
