package clauses

import (
	"regexp"
	"strings"

	"github.com/kirillkom/legistra/internal/core/domain"
)

// TypePatterns binds an ordered pattern list to one clause type.
type TypePatterns struct {
	Type     domain.ClauseType
	Label    string
	Patterns []*regexp.Regexp
}

// Library is a read-only, precompiled clause pattern set. Libraries are built
// once at package init and shared by every analysis run.
type Library struct {
	Name     string
	Types    []TypePatterns
	Boundary *regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, regexp.MustCompile(expr))
	}
	return out
}

func labelFor(t domain.ClauseType) string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func patternsFor(t domain.ClauseType, exprs ...string) TypePatterns {
	return TypePatterns{Type: t, Label: labelFor(t), Patterns: compileAll(exprs...)}
}

const terminationOfAgreement = `(?i)termination\s*of\s*(?:the\s*)?(?:agreement|contract)`

var englishLibrary = &Library{
	Name: "english",
	Types: []TypePatterns{
		patternsFor(domain.ClauseConfidentiality,
			`(?i)(?:article|section|clause)\s*\d*\.?\s*(?:confidentiality|confidential|non-disclosure|nda)`,
			`(?i)confidentiality\s*(?:agreement|clause|provision)`,
			`(?i)non-disclosure\s*(?:agreement|clause|provision)`,
		),
		patternsFor(domain.ClauseIndemnity,
			`(?i)(?:article|section|clause)\s*\d*\.?\s*(?:indemnity|indemnification)`,
			`(?i)indemnity\s*(?:clause|provision|agreement)`,
			`(?i)indemnification\s*(?:clause|provision|agreement)`,
		),
		patternsFor(domain.ClauseLiability,
			`(?i)(?:article|section|clause)\s*\d*\.?\s*(?:liability|limitation of liability)`,
			`(?i)liability\s*(?:clause|provision|limitation)`,
			`(?i)limitation\s*of\s*liability`,
		),
		patternsFor(domain.ClauseTermination,
			`(?i)(?:article|section|clause)\s*\d*\.?\s*(?:termination|termination of agreement)`,
			`(?i)termination\s*(?:clause|provision|rights|conditions)`,
			`(?i)term\s*and\s*termination`,
			terminationOfAgreement,
		),
		patternsFor(domain.ClauseGoverningLaw,
			`(?i)(?:article|section|clause)\s*\d*\.?\s*(?:governing law|governing law and jurisdiction)`,
			`(?i)governing\s*(?:law|jurisdiction)`,
			`(?i)applicable\s*law`,
		),
		patternsFor(domain.ClauseDisputeResolution,
			`(?i)(?:article|section|clause)\s*\d*\.?\s*(?:dispute|arbitration|dispute resolution)`,
			`(?i)dispute\s*(?:resolution|settlement)`,
			`(?i)arbitration\s*(?:clause|agreement|provision)`,
		),
		patternsFor(domain.ClausePaymentTerms,
			`(?i)(?:article|section|clause)\s*\d*\.?\s*(?:payment|compensation|fees)`,
			`(?i)payment\s*(?:terms|conditions|schedule)`,
			`(?i)compensation\s*(?:clause|provision)`,
		),
		patternsFor(domain.ClauseIntellectualProperty,
			`(?i)(?:article|section|clause)\s*\d*\.?\s*(?:intellectual property|ip|copyright|patent)`,
			`(?i)intellectual\s*property\s*(?:rights|clause|provision)`,
			`(?i)ip\s*(?:rights|clause|provision)`,
		),
		patternsFor(domain.ClauseWarranties,
			`(?i)(?:article|section|clause)\s*\d*\.?\s*(?:warranty|warranties|representations)`,
			`(?i)warranty\s*(?:clause|provision|disclaimer)`,
			`(?i)representations?\s*and\s*warranties?`,
		),
		patternsFor(domain.ClauseDefinitions,
			`(?i)(?:article|section|clause)\s*\d*\.?\s*(?:definitions?|defined terms)`,
			`(?i)definitions?\s*(?:clause|section)`,
			`(?i)defined\s*terms?`,
		),
	},
	Boundary: regexp.MustCompile(`(?i)\n\s*(?:article|section|clause)\s*\d+`),
}

// Devanagari variants cover Hindi and Marathi headings.
var multilingualLibrary = &Library{
	Name: "multilingual",
	Types: []TypePatterns{
		patternsFor(domain.ClauseConfidentiality,
			`(?i)(?:article|section|clause|धार|अनुच्छेद)\s*\d*\.?\s*(?:confidentiality|confidential|non-disclosure|nda|गोपनीयता|गुप्तता)`,
			`(?i)confidentiality\s*(?:agreement|clause|provision|समझौता|धार)`,
			`(?i)non-disclosure\s*(?:agreement|clause|provision|समझौता|धार)`,
			`(?i)गोपनीयता\s*(?:समझौता|धार|प्रावधान)`,
			`(?i)गुप्तता\s*(?:समझौता|धार|प्रावधान)`,
		),
		patternsFor(domain.ClauseIndemnity,
			`(?i)(?:article|section|clause|धार|अनुच्छेद)\s*\d*\.?\s*(?:indemnity|indemnification|क्षतिपूर्ति|हर्जाना)`,
			`(?i)indemnity\s*(?:clause|provision|agreement|धार|समझौता)`,
			`(?i)indemnification\s*(?:clause|provision|agreement|धार|समझौता)`,
			`(?i)क्षतिपूर्ति\s*(?:धार|प्रावधान|समझौता)`,
			`(?i)हर्जाना\s*(?:धार|प्रावधान|समझौता)`,
		),
		patternsFor(domain.ClauseLiability,
			`(?i)(?:article|section|clause|धार|अनुच्छेद)\s*\d*\.?\s*(?:liability|limitation of liability|दायित्व|जिम्मेदारी)`,
			`(?i)liability\s*(?:clause|provision|limitation|धार|प्रावधान)`,
			`(?i)limitation\s*of\s*liability`,
			`(?i)दायित्व\s*(?:धार|प्रावधान|सीमा)`,
			`(?i)जिम्मेदारी\s*(?:धार|प्रावधान|सीमा)`,
		),
		patternsFor(domain.ClauseTermination,
			`(?i)(?:article|section|clause|धार|अनुच्छेद)\s*\d*\.?\s*(?:termination|termination of agreement|समाप्ति|अंत)`,
			`(?i)termination\s*(?:clause|provision|rights|conditions|धार|अधिकार|शर्त)`,
			`(?i)term\s*and\s*termination`,
			`(?i)समाप्ति\s*(?:धार|अधिकार|शर्त|समझौता)`,
			`(?i)अंत\s*(?:धार|अधिकार|शर्त|समझौता)`,
			terminationOfAgreement,
		),
		patternsFor(domain.ClauseGoverningLaw,
			`(?i)(?:article|section|clause|धार|अनुच्छेद)\s*\d*\.?\s*(?:governing law|governing law and jurisdiction|शासन कानून|न्यायक्षेत्र)`,
			`(?i)governing\s*(?:law|jurisdiction|कानून|न्यायक्षेत्र)`,
			`(?i)applicable\s*law`,
			`(?i)शासन\s*कानून`,
			`(?i)न्यायक्षेत्र`,
		),
		patternsFor(domain.ClausePaymentTerms,
			`(?i)(?:article|section|clause|धार|अनुच्छेद)\s*\d*\.?\s*(?:payment|compensation|fees|भुगतानी|प्रतिपूर्ति)`,
			`(?i)payment\s*(?:terms|conditions|schedule|शर्त|नियम|समय)`,
			`(?i)compensation\s*(?:clause|provision|धार|प्रावधान)`,
			`(?i)भुगतानी\s*(?:शर्त|नियम|समय|धार)`,
			`(?i)प्रतिपूर्ति\s*(?:धार|प्रावधान|शर्त)`,
		),
	},
	Boundary: regexp.MustCompile(`(?i)\n\s*(?:article|section|clause|धार|अनुच्छेद)\s*\p{Nd}+`),
}

// The fast library trades recall for speed: bare keywords, first hit only.
var fastLibrary = &Library{
	Name: "fast",
	Types: []TypePatterns{
		patternsFor(domain.ClauseConfidentiality,
			`(?i)(?:confidential|गोपनीय|गुप्त)`,
			`(?i)(?:non-disclosure|nda)`,
		),
		patternsFor(domain.ClauseTermination,
			`(?i)(?:termination|समाप्ति|अंत)`,
			`(?i)(?:terminate|end)`,
		),
		{
			Type:  domain.ClausePaymentTerms,
			Label: "Payment",
			Patterns: compileAll(
				`(?i)(?:payment|भुगतानी|भरणे)`,
				`(?i)(?:fee|cost|amount)`,
			),
		},
		patternsFor(domain.ClauseLiability,
			`(?i)(?:liability|दायित्व|जिम्मेदारी)`,
			`(?i)(?:responsible|liable)`,
		),
	},
}
