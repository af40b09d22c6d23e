package clauses

import "github.com/kirillkom/legistra/internal/core/domain"

// Profile is the pattern-matching half of an analysis mode.
type Profile struct {
	Library    *Library
	Locate     LocateOptions
	MaxClauses int
	Risks      RiskTable
}

type Extraction struct {
	Clauses        []domain.Clause
	Classification map[domain.ClauseType]float64
	Risks          []string
}

// StageFunc is told when Extract enters each of its steps. It may be nil.
type StageFunc func(domain.AnalysisStage)

// Extract runs locate, dedup/limit, risk derivation and classification over
// already preprocessed text. It is deterministic for a given text and profile.
func Extract(text string, profile Profile, language string, enter StageFunc) Extraction {
	if enter == nil {
		enter = func(domain.AnalysisStage) {}
	}
	opts := profile.Locate
	opts.Language = language

	enter(domain.StageExtractingClauses)
	kept := DedupAndLimit(Locate(text, profile.Library, opts), profile.MaxClauses)

	enter(domain.StageDerivingRisks)
	risks := DeriveRisks(PresentTypes(kept), profile.Risks, language)

	enter(domain.StageClassifying)
	return Extraction{
		Clauses:        kept,
		Classification: Classify(kept),
		Risks:          risks,
	}
}

func ThoroughProfile() Profile {
	return Profile{Library: englishLibrary, Locate: SectionOptions(), MaxClauses: 10, Risks: englishRisks}
}

func MultilingualProfile() Profile {
	return Profile{Library: multilingualLibrary, Locate: SectionOptions(), MaxClauses: 10, Risks: multilingualRisks}
}

func FastProfile() Profile {
	return Profile{Library: fastLibrary, Locate: WindowOptions(), MaxClauses: 5, Risks: fastRisks}
}
