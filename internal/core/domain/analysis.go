package domain

import "time"

type AnalysisType string

const (
	AnalysisThorough         AnalysisType = "thorough"
	AnalysisMultilingual     AnalysisType = "multilingual"
	AnalysisFastMultilingual AnalysisType = "fast_multilingual"
)

const LanguageEnglish = "english"

// AnalysisResult is the packaged output of one analysis run. It is never
// mutated after it has been handed to the analysis repository.
type AnalysisResult struct {
	DocumentID     string                 `json:"document_id"`
	AnalysisType   AnalysisType           `json:"analysis_type"`
	Summary        string                 `json:"summary"`
	Language       string                 `json:"language,omitempty"`
	Clauses        []Clause               `json:"clauses"`
	Classification map[ClauseType]float64 `json:"classification"`
	Risks          []string               `json:"risks"`
	ProcessingTime float64                `json:"processing_time"`
	ModelVersions  map[string]string      `json:"model_versions"`
	CreatedAt      time.Time              `json:"created_at"`
}

// StoredAnalysis is an AnalysisResult as read back from the repository.
type StoredAnalysis struct {
	ID     string         `json:"id"`
	Result AnalysisResult `json:"result"`
}

// AnalysisOutcome is returned to synchronous callers of the orchestrator.
// Persisted is false when the result was computed but could not be stored.
type AnalysisOutcome struct {
	AnalysisID string           `json:"analysis_id,omitempty"`
	Persisted  bool             `json:"persisted"`
	Result     AnalysisResult   `json:"result"`
	Warnings   []*AnalysisError `json:"warnings,omitempty"`
}

// AnalysisRequest is the queued unit of work for the worker.
type AnalysisRequest struct {
	DocumentID string    `json:"document_id"`
	Mode       string    `json:"mode"`
	QueuedAt   time.Time `json:"queued_at"`
}
