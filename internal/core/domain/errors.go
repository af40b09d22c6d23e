package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrTemporary        = errors.New("temporary failure")
	ErrSummarization    = errors.New("summarization failed")
	ErrPersistence      = errors.New("persistence failed")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

type AnalysisErrorKind string

const (
	KindDocumentNotFound     AnalysisErrorKind = "document_not_found"
	KindSummarizationFailure AnalysisErrorKind = "summarization_failure"
	KindPersistenceFailure   AnalysisErrorKind = "persistence_failure"
	KindCriticalFailure      AnalysisErrorKind = "critical_failure"
)

// AnalysisError is the discriminated failure returned by the analysis
// orchestrator instead of a bare error.
type AnalysisError struct {
	Kind       AnalysisErrorKind `json:"kind"`
	DocumentID string            `json:"document_id"`
	Stage      AnalysisStage     `json:"stage"`
	Message    string            `json:"message,omitempty"`
	Err        error             `json:"-"`
}

func NewAnalysisError(kind AnalysisErrorKind, documentID string, stage AnalysisStage, err error) *AnalysisError {
	e := &AnalysisError{Kind: kind, DocumentID: documentID, Stage: stage, Err: err}
	if err != nil {
		e.Message = err.Error()
	}
	return e
}

func (e *AnalysisError) Error() string {
	if e == nil {
		return "analysis error"
	}
	if e.Err == nil {
		return fmt.Sprintf("analysis %s for document %s at %s", e.Kind, e.DocumentID, e.Stage)
	}
	return fmt.Sprintf("analysis %s for document %s at %s: %v", e.Kind, e.DocumentID, e.Stage, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match an AnalysisError against the sentinel kinds.
func (e *AnalysisError) Is(target error) bool {
	switch e.Kind {
	case KindDocumentNotFound:
		return target == ErrDocumentNotFound
	case KindSummarizationFailure:
		return target == ErrSummarization
	case KindPersistenceFailure:
		return target == ErrPersistence
	default:
		return false
	}
}
