package httpadapter

import (
	"errors"
	"net/http"

	"github.com/kirillkom/legistra/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	var analysisErr *domain.AnalysisError
	if errors.As(err, &analysisErr) && analysisErr.Kind == domain.KindDocumentNotFound {
		return http.StatusNotFound
	}

	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case domain.IsKind(err, domain.ErrDocumentNotFound), domain.IsKind(err, domain.ErrAnalysisNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
