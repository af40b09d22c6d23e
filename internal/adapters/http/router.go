package httpadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kirillkom/legistra/internal/config"
	"github.com/kirillkom/legistra/internal/core/ports"
	"github.com/kirillkom/legistra/internal/observability/logging"
	"github.com/kirillkom/legistra/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg       config.Config
	ingest    ports.DocumentIngestor
	analyzer  ports.DocumentAnalyzer
	documents ports.DocumentReader
	analyses  ports.AnalysisReader
	metrics   *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	ingest ports.DocumentIngestor,
	analyzer ports.DocumentAnalyzer,
	documents ports.DocumentReader,
	analyses ports.AnalysisReader,
) *Router {
	return &Router{
		cfg:       cfg,
		ingest:    ingest,
		analyzer:  analyzer,
		documents: documents,
		analyses:  analyses,
	}
}

// WithMetrics exposes /metrics and records request metrics.
func (rt *Router) WithMetrics(m *metrics.HTTPServerMetrics) *Router {
	rt.metrics = m
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
	}
	mux.HandleFunc("POST /v1/documents", rt.uploadDocument)
	mux.HandleFunc("GET /v1/documents", rt.listDocuments)
	mux.HandleFunc("GET /v1/documents/{document_id}", rt.getDocument)
	mux.HandleFunc("POST /v1/documents/{document_id}/analyze", rt.analyzeDocument)
	mux.HandleFunc("GET /v1/documents/{document_id}/analysis", rt.latestAnalysis)
	mux.HandleFunc("GET /v1/documents/{document_id}/analyses", rt.listAnalyses)
	mux.HandleFunc("GET /v1/documents/{document_id}/analysis.xlsx", rt.exportAnalysis)

	var handler http.Handler = mux
	handler = openAPIValidationMiddleware(handler, mustLoadAPISpec())
	handler = backpressureMiddleware(
		handler,
		rt.cfg.APIBackpressureMaxInFlight,
		time.Duration(rt.cfg.APIBackpressureWaitMS)*time.Millisecond,
	)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if rt.cfg.MaxUploadBytes > 0 {
		// Multipart framing needs headroom over the file limit.
		r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes+1<<20)
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	doc, err := rt.ingest.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		r.FormValue("mode"),
		file,
	)
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordUpload(serviceName, string(doc.Format))
	}

	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := rt.documents.List(r.Context(), queryLimit(r))
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (rt *Router) getDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := rt.documents.GetByID(r.Context(), r.PathValue("document_id"))
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) analyzeDocument(w http.ResponseWriter, r *http.Request) {
	documentID := r.PathValue("document_id")
	ctx := logging.ContextWithDocumentID(r.Context(), documentID)

	outcome, failure := rt.analyzer.Analyze(ctx, documentID, r.URL.Query().Get("mode"))
	if failure != nil {
		status := mapErrorToHTTPStatus(failure)
		logging.WithContext(ctx, slog.Default()).Warn("analysis_request_failed",
			"kind", failure.Kind,
			"stage", failure.Stage,
			"status", status,
		)
		writeJSON(w, status, map[string]any{
			"error": failure.Message,
			"kind":  failure.Kind,
			"stage": failure.Stage,
		})
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (rt *Router) latestAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := rt.analyses.LatestAnalysis(r.Context(), r.PathValue("document_id"))
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (rt *Router) listAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := rt.analyses.ListAnalyses(r.Context(), r.PathValue("document_id"), queryLimit(r))
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analyses": analyses})
}

func (rt *Router) exportAnalysis(w http.ResponseWriter, r *http.Request) {
	documentID := r.PathValue("document_id")

	var buf bytes.Buffer
	if err := rt.analyses.ExportLatest(r.Context(), documentID, &buf); err != nil {
		rt.writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", rt.analyses.ReportContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="analysis-`+sanitizeHeaderValue(documentID)+`.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (rt *Router) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logging.WithContext(r.Context(), slog.Default()).Error("request_failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, status, err.Error())
}

func queryLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return 0
	}
	return limit
}

func sanitizeHeaderValue(value string) string {
	return strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r < 0x20 || r == 0x7f {
			return '_'
		}
		return r
	}, value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
