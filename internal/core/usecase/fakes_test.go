package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/kirillkom/legistra/internal/core/domain"
	"github.com/kirillkom/legistra/internal/core/ports"
)

type statusUpdate struct {
	status domain.DocumentStatus
	errMsg string
}

type docRepoFake struct {
	mu          sync.Mutex
	docs        map[string]*domain.Document
	created     []*domain.Document
	getErr      error
	statusErr   map[domain.DocumentStatus]error
	statusCalls map[string][]statusUpdate
	listed      int
}

func newDocRepoFake(docs ...*domain.Document) *docRepoFake {
	f := &docRepoFake{
		docs:        make(map[string]*domain.Document),
		statusErr:   make(map[domain.DocumentStatus]error),
		statusCalls: make(map[string][]statusUpdate),
	}
	for _, doc := range docs {
		f.docs[doc.ID] = doc
	}
	return f
}

func (f *docRepoFake) Create(_ context.Context, doc *domain.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copyDoc := *doc
	f.created = append(f.created, &copyDoc)
	f.docs[doc.ID] = &copyDoc
	return nil
}

func (f *docRepoFake) GetByID(_ context.Context, id string) (*domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	doc, ok := f.docs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", fmt.Errorf("id=%s", id))
	}
	copyDoc := *doc
	return &copyDoc, nil
}

func (f *docRepoFake) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	f.statusCalls[id] = append(f.statusCalls[id], statusUpdate{status: status, errMsg: errMessage})
	return f.statusErr[status]
}

func (f *docRepoFake) List(_ context.Context, limit int) ([]domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listed = limit
	out := make([]domain.Document, 0, len(f.docs))
	for _, doc := range f.docs {
		out = append(out, *doc)
	}
	return out, nil
}

func (f *docRepoFake) statuses(id string) []domain.DocumentStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.DocumentStatus, 0, len(f.statusCalls[id]))
	for _, call := range f.statusCalls[id] {
		out = append(out, call.status)
	}
	return out
}

type analysisRepoFake struct {
	mu      sync.Mutex
	saved   []domain.AnalysisResult
	saveErr error
	latest  *domain.StoredAnalysis
	getErr  error
	listed  []domain.StoredAnalysis
}

func (f *analysisRepoFake) Save(ctx context.Context, _ string, result domain.AnalysisResult) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, result)
	return fmt.Sprintf("analysis-%d", len(f.saved)), nil
}

func (f *analysisRepoFake) GetLatestByDocumentID(_ context.Context, documentID string) (*domain.StoredAnalysis, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.latest == nil {
		return nil, domain.WrapError(domain.ErrAnalysisNotFound, "get latest analysis", errors.New(documentID))
	}
	copyAnalysis := *f.latest
	return &copyAnalysis, nil
}

func (f *analysisRepoFake) ListByDocumentID(context.Context, string, int) ([]domain.StoredAnalysis, error) {
	return f.listed, nil
}

type summarizeCall struct {
	text      string
	maxLength int
	minLength int
}

type summarizerFake struct {
	mu      sync.Mutex
	summary string
	err     error
	panics  bool
	during  func()
	calls   []summarizeCall
}

func (f *summarizerFake) Summarize(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, summarizeCall{text: text, maxLength: maxLength, minLength: minLength})
	if f.panics {
		panic("model crashed")
	}
	if f.during != nil {
		f.during()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

type loaderFake struct {
	mu      sync.Mutex
	models  map[string]*summarizerFake
	loadErr map[string]error
	loads   map[string]int
}

func newLoaderFake(models map[string]*summarizerFake) *loaderFake {
	return &loaderFake{models: models, loadErr: map[string]error{}, loads: map[string]int{}}
}

func (f *loaderFake) Load(_ context.Context, modelID string) (ports.Summarizer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads[modelID]++
	if err := f.loadErr[modelID]; err != nil {
		return nil, err
	}
	model, ok := f.models[modelID]
	if !ok {
		return nil, errors.New("model not found: " + modelID)
	}
	return model, nil
}

type detectorFake struct {
	mu    sync.Mutex
	code  string
	err   error
	calls int
}

func (f *detectorFake) Detect(string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.code, f.err
}

type truncatorFake struct {
	mu    sync.Mutex
	limit []int
}

func (f *truncatorFake) Truncate(text string, maxTokens int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limit = append(f.limit, maxTokens)
	return text
}

type sinkFake struct {
	mu        sync.Mutex
	projected []string
	err       error
}

func (f *sinkFake) Project(_ context.Context, analysisID string, _ domain.AnalysisResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projected = append(f.projected, analysisID)
	return f.err
}

type observerFake struct {
	mu        sync.Mutex
	stages    []domain.AnalysisStage
	fallbacks []string
	failures  []*domain.AnalysisError
	runs      int
}

func (f *observerFake) ObserveStage(_ string, stage domain.AnalysisStage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stages = append(f.stages, stage)
}

func (f *observerFake) ObserveSummaryFallback(_ string, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fallbacks = append(f.fallbacks, reason)
}

func (f *observerFake) ObserveAnalysis(_ string, _ int, failure *domain.AnalysisError, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs++
	f.failures = append(f.failures, failure)
}

type queueFake struct {
	requests []domain.AnalysisRequest
	err      error
}

func (f *queueFake) PublishAnalysisRequested(_ context.Context, request domain.AnalysisRequest) error {
	if f.err != nil {
		return f.err
	}
	f.requests = append(f.requests, request)
	return nil
}

func (f *queueFake) SubscribeAnalysisRequested(context.Context, func(context.Context, domain.AnalysisRequest) error) error {
	return errors.New("not implemented")
}

type storageFake struct {
	savedKey  string
	savedBody string
	err       error
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.savedKey = key
	f.savedBody = string(raw)
	return nil
}

func (f *storageFake) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f.savedBody)), nil
}

type extractorFake struct {
	text   string
	err    error
	format domain.DocumentFormat
}

func (f *extractorFake) Extract(_ context.Context, format domain.DocumentFormat, _ []byte) (string, error) {
	f.format = format
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type exporterFake struct {
	exported *domain.StoredAnalysis
	err      error
}

func (f *exporterFake) ContentType() string { return "application/test" }

func (f *exporterFake) Export(_ context.Context, analysis domain.StoredAnalysis, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	f.exported = &analysis
	_, err := io.WriteString(w, "report:"+analysis.ID)
	return err
}
