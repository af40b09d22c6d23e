package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/kirillkom/legistra/internal/core/domain"
)

func TestModeRegistryResolve(t *testing.T) {
	modes, err := NewModeRegistry(ModelNames{Summary: "sum"}, "Fast")
	if err != nil {
		t.Fatalf("NewModeRegistry() error = %v", err)
	}
	if modes.Default() != ModeFast {
		t.Fatalf("expected default fast, got %s", modes.Default())
	}

	mode, err := modes.Resolve("")
	if err != nil || mode.Name != ModeFast {
		t.Fatalf("Resolve(\"\") = %+v, %v", mode, err)
	}
	mode, err = modes.Resolve(" MULTILINGUAL ")
	if err != nil || mode.AnalysisType != domain.AnalysisMultilingual {
		t.Fatalf("Resolve(MULTILINGUAL) = %+v, %v", mode, err)
	}
	_, err = modes.Resolve("deep")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if !strings.Contains(err.Error(), "fast, multilingual, thorough") {
		t.Fatalf("expected the known modes in %q", err)
	}

	if _, err := NewModeRegistry(ModelNames{}, "deep"); err == nil {
		t.Fatalf("expected unknown default mode to be rejected")
	}
}

func TestModePresets(t *testing.T) {
	models := ModelNames{Summary: "sum", Fallback: "fb", LanguageSummary: map[string]string{"marathi": "mr-sum"}}

	thorough := ThoroughMode(models)
	if thorough.DetectLanguage || thorough.Preprocess || thorough.Profile.MaxClauses != 10 {
		t.Fatalf("unexpected thorough preset: %+v", thorough)
	}
	multi := MultilingualMode(models)
	if multi.Summarizer.modelFor("marathi") != "mr-sum" || multi.Summarizer.modelFor("hindi") != "sum" {
		t.Fatalf("unexpected per-language model routing")
	}
	fast := FastMode()
	if fast.Summarizer.Strategy != SummaryExtractive || fast.Profile.MaxClauses != 5 {
		t.Fatalf("unexpected fast preset: %+v", fast)
	}
}

func TestModelCacheLoadsOnce(t *testing.T) {
	model := &summarizerFake{summary: "ok"}
	loader := newLoaderFake(map[string]*summarizerFake{"m": model})
	cache := NewModelCache(loader)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.GetOrLoad(context.Background(), "m"); err != nil {
				t.Errorf("GetOrLoad() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if loader.loads["m"] != 1 || len(cache.models) != 1 {
		t.Fatalf("expected one load, got %d loads and %d entries", loader.loads["m"], len(cache.models))
	}
}

func TestModelCacheDoesNotCacheFailures(t *testing.T) {
	loader := newLoaderFake(map[string]*summarizerFake{"m": {summary: "ok"}})
	loader.loadErr["m"] = errors.New("pulling")
	cache := NewModelCache(loader)

	if _, err := cache.GetOrLoad(context.Background(), "m"); err == nil {
		t.Fatalf("expected load error")
	}
	delete(loader.loadErr, "m")
	if _, err := cache.GetOrLoad(context.Background(), "m"); err != nil {
		t.Fatalf("GetOrLoad() retry error = %v", err)
	}
	if loader.loads["m"] != 2 {
		t.Fatalf("expected a retry load, got %d", loader.loads["m"])
	}
}
