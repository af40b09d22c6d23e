package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kirillkom/legistra/internal/core/clauses"
	"github.com/kirillkom/legistra/internal/core/domain"
)

const (
	ModeThorough     = "thorough"
	ModeMultilingual = "multilingual"
	ModeFast         = "fast"
)

type SummaryStrategy string

const (
	SummaryModel      SummaryStrategy = "model"
	SummaryExtractive SummaryStrategy = "extractive"
)

// SummaryBounds are summary lengths passed to the summarization model.
type SummaryBounds struct {
	MaxLength int
	MinLength int
}

// SummarizerSettings configures the summarization step of a mode.
type SummarizerSettings struct {
	Strategy       SummaryStrategy
	PrimaryModel   string
	LanguageModels map[string]string
	Bounds         SummaryBounds
	FallbackModel  string
	FallbackBounds SummaryBounds
	MaxInputTokens int
}

func (s SummarizerSettings) modelFor(language string) string {
	if model := s.LanguageModels[language]; model != "" {
		return model
	}
	return s.PrimaryModel
}

// Mode is one analysis preset: which patterns run, how clauses are cut,
// how the summary is produced and which risk table applies.
type Mode struct {
	Name           string
	AnalysisType   domain.AnalysisType
	Profile        clauses.Profile
	DetectLanguage bool
	Preprocess     bool
	Summarizer     SummarizerSettings
}

// ModelNames are the deployment-specific model and tokenizer identifiers.
type ModelNames struct {
	Summary         string
	Fallback        string
	LanguageSummary map[string]string
	Tokenizer       string
}

func ThoroughMode(models ModelNames) Mode {
	return Mode{
		Name:         ModeThorough,
		AnalysisType: domain.AnalysisThorough,
		Profile:      clauses.ThoroughProfile(),
		Summarizer: SummarizerSettings{
			Strategy:       SummaryModel,
			PrimaryModel:   models.Summary,
			Bounds:         SummaryBounds{MaxLength: 150, MinLength: 30},
			FallbackModel:  models.Fallback,
			FallbackBounds: SummaryBounds{MaxLength: 80, MinLength: 20},
			MaxInputTokens: 1024,
		},
	}
}

func MultilingualMode(models ModelNames) Mode {
	return Mode{
		Name:           ModeMultilingual,
		AnalysisType:   domain.AnalysisMultilingual,
		Profile:        clauses.MultilingualProfile(),
		DetectLanguage: true,
		Preprocess:     true,
		Summarizer: SummarizerSettings{
			Strategy:       SummaryModel,
			PrimaryModel:   models.Summary,
			LanguageModels: models.LanguageSummary,
			Bounds:         SummaryBounds{MaxLength: 100, MinLength: 20},
			FallbackModel:  models.Fallback,
			FallbackBounds: SummaryBounds{MaxLength: 80, MinLength: 20},
			MaxInputTokens: 512,
		},
	}
}

func FastMode() Mode {
	return Mode{
		Name:           ModeFast,
		AnalysisType:   domain.AnalysisFastMultilingual,
		Profile:        clauses.FastProfile(),
		DetectLanguage: true,
		Preprocess:     true,
		Summarizer:     SummarizerSettings{Strategy: SummaryExtractive},
	}
}

// ModeRegistry resolves mode names; an empty name resolves to the default.
type ModeRegistry struct {
	modes       map[string]Mode
	defaultMode string
}

func NewModeRegistry(models ModelNames, defaultMode string) (*ModeRegistry, error) {
	r := &ModeRegistry{
		modes: map[string]Mode{
			ModeThorough:     ThoroughMode(models),
			ModeMultilingual: MultilingualMode(models),
			ModeFast:         FastMode(),
		},
		defaultMode: strings.ToLower(strings.TrimSpace(defaultMode)),
	}
	if r.defaultMode == "" {
		r.defaultMode = ModeThorough
	}
	if _, ok := r.modes[r.defaultMode]; !ok {
		return nil, fmt.Errorf("unknown default mode %q", defaultMode)
	}
	return r, nil
}

func (r *ModeRegistry) Resolve(name string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = r.defaultMode
	}
	mode, ok := r.modes[key]
	if !ok {
		return Mode{}, domain.WrapError(domain.ErrInvalidInput, "resolve mode",
			fmt.Errorf("unknown analysis mode %q, want one of %s", name, strings.Join(r.Names(), ", ")))
	}
	return mode, nil
}

func (r *ModeRegistry) Names() []string {
	names := make([]string, 0, len(r.modes))
	for name := range r.modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *ModeRegistry) Default() string {
	return r.defaultMode
}
