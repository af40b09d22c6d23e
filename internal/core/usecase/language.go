package usecase

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/legistra/internal/core/domain"
	"github.com/kirillkom/legistra/internal/core/ports"
)

const minDetectableRunes = 50

var languageNames = map[string]string{
	"en": "english",
	"hi": "hindi",
	"mr": "marathi",
	"ne": "nepali",
	"pa": "punjabi",
}

// detectLanguage never fails: short text, detector errors and unsupported
// languages all resolve to english.
func detectLanguage(detector ports.LanguageDetector, text string, logger *slog.Logger) string {
	trimmed := strings.TrimSpace(text)
	if detector == nil || utf8.RuneCountInString(trimmed) < minDetectableRunes {
		return domain.LanguageEnglish
	}

	code, err := detector.Detect(trimmed)
	if err != nil {
		logger.Warn("language_detection_failed", "error", err)
		return domain.LanguageEnglish
	}
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return domain.LanguageEnglish
}
