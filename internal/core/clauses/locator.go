package clauses

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kirillkom/legistra/internal/core/domain"
)

type Strategy string

const (
	// StrategySection takes every match and extends it to the next section heading.
	StrategySection Strategy = "section"
	// StrategyWindow takes the first match per type with a fixed context window.
	StrategyWindow Strategy = "window"
)

const ellipsis = "..."

type LocateOptions struct {
	Strategy         Strategy
	MinContentLength int
	MaxContentLength int
	WindowBefore     int
	WindowAfter      int
	Language         string
}

func SectionOptions() LocateOptions {
	return LocateOptions{
		Strategy:         StrategySection,
		MinContentLength: 50,
		MaxContentLength: 500,
	}
}

func WindowOptions() LocateOptions {
	return LocateOptions{
		Strategy:         StrategyWindow,
		MinContentLength: 30,
		MaxContentLength: 300,
		WindowBefore:     50,
		WindowAfter:      200,
	}
}

// Locate scans text against the library and returns candidate clauses in
// discovery order: clause type order, then pattern order, then match order.
// Content lengths are measured in runes; a clause is kept only when its
// normalized content is strictly longer than MinContentLength.
// Unicode spaces other than newlines match the patterns as plain spaces.
func Locate(text string, lib *Library, opts LocateOptions) []domain.Clause {
	out := make([]domain.Clause, 0)
	if lib == nil || strings.TrimSpace(text) == "" {
		return out
	}
	text = foldSpaces(text)

	switch opts.Strategy {
	case StrategyWindow:
		return locateWindows(text, lib, opts, out)
	default:
		return locateSections(text, lib, opts, out)
	}
}

func locateSections(text string, lib *Library, opts LocateOptions, out []domain.Clause) []domain.Clause {
	for _, tp := range lib.Types {
		for _, pattern := range tp.Patterns {
			for _, loc := range pattern.FindAllStringIndex(text, -1) {
				start := loc[0]
				heading := strings.TrimSpace(text[start:loc[1]])
				end := sectionEnd(text, start, lib)

				content := normalizeWhitespace(text[start:end])
				if utf8.RuneCountInString(content) <= opts.MinContentLength {
					continue
				}
				out = append(out, domain.Clause{
					Type:     tp.Type,
					Heading:  heading,
					Content:  truncate(content, opts.MaxContentLength),
					Language: opts.Language,
				})
			}
		}
	}
	return out
}

// sectionEnd finds the next section heading strictly after the rune at start.
func sectionEnd(text string, start int, lib *Library) int {
	if lib.Boundary == nil || start >= len(text) {
		return len(text)
	}
	_, size := utf8.DecodeRuneInString(text[start:])
	from := start + size
	loc := lib.Boundary.FindStringIndex(text[from:])
	if loc == nil {
		return len(text)
	}
	return from + loc[0]
}

func locateWindows(text string, lib *Library, opts LocateOptions, out []domain.Clause) []domain.Clause {
	var runes []rune
	for _, tp := range lib.Types {
		for _, pattern := range tp.Patterns {
			loc := pattern.FindStringIndex(text)
			if loc == nil {
				continue
			}
			if runes == nil {
				runes = []rune(text)
			}
			pos := utf8.RuneCountInString(text[:loc[0]])
			from := max(0, pos-opts.WindowBefore)
			to := min(len(runes), pos+opts.WindowAfter)

			content := normalizeWhitespace(string(runes[from:to]))
			if utf8.RuneCountInString(content) > opts.MinContentLength {
				out = append(out, domain.Clause{
					Type:     tp.Type,
					Heading:  fmt.Sprintf("%s Clause", tp.Label),
					Content:  truncate(content, opts.MaxContentLength),
					Language: opts.Language,
				})
			}
			break
		}
	}
	return out
}

// foldSpaces maps NBSP and the other Unicode spaces RE2's \s skips to ' '.
func foldSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r != '\n' && unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate caps s at limit runes, ellipsis included.
func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	keep := limit - len(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return string([]rune(s)[:keep]) + ellipsis
}
