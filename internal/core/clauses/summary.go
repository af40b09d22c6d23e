package clauses

import (
	"strings"
	"unicode/utf8"
)

var sentenceSplitter = strings.NewReplacer("!", ".", "?", ".", "।", ".", "॥", ".")

// ExtractiveSummary joins the leading sentences of text. Sentences of 20
// runes or fewer are skipped; when three sentences make fewer than 50 runes
// and more are available, five are used.
func ExtractiveSummary(text string) string {
	parts := strings.Split(sentenceSplitter.Replace(text), ".")
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		s := strings.TrimSpace(part)
		if utf8.RuneCountInString(s) > 20 {
			sentences = append(sentences, s)
		}
	}

	summary := strings.Join(sentences[:min(3, len(sentences))], ". ") + "."
	if utf8.RuneCountInString(summary) < 50 && len(sentences) > 3 {
		summary = strings.Join(sentences[:min(5, len(sentences))], ". ") + "."
	}
	return summary
}
