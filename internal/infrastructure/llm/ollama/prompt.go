package ollama

import "fmt"

func buildSummaryPrompt(text string, maxLength, minLength int) string {
	return fmt.Sprintf(`You summarize legal contracts.
Write one plain paragraph of %d to %d words covering parties, obligations, duration and notable risks.
Answer in the language of the document. No headings, no lists, no preamble.

Document:
%s`, minLength, maxLength, text)
}
