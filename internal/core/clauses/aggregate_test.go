package clauses

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kirillkom/legistra/internal/core/domain"
)

func TestDedupAndLimitFirstSeenWins(t *testing.T) {
	in := []domain.Clause{
		{Type: domain.ClauseTermination, Heading: "Termination Clause", Content: "first"},
		{Type: domain.ClauseTermination, Heading: "  termination clause ", Content: "second"},
		{Type: domain.ClauseLiability, Heading: "Limitation of Liability", Content: "third"},
	}

	got := DedupAndLimit(in, 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 clauses, got %+v", got)
	}
	if got[0].Content != "first" || got[1].Content != "third" {
		t.Fatalf("unexpected order or winner: %+v", got)
	}
}

func TestDedupAndLimitCapsAndKeepsHeadingsDistinct(t *testing.T) {
	in := make([]domain.Clause, 0, 30)
	for i := 0; i < 30; i++ {
		in = append(in, domain.Clause{Type: domain.ClauseDefinitions, Heading: fmt.Sprintf("Article %d Definitions", i%15)})
	}

	for _, maxCount := range []int{10, 5} {
		got := DedupAndLimit(in, maxCount)
		if len(got) != maxCount {
			t.Fatalf("expected %d clauses, got %d", maxCount, len(got))
		}
		seen := map[string]bool{}
		for _, c := range got {
			key := strings.ToLower(strings.TrimSpace(c.Heading))
			if seen[key] {
				t.Fatalf("duplicate heading %q", c.Heading)
			}
			seen[key] = true
		}
	}
}

func TestClassifyNormalizesByDistinctTypeCount(t *testing.T) {
	got := Classify([]domain.Clause{
		{Type: domain.ClauseConfidentiality},
		{Type: domain.ClauseConfidentiality},
		{Type: domain.ClauseTermination},
	})
	if got[domain.ClauseConfidentiality] != 100 || got[domain.ClauseTermination] != 50 {
		t.Fatalf("unexpected percentages: %+v", got)
	}
	if _, ok := got[domain.ClauseLiability]; ok {
		t.Fatalf("absent types must be omitted")
	}

	single := Classify([]domain.Clause{{Type: domain.ClauseLiability}, {Type: domain.ClauseLiability}})
	if single[domain.ClauseLiability] != 200 {
		t.Fatalf("expected 200 for one type seen twice, got %v", single[domain.ClauseLiability])
	}
}

func TestDeriveRisksUsesTableOrder(t *testing.T) {
	present := PresentTypes([]domain.Clause{
		{Type: domain.ClauseDisputeResolution},
		{Type: domain.ClauseConfidentiality},
		{Type: domain.ClauseTermination},
		{Type: domain.ClauseDefinitions},
	})

	got := DeriveRisks(present, englishRisks, "")
	want := []string{
		"Termination clauses detected - review termination conditions",
		"Confidentiality obligations - ensure compliance",
		"Dispute resolution clause - arbitration required",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected risks: %v", got)
	}
}

func TestDeriveRisksLanguageSuffix(t *testing.T) {
	present := PresentTypes([]domain.Clause{{Type: domain.ClauseTermination}})

	tests := []struct {
		language string
		want     string
	}{
		{language: "", want: "Termination clauses detected - review conditions"},
		{language: "english", want: "Termination clauses detected - review conditions"},
		{language: "marathi", want: "Termination clauses detected - review conditions (marathi)"},
	}
	for _, tt := range tests {
		got := DeriveRisks(present, fastRisks, tt.language)
		if len(got) != 1 || got[0] != tt.want {
			t.Fatalf("language %q: got %v, want %q", tt.language, got, tt.want)
		}
	}
}

func TestDeriveRisksMultilingualTableSkipsDisputeResolution(t *testing.T) {
	present := PresentTypes([]domain.Clause{{Type: domain.ClauseDisputeResolution}})
	if got := DeriveRisks(present, multilingualRisks, "hindi"); len(got) != 0 {
		t.Fatalf("expected no risks, got %v", got)
	}
}

func TestPreprocessMapsDandaForIndicLanguages(t *testing.T) {
	if got := Preprocess("पहला वाक्य।\n\n  दूसरा॥", "hindi"); got != "पहला वाक्य. दूसरा." {
		t.Fatalf("unexpected hindi preprocessing: %q", got)
	}
	if got := Preprocess("one।  two", "english"); got != "one। two" {
		t.Fatalf("english text must keep danda: %q", got)
	}
	for _, language := range []string{"marathi", "nepali"} {
		if got := Preprocess("वाक्य।", language); got != "वाक्य." {
			t.Fatalf("unexpected %s preprocessing: %q", language, got)
		}
	}
	if got := Preprocess("ਵਾਕ।", "punjabi"); got != "ਵਾਕ।" {
		t.Fatalf("punjabi text must keep danda: %q", got)
	}
}

func TestExtractiveSummary(t *testing.T) {
	text := "First sentence is long enough here. Short. Second sentence is also long enough! " +
		"Third sentence long enough as well? Fourth one is long enough too."

	want := "First sentence is long enough here. Second sentence is also long enough. Third sentence long enough as well."
	if got := ExtractiveSummary(text); got != want {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestExtractiveSummaryHandlesDanda(t *testing.T) {
	got := ExtractiveSummary("यह पहला लंबा वाक्य है जो बीस अक्षरों से अधिक है। यह दूसरा लंबा वाक्य है जो काफी बड़ा है॥")
	if strings.Count(got, ".") != 2 {
		t.Fatalf("expected two sentences, got %q", got)
	}
}
