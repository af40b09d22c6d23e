package xlsx

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/legistra/internal/core/domain"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	sheetSummary        = "Summary"
	sheetClauses        = "Clauses"
	sheetClassification = "Classification"
	sheetRisks          = "Risks"
)

// Exporter renders a stored analysis as a workbook with one sheet per section.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

func (e *Exporter) ContentType() string {
	return ContentType
}

func (e *Exporter) Export(ctx context.Context, analysis domain.StoredAnalysis, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	for _, name := range []string{sheetClauses, sheetClassification, sheetRisks} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	result := analysis.Result
	writers := []func(*excelize.File, domain.StoredAnalysis) error{
		writeSummary,
		writeClauses,
		writeClassification,
		writeRisks,
	}
	for _, write := range writers {
		if err := write(f, analysis); err != nil {
			return fmt.Errorf("write report for document %s: %w", result.DocumentID, err)
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, analysis domain.StoredAnalysis) error {
	result := analysis.Result
	rows := [][]any{
		{"Field", "Value"},
		{"Analysis ID", analysis.ID},
		{"Document ID", result.DocumentID},
		{"Analysis type", string(result.AnalysisType)},
		{"Language", result.Language},
		{"Created at", result.CreatedAt.UTC().Format(time.RFC3339)},
		{"Processing time (s)", result.ProcessingTime},
		{"Clauses", len(result.Clauses)},
		{"Risks", len(result.Risks)},
		{"Summary", result.Summary},
	}

	keys := make([]string, 0, len(result.ModelVersions))
	for key := range result.ModelVersions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		rows = append(rows, []any{"Model: " + key, result.ModelVersions[key]})
	}
	return writeRows(f, sheetSummary, rows)
}

func writeClauses(f *excelize.File, analysis domain.StoredAnalysis) error {
	rows := [][]any{{"#", "Type", "Heading", "Content", "Language"}}
	for i, clause := range analysis.Result.Clauses {
		rows = append(rows, []any{i + 1, string(clause.Type), clause.Heading, clause.Content, clause.Language})
	}
	return writeRows(f, sheetClauses, rows)
}

func writeClassification(f *excelize.File, analysis domain.StoredAnalysis) error {
	rows := [][]any{{"Clause type", "Share (%)"}}
	for _, clauseType := range domain.ClauseTypes {
		share, ok := analysis.Result.Classification[clauseType]
		if !ok {
			continue
		}
		rows = append(rows, []any{string(clauseType), share})
	}
	return writeRows(f, sheetClassification, rows)
}

func writeRisks(f *excelize.File, analysis domain.StoredAnalysis) error {
	rows := [][]any{{"#", "Risk"}}
	for i, risk := range analysis.Result.Risks {
		rows = append(rows, []any{i + 1, strings.TrimSpace(risk)})
	}
	return writeRows(f, sheetRisks, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
