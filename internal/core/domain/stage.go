package domain

// AnalysisStage names a step of the analysis state machine.
type AnalysisStage string

const (
	StageFetchingDocument  AnalysisStage = "fetching_document"
	StageDetectingLanguage AnalysisStage = "detecting_language"
	StagePreprocessing     AnalysisStage = "preprocessing"
	StageSummarizing       AnalysisStage = "summarizing"
	StageExtractingClauses AnalysisStage = "extracting_clauses"
	StageDerivingRisks     AnalysisStage = "deriving_risks"
	StageClassifying       AnalysisStage = "classifying"
	StagePersisting        AnalysisStage = "persisting"
	StageDone              AnalysisStage = "done"
	StageFailed            AnalysisStage = "failed"
)
