package usecase

// Export unexported functions for testing
var (
	CollectWorkflowRunsForTest         = collectWorkflowRuns
	SelectArtifactsForTest             = selectArtifacts
	ExtractTestReportsForTest          = extractTestReports
	CreateOrUpdateBigQueryTableForTest = createOrUpdateBigQueryTable
)

const (
	MaxRunPagesForTest = maxRunPages
	RunsPerPageForTest = runsPerPage
)
