package model

import (
	"time"

	"github.com/m-mizutani/pytiming/pkg/domain/types"
)

// TimingExport is a row of BigQuery timing table. One row is exported per pull request processing.
type TimingExport struct {
	ID         types.ExportID   `bigquery:"id" json:"id"`
	Timestamp  time.Time        `bigquery:"timestamp" json:"timestamp"`
	Owner      string           `bigquery:"owner" json:"owner"`
	Repo       string           `bigquery:"repo" json:"repo"`
	PullNumber types.PullNumber `bigquery:"pull_number" json:"pull_number"`
	HeadSHA    types.CommitSHA  `bigquery:"head_sha" json:"head_sha"`
	Files      []FileExport     `bigquery:"files" json:"files"`
}

type FileExport struct {
	Name  string       `bigquery:"name" json:"name"`
	Tests []TestExport `bigquery:"tests" json:"tests"`
}

type TestExport struct {
	NodeID   string  `bigquery:"node_id" json:"node_id"`
	Call     float64 `bigquery:"call" json:"call"`
	Setup    float64 `bigquery:"setup" json:"setup"`
	Teardown float64 `bigquery:"teardown" json:"teardown"`
}

// TimingExportRawRecord is TimingExport with timestamp in microseconds for the storage write API
type TimingExportRawRecord struct {
	TimingExport
	Timestamp int64 `bigquery:"timestamp" json:"timestamp"`
}

func NewTimingExport(input *PullRequestInput, sha types.CommitSHA, result ExtractionResult, now time.Time) *TimingExport {
	export := &TimingExport{
		ID:         types.NewExportID(),
		Timestamp:  now.UTC(),
		Owner:      input.Owner,
		Repo:       input.Repo,
		PullNumber: input.Number,
		HeadSHA:    sha,
	}

	for _, name := range result.Files() {
		file := FileExport{Name: name}
		for _, rec := range result[name] {
			file.Tests = append(file.Tests, TestExport{
				NodeID:   rec.NodeID,
				Call:     rec.CallDuration,
				Setup:    rec.SetupDuration,
				Teardown: rec.TeardownDuration,
			})
		}
		export.Files = append(export.Files, file)
	}

	return export
}

func (x *TimingExport) Raw() *TimingExportRawRecord {
	return &TimingExportRawRecord{
		TimingExport: *x,
		Timestamp:    x.Timestamp.UnixMicro(),
	}
}
