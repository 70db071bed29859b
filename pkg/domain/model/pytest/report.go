// Package pytest defines the subset of pytest-json-report output that is needed to build test
// timing records.
package pytest

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
)

const OutcomeSkipped = "skipped"

type Report struct {
	Tests []TestItem `json:"tests"`
}

func (x *Report) Validate() error {
	if x.Tests == nil {
		return goerr.Wrap(types.ErrExtraction, "report has no tests field")
	}
	return nil
}

type TestItem struct {
	NodeID   string `json:"nodeid"`
	Outcome  string `json:"outcome"`
	Setup    *Stage `json:"setup,omitempty"`
	Call     *Stage `json:"call,omitempty"`
	Teardown *Stage `json:"teardown,omitempty"`
}

type Stage struct {
	Duration float64 `json:"duration"`
	Outcome  string  `json:"outcome,omitempty"`
}

func (x *Stage) duration() float64 {
	if x == nil {
		return 0
	}
	return x.Duration
}

func (x *TestItem) Skipped() bool {
	return x.Outcome == OutcomeSkipped
}

// ToRecord converts the item to a timing record. The item must have call stage. Missing setup or
// teardown stage is treated as zero duration.
func (x *TestItem) ToRecord() (*model.TestTimingRecord, error) {
	if x.Call == nil {
		return nil, goerr.Wrap(types.ErrExtraction, "test item has no call stage", goerr.V("nodeid", x.NodeID))
	}
	if x.NodeID == "" {
		return nil, goerr.Wrap(types.ErrExtraction, "test item has no nodeid")
	}

	return &model.TestTimingRecord{
		NodeID:           x.NodeID,
		CallDuration:     x.Call.duration(),
		SetupDuration:    x.Setup.duration(),
		TeardownDuration: x.Teardown.duration(),
	}, nil
}
