package pytest_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/pytiming/pkg/domain/model/pytest"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
)

func TestReportValidate(t *testing.T) {
	t.Run("report with tests passes", func(t *testing.T) {
		var report pytest.Report
		gt.NoError(t, json.Unmarshal([]byte(`{"tests":[]}`), &report))
		gt.NoError(t, report.Validate())
	})

	t.Run("report without tests fails", func(t *testing.T) {
		var report pytest.Report
		gt.NoError(t, json.Unmarshal([]byte(`{"summary":{"total":0}}`), &report))
		err := report.Validate()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrExtraction))
	})
}

func TestItemToRecord(t *testing.T) {
	t.Run("all stages", func(t *testing.T) {
		item := pytest.TestItem{
			NodeID:   "tests/test_a.py::test_x",
			Outcome:  "passed",
			Setup:    &pytest.Stage{Duration: 0.01},
			Call:     &pytest.Stage{Duration: 0.1},
			Teardown: &pytest.Stage{Duration: 0.02},
		}
		rec := gt.R1(item.ToRecord()).NoError(t)
		gt.V(t, rec.NodeID).Equal("tests/test_a.py::test_x")
		gt.V(t, rec.CallDuration).Equal(0.1)
		gt.V(t, rec.SetupDuration).Equal(0.01)
		gt.V(t, rec.TeardownDuration).Equal(0.02)
	})

	t.Run("missing setup and teardown are zero", func(t *testing.T) {
		item := pytest.TestItem{
			NodeID: "t1",
			Call:   &pytest.Stage{Duration: 1.5},
		}
		rec := gt.R1(item.ToRecord()).NoError(t)
		gt.V(t, rec.SetupDuration).Equal(0.0)
		gt.V(t, rec.TeardownDuration).Equal(0.0)
	})

	t.Run("missing call stage is an anomaly", func(t *testing.T) {
		item := pytest.TestItem{
			NodeID: "t1",
			Setup:  &pytest.Stage{Duration: 0.1},
		}
		_, err := item.ToRecord()
		gt.True(t, errors.Is(err, types.ErrExtraction))
	})

	t.Run("skipped", func(t *testing.T) {
		gt.True(t, (&pytest.TestItem{Outcome: "skipped"}).Skipped())
		gt.False(t, (&pytest.TestItem{Outcome: "passed"}).Skipped())
	})
}
