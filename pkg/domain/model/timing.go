package model

import (
	"encoding/json"
	"sort"

	"github.com/m-mizutani/goerr/v2"
)

// TestTimingRecord is stage durations of one test in seconds. It is encoded as a compact tuple of
// [nodeid, call, setup, teardown] in JSON.
type TestTimingRecord struct {
	NodeID           string
	CallDuration     float64
	SetupDuration    float64
	TeardownDuration float64
}

func (x TestTimingRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{x.NodeID, x.CallDuration, x.SetupDuration, x.TeardownDuration})
}

func (x *TestTimingRecord) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return goerr.Wrap(err, "failed to decode timing record")
	}
	if len(tuple) != 4 {
		return goerr.New("timing record must have 4 elements", goerr.V("length", len(tuple)))
	}

	var rec TestTimingRecord
	dst := []any{&rec.NodeID, &rec.CallDuration, &rec.SetupDuration, &rec.TeardownDuration}
	for i := range tuple {
		if err := json.Unmarshal(tuple[i], dst[i]); err != nil {
			return goerr.Wrap(err, "invalid timing record element", goerr.V("index", i))
		}
	}

	*x = rec
	return nil
}

// ExtractionResult maps a report file name in CI artifacts to timing records of the file.
// JSON form is {"<file>": {"comp": [[nodeid, call, setup, teardown], ...]}}.
type ExtractionResult map[string][]TestTimingRecord

type compactTimings struct {
	Comp []TestTimingRecord `json:"comp"`
}

func (x ExtractionResult) MarshalJSON() ([]byte, error) {
	out := make(map[string]compactTimings, len(x))
	for name, records := range x {
		if records == nil {
			records = []TestTimingRecord{}
		}
		out[name] = compactTimings{Comp: records}
	}
	return json.Marshal(out)
}

func (x *ExtractionResult) UnmarshalJSON(data []byte) error {
	var in map[string]compactTimings
	if err := json.Unmarshal(data, &in); err != nil {
		return goerr.Wrap(err, "failed to decode extraction result")
	}

	result := make(ExtractionResult, len(in))
	for name, timings := range in {
		result[name] = timings.Comp
	}
	*x = result
	return nil
}

// Merge copies all files of src into x. A file that already exists is overwritten.
func (x ExtractionResult) Merge(src ExtractionResult) {
	for name, records := range src {
		x[name] = records
	}
}

func (x ExtractionResult) Files() []string {
	files := make([]string, 0, len(x))
	for name := range x {
		files = append(files, name)
	}
	sort.Strings(files)
	return files
}

func (x ExtractionResult) TestCount() int {
	var n int
	for _, records := range x {
		n += len(records)
	}
	return n
}
