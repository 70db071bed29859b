package usecase

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/model/pytest"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"
	"github.com/m-mizutani/pytiming/pkg/utils/safe"
)

// entryHook is called before each zip entry is extracted. index is 0-based. Returning an error
// aborts the extraction.
type entryHook func(index, total int, name string) error

// extractTestReports reads all pytest JSON reports in the archive. A malformed entry or test item
// is logged and skipped. An archive that is not a zip file is ErrExtraction.
func extractTestReports(ctx context.Context, archive []byte, onEntry entryHook) (model.ExtractionResult, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, goerr.Wrap(types.ErrExtraction, "archive is not a zip file",
			goerr.V("size", len(archive)),
			goerr.V("error", err),
		)
	}

	var files []*zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		files = append(files, f)
	}

	logger := logging.From(ctx)
	result := model.ExtractionResult{}
	for i, f := range files {
		if onEntry != nil {
			if err := onEntry(i, len(files), f.Name); err != nil {
				return nil, err
			}
		}

		records, err := extractEntry(ctx, f)
		if err != nil {
			logger.Warn("skip malformed report entry", slog.String("name", f.Name), slog.Any("error", err))
			continue
		}
		result[f.Name] = records
	}

	return result, nil
}

func extractEntry(ctx context.Context, f *zip.File) ([]model.TestTimingRecord, error) {
	r, err := f.Open()
	if err != nil {
		return nil, goerr.Wrap(types.ErrExtraction, "failed to open zip entry", goerr.V("error", err))
	}
	defer safe.Close(r)

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(types.ErrExtraction, "failed to read zip entry", goerr.V("error", err))
	}

	var report pytest.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, goerr.Wrap(types.ErrExtraction, "invalid JSON report", goerr.V("error", err))
	}
	if err := report.Validate(); err != nil {
		return nil, err
	}

	logger := logging.From(ctx)
	records := make([]model.TestTimingRecord, 0, len(report.Tests))
	for i := range report.Tests {
		item := &report.Tests[i]
		if item.Skipped() {
			continue
		}

		rec, err := item.ToRecord()
		if err != nil {
			logger.Warn("drop test item", slog.String("entry", f.Name), slog.Any("error", err))
			continue
		}
		records = append(records, *rec)
	}

	return records, nil
}
