package usecase

import (
	"context"
	"log/slog"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/utils/errutil"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"
)

// exportTiming inserts the result to BigQuery if it is configured. Failure is reported and does not
// affect the stream.
func (x *UseCase) exportTiming(ctx context.Context, input *model.PullRequestInput, sha types.CommitSHA, result model.ExtractionResult) {
	bq := x.clients.BigQuery()
	if bq == nil {
		return
	}

	export := model.NewTimingExport(input, sha, result, x.clients.Now())
	if err := insertTimingExport(ctx, bq, export); err != nil {
		errutil.HandleError(ctx, "failed to export timing to BigQuery", err)
		return
	}

	logging.From(ctx).Info("timing exported to BigQuery", slog.String("export_id", string(export.ID)))
}

func insertTimingExport(ctx context.Context, bq interfaces.BigQuery, export *model.TimingExport) error {
	schema, err := createOrUpdateBigQueryTable(ctx, bq, export)
	if err != nil {
		return err
	}

	if err := bq.Insert(ctx, schema, export.Raw()); err != nil {
		return goerr.Wrap(err, "failed to insert timing export", goerr.V("export_id", export.ID))
	}
	return nil
}

func createOrUpdateBigQueryTable(ctx context.Context, bq interfaces.BigQuery, export *model.TimingExport) (bigquery.Schema, error) {
	schema, err := bqs.Infer(export)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer timing export schema")
	}

	metaData, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}
	if metaData == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to create BigQuery table")
		}
		return schema, nil
	}

	if bqs.Equal(metaData.Schema, schema) {
		return schema, nil
	}

	mergedSchema, err := bqs.Merge(metaData.Schema, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge BigQuery schema")
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
		Schema: mergedSchema,
	}, metaData.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to update BigQuery table")
	}

	return mergedSchema, nil
}
