package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/infra/bq"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/impersonate"
	"google.golang.org/api/option"
)

const bigQueryScope = "https://www.googleapis.com/auth/bigquery"

type BigQuery struct {
	projectID          types.GoogleProjectID
	datasetID          types.BQDatasetID
	tableID            types.BQTableID
	impersonateAccount string
}

func (x *BigQuery) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bigquery-project-id",
			Usage:       "BigQuery project ID. Timing export is enabled if set",
			Category:    "BigQuery",
			Destination: (*string)(&x.projectID),
			Sources:     cli.EnvVars("PYTIMING_BIGQUERY_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "bigquery-dataset-id",
			Usage:       "BigQuery dataset ID",
			Category:    "BigQuery",
			Destination: (*string)(&x.datasetID),
			Sources:     cli.EnvVars("PYTIMING_BIGQUERY_DATASET_ID"),
		},
		&cli.StringFlag{
			Name:        "bigquery-table-id",
			Usage:       "BigQuery table ID",
			Category:    "BigQuery",
			Destination: (*string)(&x.tableID),
			Sources:     cli.EnvVars("PYTIMING_BIGQUERY_TABLE_ID"),
			Value:       "test_timings",
		},
		&cli.StringFlag{
			Name:        "bigquery-impersonate-service-account",
			Usage:       "Service account to impersonate for BigQuery access",
			Category:    "BigQuery",
			Destination: &x.impersonateAccount,
			Sources:     cli.EnvVars("PYTIMING_BIGQUERY_IMPERSONATE_SERVICE_ACCOUNT"),
		},
	}
}

func (x *BigQuery) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("projectID", x.projectID.String()),
		slog.String("datasetID", x.datasetID.String()),
		slog.String("tableID", x.tableID.String()),
		slog.String("impersonateAccount", x.impersonateAccount),
	)
}

// NewClient returns nil without error if BigQuery export is not configured
func (x *BigQuery) NewClient(ctx context.Context) (interfaces.BigQuery, error) {
	if x.projectID == "" {
		return nil, nil
	}
	if x.datasetID == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "bigquery-dataset-id is required", goerr.V("projectID", x.projectID))
	}

	var options []option.ClientOption
	if x.impersonateAccount != "" {
		ts, err := impersonate.CredentialsTokenSource(ctx, impersonate.CredentialsConfig{
			TargetPrincipal: x.impersonateAccount,
			Scopes:          []string{bigQueryScope},
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create impersonated token source", goerr.V("account", x.impersonateAccount))
		}
		options = append(options, option.WithTokenSource(ts))
	}

	client, err := bq.New(ctx, x.projectID, x.datasetID, x.tableID, options...)
	if err != nil {
		return nil, err
	}
	return client, nil
}
