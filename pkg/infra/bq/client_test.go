package bq_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/infra/bq"
	"github.com/m-mizutani/pytiming/pkg/utils/testutil"
	"google.golang.org/api/impersonate"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newTimingExport() *model.TimingExport {
	input := &model.PullRequestInput{Owner: "octo", Repo: "app", Number: 12}
	result := model.ExtractionResult{
		"timing-report-py3.11/report.json": {
			{NodeID: "tests/test_a.py::test_one", CallDuration: 0.5, SetupDuration: 0.01, TeardownDuration: 0.02},
		},
	}
	return model.NewTimingExport(input, "abc123", result, time.Now())
}

func TestClient(t *testing.T) {
	projectID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_PROJECT_ID")
	datasetID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_DATASET_ID")

	ctx := context.Background()

	tblName := types.BQTableID(time.Now().Format("insert_test_20060102_150405"))
	client, err := bq.New(ctx, types.GoogleProjectID(projectID), types.BQDatasetID(datasetID), tblName)
	gt.NoError(t, err)

	var schema bigquery.Schema

	t.Run("Create table at first", func(t *testing.T) {
		schema = gt.R1(bqs.Infer(model.TimingExport{})).NoError(t)

		gt.NoError(t, client.CreateTable(ctx, &bigquery.TableMetadata{
			Name:   tblName.String(),
			Schema: schema,
		}))
	})

	t.Run("Insert record", func(t *testing.T) {
		md := gt.R1(client.GetMetadata(ctx)).NoError(t)
		gt.V(t, md).NotEqual(nil)
		gt.True(t, bqs.Equal(md.Schema, schema))

		gt.NoError(t, client.Insert(ctx, schema, newTimingExport().Raw()))
	})
}

func TestImpersonation(t *testing.T) {
	projectID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_PROJECT_ID")
	datasetID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_DATASET_ID")
	serviceAccount := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_IMPERSONATE_SERVICE_ACCOUNT")

	ctx := context.Background()

	ts, err := impersonate.CredentialsTokenSource(ctx, impersonate.CredentialsConfig{
		TargetPrincipal: serviceAccount,
		Scopes: []string{
			"https://www.googleapis.com/auth/bigquery",
			"https://www.googleapis.com/auth/cloud-platform",
		},
	})
	gt.NoError(t, err)

	tblName := types.BQTableID(time.Now().Format("impersonation_test_20060102_150405"))
	client, err := bq.New(ctx, types.GoogleProjectID(projectID), types.BQDatasetID(datasetID), tblName, option.WithTokenSource(ts))
	gt.NoError(t, err)

	md := gt.R1(client.GetMetadata(ctx)).NoError(t)
	gt.V(t, md).Equal(nil)
}

func TestEncodeRow(t *testing.T) {
	export := newTimingExport()
	schema := gt.R1(bqs.Infer(export)).NoError(t)

	t.Run("timing export is encoded", func(t *testing.T) {
		desc, row, err := bq.EncodeRow(schema, export.Raw())
		gt.NoError(t, err)
		gt.True(t, len(desc.GetField()) > 0)
		gt.True(t, len(row) > 0)
	})

	t.Run("data not matching schema fails", func(t *testing.T) {
		_, _, err := bq.EncodeRow(schema, map[string]any{"files": "not an array"})
		gt.Error(t, err)
	})
}

func TestProtoFieldJSONName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "keeps valid names",
			input: "node_id",
			want:  "node_id",
		},
		{
			name:  "renames invalid names",
			input: "ruby-advisory-db",
			want:  "col_cnVieS1hZHZpc29yeS1kYg",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gt.V(t, bq.ProtoFieldJSONName(tc.input)).Equal(tc.want)
		})
	}
}

func TestSanitizeProtoJSON(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"files":[{"name":"r.json","extra":{"py-3.11":1}}]}`)
	sanitized := gt.R1(bq.SanitizeProtoJSON(raw)).NoError(t)

	dec := json.NewDecoder(bytes.NewReader(sanitized))
	dec.UseNumber()
	payload := map[string]any{}
	gt.NoError(t, dec.Decode(&payload))

	files, ok := payload["files"].([]any)
	gt.True(t, ok)
	file, ok := files[0].(map[string]any)
	gt.True(t, ok)
	gt.V(t, file["name"]).Equal("r.json")

	extra, ok := file["extra"].(map[string]any)
	gt.True(t, ok)
	_, ok = extra[bq.ProtoFieldJSONName("py-3.11")]
	gt.True(t, ok)
	_, ok = extra["py-3.11"]
	gt.False(t, ok)
}

func TestIsSchemaNotFoundError(t *testing.T) {
	const msg = "Input schema has more fields than BigQuery schema, extra fields: 'field1,field2'"

	t.Run("detects gRPC InvalidArgument with schema mismatch message", func(t *testing.T) {
		gt.True(t, bq.IsSchemaNotFoundError(status.Error(codes.InvalidArgument, msg)))
	})

	t.Run("detects error wrapped with goerr", func(t *testing.T) {
		wrapped := goerr.Wrap(goerr.Wrap(status.Error(codes.InvalidArgument, msg), "level 1"), "level 2")
		gt.True(t, bq.IsSchemaNotFoundError(wrapped))
	})

	t.Run("returns false for InvalidArgument with different message", func(t *testing.T) {
		gt.False(t, bq.IsSchemaNotFoundError(status.Error(codes.InvalidArgument, "Invalid request parameters")))
	})

	t.Run("returns false for different gRPC code", func(t *testing.T) {
		gt.False(t, bq.IsSchemaNotFoundError(status.Error(codes.PermissionDenied, msg)))
	})

	t.Run("returns false for non-gRPC error", func(t *testing.T) {
		gt.False(t, bq.IsSchemaNotFoundError(errors.New("some other error")))
	})
}
