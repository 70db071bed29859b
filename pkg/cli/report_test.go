package cli_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/pytiming/pkg/cli"
	"github.com/m-mizutani/pytiming/pkg/controller/server"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/infra"
	"github.com/m-mizutani/pytiming/pkg/repository/memory"
	"github.com/m-mizutani/pytiming/pkg/usecase"
)

func TestReportActionRun(t *testing.T) {
	ctx := context.Background()
	runRepo := memory.NewActionRun()
	srv := httptest.NewServer(server.New(usecase.New(infra.New(infra.WithActionRunRepository(runRepo)))).Mux())
	t.Cleanup(srv.Close)

	run := &model.ActionRun{Owner: "octo", Repo: "app", PullNumber: 42, RunID: 987654321}

	t.Run("first report is recorded", func(t *testing.T) {
		status := gt.R1(cli.ReportActionRun(ctx, srv.Client(), srv.URL, run)).NoError(t)
		gt.V(t, status).Equal("ok")

		runs := gt.R1(runRepo.ListActionRuns(ctx)).NoError(t)
		gt.A(t, runs).Length(1)
		gt.V(t, runs[0].RunID).Equal(types.RunID(987654321))
		gt.V(t, runs[0].PullNumber).Equal(types.PullNumber(42))
	})

	t.Run("second report is duplicate", func(t *testing.T) {
		status := gt.R1(cli.ReportActionRun(ctx, srv.Client(), srv.URL+"/", run)).NoError(t)
		gt.V(t, status).Equal("duplicate")
	})

	t.Run("error status", func(t *testing.T) {
		errSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.V(t, r.Method).Equal(http.MethodPost)
			gt.V(t, r.URL.Path).Equal("/collect_artifact_metadata/octo/app/42/987654321")
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(errSrv.Close)

		_, err := cli.ReportActionRun(ctx, errSrv.Client(), errSrv.URL, run)
		gt.Error(t, err)
	})
}
