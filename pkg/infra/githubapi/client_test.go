package githubapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/domain/mock"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/infra/githubapi"
)

func newAuthority() *mock.AuthorityMock {
	return &mock.AuthorityMock{
		HeaderFunc: func(ctx context.Context) (string, error) {
			return "token ghs_test", nil
		},
	}
}

func newClient(t *testing.T, handler http.Handler, authority interfaces.Authority) (*githubapi.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := gt.R1(githubapi.New(authority, githubapi.WithBaseURL(srv.URL))).NoError(t)
	return client, srv
}

func TestGetPullRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/app/pulls/12", func(w http.ResponseWriter, r *http.Request) {
		gt.V(t, r.Header.Get("Authorization")).Equal("token ghs_test")
		_, _ = w.Write([]byte(`{"number":12,"title":"Add feature","head":{"ref":"feature","sha":"abc123"}}`))
	})
	mux.HandleFunc("/repos/octo/app/pulls/13", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"number":13,"title":"No head"}`))
	})
	mux.HandleFunc("/repos/octo/app/pulls/14", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	})
	client, _ := newClient(t, mux, newAuthority())
	ctx := context.Background()

	t.Run("pull request with head", func(t *testing.T) {
		pr := gt.R1(client.GetPullRequest(ctx, "octo", "app", 12)).NoError(t)
		gt.V(t, pr.Number).Equal(types.PullNumber(12))
		gt.V(t, pr.Title).Equal("Add feature")
		gt.V(t, pr.Head.Ref).Equal("feature")
		gt.V(t, pr.Head.SHA).Equal(types.CommitSHA("abc123"))
	})

	t.Run("pull request without head", func(t *testing.T) {
		pr := gt.R1(client.GetPullRequest(ctx, "octo", "app", 13)).NoError(t)
		gt.V(t, pr.Head == nil).Equal(true)
	})

	t.Run("not found is upstream error", func(t *testing.T) {
		_, err := client.GetPullRequest(ctx, "octo", "app", 14)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrUpstreamRequest))
		gt.V(t, goerr.Unwrap(err).Values()["number"]).Equal(types.PullNumber(14))
	})
}

func TestListWorkflowRuns(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/app/actions/runs", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gt.V(t, q.Get("event")).Equal("pull_request")
		gt.V(t, q.Get("head_sha")).Equal("abc123")
		gt.V(t, q.Get("page")).Equal("2")
		gt.V(t, q.Get("per_page")).Equal("100")
		_, _ = w.Write([]byte(`{"total_count":2,"workflow_runs":[
			{"id":1,"name":"CI","head_sha":"abc123","head_branch":"feature","status":"completed","conclusion":"success","artifacts_url":"http://example.com/1/artifacts","created_at":"2024-06-01T00:00:00Z"},
			{"id":2,"name":"Lint","head_sha":"abc123","artifacts_url":"http://example.com/2/artifacts"}
		]}`))
	})
	client, _ := newClient(t, mux, newAuthority())

	runs := gt.R1(client.ListWorkflowRuns(context.Background(), &interfaces.ListWorkflowRunsInput{
		Owner:   "octo",
		Repo:    "app",
		Event:   "pull_request",
		HeadSHA: "abc123",
		Page:    2,
		PerPage: 100,
	})).NoError(t)

	gt.A(t, runs).Length(2)
	gt.V(t, runs[0].ID).Equal(types.RunID(1))
	gt.V(t, runs[0].Name).Equal("CI")
	gt.V(t, runs[0].Conclusion).Equal("success")
	gt.V(t, runs[0].ArtifactsURL).Equal("http://example.com/1/artifacts")
	gt.V(t, runs[0].CreatedAt.Year()).Equal(2024)
	gt.V(t, runs[1].ID).Equal(types.RunID(2))
}

func TestListArtifacts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/app/actions/runs/1/artifacts", func(w http.ResponseWriter, r *http.Request) {
		gt.V(t, r.URL.Query().Get("per_page")).Equal("100")
		gt.V(t, r.Header.Get("Authorization")).Equal("token ghs_test")
		_, _ = w.Write([]byte(`{"total_count":2,"artifacts":[
			{"name":"timing-report-py3.11","archive_download_url":"http://example.com/a.zip"},
			{"name":"coverage","archive_download_url":"http://example.com/b.zip"}
		]}`))
	})
	client, srv := newClient(t, mux, newAuthority())

	artifacts := gt.R1(client.ListArtifacts(context.Background(), srv.URL+"/repos/octo/app/actions/runs/1/artifacts")).NoError(t)
	gt.A(t, artifacts).Length(2)
	gt.V(t, artifacts[0].Name).Equal("timing-report-py3.11")
	gt.V(t, artifacts[0].ArchiveDownloadURL).Equal("http://example.com/a.zip")
	gt.V(t, artifacts[1].Name).Equal("coverage")
}

func TestDownloadArchive(t *testing.T) {
	blob := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Token must not leak to redirected host
		gt.V(t, r.Header.Get("Authorization")).Equal("")
		_, _ = w.Write([]byte("zip-bytes"))
	}))
	t.Cleanup(blob.Close)

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/app/actions/artifacts/1/zip", func(w http.ResponseWriter, r *http.Request) {
		gt.V(t, r.Header.Get("Authorization")).Equal("token ghs_test")
		http.Redirect(w, r, blob.URL+"/blob", http.StatusFound)
	})
	mux.HandleFunc("/repos/octo/app/actions/artifacts/2/zip", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	client, srv := newClient(t, mux, newAuthority())
	ctx := context.Background()

	t.Run("follow redirect", func(t *testing.T) {
		data := gt.R1(client.DownloadArchive(ctx, srv.URL+"/repos/octo/app/actions/artifacts/1/zip")).NoError(t)
		gt.V(t, string(data)).Equal("zip-bytes")
	})

	t.Run("non-2xx is ErrDownload", func(t *testing.T) {
		_, err := client.DownloadArchive(ctx, srv.URL+"/repos/octo/app/actions/artifacts/2/zip")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrDownload))
		gt.True(t, errors.Is(err, types.ErrUpstreamRequest))
	})
}

func TestAuthFailure(t *testing.T) {
	authority := &mock.AuthorityMock{
		HeaderFunc: func(ctx context.Context) (string, error) {
			return "", goerr.Wrap(types.ErrAuth, "exchange failed")
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach server without credential")
	})
	client, srv := newClient(t, mux, authority)
	ctx := context.Background()

	_, err := client.GetPullRequest(ctx, "octo", "app", 1)
	gt.True(t, errors.Is(err, types.ErrAuth))
	gt.False(t, errors.Is(err, types.ErrUpstreamRequest))

	_, err = client.DownloadArchive(ctx, srv.URL+"/zip")
	gt.True(t, errors.Is(err, types.ErrAuth))
	gt.V(t, len(authority.HeaderCalls())).Equal(2)
}
