package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"
)

// defaultRetryMillis is reconnection delay advised to SSE clients
const defaultRetryMillis = 10000

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is not from user input
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		logging.From(r.Context()).Error("fail to marshal response", slog.Any("error", err))
		safeWrite(w, http.StatusInternalServerError, []byte("internal error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, http.StatusOK, raw)
}

type config struct {
	retryMillis int
}

type Option func(*config)

// WithRetryMillis changes retry field of SSE events
func WithRetryMillis(ms int) Option {
	return func(cfg *config) {
		cfg.retryMillis = ms
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{
		retryMillis: defaultRetryMillis,
	}
	for _, opt := range options {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/pulls", handleListPullRequests(uc))
		r.Get("/action_runs", handleListActionRuns(uc))
		r.Route("/gh/{org}/{repo}/pull/{number}", func(r chi.Router) {
			r.Get("/", handleGetPullRequest(uc))
			r.Get("/stream", handleStreamPullRequest(uc, cfg.retryMillis))
		})
	})

	collect := handleCollectArtifactMetadata(uc)
	r.Get("/collect_artifact_metadata/{org}/{repo}/{pull_number}/{run_id}", collect)
	r.Post("/collect_artifact_metadata/{org}/{repo}/{pull_number}/{run_id}", collect)

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

func pullRequestInput(r *http.Request) (*model.PullRequestInput, error) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		return nil, goerr.Wrap(types.ErrValidationFailed, "pull request number is not integer",
			goerr.V("number", chi.URLParam(r, "number")),
		)
	}

	input := &model.PullRequestInput{
		Owner:  chi.URLParam(r, "org"),
		Repo:   chi.URLParam(r, "repo"),
		Number: types.PullNumber(number),
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	return input, nil
}
