package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/utils/errutil"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"
)

const (
	statusOK        = "ok"
	statusDuplicate = "duplicate"
)

func handleListPullRequests(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := uc.ListPullRequests(r.Context())
		if err != nil {
			errutil.HandleError(r.Context(), "fail to list pull requests", err)
			safeWrite(w, http.StatusInternalServerError, []byte("internal error"))
			return
		}
		if entries == nil {
			entries = []*model.PullRequestEntry{}
		}

		writeJSON(w, r, entries)
	}
}

func handleListActionRuns(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := uc.ListActionRuns(r.Context())
		if err != nil {
			errutil.HandleError(r.Context(), "fail to list action runs", err)
			safeWrite(w, http.StatusInternalServerError, []byte("internal error"))
			return
		}
		if runs == nil {
			runs = []*model.ActionRun{}
		}

		writeJSON(w, r, runs)
	}
}

// handleCollectArtifactMetadata records a workflow run of a pull request that is reported from CI.
// Recording a known run is not an error and answers "duplicate".
func handleCollectArtifactMetadata(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pullNumber, err := strconv.Atoi(chi.URLParam(r, "pull_number"))
		if err != nil {
			safeWrite(w, http.StatusBadRequest, []byte("invalid pull_number"))
			return
		}
		runID, err := strconv.ParseInt(chi.URLParam(r, "run_id"), 10, 64)
		if err != nil {
			safeWrite(w, http.StatusBadRequest, []byte("invalid run_id"))
			return
		}

		run := &model.ActionRun{
			Owner:      chi.URLParam(r, "org"),
			Repo:       chi.URLParam(r, "repo"),
			PullNumber: types.PullNumber(pullNumber),
			RunID:      types.RunID(runID),
		}

		switch err := uc.RecordActionRun(r.Context(), run); {
		case err == nil:
			safeWrite(w, http.StatusOK, []byte(statusOK))

		case errors.Is(err, types.ErrDuplicate):
			logging.From(r.Context()).Debug("action run is already recorded", slog.Any("run", run))
			safeWrite(w, http.StatusOK, []byte(statusDuplicate))

		case errors.Is(err, types.ErrValidationFailed):
			logging.From(r.Context()).Warn("invalid action run", slog.Any("error", err))
			safeWrite(w, http.StatusBadRequest, []byte("invalid action run"))

		default:
			errutil.HandleError(r.Context(), "fail to record action run", err)
			safeWrite(w, http.StatusInternalServerError, []byte("internal error"))
		}
	}
}

// handleGetPullRequest waits for the whole pipeline and responds the extraction result as one JSON
// document. If there is no result, {"info": ...} of the last event is returned.
func handleGetPullRequest(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := pullRequestInput(r)
		if err != nil {
			logging.From(r.Context()).Warn("invalid pull request", slog.Any("error", err))
			safeWrite(w, http.StatusBadRequest, []byte("invalid pull request"))
			return
		}

		result, info := model.WaitResult(uc.StreamPullRequest(r.Context(), input), nil)
		if result == nil {
			writeJSON(w, r, map[string]string{"info": info})
			return
		}

		writeJSON(w, r, result)
	}
}
