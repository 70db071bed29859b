package cli

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
)

// pullRefPattern matches GITHUB_REF of pull_request event, e.g. refs/pull/123/merge
var pullRefPattern = regexp.MustCompile(`^refs/pull/(\d+)/`)

// ActionsEnv is a subset of GitHub Actions default environment variables
type ActionsEnv struct {
	Repository string // GITHUB_REPOSITORY, owner/repo
	RunID      string // GITHUB_RUN_ID
	Ref        string // GITHUB_REF
}

// FillActionRun completes owner, repo, pull number and run ID of the run from GitHub Actions
// environment. Values that are already set are kept.
func FillActionRun(run *model.ActionRun, env ActionsEnv) error {
	if (run.Owner == "" || run.Repo == "") && env.Repository != "" {
		owner, repo, ok := strings.Cut(env.Repository, "/")
		if !ok {
			return goerr.Wrap(types.ErrValidationFailed, "invalid GITHUB_REPOSITORY", goerr.V("value", env.Repository))
		}
		if run.Owner == "" {
			run.Owner = owner
		}
		if run.Repo == "" {
			run.Repo = repo
		}
	}

	if run.RunID == 0 && env.RunID != "" {
		id, err := strconv.ParseInt(env.RunID, 10, 64)
		if err != nil {
			return goerr.Wrap(types.ErrValidationFailed, "invalid GITHUB_RUN_ID", goerr.V("value", env.RunID))
		}
		run.RunID = types.RunID(id)
	}

	if run.PullNumber == 0 {
		if m := pullRefPattern.FindStringSubmatch(env.Ref); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return goerr.Wrap(types.ErrValidationFailed, "invalid pull request ref", goerr.V("ref", env.Ref))
			}
			run.PullNumber = types.PullNumber(n)
		}
	}

	return nil
}

// ParseGitHubRemoteURL extracts owner and repository name from git remote URL such as
// git@github.com:owner/repo.git or https://github.com/owner/repo.git
func ParseGitHubRemoteURL(url string) (string, string, error) {
	var path string
	switch {
	case strings.HasPrefix(url, "git@github.com:"):
		path = strings.TrimPrefix(url, "git@github.com:")
	case strings.Contains(url, "github.com/"):
		parts := strings.SplitN(url, "github.com/", 2)
		path = parts[1]
	}

	path = strings.TrimSuffix(strings.TrimSuffix(path, "/"), ".git")
	owner, repo, ok := strings.Cut(path, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", goerr.New("failed to parse GitHub owner/repo from git remote URL", goerr.V("url", url))
	}

	return owner, repo, nil
}

// AutoDetectRepository fills owner and repo of the run from origin remote of the git repository
// in the current directory if they are not set yet
func AutoDetectRepository(ctx context.Context, run *model.ActionRun) error {
	if run.Owner != "" && run.Repo != "" {
		return nil
	}

	repo, err := git.PlainOpen(".")
	if err != nil {
		return goerr.Wrap(err, "failed to open git repository")
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return goerr.Wrap(err, "failed to get remote origin")
	}
	if len(remote.Config().URLs) == 0 {
		return goerr.New("no remote URL found")
	}

	owner, name, err := ParseGitHubRemoteURL(remote.Config().URLs[0])
	if err != nil {
		return err
	}

	if run.Owner == "" {
		run.Owner = owner
	}
	if run.Repo == "" {
		run.Repo = name
	}

	return nil
}
