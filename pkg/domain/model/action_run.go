package model

import (
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
)

// ActionRun is a bookkeeping record of a workflow run observed for a pull request
type ActionRun struct {
	Owner      string           `json:"organization" firestore:"organization"`
	Repo       string           `json:"repo" firestore:"repo"`
	PullNumber types.PullNumber `json:"pull_number" firestore:"pull_number"`
	RunID      types.RunID      `json:"run_id" firestore:"run_id"`
	CreatedAt  time.Time        `json:"created_at" firestore:"created_at"`
}

func (x *ActionRun) Validate() error {
	if err := validateGitHubName("owner", x.Owner); err != nil {
		return err
	}
	if err := validateGitHubName("repo", x.Repo); err != nil {
		return err
	}
	if x.PullNumber <= 0 {
		return goerr.Wrap(types.ErrValidationFailed, "invalid pull request number", goerr.V("pull_number", x.PullNumber))
	}
	if x.RunID <= 0 {
		return goerr.Wrap(types.ErrValidationFailed, "invalid run ID", goerr.V("run_id", x.RunID))
	}
	return nil
}

// PullRequestEntry is an item of pull request listing for selector of browser client
type PullRequestEntry struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

func NewPullRequestEntry(owner, repo string, number types.PullNumber) *PullRequestEntry {
	return &PullRequestEntry{
		Value: fmt.Sprintf("%s/%s/%d", owner, repo, number),
		Name:  fmt.Sprintf("%s/%s#%d", owner, repo, number),
	}
}
