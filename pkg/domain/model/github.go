package model

import (
	"fmt"
	"regexp"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
)

var ghNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func validateGitHubName(kind, name string) error {
	if name == "" {
		return goerr.Wrap(types.ErrValidationFailed, kind+" is empty")
	}
	if !ghNamePattern.MatchString(name) {
		return goerr.Wrap(types.ErrValidationFailed, "invalid "+kind, goerr.V(kind, name))
	}
	return nil
}

// PullRequestInput identifies one pull request of a GitHub repository
type PullRequestInput struct {
	Owner  string
	Repo   string
	Number types.PullNumber
}

func (x *PullRequestInput) Validate() error {
	if err := validateGitHubName("owner", x.Owner); err != nil {
		return err
	}
	if err := validateGitHubName("repo", x.Repo); err != nil {
		return err
	}
	if x.Number <= 0 {
		return goerr.Wrap(types.ErrValidationFailed, "invalid pull request number", goerr.V("number", x.Number))
	}
	return nil
}

func (x *PullRequestInput) String() string {
	return fmt.Sprintf("%s/%s#%d", x.Owner, x.Repo, x.Number)
}

type PullRequest struct {
	Number types.PullNumber
	Title  string
	Head   *PullRequestHead
}

// PullRequestHead is the tip commit of the source branch. Nil Head means GitHub did not provide it.
type PullRequestHead struct {
	Ref string
	SHA types.CommitSHA
}

type WorkflowRun struct {
	ID           types.RunID
	Name         string
	HeadSHA      types.CommitSHA
	HeadBranch   string
	Status       string
	Conclusion   string
	ArtifactsURL string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Artifact struct {
	Name               string
	ArchiveDownloadURL string
}

// InstallationCredential is a GitHub App installation token with its expiry
type InstallationCredential struct {
	Token     string `masq:"secret"`
	ExpiresAt time.Time
}
