// Package githubapi is GitHub REST API client authenticated as a GitHub App installation. It
// implements interfaces.GitHub.
package githubapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/utils/safe"
)

const (
	defaultBaseURL = "https://api.github.com/"
	defaultTimeout = 30 * time.Second
	artifactsPage  = 100
)

type Client struct {
	gh         *github.Client
	httpClient *http.Client
}

var _ interfaces.GitHub = (*Client)(nil)

type config struct {
	baseURL   string
	timeout   time.Duration
	transport http.RoundTripper
}

type Option func(*config)

func WithBaseURL(baseURL string) Option {
	return func(cfg *config) {
		cfg.baseURL = baseURL
	}
}

// WithTimeout sets timeout of each HTTP request including archive download
func WithTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.timeout = d
	}
}

func WithTransport(tr http.RoundTripper) Option {
	return func(cfg *config) {
		cfg.transport = tr
	}
}

func New(authority interfaces.Authority, options ...Option) (*Client, error) {
	cfg := &config{
		baseURL:   defaultBaseURL,
		timeout:   defaultTimeout,
		transport: http.DefaultTransport,
	}
	for _, opt := range options {
		opt(cfg)
	}

	if authority == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "authority is required")
	}

	baseURL, err := url.Parse(cfg.baseURL)
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid GitHub API base URL", goerr.V("url", cfg.baseURL))
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	httpClient := &http.Client{
		Transport: &authTransport{
			base:      cfg.transport,
			authority: authority,
			host:      baseURL.Host,
		},
		Timeout: cfg.timeout,
	}

	gh := github.NewClient(httpClient)
	gh.BaseURL = baseURL

	return &Client{
		gh:         gh,
		httpClient: httpClient,
	}, nil
}

// authTransport sets Authorization header only for requests to the API host. Archive downloads
// are redirected to blob storage that must not receive the token.
type authTransport struct {
	base      http.RoundTripper
	authority interfaces.Authority
	host      string
}

func (x *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Host != x.host {
		return x.base.RoundTrip(req)
	}

	hdr, err := x.authority.Header(req.Context())
	if err != nil {
		return nil, err
	}

	r := req.Clone(req.Context())
	r.Header.Set("Authorization", hdr)
	r.Header.Set("Accept", "application/vnd.github.v3+json")
	return x.base.RoundTrip(r)
}

// upstreamError classifies err as ErrUpstreamRequest unless it is an authentication failure
func upstreamError(err error) error {
	if errors.Is(err, types.ErrAuth) {
		return err
	}
	return errors.Join(types.ErrUpstreamRequest, err)
}

func (x *Client) GetPullRequest(ctx context.Context, owner, repo string, number types.PullNumber) (*model.PullRequest, error) {
	pr, _, err := x.gh.PullRequests.Get(ctx, owner, repo, int(number))
	if err != nil {
		return nil, goerr.Wrap(upstreamError(err), "failed to get pull request",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("number", number),
		)
	}

	result := &model.PullRequest{
		Number: types.PullNumber(pr.GetNumber()),
		Title:  pr.GetTitle(),
	}
	if head := pr.GetHead(); head != nil && head.GetSHA() != "" {
		result.Head = &model.PullRequestHead{
			Ref: head.GetRef(),
			SHA: types.CommitSHA(head.GetSHA()),
		}
	}

	return result, nil
}

func (x *Client) ListWorkflowRuns(ctx context.Context, input *interfaces.ListWorkflowRunsInput) ([]*model.WorkflowRun, error) {
	opt := &github.ListWorkflowRunsOptions{
		Event:   input.Event,
		HeadSHA: string(input.HeadSHA),
		ListOptions: github.ListOptions{
			Page:    input.Page,
			PerPage: input.PerPage,
		},
	}

	runs, _, err := x.gh.Actions.ListRepositoryWorkflowRuns(ctx, input.Owner, input.Repo, opt)
	if err != nil {
		return nil, goerr.Wrap(upstreamError(err), "failed to list workflow runs",
			goerr.V("owner", input.Owner),
			goerr.V("repo", input.Repo),
			goerr.V("page", input.Page),
		)
	}

	var result []*model.WorkflowRun
	for _, run := range runs.WorkflowRuns {
		result = append(result, &model.WorkflowRun{
			ID:           types.RunID(run.GetID()),
			Name:         run.GetName(),
			HeadSHA:      types.CommitSHA(run.GetHeadSHA()),
			HeadBranch:   run.GetHeadBranch(),
			Status:       run.GetStatus(),
			Conclusion:   run.GetConclusion(),
			ArtifactsURL: run.GetArtifactsURL(),
			CreatedAt:    run.GetCreatedAt().Time,
			UpdatedAt:    run.GetUpdatedAt().Time,
		})
	}

	return result, nil
}

// ListArtifacts gets artifact listing from artifacts_url of a workflow run
func (x *Client) ListArtifacts(ctx context.Context, artifactsURL string) ([]*model.Artifact, error) {
	u, err := url.Parse(artifactsURL)
	if err != nil {
		return nil, goerr.Wrap(types.ErrUpstreamRequest, "invalid artifacts URL", goerr.V("url", artifactsURL))
	}
	q := u.Query()
	q.Set("per_page", strconv.Itoa(artifactsPage))
	u.RawQuery = q.Encode()

	req, err := x.gh.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create artifact listing request", goerr.V("url", artifactsURL))
	}

	var list github.ArtifactList
	if _, err := x.gh.Do(ctx, req, &list); err != nil {
		return nil, goerr.Wrap(upstreamError(err), "failed to list artifacts", goerr.V("url", artifactsURL))
	}

	var result []*model.Artifact
	for _, artifact := range list.Artifacts {
		result = append(result, &model.Artifact{
			Name:               artifact.GetName(),
			ArchiveDownloadURL: artifact.GetArchiveDownloadURL(),
		})
	}

	return result, nil
}

// DownloadArchive downloads whole archive body. Redirects are followed. Non-2xx status and
// network failure are ErrDownload.
func (x *Client) DownloadArchive(ctx context.Context, archiveURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return nil, goerr.Wrap(types.ErrDownload, "failed to create download request", goerr.V("url", archiveURL))
	}

	resp, err := x.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, types.ErrAuth) {
			return nil, goerr.Wrap(err, "failed to download archive", goerr.V("url", archiveURL))
		}
		return nil, goerr.Wrap(errors.Join(types.ErrDownload, err), "failed to download archive", goerr.V("url", archiveURL))
	}
	defer safe.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, goerr.Wrap(types.ErrDownload, "unexpected status of archive download",
			goerr.V("url", archiveURL),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(types.ErrDownload, err), "failed to read archive body", goerr.V("url", archiveURL))
	}

	return data, nil
}
