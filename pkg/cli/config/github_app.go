package config

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/infra/ghapp"
	"github.com/m-mizutani/pytiming/pkg/infra/githubapi"
	"github.com/urfave/cli/v3"
)

type GitHubApp struct {
	id         types.GitHubAppID
	privateKey types.GitHubAppPrivateKey `masq:"secret"`
	installID  types.GitHubAppInstallID
	owner      string
	baseURL    string
	timeout    time.Duration
}

func (x *GitHubApp) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Category:    "GitHub App",
			Destination: (*int64)(&x.id),
			Sources:     cli.EnvVars("PYTIMING_GITHUB_APP_ID"),
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App Private Key (PEM)",
			Category:    "GitHub App",
			Destination: (*string)(&x.privateKey),
			Sources:     cli.EnvVars("PYTIMING_GITHUB_APP_PRIVATE_KEY"),
			Required:    true,
		},
		&cli.Int64Flag{
			Name:        "github-app-installation-id",
			Usage:       "GitHub App installation ID (resolved at startup if not set)",
			Category:    "GitHub App",
			Destination: (*int64)(&x.installID),
			Sources:     cli.EnvVars("PYTIMING_GITHUB_APP_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-owner",
			Usage:       "Organization or user that installed the app, used to resolve installation ID",
			Category:    "GitHub App",
			Destination: &x.owner,
			Sources:     cli.EnvVars("PYTIMING_GITHUB_APP_OWNER"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL",
			Category:    "GitHub App",
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("PYTIMING_GITHUB_API_URL"),
			Value:       "https://api.github.com/",
		},
		&cli.DurationFlag{
			Name:        "github-api-timeout",
			Usage:       "Timeout of each GitHub API request and archive download",
			Category:    "GitHub App",
			Destination: &x.timeout,
			Sources:     cli.EnvVars("PYTIMING_GITHUB_API_TIMEOUT"),
			Value:       30 * time.Second,
		},
	}
}

func (x GitHubApp) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("ID", int64(x.id)),
		slog.Int("privateKey.len", len(x.privateKey)),
		slog.Int64("installID", int64(x.installID)),
		slog.String("owner", x.owner),
		slog.String("baseURL", x.baseURL),
		slog.Duration("timeout", x.timeout),
	)
}

// NewAuthority creates token authority of the app installation. Installation ID is looked up once
// here if it is not configured.
func (x GitHubApp) NewAuthority(ctx context.Context) (*ghapp.Authority, error) {
	baseURL, err := url.Parse(x.baseURL)
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid GitHub API URL", goerr.V("url", x.baseURL))
	}

	client, err := ghapp.New(x.id, x.privateKey,
		ghapp.WithBaseURL(baseURL),
		ghapp.WithHTTPClient(&http.Client{Timeout: x.timeout}),
	)
	if err != nil {
		return nil, err
	}

	installID := x.installID
	if installID == 0 {
		id, err := client.FindInstallationID(ctx, x.owner)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve installation ID", goerr.V("owner", x.owner))
		}
		installID = id
	}

	return ghapp.NewAuthority(client, installID), nil
}

// NewClient creates GitHub API client authenticated as the app installation
func (x GitHubApp) NewClient(ctx context.Context) (*githubapi.Client, error) {
	authority, err := x.NewAuthority(ctx)
	if err != nil {
		return nil, err
	}

	return githubapi.New(authority,
		githubapi.WithBaseURL(x.baseURL),
		githubapi.WithTimeout(x.timeout),
	)
}
