package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"
	"github.com/m-mizutani/pytiming/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func reportCommand() *cli.Command {
	var (
		run        model.ActionRun
		serverURL  string
		pullNumber int64
		runID      int64
		timeout    time.Duration
	)

	return &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Report workflow run of a pull request to pytiming server (for GitHub Actions)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "server-url",
				Usage:       "Base URL of pytiming server",
				Sources:     cli.EnvVars("PYTIMING_SERVER_URL"),
				Destination: &serverURL,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "owner",
				Usage:       "Owner of the repository (detected from GITHUB_REPOSITORY or git remote if not set)",
				Sources:     cli.EnvVars("PYTIMING_OWNER"),
				Destination: &run.Owner,
			},
			&cli.StringFlag{
				Name:        "repo",
				Usage:       "Name of the repository (detected from GITHUB_REPOSITORY or git remote if not set)",
				Sources:     cli.EnvVars("PYTIMING_REPO"),
				Destination: &run.Repo,
			},
			&cli.Int64Flag{
				Name:        "pull-number",
				Usage:       "Pull request number (detected from GITHUB_REF if not set)",
				Sources:     cli.EnvVars("PYTIMING_PULL_NUMBER"),
				Destination: &pullNumber,
			},
			&cli.Int64Flag{
				Name:        "run-id",
				Usage:       "Workflow run ID (detected from GITHUB_RUN_ID if not set)",
				Sources:     cli.EnvVars("PYTIMING_RUN_ID"),
				Destination: &runID,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "Timeout of the report request",
				Sources:     cli.EnvVars("PYTIMING_REPORT_TIMEOUT"),
				Destination: &timeout,
				Value:       30 * time.Second,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			run.PullNumber = types.PullNumber(pullNumber)
			run.RunID = types.RunID(runID)

			if err := FillActionRun(&run, ActionsEnv{
				Repository: os.Getenv("GITHUB_REPOSITORY"),
				RunID:      os.Getenv("GITHUB_RUN_ID"),
				Ref:        os.Getenv("GITHUB_REF"),
			}); err != nil {
				return err
			}
			if err := AutoDetectRepository(ctx, &run); err != nil {
				logging.From(ctx).Warn("failed to detect repository from git", slog.Any("error", err))
			}
			if err := run.Validate(); err != nil {
				return err
			}

			client := &http.Client{Timeout: timeout}
			status, err := ReportActionRun(ctx, client, serverURL, &run)
			if err != nil {
				return err
			}

			logging.From(ctx).Info("action run reported",
				slog.String("status", status),
				slog.String("owner", run.Owner),
				slog.String("repo", run.Repo),
				slog.Any("pull_number", run.PullNumber),
				slog.Any("run_id", run.RunID),
			)
			return nil
		},
	}
}

// ReportActionRun sends the run to the bookkeeping endpoint of pytiming server and returns the
// status text, "ok" or "duplicate"
func ReportActionRun(ctx context.Context, client *http.Client, serverURL string, run *model.ActionRun) (string, error) {
	endpoint, err := url.JoinPath(serverURL, "collect_artifact_metadata",
		run.Owner, run.Repo,
		fmt.Sprintf("%d", run.PullNumber),
		fmt.Sprintf("%d", run.RunID),
	)
	if err != nil {
		return "", goerr.Wrap(types.ErrInvalidOption, "invalid server URL", goerr.V("url", serverURL))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create report request", goerr.V("url", endpoint))
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to send report request", goerr.V("url", endpoint))
	}
	defer safe.Close(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return "", goerr.Wrap(err, "failed to read report response", goerr.V("url", endpoint))
	}

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("report request failed",
			goerr.V("url", endpoint),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	return strings.TrimSpace(string(body)), nil
}
