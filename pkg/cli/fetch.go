package cli

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/pytiming/pkg/cli/config"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/domain/model"
	"github.com/m-mizutani/pytiming/pkg/domain/types"
	"github.com/m-mizutani/pytiming/pkg/infra"
	"github.com/m-mizutani/pytiming/pkg/usecase"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"
	"github.com/m-mizutani/pytiming/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func fetchCommand() *cli.Command {
	var (
		input  model.PullRequestInput
		number int64
		output string

		githubApp config.GitHubApp
		cache     config.Cache
	)

	return &cli.Command{
		Name:    "fetch",
		Aliases: []string{"f"},
		Usage:   "Collect test timings of a pull request and print them as JSON",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "owner",
				Usage:       "Owner of the repository",
				Sources:     cli.EnvVars("PYTIMING_OWNER"),
				Destination: &input.Owner,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "repo",
				Usage:       "Name of the repository",
				Sources:     cli.EnvVars("PYTIMING_REPO"),
				Destination: &input.Repo,
				Required:    true,
			},
			&cli.Int64Flag{
				Name:        "pull-number",
				Aliases:     []string{"n"},
				Usage:       "Pull request number",
				Sources:     cli.EnvVars("PYTIMING_PULL_NUMBER"),
				Destination: &number,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "output",
				Usage:       "Output file of the result [-|<file>]",
				Sources:     cli.EnvVars("PYTIMING_OUTPUT"),
				Destination: &output,
				Value:       "-",
			},
		}, githubApp.Flags(), cache.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			input.Number = types.PullNumber(number)
			if err := input.Validate(); err != nil {
				return err
			}

			ghClient, err := githubApp.NewClient(ctx)
			if err != nil {
				return err
			}

			archiveRepo, closeArchive, err := cache.NewRepository()
			if err != nil {
				return err
			}
			defer closeArchive()

			uc := usecase.New(infra.New(
				infra.WithGitHub(ghClient),
				infra.WithArchiveRepository(archiveRepo),
			))

			return runFetch(ctx, uc, &input, output)
		},
	}
}

func runFetch(ctx context.Context, uc interfaces.UseCase, input *model.PullRequestInput, output string) error {
	logger := logging.From(ctx)

	result, info := model.WaitResult(uc.StreamPullRequest(ctx, input), func(ev *model.Event) {
		if ev.Name == model.EventInfo {
			logger.Info(ev.Info, slog.String("pull_request", input.String()))
		}
	})
	if result == nil {
		logger.Warn("no test timing is available", slog.String("pull_request", input.String()), slog.String("reason", info))
		return nil
	}

	var w io.Writer = os.Stdout
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return goerr.Wrap(err, "failed to create output file", goerr.V("path", output))
		}
		defer safe.Close(f)
		w = f
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return goerr.Wrap(err, "failed to write result", goerr.V("output", output))
	}

	logger.Info("test timings are written",
		slog.String("output", output),
		slog.Int("files", len(result)),
		slog.Int("tests", result.TestCount()),
	)
	return nil
}
