package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/pytiming/pkg/cli/config"
	"github.com/m-mizutani/pytiming/pkg/controller/server"
	"github.com/m-mizutani/pytiming/pkg/domain/interfaces"
	"github.com/m-mizutani/pytiming/pkg/infra"
	"github.com/m-mizutani/pytiming/pkg/usecase"
	"github.com/m-mizutani/pytiming/pkg/utils/logging"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr string

		githubApp config.GitHubApp
		cache     config.Cache
		database  config.Database
		firestore config.Firestore
		bigQuery  config.BigQuery
		sentry    config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("PYTIMING_ADDR"),
			Destination: &addr,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			githubApp.Flags(),
			cache.Flags(),
			database.Flags(),
			firestore.Flags(),
			bigQuery.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("GitHubApp", githubApp),
				slog.Any("Cache", &cache),
				slog.Any("Database", &database),
				slog.Any("Firestore", &firestore),
				slog.Any("BigQuery", &bigQuery),
				slog.Any("Sentry", &sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
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

			var (
				runRepo  interfaces.ActionRunRepository
				closeRun func()
			)
			if firestore.Enabled() {
				runRepo, closeRun, err = firestore.NewRepository(ctx)
			} else {
				runRepo, closeRun, err = database.NewRepository(ctx)
			}
			if err != nil {
				return err
			}
			defer closeRun()

			infraOptions := []infra.Option{
				infra.WithGitHub(ghClient),
				infra.WithArchiveRepository(archiveRepo),
				infra.WithActionRunRepository(runRepo),
			}

			if bqClient, err := bigQuery.NewClient(ctx); err != nil {
				return err
			} else if bqClient != nil {
				infraOptions = append(infraOptions, infra.WithBigQuery(bqClient))
			}

			clients := infra.New(infraOptions...)

			uc := usecase.New(clients)
			s := server.New(uc)

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}
