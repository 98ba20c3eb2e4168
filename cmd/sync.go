package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	progressadapter "github.com/bnema/workshop-sync/internal/adapters/progress"
	summaryadapter "github.com/bnema/workshop-sync/internal/adapters/render/summary"
	"github.com/bnema/workshop-sync/internal/adapters/steamcmd"
	"github.com/bnema/workshop-sync/internal/application"
	"github.com/bnema/workshop-sync/internal/ports"
	"github.com/spf13/cobra"
)

type syncOptions struct {
	roots    rootsFlags
	progress bool
	asJSON   bool
}

func runSync(cmd *cobra.Command, opts *globalOptions, syncOpts *syncOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := wireApp(cmd, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	roots, err := app.resolveRoots(ctx, syncOpts.roots)
	if err != nil {
		return err
	}
	items, err := app.loadManifest(ctx, roots)
	if err != nil {
		return err
	}

	session, err := steamcmd.Open(ctx, steamcmd.SessionConfig{
		Path:         app.cfg.SteamCmd.Path,
		CloseTimeout: app.cfg.SteamCmd.CloseTimeout,
		Logger:       app.logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			app.logger.Warn().Err(err).Msg("close steamcmd")
		}
	}()

	client := steamcmd.NewClient(session, steamcmd.ClientConfig{
		AppID:           app.cfg.SteamCmd.AppID,
		LoginTimeout:    app.cfg.SteamCmd.LoginTimeout,
		DownloadTimeout: app.cfg.SteamCmd.DownloadTimeout,
		Logger:          app.logger,
	})
	if err := client.Login(ctx); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	var progress ports.Progress = ports.NopProgress{}
	if syncOpts.progress {
		progress = progressadapter.NewBar(cmd.ErrOrStderr())
	}

	svc := application.NewSyncService(client, app.dirs, app.readinessWaiter(), ports.SystemClock{}, app.syncSettings(roots, progress))
	report, runErr := svc.Run(ctx, items, application.RunOptions{Clean: syncOpts.roots.clean})
	if errors.Is(runErr, context.Canceled) && len(report.Outcomes) == 0 {
		return runErr
	}

	if err := writeReport(cmd, report, syncOpts.asJSON); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

func writeReport(cmd *cobra.Command, report application.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	rendered, err := summaryadapter.RenderReport(report, summaryadapter.RenderOptions{})
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
