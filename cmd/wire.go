package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	fsadapter "github.com/bnema/workshop-sync/internal/adapters/fs"
	"github.com/bnema/workshop-sync/internal/adapters/fswatch"
	"github.com/bnema/workshop-sync/internal/adapters/manifest"
	"github.com/bnema/workshop-sync/internal/application"
	"github.com/bnema/workshop-sync/internal/config"
	"github.com/bnema/workshop-sync/internal/domain"
	"github.com/bnema/workshop-sync/internal/logging"
	"github.com/bnema/workshop-sync/internal/ports"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type globalOptions struct {
	configPath string
	verbose    bool
}

type rootsFlags struct {
	modsDir  string
	steamDir string
	clean    bool
}

func (f *rootsFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.modsDir, "mods-dir", "m", "", "Game mods directory holding mods.txt")
	cmd.Flags().StringVarP(&f.steamDir, "steam-dir", "s", "", "steamcmd download directory for the game, e.g. steamapps/workshop/content/294100")
	cmd.Flags().BoolVarP(&f.clean, "clean", "c", false, "Remove existing mod folders and downloads before syncing")
}

type app struct {
	cfg    config.Config
	logger zerolog.Logger
	runID  string
	loader ports.ManifestLoader
	dirs   *fsadapter.Store
	closer io.Closer
}

func wireApp(cmd *cobra.Command, opts *globalOptions) (*app, error) {
	cfg, err := config.Load(viper.New(), opts.configPath)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger, closer, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		File:    cfg.Log.File,
		Verbose: opts.verbose,
		RunID:   runID,
		Out:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfig, err)
	}
	if cfg.Source != "" {
		logger.Debug().Str("path", cfg.Source).Msg("loaded config")
	}

	osFs := afero.NewOsFs()
	return &app{
		cfg:    cfg,
		logger: logger,
		runID:  runID,
		loader: manifest.NewLoader(osFs),
		dirs:   fsadapter.NewStore(osFs),
		closer: closer,
	}, nil
}

func (a *app) Close() error {
	return a.closer.Close()
}

// resolveRoots checks that both roots exist and are directories.
func (a *app) resolveRoots(ctx context.Context, flags rootsFlags) (domain.Roots, error) {
	destination, err := a.requireDir(ctx, "--mods-dir", flags.modsDir)
	if err != nil {
		return domain.Roots{}, err
	}
	staging, err := a.requireDir(ctx, "--steam-dir", flags.steamDir)
	if err != nil {
		return domain.Roots{}, err
	}

	return domain.Roots{Destination: destination, Staging: staging}, nil
}

func (a *app) requireDir(ctx context.Context, flag, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: %s is required", domain.ErrConfig, flag)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s %q: %w", domain.ErrConfig, flag, path, err)
	}

	isDir, err := a.dirs.IsDir(ctx, abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrConfig, flag, err)
	}
	if !isDir {
		return "", fmt.Errorf("%w: %s %q expected to be a directory and exist", domain.ErrConfig, flag, path)
	}

	return abs, nil
}

func (a *app) loadManifest(ctx context.Context, roots domain.Roots) ([]domain.Item, error) {
	path := filepath.Join(roots.Destination, a.cfg.Manifest.Name)
	items, err := a.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	a.logger.Info().Int("mods", len(items)).Str("manifest", path).Msg("loaded mod list")
	return items, nil
}

func (a *app) readinessWaiter() ports.ReadinessWaiter {
	settings := application.ReadinessSettings{
		Attempts: a.cfg.Readiness.Attempts,
		Step:     a.cfg.Readiness.Step,
		Lenient:  a.cfg.Readiness.Lenient,
	}
	poll := application.NewPollWaiter(a.dirs, ports.SystemClock{}, settings, a.logger)

	if a.cfg.Readiness.Mode == config.ReadinessModeWatch {
		return fswatch.NewWaiter(settings, poll, a.logger)
	}
	return poll
}

func (a *app) syncSettings(roots domain.Roots, progress ports.Progress) application.SyncSettings {
	return application.SyncSettings{
		Roots:            roots,
		DownloadAttempts: a.cfg.Download.Attempts,
		RunID:            a.runID,
		Progress:         progress,
		Logger:           a.logger,
	}
}
