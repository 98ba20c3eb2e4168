package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/workshop-sync/internal/adapters/manifest"
	"github.com/bnema/workshop-sync/internal/adapters/steamcmd"
	"github.com/bnema/workshop-sync/internal/application"
	"github.com/bnema/workshop-sync/internal/domain"
	"github.com/bnema/workshop-sync/internal/logging"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = "wsync"
	envPrefix  = "WSYNC"

	ReadinessModePoll  = "poll"
	ReadinessModeWatch = "watch"
)

const (
	keySteamCmdPath            = "steamcmd.path"
	keySteamCmdAppID           = "steamcmd.app_id"
	keySteamCmdLoginTimeout    = "steamcmd.login_timeout"
	keySteamCmdDownloadTimeout = "steamcmd.download_timeout"
	keySteamCmdCloseTimeout    = "steamcmd.close_timeout"
	keyDownloadAttempts        = "download.attempts"
	keyReadinessAttempts       = "readiness.attempts"
	keyReadinessStep           = "readiness.step"
	keyReadinessMode           = "readiness.mode"
	keyReadinessLenient        = "readiness.lenient"
	keyManifestName            = "manifest.name"
	keyLogLevel                = "log.level"
	keyLogFormat               = "log.format"
	keyLogFile                 = "log.file"
)

type Config struct {
	SteamCmd  SteamCmd
	Download  Download
	Readiness Readiness
	Manifest  Manifest
	Log       Log
	// Source is the config file that was read, empty when running on defaults.
	Source string
}

type SteamCmd struct {
	Path            string
	AppID           uint64
	LoginTimeout    time.Duration
	DownloadTimeout time.Duration
	CloseTimeout    time.Duration
}

type Download struct {
	Attempts int
}

type Readiness struct {
	Attempts int
	Step     time.Duration
	Mode     string
	Lenient  bool
}

type Manifest struct {
	Name string
}

type Log struct {
	Level  string
	Format string
	File   string
}

func Defaults() Config {
	return Config{
		SteamCmd: SteamCmd{
			Path:            steamcmd.DefaultPath,
			AppID:           steamcmd.DefaultAppID,
			LoginTimeout:    steamcmd.DefaultLoginTimeout,
			DownloadTimeout: steamcmd.DefaultDownloadTimeout,
			CloseTimeout:    steamcmd.DefaultCloseTimeout,
		},
		Download: Download{Attempts: application.DefaultDownloadAttempts},
		Readiness: Readiness{
			Attempts: application.DefaultReadinessAttempts,
			Step:     application.DefaultReadinessStep,
			Mode:     ReadinessModePoll,
		},
		Manifest: Manifest{Name: manifest.DefaultName},
		Log:      Log{Level: "info", Format: logging.FormatConsole},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/wsync/config.toml (or the platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(dir, configDir, configName+"."+configType), nil
}

// Load reads the config file, environment overrides (WSYNC_STEAMCMD_PATH,
// ...) and defaults. An explicit path must exist; the default one may not.
func Load(v *viper.Viper, explicitPath string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	setDefaults(v, Defaults())
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		v.SetConfigType(configType)
	} else {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Dir(defaultPath))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("%w: read config file: %w", domain.ErrConfig, err)
		}
	}

	cfg := Config{
		SteamCmd: SteamCmd{
			Path:            v.GetString(keySteamCmdPath),
			AppID:           v.GetUint64(keySteamCmdAppID),
			LoginTimeout:    v.GetDuration(keySteamCmdLoginTimeout),
			DownloadTimeout: v.GetDuration(keySteamCmdDownloadTimeout),
			CloseTimeout:    v.GetDuration(keySteamCmdCloseTimeout),
		},
		Download: Download{Attempts: v.GetInt(keyDownloadAttempts)},
		Readiness: Readiness{
			Attempts: v.GetInt(keyReadinessAttempts),
			Step:     v.GetDuration(keyReadinessStep),
			Mode:     strings.ToLower(v.GetString(keyReadinessMode)),
			Lenient:  v.GetBool(keyReadinessLenient),
		},
		Manifest: Manifest{Name: v.GetString(keyManifestName)},
		Log: Log{
			Level:  v.GetString(keyLogLevel),
			Format: v.GetString(keyLogFormat),
			File:   v.GetString(keyLogFile),
		},
		Source: v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.SteamCmd.Path) == "" {
		errs = append(errs, errors.New("steamcmd.path is required"))
	}
	if c.SteamCmd.AppID == 0 {
		errs = append(errs, errors.New("steamcmd.app_id is required"))
	}
	if c.Download.Attempts < 1 {
		errs = append(errs, fmt.Errorf("download.attempts must be at least 1, got %d", c.Download.Attempts))
	}
	if c.Readiness.Attempts < 1 {
		errs = append(errs, fmt.Errorf("readiness.attempts must be at least 1, got %d", c.Readiness.Attempts))
	}
	if c.Readiness.Step <= 0 {
		errs = append(errs, fmt.Errorf("readiness.step must be positive, got %s", c.Readiness.Step))
	}
	if c.Readiness.Mode != ReadinessModePoll && c.Readiness.Mode != ReadinessModeWatch {
		errs = append(errs, fmt.Errorf("readiness.mode must be %q or %q, got %q", ReadinessModePoll, ReadinessModeWatch, c.Readiness.Mode))
	}
	if strings.ContainsAny(c.Manifest.Name, `/\`) || strings.TrimSpace(c.Manifest.Name) == "" {
		errs = append(errs, fmt.Errorf("manifest.name must be a plain file name, got %q", c.Manifest.Name))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrConfig, errors.Join(errs...))
	}
	return nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault(keySteamCmdPath, d.SteamCmd.Path)
	v.SetDefault(keySteamCmdAppID, d.SteamCmd.AppID)
	v.SetDefault(keySteamCmdLoginTimeout, d.SteamCmd.LoginTimeout)
	v.SetDefault(keySteamCmdDownloadTimeout, d.SteamCmd.DownloadTimeout)
	v.SetDefault(keySteamCmdCloseTimeout, d.SteamCmd.CloseTimeout)
	v.SetDefault(keyDownloadAttempts, d.Download.Attempts)
	v.SetDefault(keyReadinessAttempts, d.Readiness.Attempts)
	v.SetDefault(keyReadinessStep, d.Readiness.Step)
	v.SetDefault(keyReadinessMode, d.Readiness.Mode)
	v.SetDefault(keyReadinessLenient, d.Readiness.Lenient)
	v.SetDefault(keyManifestName, d.Manifest.Name)
	v.SetDefault(keyLogLevel, d.Log.Level)
	v.SetDefault(keyLogFormat, d.Log.Format)
	v.SetDefault(keyLogFile, d.Log.File)
}
