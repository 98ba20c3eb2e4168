package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	configDirMode   = 0o755
	configFileMode  = 0o644
	tempFilePattern = ".config-*.toml.tmp"

	fileHeader = "# wsync configuration. Every key may also be set through WSYNC_<SECTION>_<KEY>.\n\n"
)

var ErrConfigExists = errors.New("config file already exists")

type fileSchema struct {
	SteamCmd  steamCmdSchema  `toml:"steamcmd"`
	Download  downloadSchema  `toml:"download"`
	Readiness readinessSchema `toml:"readiness"`
	Manifest  manifestSchema  `toml:"manifest"`
	Log       logSchema       `toml:"log"`
}

type steamCmdSchema struct {
	Path            string `toml:"path" comment:"steamcmd executable, looked up in PATH"`
	AppID           uint64 `toml:"app_id" comment:"Steam application the workshop items belong to"`
	LoginTimeout    string `toml:"login_timeout" comment:"0 waits forever"`
	DownloadTimeout string `toml:"download_timeout"`
	CloseTimeout    string `toml:"close_timeout"`
}

type downloadSchema struct {
	Attempts int `toml:"attempts"`
}

type readinessSchema struct {
	Attempts int    `toml:"attempts"`
	Step     string `toml:"step" comment:"check i waits i*step before looking for the staged directory"`
	Mode     string `toml:"mode" comment:"poll or watch"`
	Lenient  bool   `toml:"lenient" comment:"continue when the staged directory never appears"`
}

type manifestSchema struct {
	Name string `toml:"name" comment:"mod list file inside the mods directory"`
}

type logSchema struct {
	Level  string `toml:"level"`
	Format string `toml:"format" comment:"console or json"`
	File   string `toml:"file" comment:"optional rotating log file"`
}

func toSchema(c Config) fileSchema {
	return fileSchema{
		SteamCmd: steamCmdSchema{
			Path:            c.SteamCmd.Path,
			AppID:           c.SteamCmd.AppID,
			LoginTimeout:    c.SteamCmd.LoginTimeout.String(),
			DownloadTimeout: c.SteamCmd.DownloadTimeout.String(),
			CloseTimeout:    c.SteamCmd.CloseTimeout.String(),
		},
		Download: downloadSchema{Attempts: c.Download.Attempts},
		Readiness: readinessSchema{
			Attempts: c.Readiness.Attempts,
			Step:     c.Readiness.Step.String(),
			Mode:     c.Readiness.Mode,
			Lenient:  c.Readiness.Lenient,
		},
		Manifest: manifestSchema{Name: c.Manifest.Name},
		Log: logSchema{
			Level:  c.Log.Level,
			Format: c.Log.Format,
			File:   c.Log.File,
		},
	}
}

// Encode renders cfg as TOML in the layout Load reads back.
func Encode(c Config) ([]byte, error) {
	data, err := toml.Marshal(toSchema(c))
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// WriteDefault writes the default configuration to path, replacing an
// existing file only when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat config file: %w", err)
		}
	}

	data, err := Encode(Defaults())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.WriteString(fileHeader); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}

	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	cleanup = false
	return nil
}
