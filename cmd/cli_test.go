package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bnema/workshop-sync/internal/config"
	"github.com/bnema/workshop-sync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeSteamCmd = `#!/bin/sh
while IFS= read -r line; do
  case "$line" in
    "login anonymous")
      echo "Logging in user 'anonymous' to Steam Public..."
      echo "Waiting for user info...OK"
      ;;
    "workshop_download_item "*)
      id=${line##* }
      echo "Downloading item $id ..."
      if [ -n "$FAKE_FAIL" ]; then
        echo "ERROR! Download item $id failed (Failure)."
      else
        mkdir -p "$FAKE_STAGING/$id"
        echo "mod $id" > "$FAKE_STAGING/$id/About.xml"
        echo "Success. Downloaded item $id to \"$FAKE_STAGING/$id\" (8 bytes)"
      fi
      ;;
    quit)
      exit 0
      ;;
  esac
done
`

type fixture struct {
	home    string
	modsDir string
	steam   string
}

func newFixture(t *testing.T, manifest string) fixture {
	t.Helper()

	f := fixture{
		home:    t.TempDir(),
		modsDir: t.TempDir(),
		steam:   t.TempDir(),
	}
	require.NoError(t, os.WriteFile(filepath.Join(f.modsDir, "mods.txt"), []byte(manifest), 0o644))

	return f
}

func installFakeSteamCmd(t *testing.T, staging string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake steamcmd is a shell script")
	}

	path := filepath.Join(t.TempDir(), "steamcmd")
	require.NoError(t, os.WriteFile(path, []byte(fakeSteamCmd), 0o755))
	t.Setenv("WSYNC_STEAMCMD_PATH", path)
	t.Setenv("FAKE_STAGING", staging)
}

func TestSyncRequiresModsDir(t *testing.T) {
	f := newFixture(t, "")

	_, _, err := executeCLI(t, f.home, "-s", f.steam)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.Contains(t, err.Error(), "--mods-dir is required")
}

func TestSyncRejectsMissingSteamDir(t *testing.T) {
	f := newFixture(t, "")

	_, _, err := executeCLI(t, f.home, "-m", f.modsDir, "-s", filepath.Join(f.steam, "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.Contains(t, err.Error(), "expected to be a directory and exist")
}

func TestSyncRequiresManifest(t *testing.T) {
	f := newFixture(t, "")
	require.NoError(t, os.Remove(filepath.Join(f.modsDir, "mods.txt")))

	_, _, err := executeCLI(t, f.home, "-m", f.modsDir, "-s", f.steam)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.Contains(t, err.Error(), "mods.txt")
}

func TestSyncDownloadsAndPlacesMods(t *testing.T) {
	f := newFixture(t, "https://steamcommunity.com/sharedfiles/filedetails/?id=123 Cool Mod\n")
	installFakeSteamCmd(t, f.steam)

	stdout, stderr, err := executeCLI(t, f.home, "-m", f.modsDir, "-s", f.steam)
	require.NoError(t, err, "stderr: %s", stderr)

	data, err := os.ReadFile(filepath.Join(f.modsDir, "123", "About.xml"))
	require.NoError(t, err)
	assert.Equal(t, "mod 123\n", string(data))
	assert.Contains(t, stdout, "mods: 1  downloaded: 1  copied: 0  skipped: 0")
	assert.Contains(t, stdout, "Cool Mod 123 downloaded")
}

func TestSyncSkipsInstalledModsAsJSON(t *testing.T) {
	f := newFixture(t, "https://x/?id=123 Cool Mod\n")
	installFakeSteamCmd(t, f.steam)
	require.NoError(t, os.MkdirAll(filepath.Join(f.modsDir, "123"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(f.modsDir, "123", "About.xml"), []byte("installed"), 0o644))

	stdout, stderr, err := executeCLI(t, f.home, "-m", f.modsDir, "-s", f.steam, "--json")
	require.NoError(t, err, "stderr: %s", stderr)
	require.True(t, json.Valid([]byte(stdout)))

	var report struct {
		Outcomes []struct {
			Action string
		}
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, string(domain.ActionSkip), report.Outcomes[0].Action)
	assert.NoDirExists(t, filepath.Join(f.steam, "123"))
}

func TestSyncCleanRedownloads(t *testing.T) {
	f := newFixture(t, "https://x/?id=123 Cool Mod\n")
	installFakeSteamCmd(t, f.steam)
	require.NoError(t, os.MkdirAll(filepath.Join(f.modsDir, "123"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(f.modsDir, "123", "stale.txt"), []byte("old"), 0o644))

	stdout, stderr, err := executeCLI(t, f.home, "-m", f.modsDir, "-s", f.steam, "--clean")
	require.NoError(t, err, "stderr: %s", stderr)

	assert.NoFileExists(t, filepath.Join(f.modsDir, "123", "stale.txt"))
	assert.FileExists(t, filepath.Join(f.modsDir, "123", "About.xml"))
	assert.Contains(t, stdout, "[cleaned]")
}

func TestSyncFailsAfterRepeatedDownloadErrors(t *testing.T) {
	f := newFixture(t, "https://x/?id=123 Cool Mod\n")
	installFakeSteamCmd(t, f.steam)
	t.Setenv("FAKE_FAIL", "1")

	_, _, err := executeCLI(t, f.home, "-m", f.modsDir, "-s", f.steam)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
	assert.Contains(t, err.Error(), "gave up after 3 attempts")
	assert.NoDirExists(t, filepath.Join(f.modsDir, "123"))
}

func TestSyncReportsMissingSteamCmd(t *testing.T) {
	f := newFixture(t, "https://x/?id=123 Cool Mod\n")
	t.Setenv("WSYNC_STEAMCMD_PATH", filepath.Join(f.home, "no-such-steamcmd"))

	_, _, err := executeCLI(t, f.home, "-m", f.modsDir, "-s", f.steam)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProcessLaunch)
}

func TestPlanDoesNotStartSteamCmd(t *testing.T) {
	f := newFixture(t, "https://x/?id=1 Harmony\nhttps://x/?id=2 HugsLib\n")
	t.Setenv("WSYNC_STEAMCMD_PATH", filepath.Join(f.home, "no-such-steamcmd"))
	require.NoError(t, os.MkdirAll(filepath.Join(f.modsDir, "1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(f.modsDir, "1", "About.xml"), []byte("x"), 0o644))

	stdout, stderr, err := executeCLI(t, f.home, "plan", "-m", f.modsDir, "-s", f.steam, "--paths")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Workshop sync plan")
	assert.Contains(t, stdout, "Harmony 1 already installed")
	assert.Contains(t, stdout, "HugsLib 2 downloaded")
	assert.Contains(t, stdout, filepath.Join(f.steam, "2"))
}

func TestPlanCleanMarksRemovals(t *testing.T) {
	f := newFixture(t, "https://x/?id=1 Harmony\n")
	require.NoError(t, os.MkdirAll(filepath.Join(f.modsDir, "1"), 0o755))

	stdout, _, err := executeCLI(t, f.home, "plan", "-m", f.modsDir, "-s", f.steam, "-c")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[remove destination]")
	assert.DirExists(t, filepath.Join(f.modsDir, "1"))
}

func TestConfigInitThenShow(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "wsync.toml")

	stdout, _, err := executeCLI(t, home, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote "+path)
	assert.FileExists(t, path)

	_, _, err = executeCLI(t, home, "config", "init", "--config", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfigExists)

	_, _, err = executeCLI(t, home, "config", "init", "--config", path, "--force")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "# source: "+path)
	assert.Contains(t, stdout, "app_id = 294100")
}

func TestConfigShowUsesDefaultsWithoutFile(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# source: defaults")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"status\"")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
