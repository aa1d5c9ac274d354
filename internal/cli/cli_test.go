package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"playground-bot/internal/config"
	"playground-bot/internal/domain/user"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestInfoCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"42": {"backtrace": true, "channel": "beta", "crateType": "lib", "edition": "2015", "mode": "release", "tests": true}}`),
		0o644))

	t.Setenv("FILE_PATH", path)
	t.Setenv("STORE_BACKEND", config.BackendJSON)
	t.Setenv("LOG_LEVEL", "error")

	out, err := runCommand(t, "info", "42", "--env-file", filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "Backtrace: enabled\nChannel: beta\nEdition: 2015\nMode: release\nCrate type: lib\nTests: enabled\n", out)

	out, err = runCommand(t, "info", "7", "--env-file", filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Contains(t, out, "Channel: stable")
}

func TestInfoCommandRejectsBadID(t *testing.T) {
	_, err := runCommand(t, "info", "alice")
	assert.Error(t, err)
}

func TestRunRequiresToken(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	os.Unsetenv("TELEGRAM_BOT_TOKEN")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("FILE_PATH", filepath.Join(dir, "users.json"))
	t.Setenv("STORE_BACKEND", config.BackendJSON)

	_, err := runCommand(t, "run", "--env-file", filepath.Join(dir, "missing.env"))
	assert.ErrorIs(t, err, config.ErrMissingToken)
}

func TestOpenSnapshotter(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, backend := range []string{config.BackendJSON, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			snapshotter, closeFn, err := openSnapshotter(config.StoreConfig{
				Path:    filepath.Join(dir, "prefs."+backend),
				Backend: backend,
			}, zap.NewNop())
			require.NoError(t, err)
			defer closeFn()

			want := map[user.TelegramID]user.Preferences{1: user.NewPreferences()}
			require.NoError(t, snapshotter.SaveAll(ctx, want))

			got, err := snapshotter.LoadAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, _, err := openSnapshotter(config.StoreConfig{Path: "x", Backend: "redis"}, zap.NewNop())
	assert.Error(t, err)
}
