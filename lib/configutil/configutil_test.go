package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	UserId  string `json:"user_id"`
	Cookies string `json:"cookies"`
}

func TestReadConfigMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "config.json5"),
		[]byte(`{"user_id": "12345", "cookies": "stale"}`), 0600)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "config.local.json5"),
		[]byte(`{"cookies": "session=abc"}`), 0600)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "12345", cfg.UserId)
	require.Equal(t, "session=abc", cfg.Cookies)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("KINOEXPORT_TEST_KEY", "from-env")
	require.Equal(t, "from-env", EnvOverride("KINOEXPORT_TEST_KEY", "fallback"))
	require.Equal(t, "fallback", EnvOverride("KINOEXPORT_TEST_MISSING", "fallback"))
}
