package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/breachwatch/internal/model"
)

// writeFile drops a config file into a temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoad_JSONC verifies that JSON config files may carry comments and
// trailing commas, matching how hand-edited config files look in practice.
func TestLoad_JSONC(t *testing.T) {
	path := writeFile(t, "config.json", `{
		// the key issued by the breach API
		"apiKey": "k-123",
		"baseUrl": "https://api.example.test/v3",
		"timeoutSeconds": 5, // generous for CI
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "k-123", cfg.APIKey)
	assert.Equal(t, "https://api.example.test/v3", cfg.BaseURL)
	assert.Equal(t, 5, cfg.TimeoutSeconds)
}

// TestLoad_YAML verifies the YAML config file variant.
func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
apiKey: k-456
userAgent: breachwatch-ci
timeoutSeconds: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "k-456", cfg.APIKey)
	assert.Equal(t, "breachwatch-ci", cfg.UserAgent)
	assert.Equal(t, 3, cfg.TimeoutSeconds)
}

// TestLoad_Errors verifies that missing and unparseable files fail with
// the generic error code rather than being silently ignored.
func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)

		var cliErr *model.CLIError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, model.ExitGeneralError, cliErr.Code)
	})

	t.Run("broken json", func(t *testing.T) {
		path := writeFile(t, "config.json", `{"apiKey": `)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("broken yaml", func(t *testing.T) {
		path := writeFile(t, "config.yaml", "apiKey: [unclosed")
		_, err := Load(path)
		assert.Error(t, err)
	})
}

// TestResolveAPIKey verifies the precedence chain:
// flag > environment > config file > nothing.
func TestResolveAPIKey(t *testing.T) {
	t.Run("flag wins over everything", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "from-env")
		got := ResolveAPIKey("from-flag", &File{APIKey: "from-file"})
		assert.Equal(t, "from-flag", got)
	})

	t.Run("env wins over file", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "from-env")
		got := ResolveAPIKey("", &File{APIKey: "from-file"})
		assert.Equal(t, "from-env", got)
	})

	t.Run("file as last source", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "")
		got := ResolveAPIKey("", &File{APIKey: "from-file"})
		assert.Equal(t, "from-file", got)
	})

	t.Run("no source yields empty", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "")
		assert.Empty(t, ResolveAPIKey("", nil))
	})
}

// TestFind verifies default config file discovery under XDG_CONFIG_HOME.
func TestFind(t *testing.T) {
	t.Run("finds json first", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)

		base := filepath.Join(dir, "breachwatch")
		require.NoError(t, os.MkdirAll(base, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(base, "config.yaml"), []byte("apiKey: y"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(base, "config.json"), []byte("{}"), 0o600))

		assert.Equal(t, filepath.Join(base, "config.json"), Find())
	})

	t.Run("falls back to yaml", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)

		base := filepath.Join(dir, "breachwatch")
		require.NoError(t, os.MkdirAll(base, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(base, "config.yaml"), []byte("apiKey: y"), 0o600))

		assert.Equal(t, filepath.Join(base, "config.yaml"), Find())
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		assert.Empty(t, Find())
	})
}
