package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bashhack/commitgen/internal/errors"
)

// clearEnv unsets every COMMITGEN_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"REPO", "COUNT", "REMOTE", "USERNAME", "TOKEN", "VERBOSE", "DEBUG", "LOG_FILE", "TUI", "CONFIG"} {
		t.Setenv(EnvPrefix+key, "")
		require.NoError(t, os.Unsetenv(EnvPrefix+key))
	}
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("commitgen", pflag.ContinueOnError)
	New().SetupFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestNewConfig(t *testing.T) {
	c := New()

	assert.Equal(t, DefaultCount, c.Count)
	assert.True(t, c.Verbose)
	assert.False(t, c.Debug)
	assert.False(t, c.TUI)
	assert.Empty(t, c.RemoteURL)
	assert.Equal(t, "dev", c.VersionInfo.Version)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMMITGEN_REPO", "/tmp/test-repo")
	t.Setenv("COMMITGEN_COUNT", " 25 ")
	t.Setenv("COMMITGEN_REMOTE", "https://example.com/r.git")
	t.Setenv("COMMITGEN_USERNAME", "octo")
	t.Setenv("COMMITGEN_TOKEN", "tok")
	t.Setenv("COMMITGEN_VERBOSE", "no")
	t.Setenv("COMMITGEN_DEBUG", "1")
	t.Setenv("COMMITGEN_LOG_FILE", "/tmp/test.log")
	t.Setenv("COMMITGEN_TUI", "TRUE")

	c := New()
	require.NoError(t, c.LoadFromEnvironment())

	assert.Equal(t, "/tmp/test-repo", c.RepoPath)
	assert.Equal(t, 25, c.Count)
	assert.Equal(t, "https://example.com/r.git", c.RemoteURL)
	assert.Equal(t, "octo", c.Username)
	assert.Equal(t, "tok", c.Token)
	assert.False(t, c.Verbose)
	assert.True(t, c.Debug)
	assert.Equal(t, "/tmp/test.log", c.LogFile)
	assert.True(t, c.TUI)
}

func TestLoadFromEnvironmentKeepsUnknownBooleans(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMMITGEN_DEBUG", "maybe")
	t.Setenv("COMMITGEN_VERBOSE", "sometimes")

	c := New()
	require.NoError(t, c.LoadFromEnvironment())

	assert.False(t, c.Debug)
	assert.True(t, c.Verbose)
}

func TestLoadFromEnvironmentRejectsBadCount(t *testing.T) {
	for _, value := range []string{"many", "", "2.5", "10x"} {
		t.Run(value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("COMMITGEN_COUNT", value)

			c := New()
			err := c.LoadFromEnvironment()
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidConfiguration)
			assert.Equal(t, errors.ExitUsage, errors.ExitCodeOf(err))

			var cfgErr *errors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "COMMITGEN_COUNT", cfgErr.Parameter)
			assert.Equal(t, DefaultCount, c.Count)

			_, err = Load(newFlags(t), nil)
			assert.ErrorIs(t, err, errors.ErrInvalidConfiguration)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
repo: target
count: 7
remote: https://example.com/r.git
username: octo
debug: true
tui: true
`), 0644))

	c := New()
	require.NoError(t, c.LoadFromFile(path))

	assert.Equal(t, filepath.Join(dir, "target"), c.RepoPath, "relative repo is resolved against the profile")
	assert.Equal(t, 7, c.Count)
	assert.Equal(t, "https://example.com/r.git", c.RemoteURL)
	assert.Equal(t, "octo", c.Username)
	assert.True(t, c.Debug)
	assert.True(t, c.TUI)
	assert.True(t, c.Verbose, "absent keys keep their value")
	assert.Equal(t, path, c.ConfigFile)
}

func TestLoadFromFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"token key", "username: octo\ntoken: secret\n", "must not contain a token"},
		{"unknown key", "colour: blue\n", "failed to parse YAML"},
		{"wrong type", "count: lots\n", "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "profile.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			err := New().LoadFromFile(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidConfiguration)
			assert.Contains(t, err.Error(), tt.want)
			assert.NotContains(t, err.Error(), "secret")
		})
	}
}

func TestLoadFromEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	c := New()
	require.NoError(t, c.LoadFromFile(path))
	assert.Equal(t, DefaultCount, c.Count)
}

func TestApplyFlagsOnlyChanged(t *testing.T) {
	c := New()
	c.RemoteURL = "from-env"

	fs := newFlags(t, "-n", "12", "--quiet", "--username", "octo")
	require.NoError(t, c.ApplyFlags(fs))

	assert.Equal(t, 12, c.Count)
	assert.False(t, c.Verbose)
	assert.Equal(t, "octo", c.Username)
	assert.Equal(t, "from-env", c.RemoteURL, "unset flags leave earlier sources alone")
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigName), []byte("count: 5\nusername: file-user\nremote: https://file.example/r.git\n"), 0644))

	t.Setenv("COMMITGEN_USERNAME", "env-user")
	t.Setenv("COMMITGEN_COUNT", "6")

	fs := newFlags(t, "--count", "9")
	c, err := Load(fs, []string{dir})
	require.NoError(t, err)

	assert.Equal(t, dir, c.RepoPath)
	assert.Equal(t, 9, c.Count, "flags beat the environment")
	assert.Equal(t, "env-user", c.Username, "the environment beats the profile")
	assert.Equal(t, "https://file.example/r.git", c.RemoteURL, "the profile beats defaults")
	assert.Equal(t, filepath.Join(dir, DefaultConfigName), c.ConfigFile)
}

func TestLoadExplicitProfile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("count: 3\n"), 0644))

	c, err := Load(newFlags(t, "-c", path), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Count)

	t.Setenv("COMMITGEN_CONFIG", path)
	c, err = Load(newFlags(t), nil)
	require.NoError(t, err)
	assert.Equal(t, path, c.ConfigFile)
}

func TestLoadMissingProfile(t *testing.T) {
	clearEnv(t)
	_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")), nil)
	assert.ErrorIs(t, err, errors.ErrInvalidConfiguration)
}

func TestLoadTooManyArgs(t *testing.T) {
	clearEnv(t)
	_, err := Load(newFlags(t), []string{"a", "b"})
	assert.ErrorIs(t, err, errors.ErrInvalidConfiguration)
}

func TestFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/data")
		dir := t.TempDir()

		c := New()
		c.RepoPath = dir
		require.NoError(t, c.Finalize())

		assert.True(t, filepath.IsAbs(c.RepoPath))
		assert.Equal(t, DefaultLogFile(c.RepoPath), c.LogFile)
		assert.Regexp(t, `^/data/commitgen/logs/commitgen-[0-9a-f]{16}\.log$`, c.LogFile)
	})

	t.Run("empty repo means working directory", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)

		c := New()
		require.NoError(t, c.Finalize())
		assert.Equal(t, wd, c.RepoPath)
	})

	tests := []struct {
		name   string
		modify func(c *Config)
		param  string
		also   error
	}{
		{"zero count", func(c *Config) { c.Count = 0 }, "count", errors.ErrInvalidCount},
		{"negative count", func(c *Config) { c.Count = -1 }, "count", errors.ErrInvalidCount},
		{"ask-token with token", func(c *Config) { c.AskToken = true; c.Token = "t" }, "ask-token", nil},
		{"blank remote", func(c *Config) { c.RemoteURL = "   " }, "remote", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.RepoPath = t.TempDir()
			tt.modify(c)

			err := c.Finalize()
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidConfiguration)
			if tt.also != nil {
				assert.ErrorIs(t, err, tt.also)
			}

			var cfgErr *errors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.param, cfgErr.Parameter)
			assert.Equal(t, errors.ExitUsage, errors.ExitCodeOf(err))
		})
	}
}

func TestDefaultLogFileIsStablePerRepo(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	assert.Equal(t, DefaultLogFile("/a"), DefaultLogFile("/a"))
	assert.NotEqual(t, DefaultLogFile("/a"), DefaultLogFile("/b"))
}
