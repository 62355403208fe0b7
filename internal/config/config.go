package config

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/bashhack/commitgen/internal/errors"
	"github.com/bashhack/commitgen/internal/remote"
)

const (
	// DefaultCount is the number of commits created when none is requested.
	DefaultCount = 100

	// EnvPrefix prefixes every environment variable commitgen reads.
	EnvPrefix = "COMMITGEN_"

	// DefaultConfigName is looked up in the target repository when no
	// profile path is given.
	DefaultConfigName = ".commitgen.yaml"
)

// Config holds all commitgen settings
type Config struct {
	// Job
	RepoPath  string
	Count     int
	RemoteURL string
	Username  string
	Token     string
	AskToken  bool

	// User experience
	Verbose bool
	TUI     bool

	// Debugging
	Debug   bool
	LogFile string

	// ConfigFile is the YAML profile that was loaded, if any.
	ConfigFile string

	// Special flags
	Version  bool
	ShowLogo bool

	// Build metadata
	VersionInfo VersionInfo
}

// VersionInfo contains build-time version metadata
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// New creates a new Config with default values
func New() *Config {
	return &Config{
		Count:   DefaultCount,
		Verbose: true,

		VersionInfo: VersionInfo{
			Version: "dev",
			Commit:  "unknown",
			Date:    "unknown",
		},
	}
}

// Credentials returns the push credentials carried by the config.
func (c *Config) Credentials() remote.Credentials {
	return remote.Credentials{Username: c.Username, Token: c.Token}
}

// profile mirrors the YAML profile. Pointers tell absent keys from zero values.
type profile struct {
	Repo     *string `yaml:"repo"`
	Count    *int    `yaml:"count"`
	Remote   *string `yaml:"remote"`
	Username *string `yaml:"username"`
	Verbose  *bool   `yaml:"verbose"`
	Debug    *bool   `yaml:"debug"`
	LogFile  *string `yaml:"log_file"`
	TUI      *bool   `yaml:"tui"`

	// Token is only declared so that it can be refused with a clear message.
	Token *string `yaml:"token"`
}

// LoadFromFile applies a YAML profile. Unknown keys are an error, and so is
// a token: tokens are never read from files on disk.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewConfigError("config", path, errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
	}

	var p profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return errors.NewConfigError("config", path, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to parse YAML: %v", err)))
	}

	if p.Token != nil {
		return errors.NewConfigError("token", nil, errors.Wrap(errors.ErrInvalidConfiguration,
			fmt.Sprintf("%s must not contain a token; use --token, --ask-token or %sTOKEN", path, EnvPrefix)))
	}

	if p.Repo != nil {
		c.RepoPath = *p.Repo
		if !filepath.IsAbs(c.RepoPath) {
			c.RepoPath = filepath.Join(filepath.Dir(path), c.RepoPath)
		}
	}
	if p.Count != nil {
		c.Count = *p.Count
	}
	if p.Remote != nil {
		c.RemoteURL = *p.Remote
	}
	if p.Username != nil {
		c.Username = *p.Username
	}
	if p.Verbose != nil {
		c.Verbose = *p.Verbose
	}
	if p.Debug != nil {
		c.Debug = *p.Debug
	}
	if p.LogFile != nil {
		c.LogFile = *p.LogFile
	}
	if p.TUI != nil {
		c.TUI = *p.TUI
	}

	c.ConfigFile = path
	return nil
}

// LoadFromEnvironment updates config from COMMITGEN_* environment variables.
// An unparsable COMMITGEN_COUNT is an error; unrecognized booleans keep
// their current value.
func (c *Config) LoadFromEnvironment() error {
	count, err := getEnvInt("COUNT", c.Count)
	if err != nil {
		return err
	}
	c.Count = count
	c.RepoPath = getEnvString("REPO", c.RepoPath)
	c.RemoteURL = getEnvString("REMOTE", c.RemoteURL)
	c.Username = getEnvString("USERNAME", c.Username)
	c.Token = getEnvString("TOKEN", c.Token)
	c.Verbose = getEnvBool("VERBOSE", c.Verbose)
	c.Debug = getEnvBool("DEBUG", c.Debug)
	c.LogFile = getEnvString("LOG_FILE", c.LogFile)
	c.TUI = getEnvBool("TUI", c.TUI)
	return nil
}

// SetupFlags registers the command-line flags on fs. Flag values are read
// back by ApplyFlags, and only the flags the user actually set take effect.
func (c *Config) SetupFlags(fs *pflag.FlagSet) {
	fs.IntP("count", "n", c.Count, "Number of commits to create")
	fs.String("remote", c.RemoteURL, "Remote URL to configure as origin and push to")
	fs.String("username", c.Username, "Username for an authenticated push")
	fs.String("token", "", "Access token for an authenticated push (prefer --ask-token or "+EnvPrefix+"TOKEN)")
	fs.Bool("ask-token", false, "Read the access token from the terminal")
	fs.Bool("tui", c.TUI, "Show an interactive progress view")
	fs.StringP("config", "c", "", "Path to a YAML profile (default: <repo>/"+DefaultConfigName+" if present)")
	fs.BoolP("quiet", "q", !c.Verbose, "Hide informational messages")
	fs.Bool("debug", c.Debug, "Enable debug logging")
	fs.String("log-file", c.LogFile, "Path to log file (default: ~/.local/share/commitgen/logs/commitgen-{repo-hash}.log)")
	fs.Bool("version", false, "Print version information and exit")
	fs.Bool("logo", false, "Display ASCII logo and exit")
}

// ApplyFlags copies every flag the user set on fs into the config.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err == nil && fs.Changed(name) {
			if applyErr := apply(); applyErr != nil {
				err = errors.NewConfigError(name, nil, errors.Wrap(errors.ErrInvalidConfiguration, applyErr.Error()))
			}
		}
	}

	set("count", func() (e error) { c.Count, e = fs.GetInt("count"); return })
	set("remote", func() (e error) { c.RemoteURL, e = fs.GetString("remote"); return })
	set("username", func() (e error) { c.Username, e = fs.GetString("username"); return })
	set("token", func() (e error) { c.Token, e = fs.GetString("token"); return })
	set("ask-token", func() (e error) { c.AskToken, e = fs.GetBool("ask-token"); return })
	set("tui", func() (e error) { c.TUI, e = fs.GetBool("tui"); return })
	set("debug", func() (e error) { c.Debug, e = fs.GetBool("debug"); return })
	set("log-file", func() (e error) { c.LogFile, e = fs.GetString("log-file"); return })
	set("version", func() (e error) { c.Version, e = fs.GetBool("version"); return })
	set("logo", func() (e error) { c.ShowLogo, e = fs.GetBool("logo"); return })
	set("quiet", func() error {
		quiet, e := fs.GetBool("quiet")
		c.Verbose = !quiet
		return e
	})

	return err
}

// Load builds the configuration from every source. Later sources win:
// defaults, then the YAML profile, then the environment, then flags, then
// the positional repository argument.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	c := New()

	path, err := profilePath(fs, args)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := c.LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	if err := c.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := c.ApplyFlags(fs); err != nil {
		return nil, err
	}

	if len(args) > 1 {
		return nil, errors.NewConfigError("args", strings.Join(args, " "),
			errors.Wrap(errors.ErrInvalidConfiguration, "at most one repository path may be given"))
	}
	if len(args) == 1 {
		c.RepoPath = args[0]
	}

	return c, nil
}

// profilePath finds the YAML profile: --config, then COMMITGEN_CONFIG, then
// .commitgen.yaml in the target directory when it exists.
func profilePath(fs *pflag.FlagSet, args []string) (string, error) {
	if fs.Changed("config") {
		return fs.GetString("config")
	}
	if path, ok := os.LookupEnv(EnvPrefix + "CONFIG"); ok {
		return path, nil
	}

	dir := getEnvString("REPO", "")
	if len(args) == 1 {
		dir = args[0]
	}
	candidate := filepath.Join(dir, DefaultConfigName)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate, nil
	}
	return "", nil
}

// Finalize validates and finalizes the configuration
func (c *Config) Finalize() error {
	if c.Count < 1 {
		return errors.NewConfigError("count", c.Count,
			fmt.Errorf("count must be at least 1 (got %d): %w: %w", c.Count, errors.ErrInvalidCount, errors.ErrInvalidConfiguration))
	}

	if c.AskToken && c.Token != "" {
		return errors.NewConfigError("ask-token", nil, errors.Wrap(errors.ErrInvalidConfiguration,
			"--ask-token cannot be combined with a token from flags or the environment"))
	}

	if c.RemoteURL != "" {
		if err := remote.Validate(c.RemoteURL); err != nil {
			return errors.NewConfigError("remote", remote.StripUserinfo(c.RemoteURL), errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
		}
	}

	if c.RepoPath == "" {
		var err error
		c.RepoPath, err = os.Getwd()
		if err != nil {
			return errors.NewConfigError("repoPath", "", errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to get current directory: %v", err)))
		}
	}

	absRepoPath, err := filepath.Abs(c.RepoPath)
	if err != nil {
		return errors.NewConfigError("repoPath", c.RepoPath, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to resolve absolute path: %v", err)))
	}
	c.RepoPath = absRepoPath

	if c.LogFile == "" {
		c.LogFile = DefaultLogFile(c.RepoPath)
	}

	return nil
}

// DefaultLogFile follows the XDG base directory layout:
// $XDG_DATA_HOME/commitgen/logs/commitgen-<repo-hash>.log
func DefaultLogFile(repoPath string) string {
	logDir := os.Getenv("XDG_DATA_HOME")
	if logDir == "" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			logDir = filepath.Join(homeDir, ".local", "share")
		} else {
			logDir = os.TempDir()
		}
	}

	repoHash := fmt.Sprintf("%x", sha256OfString(repoPath)[:8])
	return filepath.Join(logDir, "commitgen", "logs", fmt.Sprintf("commitgen-%s.log", repoHash))
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(EnvPrefix + key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(EnvPrefix + key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return defaultValue, errors.NewConfigError(EnvPrefix+key, valueStr,
			errors.Wrap(errors.ErrInvalidConfiguration, "not a whole number"))
	}
	return value, nil
}

// getEnvBool accepts true/1/yes and false/0/no; anything else keeps the default.
func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(EnvPrefix + key); exists {
		switch strings.ToLower(strings.TrimSpace(valueStr)) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultValue
}

func sha256OfString(input string) []byte {
	hash := sha256.Sum256([]byte(input))
	return hash[:]
}
