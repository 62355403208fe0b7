package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/bashhack/commitgen/internal/config"
	"github.com/bashhack/commitgen/internal/constants"
	"github.com/bashhack/commitgen/internal/errors"
	"github.com/bashhack/commitgen/internal/git"
	"github.com/bashhack/commitgen/internal/job"
	"github.com/bashhack/commitgen/internal/lock"
	"github.com/bashhack/commitgen/internal/logger"
	"github.com/bashhack/commitgen/internal/tui"
)

// Locker manages the per-repository lock
type Locker interface {
	Acquire() error
	Release() error
}

// AppOptions contains app configuration and dependencies
type AppOptions struct {
	// Required
	Config *config.Config

	// Optional components
	Logger   logger.Logger
	Locker   Locker
	Executor git.CommandExecutor

	// I/O dependencies
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// System dependencies
	ExecLookPath func(file string) (string, error)
	IsRepository func(string) (bool, error)
	Now          func() time.Time
}

// App is the commitgen command-line application
type App struct {
	Config   *config.Config
	Logger   logger.Logger
	Locker   Locker
	Executor git.CommandExecutor

	// I/O streams
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// System dependencies
	execLookPath func(file string) (string, error)
	isRepository func(string) (bool, error)
	now          func() time.Time

	started time.Time
}

// NewApp creates an App with custom dependencies
func NewApp(opts AppOptions) *App {
	if opts.Config == nil {
		panic("Config is required in AppOptions")
	}

	app := &App{
		Config:       opts.Config,
		Logger:       opts.Logger,
		Locker:       opts.Locker,
		Executor:     opts.Executor,
		Stdin:        opts.Stdin,
		Stdout:       opts.Stdout,
		Stderr:       opts.Stderr,
		execLookPath: opts.ExecLookPath,
		isRepository: opts.IsRepository,
		now:          opts.Now,
	}

	// Set defaults for nil dependencies
	if app.Stdin == nil {
		app.Stdin = strings.NewReader("")
	}
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}
	if app.execLookPath == nil {
		app.execLookPath = exec.LookPath
	}
	if app.isRepository == nil {
		app.isRepository = git.IsRepository
	}
	if app.now == nil {
		app.now = time.Now
	}

	return app
}

// Initialize validates the configuration and sets up components not
// provided during construction.
func (a *App) Initialize() error {
	if err := a.Config.Finalize(); err != nil {
		return err
	}

	if a.Logger == nil {
		// the TUI owns the terminal, so the logger keeps warnings off stdout
		verbose := a.Config.Verbose && !a.Config.TUI
		a.Logger = logger.NewWithOutput(a.Config.Debug, a.Config.LogFile, verbose, a.Stdout, a.Stderr)
	}

	if a.Locker == nil {
		locker, err := lock.New(a.Config.RepoPath, a.Logger)
		if err != nil {
			return errors.Wrap(err, "failed to initialize lock")
		}
		a.Locker = locker
	}

	return nil
}

// Run handles the special flags, then runs one commit job under the
// repository lock and prints a summary. The returned error carries the exit
// code through errors.ExitCodeOf.
func (a *App) Run(ctx context.Context) error {
	if err := a.Initialize(); err != nil {
		return err
	}

	// Ensure we always clean up logger / lock, even on early error paths
	defer func() {
		if err := a.Close(); err != nil {
			_, _ = fmt.Fprintf(a.Stderr, "❌ Error during cleanup: %v\n", err)
		}
	}()

	if a.Config.Version {
		a.ShowVersion()
		return nil
	}

	if a.Config.ShowLogo {
		a.ShowLogo()
		return nil
	}

	if err := a.checkRequiredCommands(); err != nil {
		return err
	}

	a.checkNested()

	if a.Config.AskToken {
		token, err := a.readToken()
		if err != nil {
			return err
		}
		a.Config.Token = token
	}

	creds := a.Config.Credentials()
	if a.Config.RemoteURL != "" && creds.Partial() {
		a.Logger.WarningToUser("Both a username and a token are needed to push; the push will be skipped")
	}

	if err := a.Locker.Acquire(); err != nil {
		return err
	}

	spec := job.Spec{
		RepoPath:    a.Config.RepoPath,
		Count:       a.Config.Count,
		RemoteURL:   a.Config.RemoteURL,
		Credentials: creds,
	}
	opts := job.Options{
		Executor: a.Executor,
		Logger:   a.Logger,
		Now:      a.now,
	}

	a.started = a.now()
	h := job.Start(ctx, spec, opts)
	a.Logger.Info("started job %s", h.ID())

	var result job.Result
	if a.Config.TUI {
		var err error
		result, err = tui.Run(ctx, h, a.Config.RepoPath, a.Config.Count, a.Stdin, a.Stdout)
		if err != nil {
			// the job is already stopped and waited for
			a.Logger.Warning("terminal UI failed: %v", err)
		}
	} else {
		result = a.drive(h)
	}

	a.PrintSummary(result)
	return resultError(result)
}

// resultError maps a terminal job result onto the error Run returns.
func resultError(result job.Result) error {
	switch {
	case result.Stopped():
		if result.Err != nil {
			return result.Err
		}
		return errors.ErrStopped
	case !result.Success:
		return result.Err
	case result.Push == job.PushFailed:
		return result.Err
	}
	return nil
}

// checkNested warns when the job is about to initialize a repository inside
// another repository's work tree.
func (a *App) checkNested() {
	if git.HasMetadata(a.Config.RepoPath) {
		return
	}
	inside, err := a.isRepository(a.Config.RepoPath)
	if err != nil {
		a.Logger.Warning("Failed to check if path is inside a git repository: %v", err)
		return
	}
	if inside {
		a.Logger.WarningToUser("%s is inside another git repository; a nested repository will be created", a.Config.RepoPath)
	}
}

// readToken reads the access token without echo when stdin is a terminal,
// or as one line of input otherwise.
func (a *App) readToken() (string, error) {
	if f, ok := a.Stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(a.Stderr, "Access token: ")
		data, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(a.Stderr)
		if err != nil {
			return "", errors.NewConfigError("ask-token", nil, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to read token: %v", err)))
		}
		return strings.TrimSpace(string(data)), nil
	}

	line, err := bufio.NewReader(a.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.NewConfigError("ask-token", nil, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to read token: %v", err)))
	}
	token := strings.TrimSpace(line)
	if token == "" {
		return "", errors.NewConfigError("ask-token", nil, errors.Wrap(errors.ErrInvalidConfiguration, "no token was entered"))
	}
	return token, nil
}

// ShowVersion displays version information
func (a *App) ShowVersion() {
	_, _ = fmt.Fprintf(a.Stdout, "%s %s (%s) built on %s\n",
		constants.AppName,
		a.Config.VersionInfo.Version,
		a.Config.VersionInfo.Commit,
		a.Config.VersionInfo.Date)
}

// ShowLogo displays ASCII art logo
func (a *App) ShowLogo() {
	_, _ = fmt.Fprintln(a.Stdout, constants.Logo)
	_, _ = fmt.Fprintln(a.Stdout, "")

	asciiArtWidth := 80
	padding := max((asciiArtWidth-len(constants.Tagline))/2, 0)
	_, _ = fmt.Fprintf(a.Stdout, "%s%s\n", strings.Repeat(" ", padding), constants.Tagline)
}

// checkRequiredCommands verifies git is available in PATH
func (a *App) checkRequiredCommands() error {
	if _, err := a.execLookPath("git"); err != nil {
		return fmt.Errorf("git is not found in PATH. Please install it and try again")
	}
	return nil
}

// Close releases resources held by the App
func (a *App) Close() error {
	var errs []error

	if a.Locker != nil {
		if err := a.Locker.Release(); err != nil {
			if a.Logger != nil {
				a.Logger.Warning("Failed to release lock during cleanup: %v", err)
			}
			errs = append(errs, err)
		}
	}

	if a.Logger != nil {
		if err := a.Logger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close logger: %w", err))
		}
	}

	return errors.Join(errs...)
}
