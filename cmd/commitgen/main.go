package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bashhack/commitgen/internal/config"
	"github.com/bashhack/commitgen/internal/errors"
)

// Version information - injected at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// A signal cancels ctx, which asks the running job to stop after its
	// current commit.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	rootCmd := newRootCmd(stdin, stdout, stderr)
	rootCmd.SetArgs(args[1:])

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return errors.ExitOK
	}
	if shouldPrint(err) {
		_, _ = fmt.Fprintf(stderr, "❌ Error: %v\n", err)
	}
	return errors.ExitCodeOf(err)
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commitgen [path]",
		Short: "Create a stream of commits in a git repository",
		Long: `commitgen creates a configurable number of commits in a directory,
initializing it as a git repository first when needed, and can push the
result to a remote using a username and access token.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), args)
			if err != nil {
				return err
			}
			cfg.VersionInfo = config.VersionInfo{
				Version: version,
				Commit:  commit,
				Date:    date,
			}

			app := NewApp(AppOptions{
				Config: cfg,
				Stdin:  stdin,
				Stdout: stdout,
				Stderr: stderr,
			})
			return app.Run(cmd.Context())
		},
	}

	config.New().SetupFlags(cmd.Flags())
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.WithExitCode(errors.ExitUsage, err)
	})

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd
}

// shouldPrint reports whether err still needs to reach the user. A stop is
// not an error, and job failures were already shown while the job ran.
func shouldPrint(err error) bool {
	if errors.Is(err, errors.ErrStopped) {
		return false
	}
	var jobErr *errors.JobError
	return !errors.As(err, &jobErr)
}
