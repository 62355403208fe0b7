package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bashhack/commitgen/internal/errors"
	"github.com/bashhack/commitgen/internal/remote"
)

// MetadataDir is the directory git keeps repository metadata in.
const MetadataDir = ".git"

// Repo runs git commands against a single working directory.
// Every command is issued as an argument list, never through a shell.
type Repo struct {
	path     string
	executor CommandExecutor
	redactor *remote.Redactor
}

// NewRepo creates a Repo for path using executor.
// A nil executor falls back to ExecExecutor.
func NewRepo(path string, executor CommandExecutor) *Repo {
	if executor == nil {
		executor = NewExecExecutor()
	}
	return &Repo{path: path, executor: executor}
}

// WithRedactor returns a copy of the Repo whose errors are passed through rd.
func (r *Repo) WithRedactor(rd *remote.Redactor) *Repo {
	cp := *r
	cp.redactor = rd
	return &cp
}

// Path returns the working directory of the repository.
func (r *Repo) Path() string {
	return r.path
}

// HasMetadata reports whether path already contains a .git entry.
// Worktrees and submodules use a .git file, which also counts.
func HasMetadata(path string) bool {
	_, err := os.Stat(filepath.Join(path, MetadataDir))
	return err == nil
}

// IsRepository checks if the given path is inside a git working tree.
func IsRepository(path string) (bool, error) {
	cmd := exec.Command("git", "-C", path, "rev-parse", "--is-inside-work-tree")
	out, err := NewExecExecutor().ExecuteWithOutput(context.Background(), cmd)
	if err != nil {
		var gitErr *errors.GitError
		if errors.As(err, &gitErr) {
			return false, nil
		}
		return false, err
	}
	return out == "true", nil
}

// Init runs `git init`.
func (r *Repo) Init(ctx context.Context) error {
	return r.run(ctx, "init")
}

// AddAll stages every change in the working tree with `git add .`.
func (r *Repo) AddAll(ctx context.Context) error {
	return r.run(ctx, "add", ".")
}

// Commit records the staged changes with message.
func (r *Repo) Commit(ctx context.Context, message string) error {
	return r.run(ctx, "commit", "-m", message)
}

// Remotes lists configured remotes as name -> fetch URL using `git remote -v`.
func (r *Repo) Remotes(ctx context.Context) (map[string]string, error) {
	out, err := r.output(ctx, "remote", "-v")
	if err != nil {
		return nil, err
	}
	return remote.ParseRemotes(out), nil
}

// AddRemote runs `git remote add <name> <url>`.
func (r *Repo) AddRemote(ctx context.Context, name, url string) error {
	return r.run(ctx, "remote", "add", name, url)
}

// SetRemoteURL runs `git remote set-url <name> <url>`.
func (r *Repo) SetRemoteURL(ctx context.Context, name, url string) error {
	return r.run(ctx, "remote", "set-url", name, url)
}

// CurrentBranch returns the checked-out branch name.
// It is empty for a detached HEAD.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.output(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Push runs `git push -u <remote> <branch>`.
func (r *Repo) Push(ctx context.Context, remoteName, branch string) error {
	return r.run(ctx, "push", "-u", remoteName, branch)
}

func (r *Repo) run(ctx context.Context, args ...string) error {
	return r.redact(r.executor.Execute(ctx, r.command(ctx, args...)))
}

func (r *Repo) output(ctx context.Context, args ...string) (string, error) {
	out, err := r.executor.ExecuteWithOutput(ctx, r.command(ctx, args...))
	if err != nil {
		return "", r.redact(err)
	}
	return out, nil
}

// command builds the git invocation. Cancellation of ctx never kills an
// issued command; stopping is decided between commands by the caller.
func (r *Repo) command(ctx context.Context, args ...string) *exec.Cmd {
	baseArgs := []string{"-C", r.path}
	cmd := exec.CommandContext(context.WithoutCancel(ctx), "git", append(baseArgs, args...)...)
	cmd.Dir = r.path
	// never block on an interactive credential prompt
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	return cmd
}

// redact scrubs credentials out of a GitError before it leaves the package.
func (r *Repo) redact(err error) error {
	if err == nil {
		return nil
	}
	var gitErr *errors.GitError
	if errors.As(err, &gitErr) {
		gitErr.Args = r.redactor.RedactAll(gitErr.Args)
		gitErr.Output = r.redactor.Redact(gitErr.Output)
		return gitErr
	}
	return errors.New(r.redactor.Redact(err.Error()))
}
