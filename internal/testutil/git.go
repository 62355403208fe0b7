// Package testutil holds helpers shared by package tests that drive real git.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// GitEnv isolates git from the host configuration for the rest of the test:
// HOME points at a temp dir holding a global config with a test identity and
// "main" as the default branch.
func GitEnv(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(home, ".gitconfig"))

	Git(t, home, "config", "--global", "user.email", "tests@example.com")
	Git(t, home, "config", "--global", "user.name", "Tests")
	Git(t, home, "config", "--global", "init.defaultBranch", "main")
	Git(t, home, "config", "--global", "commit.gpgsign", "false")
}

// Git runs git in dir and returns trimmed stdout, failing the test on error.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		var stderr string
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		require.NoError(t, err, "git %s: %s", strings.Join(args, " "), stderr)
	}
	return strings.TrimSpace(string(out))
}

// InitRepo creates a repository in a new temp dir with one commit of README.md.
func InitRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	Git(t, dir, "init")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0644))
	Git(t, dir, "add", ".")
	Git(t, dir, "commit", "-m", "Existing commit")
	return dir
}

// BareRemote creates a bare repository usable as a push target.
func BareRemote(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	Git(t, dir, "init", "--bare")
	return dir
}

// CommitCount returns the number of commits reachable from ref.
func CommitCount(t *testing.T, dir, ref string) int {
	t.Helper()

	if ref == "" {
		ref = "HEAD"
	}
	return len(Subjects(t, dir, ref))
}

// Subjects returns commit subjects reachable from ref, oldest first.
func Subjects(t *testing.T, dir, ref string) []string {
	t.Helper()

	out := Git(t, dir, "log", "--reverse", "--pretty=format:%s", ref)
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// ReadLines returns the lines of a text file, without the trailing newline.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
