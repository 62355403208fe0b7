package job

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// TrackingFileName is the append-only file that gives every commit a change to record.
	TrackingFileName = "commit_log.txt"

	// SeedLine is written to the tracking file when a repository is bootstrapped.
	SeedLine = "Initial commit"

	// TimestampLayout formats commit timestamps as YYYY-MM-DD HH:MM:SS.
	TimestampLayout = "2006-01-02 15:04:05"
)

// trackingFile is the commit log inside the target repository.
type trackingFile struct {
	path string
}

func newTrackingFile(repoPath string) trackingFile {
	return trackingFile{path: filepath.Join(repoPath, TrackingFileName)}
}

// seed writes the single seed line, replacing any file a fresh directory
// happened to contain. It is only called on a repository this job created.
func (f trackingFile) seed() error {
	if err := os.WriteFile(f.path, []byte(SeedLine+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", TrackingFileName, err)
	}
	return nil
}

// appendLine adds one line; existing content is never rewritten.
func (f trackingFile) appendLine(line string) error {
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", TrackingFileName, err)
	}

	if _, err := fmt.Fprintln(file, line); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to append to %s: %w", TrackingFileName, err)
	}
	return file.Close()
}

// commitLine is the tracking file entry for commit i.
func commitLine(i int, timestamp string) string {
	return fmt.Sprintf("Commit %d at %s", i, timestamp)
}

// commitMessage is the commit message for commit i.
func commitMessage(i int, timestamp string) string {
	return fmt.Sprintf("Commit %d: Made at %s", i, timestamp)
}
