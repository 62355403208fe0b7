package main

import (
	"fmt"
	"time"

	"github.com/bashhack/commitgen/internal/job"
)

// drive follows a job on plain stdout until it ends. Status lines arrive
// already redacted; errors go to stderr even in quiet mode.
func (a *App) drive(h *job.Handle) job.Result {
	total := a.Config.Count
	if a.Config.Verbose {
		a.Logger.StatusMessage("Starting to create %d commits...", total)
	}

	for ev := range h.Events() {
		switch ev.Kind {
		case job.EventStatus:
			if a.Config.Verbose {
				a.Logger.StatusMessage("%s", ev.Message)
			}
		case job.EventProgress:
			if a.Config.Verbose {
				a.Logger.StatusMessage("Progress: %.0f%%", ev.Progress*100)
			}
		case job.EventError:
			_, _ = fmt.Fprintf(a.Stderr, "❌ %s\n", ev.Message)
		case job.EventState:
			a.Logger.Info("job %s entered state %s", h.ID(), ev.State)
		}
	}

	result := h.Wait()
	if result.Success {
		a.Logger.Success("All %d commits have been created!", result.Commits)
	}
	return result
}

// PrintSummary shows what the job did once it has ended.
func (a *App) PrintSummary(result job.Result) {
	duration := a.now().Sub(a.started).Round(10 * time.Millisecond)

	a.Logger.StatusMessage("")
	a.Logger.StatusMessage("---------------------------------------------")
	a.Logger.StatusMessage("📊 commitgen Summary")
	a.Logger.StatusMessage("---------------------------------------------")
	a.Logger.StatusMessage("📁 Repository: %s", a.Config.RepoPath)
	if result.Bootstrapped {
		a.Logger.StatusMessage("🌱 Initialized a new git repository")
	}
	a.Logger.StatusMessage("✅ Commits created: %d of %d", result.Commits, a.Config.Count)
	a.Logger.StatusMessage("⏱️  Duration: %s", duration)
	a.Logger.StatusMessage("🏁 Final state: %s", result.State)
	if result.Push != job.PushNone {
		a.Logger.StatusMessage("🚀 Push: %s", result.Push)
	}
	a.Logger.StatusMessage("---------------------------------------------")
	a.Logger.StatusMessage("%s", result.Message)
}
