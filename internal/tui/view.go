package tui

import (
	"fmt"
	"strings"

	"github.com/bashhack/commitgen/internal/job"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("commitgen"))
	b.WriteString("\n")
	b.WriteString(pathStyle.Render(m.repoPath))
	b.WriteString("\n")

	b.WriteString(m.progress.ViewAs(m.percent))
	b.WriteString(fmt.Sprintf("  %d/%d\n\n", m.commit, m.total))

	b.WriteString(m.statusView())
	b.WriteString("\n")

	if len(m.log) > 0 {
		lines := make([]string, 0, len(m.log))
		for _, entry := range m.log {
			if entry.isErr {
				lines = append(lines, errorStyle.Render(entry.text))
			} else {
				lines = append(lines, logLineStyle.Render(entry.text))
			}
		}
		b.WriteString(logBoxStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help()))

	return appStyle.Render(b.String())
}

func (m Model) statusView() string {
	if m.result == nil {
		return statusStyle.Render(m.status)
	}
	switch {
	case m.result.Stopped():
		return statusStyle.Render(m.result.Message)
	case !m.result.Success, m.result.Push == job.PushFailed:
		return errorStyle.Render(m.result.Message)
	default:
		return successStyle.Render(m.result.Message)
	}
}

func (m Model) help() string {
	switch {
	case m.result != nil:
		return "q: quit"
	case m.stopping:
		return "stopping..."
	case m.confirming:
		return "Stop after the current commit? (y/n)"
	default:
		return "s: stop • q: stop and quit"
	}
}
