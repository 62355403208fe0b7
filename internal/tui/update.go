package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bashhack/commitgen/internal/job"
)

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.job.Events())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			if m.result == nil && !m.stopping {
				m.confirming = true
			}
		case "y":
			if m.confirming {
				m.confirming = false
				m.requestStop()
			}
		case "n", "esc":
			m.confirming = false
		case "ctrl+c", "q":
			m.confirming = false
			if m.result != nil {
				m.quitting = true
				return m, tea.Quit
			}
			// keep draining so the final result is shown before quitting
			m.requestStop()
			m.quitting = true
		}
		return m, nil

	case tea.WindowSizeMsg:
		width := msg.Width - appStyle.GetHorizontalFrameSize() - 8
		m.progress.Width = max(10, min(width, 80))
		return m, nil

	case eventMsg:
		m.apply(job.Event(msg))
		return m, waitForEvent(m.job.Events())

	case eventsDoneMsg:
		return m, waitForResult(m.job)

	case resultMsg:
		res := job.Result(msg)
		m.result = &res
		m.status = res.Message
		m.confirming = false
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) requestStop() {
	if m.stopping || m.result != nil {
		return
	}
	m.stopping = true
	m.status = "Stopping after the current commit..."
	m.job.Stop()
}

func (m *Model) apply(ev job.Event) {
	switch ev.Kind {
	case job.EventProgress:
		m.percent = ev.Progress
		m.commit = ev.Commit
		if ev.Total > 0 {
			m.total = ev.Total
		}
	case job.EventStatus:
		if !m.stopping {
			m.status = ev.Message
		}
		m.appendLog(ev.Message, false)
	case job.EventError:
		m.appendLog(ev.Message, true)
	case job.EventState:
		m.state = ev.State
	}
}

func (m *Model) appendLog(text string, isErr bool) {
	m.log = append(m.log, logEntry{text: text, isErr: isErr})
	if len(m.log) > logLines {
		m.log = m.log[len(m.log)-logLines:]
	}
}
