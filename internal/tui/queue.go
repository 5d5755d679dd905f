package tui

import tea "charm.land/bubbletea/v2"

// cmdQueue collects the commands adapters emit while the machine runs
// synchronously inside Update. Update drains it once per message.
type cmdQueue struct {
	cmds []tea.Cmd
}

func (q *cmdQueue) push(cmd tea.Cmd) {
	if cmd != nil {
		q.cmds = append(q.cmds, cmd)
	}
}

func (q *cmdQueue) drain() tea.Cmd {
	cmds := q.cmds
	q.cmds = nil
	return tea.Batch(cmds...)
}
