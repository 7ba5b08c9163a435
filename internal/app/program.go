package app

import tea "github.com/charmbracelet/bubbletea"

// NewProgram creates the explorer program on the alternate screen with
// all-motion mouse reporting, which hover needs.
func NewProgram(opts Options, extra ...tea.ProgramOption) *tea.Program {
	all := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
	all = append(all, extra...)
	return tea.NewProgram(New(opts), all...)
}
