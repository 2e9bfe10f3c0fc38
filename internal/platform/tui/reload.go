package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/levelgen/internal/config"
)

// ConfigChangedMsg reports that a watched configuration file was written.
type ConfigChangedMsg struct {
	Path string
}

// ConfigErrorMsg carries a watcher failure.
type ConfigErrorMsg struct {
	Err error
}

// watchCmd blocks until the watcher reports something. It returns nil once
// the watcher is closed, which ends the watch loop.
func watchCmd(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return ConfigChangedMsg{Path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return ConfigErrorMsg{Err: err}
		}
	}
}
