package common

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/andyrewlee/cellgrid/internal/logging"
	"github.com/andyrewlee/cellgrid/internal/messages"
)

// CopyToClipboard writes text to the system clipboard, preferring pbcopy on
// macOS.
func CopyToClipboard(text string) error {
	if runtime.GOOS == "darwin" {
		cmd := exec.Command("pbcopy")
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return clipboard.WriteAll(text)
}

// CopyCmd copies text off the UI goroutine and reports the outcome.
func CopyCmd(text string, cells int) tea.Cmd {
	return SafeCmd(func() tea.Msg {
		if err := CopyToClipboard(text); err != nil {
			logging.Warn("clipboard: %v", err)
			return messages.Error{Err: fmt.Errorf("clipboard error: %w", err), Context: "copy", Logged: true}
		}
		logging.Info("Copied %d cells to clipboard", cells)
		return messages.Copied{Cells: cells}
	})
}
