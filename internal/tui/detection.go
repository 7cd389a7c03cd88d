package tui

import (
	"github.com/blackwell-systems/bookcase/internal/util"
	"github.com/spf13/cobra"
)

// ShouldUseTUI returns true if the command should use interactive TUI mode:
// stdin and stdout are terminals, --no-interactive is not set and no
// machine-readable output was requested.
func ShouldUseTUI(cmd *cobra.Command) bool {
	if !util.IsInteractive() {
		return false
	}

	if noInteractive, _ := cmd.Flags().GetBool("no-interactive"); noInteractive {
		return false
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return false
	}

	return true
}
