package util

import (
	"os"

	"github.com/fatih/color"
)

// IsTTY returns true if stdout is a terminal.
func IsTTY() bool {
	return isCharDevice(os.Stdout)
}

// IsInteractive returns true if both stdin and stdout are terminals, so the
// user can answer prompts.
func IsInteractive() bool {
	return isCharDevice(os.Stdin) && isCharDevice(os.Stdout)
}

// InitColor configures color output based on flags and terminal detection.
func InitColor(noColor bool) {
	if noColor || !IsTTY() {
		color.NoColor = true
	}
}

func isCharDevice(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
