package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
)

// Spinner frames for animated progress
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Terminal provides terminal-aware output utilities
type Terminal struct {
	IsTerminal   bool
	UseColor     bool
	spinnerIndex int
}

// NewTerminal creates a new Terminal instance
func NewTerminal() *Terminal {
	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	return &Terminal{
		IsTerminal: isTerminal,
		UseColor:   isTerminal,
	}
}

// ClearLine clears the current line (terminal only)
func (t *Terminal) ClearLine() {
	if t.IsTerminal {
		fmt.Print("\r\033[K")
	}
}

// Flush ensures output is written immediately
func (t *Terminal) Flush() {
	os.Stdout.Sync()
}

// Spinner returns the next spinner frame
func (t *Terminal) Spinner() string {
	if !t.IsTerminal {
		return ""
	}
	frame := spinnerFrames[t.spinnerIndex]
	t.spinnerIndex = (t.spinnerIndex + 1) % len(spinnerFrames)
	return frame
}

// Color wraps text in ANSI color codes (terminal only)
func (t *Terminal) Color(color, text string) string {
	if !t.UseColor {
		return text
	}
	return color + text + ColorReset
}

// PhaseColor returns the appropriate color for a pipeline phase
func PhaseColor(phase string) string {
	switch phase {
	case "merging":
		return ColorCyan
	case "scoring", "rescoring":
		return ColorBlue
	case "storing":
		return ColorGreen
	case "planning":
		return ColorYellow
	default:
		return ColorWhite
	}
}
