// Package term holds the ANSI color state shared by the logger, the plan
// preview and the banner, plus TTY detection.
//
// The color variables are empty strings until [Configure] enables them, so
// callers can always concatenate them.
package term

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/seq2vid/internal/config"
)

const (
	ansiRed     = "\033[1;91m"
	ansiGreen   = "\033[1;92m"
	ansiYellow  = "\033[1;93m"
	ansiMagenta = "\033[1;95m"
	ansiCyan    = "\033[1;96m"
	ansiReset   = "\033[0m"
)

var (
	Red, Green, Yellow, Cyan, Magenta string
	NC                                string // reset
)

// Configure turns the color variables on or off for mode. It is called by
// logging.NewLogger before anything is printed.
func Configure(mode config.ColorMode) {
	on := wantColor(mode)
	pick := func(code string) string {
		if on {
			return code
		}
		return ""
	}
	Red, Green, Yellow = pick(ansiRed), pick(ansiGreen), pick(ansiYellow)
	Cyan, Magenta = pick(ansiCyan), pick(ansiMagenta)
	NC = pick(ansiReset)
}

// Enabled reports whether colors are on.
func Enabled() bool { return NC != "" }

// wantColor: auto means stderr is a TTY, NO_COLOR is unset and TERM is not
// "dumb".
func wantColor(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	if strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	return IsTerminal(os.Stderr)
}

// IsTerminal reports whether f is a TTY, counting Cygwin/MSYS ptys.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
