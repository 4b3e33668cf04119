package prettyprinter

import (
	"os"

	"github.com/funvibe/funpi/internal/config"
	"github.com/mattn/go-isatty"
)

// UseColor resolves a color mode (auto, always, never) for output written
// to f.
func UseColor(mode string, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return detectColor(f)
}

func detectColor(f *os.File) bool {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if f == nil {
		return false
	}
	// Not a terminal
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
