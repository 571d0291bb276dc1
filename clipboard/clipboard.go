// Package clipboard copies text to the system clipboard, falling back to an
// OSC52 escape sequence when no clipboard tool is available.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andareed/siftly-obsmap/logging"
	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/mattn/go-isatty"
)

// Method names how text reached the clipboard.
type Method string

const (
	System Method = "system"
	OSC52  Method = "osc52"
)

// ErrUnavailable means neither the system clipboard nor OSC52 could be used.
var ErrUnavailable = errors.New("clipboard unavailable")

var (
	systemWrite           = clipboard.WriteAll
	terminal    io.Writer = os.Stderr
	isTerminal            = func() bool {
		fd := os.Stderr.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
)

// Copy puts text on the clipboard and reports which method worked.
func Copy(text string) (Method, error) {
	sysErr := systemWrite(text)
	if sysErr == nil {
		logging.Infof("Clipboard: copied via system clipboard")
		return System, nil
	}
	logging.Debugf("Clipboard: system clipboard failed: %v", sysErr)

	if !osc52Supported() {
		logging.Warnf("Clipboard: OSC52 unavailable (stderr not TTY or TERM=dumb)")
		return "", fmt.Errorf("%w: %v", ErrUnavailable, sysErr)
	}
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(terminal); err != nil {
		logging.Warnf("Clipboard: OSC52 write failed: %v", err)
		return "", fmt.Errorf("osc52 write: %w", err)
	}
	logging.Infof("Clipboard: copied via OSC52")
	return OSC52, nil
}

func osc52Supported() bool {
	if term := os.Getenv("TERM"); term == "" || strings.EqualFold(term, "dumb") {
		return false
	}
	return isTerminal()
}
