package main

import (
	"io"
	"os"

	"github.com/andareed/siftly-obsmap/boundary"
	"github.com/andareed/siftly-obsmap/logging"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// promptFlagColumn is replaced in tests. It reports false when no choice was
// made, for example when in is not a terminal.
var promptFlagColumn = defaultPromptFlagColumn

func defaultPromptFlagColumn(in io.Reader, out io.Writer, options []string) (string, bool) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", false
	}

	choice := options[0]
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Observation flag column").
				Description("Several flag columns are present. Which one marks observed windows?").
				Options(huh.NewOptions(options...)...).
				Value(&choice),
		),
	).WithInput(in).WithOutput(out).Run()
	if err != nil {
		logging.Warnf("flag prompt: %v", err)
		return "", false
	}
	return choice, true
}

// chooseFlagColumn asks only when the table offers more than one flag column.
func chooseFlagColumn(in io.Reader, out io.Writer, t *boundary.Table) string {
	avail := boundary.AvailableFlagColumns(t)
	if len(avail) < 2 {
		return boundary.DetectFlagColumn(t)
	}
	if choice, ok := promptFlagColumn(in, out, avail); ok {
		return choice
	}
	return avail[0]
}
