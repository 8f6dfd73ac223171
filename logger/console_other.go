//go:build !windows

package logger

import (
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const lineEnding = "\n"

// stdConsole binds to the process standard output. There is no console to
// allocate outside Windows; a terminal on stdout stands in for the window.
type stdConsole struct {
	terminal bool
}

// NewConsole returns the console for the current platform.
func NewConsole() Console {
	return &stdConsole{}
}

func (c *stdConsole) Attach() (Attachment, error) {
	fd := os.Stdout.Fd()
	c.terminal = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return Attachment{
		Out:       colorable.NewColorable(os.Stdout),
		HasWindow: c.terminal,
	}, nil
}

func (c *stdConsole) Show() error {
	if !c.terminal {
		return ErrNoConsoleWindow
	}
	return nil
}

func (c *stdConsole) Hide() error {
	if !c.terminal {
		return ErrNoConsoleWindow
	}
	return nil
}

// Detach leaves stdout open; the process still owns it.
func (c *stdConsole) Detach() error {
	c.terminal = false
	return nil
}
