package logger

import (
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// ErrNoConsoleWindow is returned by Show and Hide when the console was
// attached without a window handle.
var ErrNoConsoleWindow = errors.New("console has no window handle")

// Attachment describes a console bound to the process.
//
// HasWindow reports whether the window handle lookup succeeded. An
// attachment without a window is still a working sink; only Show and Hide
// are unavailable.
type Attachment struct {
	Out       io.Writer
	HasWindow bool
}

// Console is the platform console device owned by a Logger.
type Console interface {
	// Attach allocates or binds the console and returns its output stream.
	Attach() (Attachment, error)
	Show() error
	Hide() error
	// Detach releases the console. It is only called after a successful Attach.
	Detach() error
}

// levelColors maps levels to console colours. OffLevel is never written.
var levelColors = map[Level]*color.Color{
	TraceLevel: color.New(color.FgHiCyan),
	DebugLevel: color.New(color.FgCyan),
	InfoLevel:  color.New(color.FgGreen),
	WarnLevel:  color.New(color.FgYellow),
	ErrorLevel: color.New(color.FgRed),
	FatalLevel: color.New(color.FgMagenta),
}

func init() {
	// Colour is decided per Logger by Config.Colorize, not by the
	// terminal detection fatih/color does for os.Stdout.
	for _, c := range levelColors {
		c.EnableColor()
	}
}

// colorize wraps line in the level's colour and a trailing reset.
func colorize(level Level, line string) string {
	c, ok := levelColors[level]
	if !ok {
		return line
	}
	return c.Sprint(line)
}

// writeLine writes line and a newline to w in a single Write call so the
// line is visible immediately and never split between concurrent writers.
func writeLine(w io.Writer, line string) error {
	buf := make([]byte, 0, len(line)+len(lineEnding))
	buf = append(buf, line...)
	buf = append(buf, lineEnding...)
	if _, err := w.Write(buf); err != nil {
		return errors.Wrap(err, "write console")
	}
	return nil
}
