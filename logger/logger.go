package logger

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// timeLayout renders local time with millisecond precision.
const timeLayout = "2006-01-02 15:04:05.000"

// Config defines the options applied by Init. Use DefaultConfig as the base;
// the zero value has both sinks disabled.
type Config struct {
	// Threshold is the lowest level that produces output. OffLevel silences everything.
	// Default: TraceLevel
	Threshold Level
	// ConsoleEnabled writes lines to the console, attaching it during Init.
	// Default: true
	ConsoleEnabled bool
	// FileEnabled appends lines to FilePath.
	// Default: false
	FileEnabled bool
	// FilePath is the log file. Empty keeps the previous path, or DefaultFilePath.
	// Ignored and cleared when FileEnabled is false.
	FilePath string
	// Colorize wraps console lines in a per-level ANSI colour. Files are always plain.
	// Default: true
	Colorize bool
}

// DefaultConfig returns the configuration a Logger bootstraps itself with.
func DefaultConfig() Config {
	return Config{
		Threshold:      TraceLevel,
		ConsoleEnabled: true,
		Colorize:       true,
	}
}

// Logger is a leveled logger writing to a console and a file.
//
// A Logger is safe for concurrent use. Logging methods never fail or panic;
// sink errors are absorbed and the most recent one is available through
// LastError.
type Logger struct {
	mu sync.Mutex

	cfg   Config
	ready bool

	console         Console
	consoleOut      io.Writer
	consoleAttached bool
	consoleWindow   bool
	consoleClosed   bool
	attachReported  bool

	resolve CallerResolver
	now     func() time.Time
	lastErr error
}

// Option configures the collaborators of a Logger at construction.
type Option func(*Logger)

// WithConsole replaces the platform console device.
func WithConsole(c Console) Option {
	return func(l *Logger) { l.console = c }
}

// WithCallerResolver replaces the stack walk used to label log lines.
func WithCallerResolver(r CallerResolver) Option {
	return func(l *Logger) { l.resolve = r }
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// New returns an uninitialised Logger. It initialises itself with
// DefaultConfig on first use unless Init is called before.
func New(opts ...Option) *Logger {
	l := &Logger{
		resolve: StackCaller,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.console == nil {
		l.console = NewConsole()
	}
	return l
}

// Init replaces the configuration. The console is attached when enabled and
// a previous CloseConsole is cleared.
// A log file whose directory does not exist leaves the Logger not ready; the
// next log call then falls back to DefaultConfig.
func (l *Logger) Init(cfg Config) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.initLocked(cfg)
}

func (l *Logger) initLocked(cfg Config) {
	l.ready = false
	l.consoleClosed = false

	if cfg.FileEnabled {
		if cfg.FilePath == "" {
			cfg.FilePath = l.cfg.FilePath
		}
		if cfg.FilePath == "" {
			cfg.FilePath = DefaultFilePath
		}
	} else {
		cfg.FilePath = ""
	}
	l.cfg = cfg

	if cfg.FileEnabled {
		if err := checkFilePath(cfg.FilePath); err != nil {
			l.lastErr = errors.Wrap(err, "init logger")
			return
		}
	}
	if cfg.ConsoleEnabled {
		// Attach failures leave the logger usable without a console.
		_ = l.attachLocked()
	}
	l.ready = true
}

// Ready reports whether the last initialisation succeeded.
func (l *Logger) Ready() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ready
}

// Config returns the active configuration.
func (l *Logger) Config() Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg
}

// LastError returns the most recent error absorbed by the Logger, or nil.
func (l *Logger) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// EnsureConsoleAttached attaches the console if it is not attached yet and
// reports whether it is attached afterwards. It also reopens a console sink
// closed by CloseConsole.
func (l *Logger) EnsureConsoleAttached() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.consoleClosed = false
	return l.attachLocked() == nil
}

func (l *Logger) attachLocked() error {
	if l.consoleAttached {
		return nil
	}
	att, err := l.console.Attach()
	if err == nil && att.Out == nil {
		err = errors.New("console has no output stream")
	}
	if err != nil {
		l.lastErr = errors.Wrap(err, "attach console")
		return l.lastErr
	}
	l.consoleOut = att.Out
	l.consoleWindow = att.HasWindow
	if att.HasWindow {
		_ = l.console.Show()
	}
	// Attached even without a window handle: output works, show/hide does not.
	l.consoleAttached = true
	l.attachReported = false
	return nil
}

// ConsoleAttached reports whether a console device is attached.
func (l *Logger) ConsoleAttached() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.consoleAttached
}

// ShowConsole shows the console window. It returns false when no console is
// attached or the window handle could not be obtained.
func (l *Logger) ShowConsole() bool {
	return l.windowCommand(Console.Show)
}

// HideConsole hides the console window. It returns false when no console is
// attached or the window handle could not be obtained.
func (l *Logger) HideConsole() bool {
	return l.windowCommand(Console.Hide)
}

func (l *Logger) windowCommand(cmd func(Console) error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.consoleAttached || !l.consoleWindow {
		return false
	}
	if err := cmd(l.console); err != nil {
		l.lastErr = errors.Wrap(err, "console window")
		return false
	}
	return true
}

// CloseConsole detaches the console and stops console output until the next
// Init or EnsureConsoleAttached. File output is unaffected. Calling it when no
// console is attached does nothing to the device.
func (l *Logger) CloseConsole() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.consoleClosed = true
	if !l.consoleAttached {
		return
	}
	if err := l.console.Detach(); err != nil {
		l.lastErr = errors.Wrap(err, "detach console")
		return
	}
	l.consoleAttached = false
	l.consoleWindow = false
	l.consoleOut = nil
}

// output is the single dispatch path for every logging call. calldepth is
// the number of frames between the resolver and the caller of the facility.
func (l *Logger) output(calldepth int, level Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			l.lastErr = errors.Errorf("log dispatch: %v", r)
		}
	}()

	if !l.ready {
		l.initLocked(DefaultConfig())
	}
	if level < TraceLevel || level >= OffLevel || level < l.cfg.Threshold {
		return
	}

	line := formatLine(l.now(), level, l.resolve(calldepth), msg)

	if l.cfg.ConsoleEnabled && !l.consoleClosed {
		l.writeConsoleLocked(level, line)
	}
	if l.cfg.FileEnabled {
		if err := appendLine(l.cfg.FilePath, line); err != nil {
			l.lastErr = err
		}
	}
}

func (l *Logger) writeConsoleLocked(level Level, line string) {
	if err := l.attachLocked(); err != nil {
		// Report a failing console once per streak, not on every line.
		if !l.attachReported {
			l.attachReported = true
			l.fileFallbackLocked(err)
		}
		return
	}
	if l.cfg.Colorize {
		line = colorize(level, line)
	}
	if err := writeLine(l.consoleOut, line); err != nil {
		l.lastErr = err
		l.fileFallbackLocked(err)
	}
}

// fileFallbackLocked records a console failure in the log file, if enabled.
func (l *Logger) fileFallbackLocked(err error) {
	if !l.cfg.FileEnabled {
		return
	}
	line := formatLine(l.now(), ErrorLevel, "Console.Write", "Console writing error: "+err.Error())
	if ferr := appendLine(l.cfg.FilePath, line); ferr != nil {
		l.lastErr = ferr
	}
}

func formatLine(ts time.Time, level Level, caller, msg string) string {
	return fmt.Sprintf("%s [%s] [%s] %s", ts.Format(timeLayout), level, caller, msg)
}

// Log writes msg at level.
func (l *Logger) Log(level Level, msg string) {
	l.output(callerSkip, level, msg)
}

// Trace logs a trace message.
func (l *Logger) Trace(msg string) {
	l.output(callerSkip, TraceLevel, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.output(callerSkip, DebugLevel, msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.output(callerSkip, InfoLevel, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.output(callerSkip, WarnLevel, msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string) {
	l.output(callerSkip, ErrorLevel, msg)
}

// Fatal logs a fatal message. The process keeps running.
func (l *Logger) Fatal(msg string) {
	l.output(callerSkip, FatalLevel, msg)
}

// Tracef logs a trace message formatted with fmt.Sprintf.
func (l *Logger) Tracef(format string, v ...any) {
	l.output(callerSkip, TraceLevel, fmt.Sprintf(format, v...))
}

// Debugf logs a debug message formatted with fmt.Sprintf.
func (l *Logger) Debugf(format string, v ...any) {
	l.output(callerSkip, DebugLevel, fmt.Sprintf(format, v...))
}

// Infof logs an informational message formatted with fmt.Sprintf.
func (l *Logger) Infof(format string, v ...any) {
	l.output(callerSkip, InfoLevel, fmt.Sprintf(format, v...))
}

// Warnf logs a warning message formatted with fmt.Sprintf.
func (l *Logger) Warnf(format string, v ...any) {
	l.output(callerSkip, WarnLevel, fmt.Sprintf(format, v...))
}

// Errorf logs an error message formatted with fmt.Sprintf.
func (l *Logger) Errorf(format string, v ...any) {
	l.output(callerSkip, ErrorLevel, fmt.Sprintf(format, v...))
}

// Fatalf logs a fatal message formatted with fmt.Sprintf. The process keeps running.
func (l *Logger) Fatalf(format string, v ...any) {
	l.output(callerSkip, FatalLevel, fmt.Sprintf(format, v...))
}
