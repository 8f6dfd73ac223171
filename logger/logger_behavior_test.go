package logger

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConsole records attach/detach calls and captures output in memory.
type fakeConsole struct {
	buf       bytes.Buffer
	out       io.Writer
	attachErr error
	noWindow  bool

	attaches, detaches, shows, hides int
}

func (f *fakeConsole) Attach() (Attachment, error) {
	f.attaches++
	if f.attachErr != nil {
		return Attachment{}, f.attachErr
	}
	out := f.out
	if out == nil {
		out = &f.buf
	}
	return Attachment{Out: out, HasWindow: !f.noWindow}, nil
}

func (f *fakeConsole) Show() error   { f.shows++; return nil }
func (f *fakeConsole) Hide() error   { f.hides++; return nil }
func (f *fakeConsole) Detach() error { f.detaches++; return nil }

func (f *fakeConsole) lines() []string {
	return splitLines(f.buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("device gone")
}

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 123_000_000, time.Local)

func splitLines(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' })
}

// newTestLogger returns a Logger with an in-memory console and a fixed clock.
func newTestLogger(opts ...Option) (*Logger, *fakeConsole) {
	fc := &fakeConsole{}
	opts = append([]Option{WithConsole(fc), WithClock(func() time.Time { return fixedTime })}, opts...)
	return New(opts...), fc
}

func plainConfig() Config {
	cfg := DefaultConfig()
	cfg.Colorize = false
	return cfg
}

func TestInitDefaults_ConsoleOnly(t *testing.T) {
	l, fc := newTestLogger()
	l.Init(DefaultConfig())

	require.True(t, l.Ready())
	assert.Equal(t, DefaultConfig(), l.Config())
	assert.True(t, l.ConsoleAttached())
	assert.Equal(t, 1, fc.attaches)

	l.Info("hello")
	lines := fc.lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[INFO]")
	assert.Empty(t, l.Config().FilePath)
}

func TestFormatLine(t *testing.T) {
	l, fc := newTestLogger(WithCallerResolver(FixedCaller("Test.Case")))
	l.Init(plainConfig())

	l.Warn("careful")

	require.Equal(t, []string{"2024-05-01 12:00:00.123 [WARN] [Test.Case] careful"}, fc.lines())
}

func TestLevelFiltering(t *testing.T) {
	for _, threshold := range append(AllLevels(), OffLevel) {
		t.Run(threshold.String(), func(t *testing.T) {
			for _, level := range AllLevels() {
				l, fc := newTestLogger()
				cfg := plainConfig()
				cfg.Threshold = threshold
				l.Init(cfg)

				l.Log(level, "msg")

				want := 0
				if level >= threshold {
					want = 1
				}
				assert.Len(t, fc.lines(), want, "level %s at threshold %s", level, threshold)
			}
		})
	}
}

func TestThresholdOff_SuppressesFatal(t *testing.T) {
	l, fc := newTestLogger()
	cfg := plainConfig()
	cfg.Threshold = OffLevel
	l.Init(cfg)

	l.Fatal("nothing")
	l.Fatalf("nothing %d", 2)

	assert.Empty(t, fc.buf.String())
}

func TestOffLevelMessage_NeverWritten(t *testing.T) {
	l, fc := newTestLogger()
	l.Init(plainConfig())

	l.Log(OffLevel, "off")
	l.Log(Level(42), "bogus")

	assert.Empty(t, fc.buf.String())
}

func TestConvenienceWrappers_UseTheirLevel(t *testing.T) {
	l, fc := newTestLogger(WithCallerResolver(FixedCaller("X.Y")))
	l.Init(plainConfig())

	l.Trace("t")
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	l.Fatal("f")
	l.Infof("n=%d", 7)

	lines := fc.lines()
	require.Len(t, lines, 7)
	for i, want := range []string{"[TRACE] [X.Y] t", "[DEBUG] [X.Y] d", "[INFO] [X.Y] i", "[WARN] [X.Y] w", "[ERROR] [X.Y] e", "[FATAL] [X.Y] f", "[INFO] [X.Y] n=7"} {
		assert.True(t, strings.HasSuffix(lines[i], want), "line %d = %q, want suffix %q", i, lines[i], want)
	}
}

func TestColorizedOutput_PerLevel(t *testing.T) {
	codes := map[Level]string{
		TraceLevel: "\x1b[96m",
		DebugLevel: "\x1b[36m",
		InfoLevel:  "\x1b[32m",
		WarnLevel:  "\x1b[33m",
		ErrorLevel: "\x1b[31m",
		FatalLevel: "\x1b[35m",
	}
	for level, code := range codes {
		l, fc := newTestLogger()
		l.Init(DefaultConfig())
		l.Log(level, "colored")

		got := fc.buf.String()
		assert.True(t, strings.HasPrefix(got, code), "%s: got %q", level, got)
		assert.True(t, strings.HasSuffix(got, "\x1b[0m"+lineEnding), "%s: missing reset, got %q", level, got)
	}
}

func TestPlainOutput_NoAnsi(t *testing.T) {
	l, fc := newTestLogger()
	l.Init(plainConfig())
	l.Error("plain")

	if strings.Contains(fc.buf.String(), "\x1b[") {
		t.Fatalf("output should be plain (no ANSI codes), got %q", fc.buf.String())
	}
}

func warnFromBoot(l *Logger) {
	l.Warn("boot")
}

func TestSelfInitialize_WithoutInit(t *testing.T) {
	l, fc := newTestLogger()
	require.False(t, l.Ready())

	warnFromBoot(l)

	assert.True(t, l.Ready())
	assert.Equal(t, DefaultConfig(), l.Config())
	lines := fc.lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[WARN]")
	assert.Regexp(t, `\[logger\.warnFromBoot:Line \d+\] boot`, lines[0])
}

type bootTarget struct{ l *Logger }

func (b *bootTarget) Start() { b.l.Info("started") }

func TestCallerLabel_Method(t *testing.T) {
	l, fc := newTestLogger()
	l.Init(plainConfig())

	(&bootTarget{l: l}).Start()

	assert.Regexp(t, `\[bootTarget\.Start:Line \d+\] started$`, fc.lines()[0])
}

func TestCloseConsole_NeverAttachedIsNoop(t *testing.T) {
	l, fc := newTestLogger()
	l.Init(Config{Threshold: TraceLevel})

	l.CloseConsole()
	l.CloseConsole()

	assert.Zero(t, fc.attaches)
	assert.Zero(t, fc.detaches)
	assert.False(t, l.ConsoleAttached())
}

func TestCloseConsole_Twice(t *testing.T) {
	l, fc := newTestLogger()
	l.Init(plainConfig())
	require.True(t, l.ConsoleAttached())

	l.CloseConsole()
	l.CloseConsole()

	assert.Equal(t, 1, fc.detaches)
	assert.False(t, l.ConsoleAttached())
}

func TestCloseConsole_StopsConsoleUntilReinit(t *testing.T) {
	l, fc := newTestLogger()
	l.Init(plainConfig())
	l.CloseConsole()

	l.Info("hidden")
	assert.Empty(t, fc.buf.String())
	assert.Equal(t, 1, fc.attaches)

	l.Init(plainConfig())
	l.Info("visible")
	lines := fc.lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "visible")
}

func TestEnsureConsoleAttached_Idempotent(t *testing.T) {
	l, fc := newTestLogger()
	l.Init(Config{Threshold: TraceLevel})

	assert.True(t, l.EnsureConsoleAttached())
	assert.True(t, l.EnsureConsoleAttached())
	assert.Equal(t, 1, fc.attaches)
	assert.Equal(t, 1, fc.shows)
}

func TestAttachWithoutWindow_StillAttached(t *testing.T) {
	l, fc := newTestLogger()
	fc.noWindow = true
	l.Init(plainConfig())

	assert.True(t, l.ConsoleAttached())
	assert.Zero(t, fc.shows)
	assert.False(t, l.ShowConsole())
	assert.False(t, l.HideConsole())

	l.Info("still printed")
	assert.Len(t, fc.lines(), 1)
}

func TestShowHideConsole_WithWindow(t *testing.T) {
	l, fc := newTestLogger()
	l.Init(plainConfig())

	assert.True(t, l.HideConsole())
	assert.True(t, l.ShowConsole())
	assert.Equal(t, 1, fc.hides)
	assert.Equal(t, 2, fc.shows)

	l.CloseConsole()
	assert.False(t, l.ShowConsole())
}

func TestAttachFailure_LoggerStaysReady(t *testing.T) {
	l, fc := newTestLogger()
	fc.attachErr = errors.New("no console")
	l.Init(plainConfig())

	assert.True(t, l.Ready())
	assert.False(t, l.ConsoleAttached())
	assert.False(t, l.EnsureConsoleAttached())
	require.Error(t, l.LastError())
	assert.Contains(t, l.LastError().Error(), "no console")

	assert.NotPanics(t, func() { l.Info("dropped") })

	fc.attachErr = nil
	l.Info("recovered")
	lines := fc.lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "recovered")
}

func TestResolverPanic_Absorbed(t *testing.T) {
	l, _ := newTestLogger(WithCallerResolver(func(int) string { panic("boom") }))
	l.Init(plainConfig())

	assert.NotPanics(t, func() { l.Info("x") })
	require.Error(t, l.LastError())
	assert.Contains(t, l.LastError().Error(), "boom")
}

func TestPackageLevel_UsesDefault(t *testing.T) {
	old := Default()
	defer SetDefault(old)

	l, fc := newTestLogger()
	SetDefault(l)
	SetDefault(nil)
	require.Same(t, l, Default())

	Init(plainConfig())
	Warn("pkg")
	Debugf("n=%d", 1)
	Log(InfoLevel, "direct")

	lines := fc.lines()
	require.Len(t, lines, 3)
	assert.Regexp(t, `\[logger\.TestPackageLevel_UsesDefault:Line \d+\] pkg$`, lines[0])
	assert.Regexp(t, `\[DEBUG\] \[logger\.TestPackageLevel_UsesDefault:Line \d+\] n=1$`, lines[1])
	assert.Contains(t, lines[2], "[INFO]")

	CloseConsole()
	assert.Equal(t, 1, fc.detaches)
	assert.True(t, EnsureConsoleAttached())
}
