//go:build windows

package logger

import (
	"os"

	"github.com/mattn/go-colorable"
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

const lineEnding = "\r\n"

const (
	swHide = 0
	swShow = 5
	cpUTF8 = 65001
	conout = "CONOUT$"
)

var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	user32   = windows.NewLazySystemDLL("user32.dll")

	procAllocConsole       = kernel32.NewProc("AllocConsole")
	procFreeConsole        = kernel32.NewProc("FreeConsole")
	procGetConsoleWindow   = kernel32.NewProc("GetConsoleWindow")
	procSetConsoleOutputCP = kernel32.NewProc("SetConsoleOutputCP")
	procShowWindow         = user32.NewProc("ShowWindow")
)

// winConsole allocates a console window for processes that start without
// one, such as a game host loading the mod.
type winConsole struct {
	out    *os.File
	window uintptr
}

// NewConsole returns the console for the current platform.
func NewConsole() Console {
	return &winConsole{}
}

func (c *winConsole) Attach() (Attachment, error) {
	// AllocConsole fails with ERROR_ACCESS_DENIED when the process already
	// has a console; that one is reused.
	if r, _, err := procAllocConsole.Call(); r == 0 && err != windows.ERROR_ACCESS_DENIED {
		return Attachment{}, errors.Wrap(err, "AllocConsole")
	}

	name, err := windows.UTF16PtrFromString(conout)
	if err != nil {
		return Attachment{}, errors.Wrap(err, "console device name")
	}
	h, err := windows.CreateFile(name,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil, windows.OPEN_EXISTING, 0, 0)
	if err != nil {
		return Attachment{}, errors.Wrap(err, "open console output")
	}
	procSetConsoleOutputCP.Call(cpUTF8)

	c.out = os.NewFile(uintptr(h), conout)
	c.window, _, _ = procGetConsoleWindow.Call()
	return Attachment{
		Out:       colorable.NewColorable(c.out),
		HasWindow: c.window != 0,
	}, nil
}

func (c *winConsole) Show() error {
	return c.showWindow(swShow)
}

func (c *winConsole) Hide() error {
	return c.showWindow(swHide)
}

func (c *winConsole) showWindow(cmd uintptr) error {
	if c.window == 0 {
		return ErrNoConsoleWindow
	}
	procShowWindow.Call(c.window, cmd)
	return nil
}

func (c *winConsole) Detach() error {
	if c.out != nil {
		c.out.Close()
		c.out = nil
	}
	c.window = 0
	if r, _, err := procFreeConsole.Call(); r == 0 {
		return errors.Wrap(err, "FreeConsole")
	}
	return nil
}
