package logger

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// DefaultFilePath is used when file logging is enabled without a path.
const DefaultFilePath = "mod_log.txt"

// appendLine opens path for appending, writes line and a newline, and
// closes it again. Nothing is held open between calls.
func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrapf(err, "open log file %s", path)
	}
	buf := make([]byte, 0, len(line)+len(lineEnding))
	buf = append(buf, line...)
	buf = append(buf, lineEnding...)
	if _, err := f.Write(buf); err != nil {
		f.Close()
		return errors.Wrapf(err, "append to log file %s", path)
	}
	return errors.Wrapf(f.Close(), "close log file %s", path)
}

// checkFilePath reports whether path can hold a log file: its directory
// must already exist.
func checkFilePath(path string) error {
	if path == "" {
		return errors.New("empty log file path")
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return errors.Wrapf(err, "log directory %s", dir)
	}
	if !info.IsDir() {
		return errors.Errorf("log directory %s is not a directory", dir)
	}
	return nil
}
