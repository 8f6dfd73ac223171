// Package config resolves the host command's settings from flags and
// MODLOADER_* environment variables. No configuration file is read.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mordilloSan/modloader/loader"
	"github.com/mordilloSan/modloader/logger"
)

// EnvPrefix prefixes every environment variable, e.g. MODLOADER_LOG_FILE.
const EnvPrefix = "MODLOADER"

// Setting keys, shared by flags and environment variables.
const (
	KeyDev     = "dev"
	KeyLevel   = "level"
	KeyLogFile = "log-file"
	KeyConsole = "console"
	KeyColor   = "color"
	KeyFrames  = "frames"
	KeyName    = "name"
)

// Settings holds the resolved host settings.
type Settings struct {
	DevMode bool   `mapstructure:"dev"`
	Level   string `mapstructure:"level"`
	LogFile string `mapstructure:"log-file"`
	Console bool   `mapstructure:"console"`
	Color   bool   `mapstructure:"color"`
	Frames  int    `mapstructure:"frames"`
	Name    string `mapstructure:"name"`
}

// RegisterFlags adds the host flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool(KeyDev, false, "dev mode: log everything to the console and to --log-file")
	fs.String(KeyLevel, "trace", "minimum level: trace, debug, info, warn, error, fatal, off")
	fs.String(KeyLogFile, "", "append log lines to this file (dev mode default: <name>_log.txt)")
	fs.Bool(KeyConsole, true, "write log lines to the console")
	fs.Bool(KeyColor, true, "colour console lines by level")
	fs.Int(KeyFrames, 3, "number of frames to run before unloading")
	fs.String(KeyName, loader.DefaultName, "mod name")
}

// Load resolves settings from fs and the environment. Flags set on the
// command line win over environment variables.
func Load(fs *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Settings{}, errors.Wrap(err, "bind flags")
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, errors.Wrap(err, "decode settings")
	}
	if s.Frames < 0 {
		return Settings{}, errors.Errorf("frames must not be negative, got %d", s.Frames)
	}
	if s.Name == "" {
		s.Name = loader.DefaultName
	}
	return s, nil
}

// LoggerConfig maps the settings onto a logger configuration. In dev mode
// the threshold is TRACE and the file sink is always on.
func (s Settings) LoggerConfig() (logger.Config, error) {
	if s.DevMode {
		path := s.LogFile
		if path == "" {
			path = s.Name + "_log.txt"
		}
		cfg := loader.DevLogConfig(path)
		cfg.ConsoleEnabled = s.Console
		cfg.Colorize = s.Color
		return cfg, nil
	}

	level, err := logger.ParseLevel(s.Level)
	if err != nil {
		return logger.Config{}, errors.Wrap(err, "level")
	}
	return logger.Config{
		Threshold:      level,
		ConsoleEnabled: s.Console,
		FileEnabled:    s.LogFile != "",
		FilePath:       s.LogFile,
		Colorize:       s.Color,
	}, nil
}
