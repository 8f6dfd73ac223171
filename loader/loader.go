// Package loader attaches a mod to a running game scene and tears it down
// again, logging every step through a logger.Logger.
package loader

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/mordilloSan/modloader/logger"
)

// DefaultName is the mod name used when none is configured.
const DefaultName = "Mod"

var (
	// ErrAlreadyLoaded is returned by Load when the mod object exists.
	ErrAlreadyLoaded = errors.New("mod already loaded")
	// ErrNotLoaded is returned by Unload when there is nothing to unload.
	ErrNotLoaded = errors.New("mod not loaded")
)

// DevLogConfig is the logger configuration used in dev mode: everything from
// TRACE up, on the console and in path.
func DevLogConfig(path string) logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Threshold = logger.TraceLevel
	cfg.FileEnabled = true
	cfg.FilePath = path
	return cfg
}

// Loader creates and destroys the mod's persistent scene object.
type Loader struct {
	mu   sync.Mutex
	name string
	host Host
	log  *logger.Logger

	devMode   bool
	devConfig logger.Config

	obj *Object
}

// Option configures a Loader.
type Option func(*Loader)

// WithName sets the mod name. The scene object is called "<name>_Loader".
func WithName(name string) Option {
	return func(ld *Loader) {
		if name != "" {
			ld.name = name
		}
	}
}

// WithDevMode makes Load reinitialise the logger with cfg first.
func WithDevMode(cfg logger.Config) Option {
	return func(ld *Loader) {
		ld.devMode = true
		ld.devConfig = cfg
	}
}

// New returns a Loader for host. A nil log uses logger.Default.
func New(host Host, log *logger.Logger, opts ...Option) *Loader {
	if log == nil {
		log = logger.Default()
	}
	ld := &Loader{name: DefaultName, host: host, log: log}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load creates the mod object and marks it persistent across scene changes.
func (ld *Loader) Load() error {
	ld.mu.Lock()
	defer ld.mu.Unlock()

	if ld.obj != nil {
		ld.log.Warn("loader already loaded")
		return ErrAlreadyLoaded
	}

	if ld.devMode {
		ld.log.Init(ld.devConfig)
		if !ld.log.Ready() {
			ld.log.Errorf("failed to initialize logging: %v", ld.log.LastError())
		}
		ld.log.Warn("dev mode enabled")
	}

	ld.log.Infof("loading %s", ld.name)

	obj, err := ld.host.CreateObject(ld.name+"_Loader", NewModBehaviour(ld.name, ld.log))
	if err != nil {
		ld.log.Fatalf("unexpected error while loading %s", ld.name)
		ld.log.Debugf("error details: %+v", err)
		return errors.Wrapf(err, "load %s", ld.name)
	}
	ld.host.DontDestroyOnLoad(obj)
	ld.obj = obj

	ld.log.Infof("%s loaded successfully", ld.name)
	return nil
}

// Unload destroys the mod object and detaches the console.
func (ld *Loader) Unload() error {
	ld.mu.Lock()
	defer ld.mu.Unlock()

	if ld.obj == nil {
		ld.log.Warn("no loaded mod to unload")
		return ErrNotLoaded
	}

	ld.log.Infof("unloading %s", ld.name)

	if err := ld.host.Destroy(ld.obj); err != nil {
		ld.log.Fatalf("failed to unload %s: %v", ld.name, err)
		return errors.Wrapf(err, "unload %s", ld.name)
	}
	ld.obj = nil

	ld.log.Infof("%s unloaded successfully", ld.name)
	ld.log.CloseConsole()
	return nil
}

// Loaded reports whether the mod object exists.
func (ld *Loader) Loaded() bool {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	return ld.obj != nil
}

// Object returns the mod's scene object, or nil when not loaded.
func (ld *Loader) Object() *Object {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	return ld.obj
}
