package loader

import "github.com/mordilloSan/modloader/logger"

// ModBehaviour is the behaviour the loader attaches to its scene object.
// Every callback reports itself at INFO.
type ModBehaviour struct {
	name string
	log  *logger.Logger
}

// NewModBehaviour returns the behaviour for mod name.
func NewModBehaviour(name string, log *logger.Logger) *ModBehaviour {
	return &ModBehaviour{name: name, log: log}
}

func (m *ModBehaviour) Start() {
	m.log.Infof("%s started", m.name)
}

func (m *ModBehaviour) Update() {
	m.log.Infof("%s updated", m.name)
}

func (m *ModBehaviour) OnGUI() {
	m.log.Infof("%s OnGUI", m.name)
}

func (m *ModBehaviour) OnDisable() {
	m.log.Infof("%s disabled", m.name)
}

func (m *ModBehaviour) OnDestroy() {
	m.log.Infof("%s destroyed", m.name)
}
