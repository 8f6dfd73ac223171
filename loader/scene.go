package loader

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mordilloSan/modloader/logger"
)

// ErrObjectDestroyed is returned when destroying an object twice or one that
// belongs to another scene.
var ErrObjectDestroyed = errors.New("object already destroyed")

// Behaviour receives the engine lifecycle callbacks of the object it is
// attached to.
type Behaviour interface {
	Start()
	Update()
	OnGUI()
	OnDisable()
	OnDestroy()
}

// Object is a named scene object carrying one Behaviour.
type Object struct {
	ID        uuid.UUID
	Name      string
	Behaviour Behaviour

	persistent bool
	started    bool
}

// Persistent reports whether the object survives scene changes.
func (o *Object) Persistent() bool {
	return o.persistent
}

// Host is the engine surface the Loader needs.
type Host interface {
	CreateObject(name string, b Behaviour) (*Object, error)
	DontDestroyOnLoad(o *Object)
	Destroy(o *Object) error
}

// Scene is an in-memory Host that drives behaviours the way a game loop
// does: Start once, then Update and OnGUI every frame.
type Scene struct {
	mu      sync.Mutex
	objects []*Object
	log     *logger.Logger
}

// NewScene returns an empty scene logging to log. A nil log uses
// logger.Default.
func NewScene(log *logger.Logger) *Scene {
	if log == nil {
		log = logger.Default()
	}
	return &Scene{log: log}
}

func (s *Scene) CreateObject(name string, b Behaviour) (*Object, error) {
	if name == "" {
		return nil, errors.New("object name is empty")
	}
	if b == nil {
		return nil, errors.Errorf("object %q has no behaviour", name)
	}
	o := &Object{ID: uuid.New(), Name: name, Behaviour: b}

	s.mu.Lock()
	s.objects = append(s.objects, o)
	s.mu.Unlock()

	s.log.Tracef("created object %q (%s)", o.Name, o.ID)
	return o, nil
}

func (s *Scene) DontDestroyOnLoad(o *Object) {
	s.mu.Lock()
	o.persistent = true
	s.mu.Unlock()
}

// Destroy removes o from the scene and runs OnDisable then OnDestroy.
func (s *Scene) Destroy(o *Object) error {
	s.mu.Lock()
	removed := s.removeLocked(o)
	s.mu.Unlock()
	if !removed {
		return errors.Wrapf(ErrObjectDestroyed, "destroy %q", o.Name)
	}

	o.Behaviour.OnDisable()
	o.Behaviour.OnDestroy()
	s.log.Tracef("destroyed object %q (%s)", o.Name, o.ID)
	return nil
}

func (s *Scene) removeLocked(o *Object) bool {
	for i, cur := range s.objects {
		if cur == o {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return true
		}
	}
	return false
}

// Step runs one frame.
func (s *Scene) Step() {
	type pending struct {
		o     *Object
		start bool
	}
	s.mu.Lock()
	frame := make([]pending, 0, len(s.objects))
	for _, o := range s.objects {
		frame = append(frame, pending{o: o, start: !o.started})
		o.started = true
	}
	s.mu.Unlock()

	for _, p := range frame {
		if p.start {
			p.o.Behaviour.Start()
		}
		p.o.Behaviour.Update()
		p.o.Behaviour.OnGUI()
	}
}

// ChangeScene destroys every object not marked with DontDestroyOnLoad.
func (s *Scene) ChangeScene() {
	s.mu.Lock()
	var doomed []*Object
	kept := s.objects[:0]
	for _, o := range s.objects {
		if o.persistent {
			kept = append(kept, o)
		} else {
			doomed = append(doomed, o)
		}
	}
	s.objects = kept
	s.mu.Unlock()

	for _, o := range doomed {
		o.Behaviour.OnDisable()
		o.Behaviour.OnDestroy()
	}
	s.log.Debugf("scene changed, %d objects destroyed", len(doomed))
}

// Objects returns the live objects in creation order.
func (s *Scene) Objects() []*Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	return out
}
