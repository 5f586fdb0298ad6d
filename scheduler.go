package ecscore

import (
	"sort"

	"github.com/TheBitDrifter/bark"
)

// systemScheduler keeps the registered systems sorted by ascending
// priority (stable on ties by registration order) and drives the
// single-threaded per-frame tick.
type systemScheduler struct {
	systems []*scheduledSystem
	byName  map[string]*scheduledSystem
	nextSeq int
	world   *World
}

func newSystemScheduler(world *World) *systemScheduler {
	return &systemScheduler{
		byName: make(map[string]*scheduledSystem),
		world:  world,
	}
}

// registerSystem instantiates the system's declared queries against the
// query manager, seeds its reactive config from schema defaults, calls
// Init once, and inserts it into the ordered list.
func (s *systemScheduler) registerSystem(sys System, priority int) (*scheduledSystem, error) {
	name := sys.Name()
	if Config.checksEnabled {
		if _, exists := s.byName[name]; exists {
			return nil, bark.AddTrace(SystemAlreadyRegisteredError{Name: name})
		}
	}

	queries := make(map[string]*Query, len(sys.Queries()))
	for key, pred := range sys.Queries() {
		q, err := s.world.queries.registerQuery(pred)
		if err != nil {
			return nil, bark.AddTrace(err)
		}
		queries[key] = q
	}

	ctx := &SystemContext{
		World:   s.world,
		Queries: queries,
		Config:  newConfigCells(sys.Schema()),
	}

	entry := &scheduledSystem{
		system:   sys,
		priority: priority,
		ctx:      ctx,
		order:    s.nextSeq,
	}
	s.nextSeq++

	if err := sys.Init(ctx); err != nil {
		return nil, err
	}

	s.systems = append(s.systems, entry)
	s.byName[name] = entry
	s.resort()
	return entry, nil
}

func (s *systemScheduler) resort() {
	sort.SliceStable(s.systems, func(i, j int) bool {
		if s.systems[i].priority != s.systems[j].priority {
			return s.systems[i].priority < s.systems[j].priority
		}
		return s.systems[i].order < s.systems[j].order
	})
}

// unregisterSystem calls Destroy and removes the system from the ordered
// list.
func (s *systemScheduler) unregisterSystem(name string) error {
	entry, ok := s.byName[name]
	if !ok {
		return nil
	}
	if err := entry.system.Destroy(entry.ctx); err != nil {
		return err
	}
	delete(s.byName, name)
	for i, e := range s.systems {
		if e == entry {
			s.systems = append(s.systems[:i], s.systems[i+1:]...)
			break
		}
	}
	return nil
}

// tick runs every unpaused system's Update in ascending priority order.
// An error from a system aborts the remainder of the tick and propagates
// to the caller.
func (s *systemScheduler) tick(delta, time float64) error {
	for _, entry := range s.systems {
		if entry.paused {
			continue
		}
		if err := entry.system.Update(entry.ctx, delta, time); err != nil {
			return err
		}
	}
	return nil
}

func (s *systemScheduler) get(name string) (*scheduledSystem, bool) {
	entry, ok := s.byName[name]
	return entry, ok
}

// ordered returns the systems in current execution order.
func (s *systemScheduler) ordered() []*scheduledSystem {
	out := make([]*scheduledSystem, len(s.systems))
	copy(out, s.systems)
	return out
}
