package ecscore

// System is the unit of per-tick behavior a World schedules. A
// system declares its own configuration schema and the named queries it
// consumes; the scheduler materializes both at registration time before
// calling Init.
type System interface {
	Name() string
	// Priority is the default execution-order key, used by
	// World.RegisterSystem whenever the caller registers without an
	// explicit override.
	Priority() int
	Schema() []SchemaField
	Queries() map[string]QueryPredicate

	Init(ctx *SystemContext) error
	Update(ctx *SystemContext, delta, time float64) error
	Destroy(ctx *SystemContext) error
}

// SystemContext is what a System's lifecycle hooks receive: the owning
// World, its materialized named queries, and its reactive config cells.
type SystemContext struct {
	World   *World
	Queries map[string]*Query
	Config  map[string]*Cell
}

// scheduledSystem pairs a registered System with its priority, pause
// state, and materialized context.
type scheduledSystem struct {
	system   System
	priority int
	paused   bool
	ctx      *SystemContext
	order    int
}

func (s *scheduledSystem) Play()          { s.paused = false }
func (s *scheduledSystem) Stop()          { s.paused = true }
func (s *scheduledSystem) IsPaused() bool { return s.paused }
