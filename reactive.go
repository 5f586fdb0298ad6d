package ecscore

import "reflect"

// Cell is a reactive configuration value: one per field in a System's
// schema. Writes are synchronous and coalesced when the written
// value equals the current one, avoiding redundant subscriber
// notifications.
type Cell struct {
	value       any
	subscribers []func(value any)
}

func newCell(initial any) *Cell {
	return &Cell{value: initial}
}

// Read returns the cell's current value.
func (c *Cell) Read() any {
	return c.value
}

// Write sets the cell's value, notifying subscribers synchronously unless
// the new value equals the current one.
func (c *Cell) Write(value any) {
	if reflect.DeepEqual(c.value, value) {
		return
	}
	c.value = value
	for _, fn := range c.subscribers {
		if fn != nil {
			fn(value)
		}
	}
}

// Subscribe registers fn to run on every value-changing Write, returning
// an unsubscribe function.
func (c *Cell) Subscribe(fn func(value any)) func() {
	c.subscribers = append(c.subscribers, fn)
	idx := len(c.subscribers) - 1
	return func() { c.subscribers[idx] = nil }
}

func newConfigCells(schema []SchemaField) map[string]*Cell {
	cells := make(map[string]*Cell, len(schema))
	for _, f := range schema {
		cells[f.Name] = newCell(f.Default)
	}
	return cells
}
