// Package debug collects and renders tracking decisions for diagnostics.
package debug

import "github.com/mpyw/shadertrack"

var _ shadertrack.Recorder = (*Collector)(nil)

// Collector records every step a Tracker emits.
// This keeps debug logic isolated from the tracking code.
type Collector struct {
	steps []shadertrack.Step
}

// NewCollector creates a new Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordStep implements shadertrack.Recorder.
func (c *Collector) RecordStep(step shadertrack.Step) {
	c.steps = append(c.steps, step)
}

// Steps returns the recorded steps in emission order.
func (c *Collector) Steps() []shadertrack.Step {
	return c.steps
}

// Count returns how many steps of the given kind were recorded.
func (c *Collector) Count(kind shadertrack.StepKind) int {
	n := 0
	for _, s := range c.steps {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// Reset discards recorded steps so the collector can be reused for the next
// query.
func (c *Collector) Reset() {
	c.steps = c.steps[:0]
}
