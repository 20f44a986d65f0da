package shadertrack

import (
	"fmt"

	"github.com/mpyw/shadertrack/ir"
)

// StepKind classifies a tracking decision.
type StepKind int

const (
	// StepTrack marks the start of tracking a value.
	StepTrack StepKind = iota
	// StepSkip marks an assignment to some other target that was passed over.
	StepSkip
	// StepDefinition marks the assignment that defines the tracked register.
	StepDefinition
	// StepResolved marks a value accepted as the tracked source.
	StepResolved
	// StepNotFound marks a register whose definition could not be found.
	StepNotFound
	// StepCached marks a register whose outcome at the same bound was
	// already computed earlier in the same call.
	StepCached
)

func (k StepKind) String() string {
	switch k {
	case StepTrack:
		return "track"
	case StepSkip:
		return "skip"
	case StepDefinition:
		return "def"
	case StepResolved:
		return "resolved"
	case StepNotFound:
		return "not found"
	case StepCached:
		return "cached"
	default:
		return fmt.Sprintf("StepKind(%d)", int(k))
	}
}

// Step is one tracking decision.
type Step struct {
	Kind StepKind
	// Node is the tracked value, or the assignment for StepSkip and
	// StepDefinition.
	Node ir.Node
	// Pos is the search bound for StepTrack, StepNotFound and StepCached,
	// and the position of the statement otherwise.
	Pos   int
	Depth int
}

// Recorder receives tracking decisions, in order, as they are made.
type Recorder interface {
	RecordStep(step Step)
}
