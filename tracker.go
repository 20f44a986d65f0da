// Package shadertrack traces values of a decompiled shader back to their
// compile-time sources.
//
// The shader IR is not in SSA form and carries no def-use links. Given a
// value observed at some statement, the trackers walk backward in program
// order, rediscover the most recent assignment to each register on the way
// and stop at an immediate literal or at a constant buffer read whose offset
// is an immediate.
//
// Architecture follows mechanism vs policy separation:
//   - ir.FindOperation: HOW to scan a block backward (mechanism)
//   - Tracker: WHAT counts as a resolved source (policy)
//
// Positions are exclusive bounds. A value used by the statement at index i
// is tracked with before = i; a value live at the end of a block is tracked
// with before = len(block). Searches never look at the statement at before,
// so an instruction that reads and writes the same register cannot match
// itself.
//
// Tracking is confined to the block passed in. A block is not continued
// into its enclosing scope when exhausted.
package shadertrack

import (
	"fmt"

	"github.com/mpyw/shadertrack/ir"
)

// Tracker resolves IR values to constant buffer or immediate sources.
// It never mutates the IR and is safe for concurrent use as long as its
// Recorder is.
type Tracker struct {
	recorder Recorder
}

// New creates a Tracker. recorder may be nil.
func New(recorder Recorder) *Tracker {
	return &Tracker{recorder: recorder}
}

var defaultTracker = New(nil)

// TrackRegister calls Tracker.TrackRegister on a Tracker without recorder.
func TrackRegister(reg *ir.Gpr, code ir.Block, before int) (ir.Node, int, bool) {
	return defaultTracker.TrackRegister(reg, code, before)
}

// TrackCbuf calls Tracker.TrackCbuf on a Tracker without recorder.
func TrackCbuf(tracked ir.Node, code ir.Block, before int) (*ir.Cbuf, bool) {
	return defaultTracker.TrackCbuf(tracked, code, before)
}

// TrackImmediate calls Tracker.TrackImmediate on a Tracker without recorder.
func TrackImmediate(tracked ir.Node, code ir.Block, before int) (uint32, bool) {
	return defaultTracker.TrackImmediate(tracked, code, before)
}

// =============================================================================
// Register Tracking
// =============================================================================

// TrackRegister finds the most recent assignment to reg strictly before
// position before and returns the assigned expression with the position the
// assignment was found at.
//
// An assignment inside a conditional region counts as a definition and is
// reported at the position of the region. Assignments to other targets are
// passed over and the scan resumes strictly before them. The zero register
// is never tracked.
func (t *Tracker) TrackRegister(reg *ir.Gpr, code ir.Block, before int) (ir.Node, int, bool) {
	return t.trackRegister(reg, code, before, 0)
}

func (t *Tracker) trackRegister(reg *ir.Gpr, code ir.Block, before, depth int) (ir.Node, int, bool) {
	if reg.IsZero() {
		t.record(StepNotFound, reg, before, depth)
		return nil, -1, false
	}

	for {
		assign, pos, ok := ir.FindOperation(code, before, ir.OpAssign)
		if !ok {
			t.record(StepNotFound, reg, before, depth)
			return nil, -1, false
		}

		if target, ok := assign.Target().(*ir.Gpr); ok && target.Index == reg.Index {
			t.record(StepDefinition, assign, pos, depth)
			return assign.Value(), pos, true
		}

		t.record(StepSkip, assign, pos, depth)
		before = pos
	}
}

// =============================================================================
// Constant Buffer Tracking
// =============================================================================

// TrackCbuf resolves tracked to a constant buffer read with an immediate
// offset.
//
//	┌──────────────┬────────────────────────────────────────────────────┐
//	│  tracked     │  Behavior                                          │
//	├──────────────┼────────────────────────────────────────────────────┤
//	│  Cbuf        │  STOP - resolved iff Offset is an Immediate        │
//	│  Gpr         │  RZ fails; else track its definition and recurse   │
//	│  Operation   │  Operands left to right, first success wins        │
//	│  Conditional │  Body statements from the last one, inside body    │
//	│  other       │  STOP - not found                                  │
//	└──────────────┴────────────────────────────────────────────────────┘
//
// Inside a conditional body an assignment contributes its assigned value
// only, so the last write in the body wins.
//
// The outcome for a register is a function of the register, the block and
// the bound, so each such triple is resolved at most once per call. An
// expression reading the same register twice costs one resolution.
func (t *Tracker) TrackCbuf(tracked ir.Node, code ir.Block, before int) (*ir.Cbuf, bool) {
	w := &cbufWalk{Tracker: t, memo: make(map[regKey]cbufOutcome)}
	return w.track(tracked, code, before, 0)
}

// regKey identifies a register query within one block.
type regKey struct {
	block  *ir.Node // first statement; nil for an empty block
	size   int
	reg    uint32
	before int
}

type cbufOutcome struct {
	cbuf *ir.Cbuf
	ok   bool
}

// cbufWalk holds the state of one TrackCbuf call.
type cbufWalk struct {
	*Tracker
	memo map[regKey]cbufOutcome
}

func (w *cbufWalk) track(tracked ir.Node, code ir.Block, before, depth int) (*ir.Cbuf, bool) {
	w.record(StepTrack, tracked, before, depth)

	switch node := tracked.(type) {
	case *ir.Cbuf:
		if _, ok := node.Offset.(*ir.Immediate); ok {
			w.record(StepResolved, node, before, depth)
			return node, true
		}
		return nil, false

	case *ir.Gpr:
		if node.IsZero() {
			return nil, false
		}
		key := keyOf(code, node, before)
		if out, ok := w.memo[key]; ok {
			w.record(StepCached, node, before, depth+1)
			return out.cbuf, out.ok
		}
		var out cbufOutcome
		if source, pos, ok := w.trackRegister(node, code, before, depth+1); ok {
			out.cbuf, out.ok = w.track(source, code, pos, depth+1)
		}
		w.memo[key] = out
		return out.cbuf, out.ok

	case *ir.Operation:
		for _, operand := range node.Operands {
			if found, ok := w.track(operand, code, before, depth+1); ok {
				return found, true
			}
		}
		return nil, false

	case *ir.Conditional:
		// Continue inside the region itself: each body statement is tracked
		// against the statements preceding it in the body.
		body := node.Code
		for pos := len(body) - 1; pos >= 0; pos-- {
			stmt := body[pos]
			if op, ok := stmt.(*ir.Operation); ok && op.Code == ir.OpAssign {
				stmt = op.Value()
			}
			if found, ok := w.track(stmt, body, pos, depth+1); ok {
				return found, true
			}
		}
		return nil, false

	default:
		return nil, false
	}
}

func keyOf(code ir.Block, reg *ir.Gpr, before int) regKey {
	key := regKey{size: len(code), reg: reg.Index, before: before}
	if len(code) > 0 {
		key.block = &code[0]
	}
	return key
}

// =============================================================================
// Immediate Tracking
// =============================================================================

// TrackImmediate resolves the register tracked to the literal it was last
// assigned strictly before position before. Only one level of indirection
// is followed: r1 = 0x10 resolves, r1 = r2 does not.
//
// tracked must be a *ir.Gpr; anything else is a caller bug and panics.
func (t *Tracker) TrackImmediate(tracked ir.Node, code ir.Block, before int) (uint32, bool) {
	reg, ok := tracked.(*ir.Gpr)
	if !ok {
		panic(fmt.Sprintf("shadertrack: TrackImmediate requires a register, got %T", tracked))
	}
	t.record(StepTrack, reg, before, 0)

	source, pos, ok := t.trackRegister(reg, code, before, 1)
	if !ok {
		return 0, false
	}
	if imm, ok := source.(*ir.Immediate); ok {
		t.record(StepResolved, imm, pos, 0)
		return imm.Value, true
	}
	return 0, false
}

func (t *Tracker) record(kind StepKind, node ir.Node, pos, depth int) {
	if t.recorder == nil {
		return
	}
	t.recorder.RecordStep(Step{Kind: kind, Node: node, Pos: pos, Depth: depth})
}
