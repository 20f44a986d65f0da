package shadertrack_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/mpyw/shadertrack"
	"github.com/mpyw/shadertrack/internal/debug"
	"github.com/mpyw/shadertrack/ir"
)

const propRegisters = 4

// buildBlock decodes seeds into one statement each. Registers are drawn from
// a small set so that assignments collide often.
func buildBlock(seeds []uint32, nested bool) ir.Block {
	code := make(ir.Block, 0, len(seeds))
	for _, s := range seeds {
		code = append(code, buildStatement(s, 0, nested))
	}
	return code
}

func buildStatement(s uint32, depth int, nested bool) ir.Node {
	target := ir.Reg((s >> 3) % propRegisters)
	if (s>>5)%8 == 0 {
		target = ir.RZ()
	}
	val := s >> 8
	src := ir.Reg((s >> 10) % propRegisters)

	switch s % 6 {
	case 0:
		return ir.Assign(target, ir.Imm(val))
	case 1:
		return ir.Assign(target, src)
	case 2:
		return ir.Assign(target, ir.ConstBuffer(val%4, ir.Imm(val)))
	case 3:
		return ir.Assign(target, ir.Op(ir.OpIAdd, src, ir.Imm(val)))
	case 4:
		if !nested || depth >= 3 {
			return ir.Op(ir.OpExit)
		}
		return ir.If(ir.Pred(val%7, false),
			buildStatement(s/7, depth+1, nested),
			buildStatement(s/13, depth+1, nested),
		)
	default:
		return &ir.Comment{Text: "seed"}
	}
}

// lastLiteral is the flat-block reference for TrackImmediate.
func lastLiteral(code ir.Block, reg uint32, before int) (uint32, bool) {
	for pos := before - 1; pos >= 0; pos-- {
		op, ok := code[pos].(*ir.Operation)
		if !ok || op.Code != ir.OpAssign {
			continue
		}
		if target, ok := op.Operands[0].(*ir.Gpr); ok && target.Index == reg {
			imm, ok := op.Operands[1].(*ir.Immediate)
			if !ok {
				return 0, false
			}
			return imm.Value, true
		}
	}
	return 0, false
}

func TestTrackerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.MaxSize = 40
	properties := gopter.NewProperties(parameters)

	properties.Property("trackers terminate and stay before the bound", prop.ForAll(
		func(seeds []uint32) bool {
			code := buildBlock(seeds, true)
			for before := 0; before <= len(code); before++ {
				for r := uint32(0); r < propRegisters; r++ {
					if _, pos, ok := shadertrack.TrackRegister(ir.Reg(r), code, before); ok && pos >= before {
						return false
					}
					if cbuf, ok := shadertrack.TrackCbuf(ir.Reg(r), code, before); ok {
						if _, isImm := cbuf.Offset.(*ir.Immediate); !isImm {
							return false
						}
					}
					shadertrack.TrackImmediate(ir.Reg(r), code, before)
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt32()),
	))

	properties.Property("zero register never resolves", prop.ForAll(
		func(seeds []uint32) bool {
			code := buildBlock(seeds, true)
			for before := 0; before <= len(code); before++ {
				if _, _, ok := shadertrack.TrackRegister(ir.RZ(), code, before); ok {
					return false
				}
				if _, ok := shadertrack.TrackCbuf(ir.RZ(), code, before); ok {
					return false
				}
				if _, ok := shadertrack.TrackImmediate(ir.RZ(), code, before); ok {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt32()),
	))

	properties.Property("register search visits each statement at most once", prop.ForAll(
		func(seeds []uint32, r uint32) bool {
			code := buildBlock(seeds, true)
			collector := debug.NewCollector()
			tracker := shadertrack.New(collector)

			tracker.TrackRegister(ir.Reg(r%propRegisters), code, len(code))
			hits := collector.Count(shadertrack.StepSkip) + collector.Count(shadertrack.StepDefinition)
			return hits <= len(code)
		},
		gen.SliceOf(gen.UInt32()),
		gen.UInt32(),
	))

	properties.Property("cbuf search resolves each register and bound at most once", prop.ForAll(
		func(seeds []uint32, r uint32) bool {
			code := buildBlock(seeds, true)
			collector := debug.NewCollector()
			tracker := shadertrack.New(collector)

			tracker.TrackCbuf(ir.Reg(r%propRegisters), code, len(code))
			searches := collector.Count(shadertrack.StepDefinition) + collector.Count(shadertrack.StepNotFound)
			return searches <= propRegisters*(code.StatementCount()+1)
		},
		gen.SliceOf(gen.UInt32()),
		gen.UInt32(),
	))

	properties.Property("flat blocks resolve the most recent literal", prop.ForAll(
		func(seeds []uint32, r uint32) bool {
			code := buildBlock(seeds, false)
			reg := r % propRegisters
			for before := 0; before <= len(code); before++ {
				got, ok := shadertrack.TrackImmediate(ir.Reg(reg), code, before)
				want, wantOK := lastLiteral(code, reg, before)
				if ok != wantOK || got != want {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt32()),
		gen.UInt32(),
	))

	properties.TestingRun(t)
}
