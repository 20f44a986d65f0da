package debug

import (
	"fmt"
	"strings"

	"github.com/mpyw/shadertrack"
)

// FormatTrace returns an indented rendering of steps, one line per step.
func FormatTrace(steps []shadertrack.Step) string {
	if len(steps) == 0 {
		return ""
	}

	var buf strings.Builder
	for _, s := range steps {
		buf.WriteString("  ")
		if s.Depth > 0 {
			buf.WriteString(strings.Repeat("   ", s.Depth-1))
			buf.WriteString("└─ ")
		}
		buf.WriteString(FormatStep(s))
		buf.WriteByte('\n')
	}
	return buf.String()
}

// FormatStep renders a single step without indentation.
func FormatStep(s shadertrack.Step) string {
	switch s.Kind {
	case shadertrack.StepTrack, shadertrack.StepNotFound, shadertrack.StepCached:
		return fmt.Sprintf("%s %s before %d", s.Kind, s.Node, s.Pos)
	case shadertrack.StepSkip, shadertrack.StepDefinition:
		return fmt.Sprintf("%s %s at %d", s.Kind, s.Node, s.Pos)
	default:
		return fmt.Sprintf("%s %s", s.Kind, s.Node)
	}
}
