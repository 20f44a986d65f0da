package ir

import (
	"fmt"
	"strings"
)

func (o *Operation) String() string {
	if o.Code == OpAssign && len(o.Operands) == 2 {
		return o.Operands[0].String() + " = " + o.Operands[1].String()
	}
	return o.Code.String() + "(" + joinNodes(o.Operands, ", ") + ")"
}

func (g *Gpr) String() string {
	if g.IsZero() {
		return "RZ"
	}
	return fmt.Sprintf("r%d", g.Index)
}

func (c *Cbuf) String() string {
	return fmt.Sprintf("cbuf%d[%s]", c.Index, nodeString(c.Offset))
}

func (i *Immediate) String() string {
	return fmt.Sprintf("%#x", i.Value)
}

func (c *Conditional) String() string {
	if len(c.Code) == 0 {
		return "if (" + nodeString(c.Cond) + ") {}"
	}
	return "if (" + nodeString(c.Cond) + ") { " + joinNodes(c.Code, "; ") + " }"
}

func (p *Predicate) String() string {
	if p.Negated {
		return fmt.Sprintf("!p%d", p.Index)
	}
	return fmt.Sprintf("p%d", p.Index)
}

func (f *InternalFlag) String() string {
	return "flag:" + f.Flag.String()
}

func (c *Comment) String() string {
	return "// " + c.Text
}

func nodeString(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.String()
}

func joinNodes(nodes []Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = nodeString(n)
	}
	return strings.Join(parts, sep)
}
