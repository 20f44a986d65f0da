package irfile

import (
	"fmt"

	"github.com/mpyw/shadertrack"
	"github.com/mpyw/shadertrack/ir"
)

// QueryKind selects the tracker a Query runs.
type QueryKind int

const (
	QueryCbuf QueryKind = iota
	QueryImmediate
	QueryRegister
)

func (k QueryKind) String() string {
	switch k {
	case QueryCbuf:
		return "cbuf"
	case QueryImmediate:
		return "immediate"
	case QueryRegister:
		return "register"
	default:
		return fmt.Sprintf("QueryKind(%d)", int(k))
	}
}

// Query asks where Value, observed at position Before of the top-level
// block, comes from.
type Query struct {
	Kind   QueryKind
	Value  ir.Node
	Before int
	Line   int
}

// Result is the answer to a Query.
type Result struct {
	Query Query
	Found bool
	// Node is the constant buffer for cbuf queries and the defining
	// expression for register queries.
	Node ir.Node
	// Value is the literal for immediate queries.
	Value uint32
	// Pos is where the defining assignment was found for register queries.
	Pos int
}

func (r Result) String() string {
	head := fmt.Sprintf("%s %s @%d: ", r.Query.Kind, r.Query.Value, r.Query.Before)
	if !r.Found {
		return head + "not found"
	}
	switch r.Query.Kind {
	case QueryImmediate:
		return head + fmt.Sprintf("%#x", r.Value)
	case QueryRegister:
		return head + fmt.Sprintf("%s at %d", r.Node, r.Pos)
	default:
		return head + r.Node.String()
	}
}

// Run answers q against code.
func (q Query) Run(t *shadertrack.Tracker, code ir.Block) Result {
	res := Result{Query: q, Pos: -1}
	switch q.Kind {
	case QueryCbuf:
		if cbuf, ok := t.TrackCbuf(q.Value, code, q.Before); ok {
			res.Found, res.Node = true, cbuf
		}
	case QueryImmediate:
		res.Value, res.Found = t.TrackImmediate(q.Value, code, q.Before)
	case QueryRegister:
		res.Node, res.Pos, res.Found = t.TrackRegister(q.Value.(*ir.Gpr), code, q.Before)
	}
	return res
}

// Run answers every query of f in order.
func (f *File) Run(t *shadertrack.Tracker) []Result {
	results := make([]Result, 0, len(f.Queries))
	for _, q := range f.Queries {
		results = append(results, q.Run(t, f.Code))
	}
	return results
}
