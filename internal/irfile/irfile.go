// Package irfile decodes shader IR fixtures written in YAML.
//
// A fixture holds one top-level block and the queries to run against it:
//
//	code:
//	  - assign: [r3, {cbuf: 0, offset: 4}]
//	  - assign: [r4, r3]
//	  - if: p0
//	    then:
//	      - assign: [r5, {op: IAdd, args: [r4, 0x10]}]
//	queries:
//	  - cbuf: r4
//	    at: 2
//	  - immediate: r5
//
// Operands are written as scalars:
//
//	r<N>            register
//	RZ              zero register
//	p<N>, "!p<N>"   predicate (quote the negated form)
//	zero, sign,     internal flags
//	carry, overflow
//	<integer>       immediate, decimal or 0x-prefixed
//
// and nodes with structure as mappings: assign, op/args, cbuf/offset,
// if/then and comment.
package irfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mpyw/shadertrack/ir"
)

// File is a decoded fixture.
type File struct {
	Code    ir.Block
	Queries []Query
}

type document struct {
	Code    yaml.Node `yaml:"code"`
	Queries yaml.Node `yaml:"queries"`
}

// Load reads and decodes the fixture at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a fixture.
func Parse(data []byte) (*File, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	code, err := decodeBlock(&doc.Code)
	if err != nil {
		return nil, err
	}

	f := &File{Code: code}
	if doc.Queries.Kind == 0 {
		return f, nil
	}
	if doc.Queries.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: queries must be a sequence", doc.Queries.Line)
	}
	for i, item := range doc.Queries.Content {
		q, err := decodeQuery(item, len(code))
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		f.Queries = append(f.Queries, q)
	}
	return f, nil
}

// =============================================================================
// Queries
// =============================================================================

func decodeQuery(n *yaml.Node, codeLen int) (Query, error) {
	if n.Kind != yaml.MappingNode {
		return Query{}, fmt.Errorf("line %d: query must be a mapping", n.Line)
	}

	var (
		kind  QueryKind
		value *yaml.Node
		at    *yaml.Node
		count int
	)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "cbuf":
			kind, value, count = QueryCbuf, val, count+1
		case "immediate":
			kind, value, count = QueryImmediate, val, count+1
		case "register":
			kind, value, count = QueryRegister, val, count+1
		case "at":
			at = val
		default:
			return Query{}, fmt.Errorf("line %d: unknown query key %q", key.Line, key.Value)
		}
	}
	if count != 1 {
		return Query{}, fmt.Errorf("line %d: want exactly one of cbuf, immediate, register; got %d", n.Line, count)
	}

	node, err := decodeNode(value)
	if err != nil {
		return Query{}, err
	}
	if kind != QueryCbuf {
		if _, ok := node.(*ir.Gpr); !ok {
			return Query{}, fmt.Errorf("line %d: %s query needs a register, got %s", value.Line, kind, node)
		}
	}

	before := codeLen
	if at != nil {
		if before, err = strconv.Atoi(at.Value); err != nil {
			return Query{}, fmt.Errorf("line %d: bad at %q", at.Line, at.Value)
		}
	}
	if before < 0 || before > codeLen {
		return Query{}, fmt.Errorf("line %d: at %d outside block of %d statements", value.Line, before, codeLen)
	}

	return Query{Kind: kind, Value: node, Before: before, Line: value.Line}, nil
}

// =============================================================================
// Nodes
// =============================================================================

func decodeBlock(n *yaml.Node) (ir.Block, error) {
	if n.Kind == 0 {
		return ir.Block{}, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: block must be a sequence", n.Line)
	}
	code := make(ir.Block, 0, len(n.Content))
	for _, item := range n.Content {
		node, err := decodeNode(item)
		if err != nil {
			return nil, err
		}
		code = append(code, node)
	}
	return code, nil
}

func decodeNodes(n *yaml.Node) ([]ir.Node, error) {
	block, err := decodeBlock(n)
	if err != nil {
		return nil, err
	}
	return []ir.Node(block), nil
}

func decodeNode(n *yaml.Node) (ir.Node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.MappingNode:
		return decodeMapping(n)
	default:
		return nil, fmt.Errorf("line %d: expected operand or mapping", n.Line)
	}
}

func decodeScalar(n *yaml.Node) (ir.Node, error) {
	s := n.Value
	switch {
	case s == "RZ":
		return ir.RZ(), nil
	case strings.HasPrefix(s, "r"):
		index, err := parseIndex(n, s[1:])
		if err != nil {
			return nil, err
		}
		return ir.Reg(index), nil
	case strings.HasPrefix(s, "!p"):
		index, err := parseIndex(n, s[2:])
		if err != nil {
			return nil, err
		}
		return ir.Pred(index, true), nil
	case strings.HasPrefix(s, "p"):
		index, err := parseIndex(n, s[1:])
		if err != nil {
			return nil, err
		}
		return ir.Pred(index, false), nil
	}

	if flag, ok := ir.ParseFlag(s); ok {
		return &ir.InternalFlag{Flag: flag}, nil
	}

	value, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("line %d: unknown operand %q", n.Line, s)
	}
	return ir.Imm(uint32(value)), nil
}

func parseIndex(n *yaml.Node, digits string) (uint32, error) {
	index, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("line %d: bad index in %q", n.Line, n.Value)
	}
	return uint32(index), nil
}

func decodeMapping(n *yaml.Node) (ir.Node, error) {
	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		fields[n.Content[i].Value] = n.Content[i+1]
	}

	switch {
	case fields["assign"] != nil:
		return decodeAssign(fields["assign"])
	case fields["op"] != nil:
		return decodeOperation(fields["op"], fields["args"])
	case fields["cbuf"] != nil:
		return decodeCbuf(n, fields["cbuf"], fields["offset"])
	case fields["if"] != nil:
		return decodeConditional(fields["if"], fields["then"])
	case fields["comment"] != nil:
		return &ir.Comment{Text: fields["comment"].Value}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown node mapping", n.Line)
	}
}

func decodeAssign(n *yaml.Node) (ir.Node, error) {
	if n.Kind != yaml.SequenceNode || len(n.Content) != 2 {
		return nil, fmt.Errorf("line %d: assign needs [target, value]", n.Line)
	}
	target, err := decodeNode(n.Content[0])
	if err != nil {
		return nil, err
	}
	value, err := decodeNode(n.Content[1])
	if err != nil {
		return nil, err
	}
	return ir.Assign(target, value), nil
}

func decodeOperation(name, args *yaml.Node) (ir.Node, error) {
	code, ok := ir.ParseOperationCode(name.Value)
	if !ok {
		return nil, fmt.Errorf("line %d: unknown operation %q", name.Line, name.Value)
	}
	var operands []ir.Node
	if args != nil {
		var err error
		if operands, err = decodeNodes(args); err != nil {
			return nil, err
		}
	}
	if code == ir.OpAssign && len(operands) != 2 {
		return nil, fmt.Errorf("line %d: Assign needs 2 operands, got %d", name.Line, len(operands))
	}
	return ir.Op(code, operands...), nil
}

func decodeCbuf(n, index, offset *yaml.Node) (ir.Node, error) {
	if offset == nil {
		return nil, fmt.Errorf("line %d: cbuf needs an offset", n.Line)
	}
	idx, err := strconv.ParseUint(index.Value, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("line %d: bad cbuf index %q", index.Line, index.Value)
	}
	off, err := decodeNode(offset)
	if err != nil {
		return nil, err
	}
	return ir.ConstBuffer(uint32(idx), off), nil
}

func decodeConditional(guard, then *yaml.Node) (ir.Node, error) {
	cond, err := decodeNode(guard)
	if err != nil {
		return nil, err
	}
	var body ir.Block
	if then != nil {
		if body, err = decodeBlock(then); err != nil {
			return nil, err
		}
	}
	return &ir.Conditional{Cond: cond, Code: body}, nil
}
