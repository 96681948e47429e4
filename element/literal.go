package element

import (
	"iter"

	"github.com/gofhir/elementmodel/primitive"
)

// literalNode is a standalone node carrying only a scalar. Expression
// evaluators use it to lift literal operands into the node domain.
type literalNode struct {
	name  string
	value primitive.Value
	typ   string
}

// Literal creates a nameless, childless node carrying the given scalar,
// suitable as an operand to the collection operators.
func Literal(v primitive.Value) Node {
	return literalNode{value: v, typ: literalType(v)}
}

// NamedLiteral creates a literal node with an element name, useful in tests
// and when synthesizing pseudo-children.
func NamedLiteral(name string, v primitive.Value) Node {
	return literalNode{name: name, value: v, typ: literalType(v)}
}

func literalType(v primitive.Value) string {
	switch v.(type) {
	case primitive.Boolean:
		return "boolean"
	case primitive.Integer:
		return "integer"
	case primitive.Decimal:
		return "decimal"
	case primitive.String:
		return "string"
	case primitive.Date:
		return "date"
	case primitive.Time:
		return "time"
	case primitive.DateTime:
		return "dateTime"
	}
	return ""
}

func (n literalNode) Name() string { return n.name }

func (n literalNode) Value() primitive.Value { return n.value }

func (n literalNode) InstanceType() string { return n.typ }

func (n literalNode) Location() string { return n.name }

func (n literalNode) ShortPath() string { return n.name }

func (n literalNode) Children(names ...string) iter.Seq[Node] {
	return func(yield func(Node) bool) {}
}

// Verify interface compliance
var _ Node = literalNode{}
