package property

// Kind tags which variant a Value holds.
type Kind uint8

const (
	KindLiteral  Kind = iota // fixed value, resolved as is
	KindComputed             // expression, evaluated on every read
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindComputed:
		return "computed"
	default:
		return "unknown"
	}
}

// Expression is a declarative property value. Evaluate is called whenever the
// consuming component needs the current value; results are never cached here.
type Expression interface {
	Evaluate() (any, error)
}

// ExprFunc adapts a plain function to Expression.
type ExprFunc func() (any, error)

func (f ExprFunc) Evaluate() (any, error) { return f() }

// Value is a single property value definition: either a literal or a computed
// expression. The zero Value is a nil literal.
type Value struct {
	kind    Kind
	literal any
	expr    Expression
}

// Literal wraps v as a fixed value.
func Literal(v any) Value {
	return Value{kind: KindLiteral, literal: v}
}

// Computed wraps e as a declarative value.
func Computed(e Expression) Value {
	return Value{kind: KindComputed, expr: e}
}

// New builds a Value from a raw authored value. Zero-argument functions and
// Expressions become computed values; everything else is a literal.
func New(raw any) Value {
	switch v := raw.(type) {
	case Value:
		return v
	case Expression:
		return Computed(v)
	case func() (any, error):
		return Computed(ExprFunc(v))
	case func() any:
		return Computed(ExprFunc(func() (any, error) { return v(), nil }))
	default:
		return Literal(raw)
	}
}

func (v Value) Kind() Kind             { return v.kind }
func (v Value) IsComputed() bool       { return v.kind == KindComputed }
func (v Value) Literal() any           { return v.literal }
func (v Value) Expression() Expression { return v.expr }

// Resolve returns the literal itself, or a Getter for computed values.
func (v Value) Resolve() any {
	if v.kind == KindComputed {
		expr := v.expr
		return Getter(func() (any, error) {
			if expr == nil {
				return nil, nil
			}
			return expr.Evaluate()
		})
	}
	return v.literal
}
