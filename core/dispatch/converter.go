package dispatch

import "context"

// Value is the outcome of a conversion: either a produced value or absence.
// Absence is not an error; it means the segment did not match.
type Value struct {
	v  any
	ok bool
}

// None is the absent Value.
var None = Value{}

func Some(v any) Value {
	return Value{v: v, ok: true}
}

func (v Value) Get() (any, bool) {
	return v.v, v.ok
}

func (v Value) IsNone() bool {
	return !v.ok
}

// Converter turns one message segment into a typed value.
//
// Convert returns None when the segment does not describe a value of the
// converter's type, and an error only when something unexpected went wrong.
// Converters are built once per command and must be safe for concurrent use.
type Converter interface {
	Convert(ctx context.Context, c *Context, segment string) (Value, error)
	// Optional reports whether the argument may be left out.
	Optional() bool
	// Default is used when an optional argument has no segment.
	Default() Value
}

// GreedyConverter consumes segments until a conversion yields None or the
// input runs out, producing a []any. It is never optional; ListDefault
// replaces an empty result.
type GreedyConverter interface {
	Converter
	ListDefault() ([]any, bool)
}

// ChoiceConverter only accepts values found in Choices.
type ChoiceConverter interface {
	Converter
	Choices() []any
}
