package convert

import (
	"context"

	"GoBotExt/core/dispatch"

	"github.com/thoas/go-funk"
)

type SpoiledOption func(*SpoiledConverter)

// ListDefault is used when no segment converts.
func ListDefault(values ...any) SpoiledOption {
	return func(s *SpoiledConverter) {
		s.listDefault = append([]any{}, values...)
		s.hasDefault = true
	}
}

// SpoiledConverter makes an argument greedy: the dispatcher keeps feeding it
// segments until the wrapped converter yields nothing, and the argument
// becomes a []any. Convert itself handles a single segment.
//
// Be careful with converters that never fail, such as String: they swallow
// the rest of the message.
type SpoiledConverter struct {
	inner       dispatch.Converter
	listDefault []any
	hasDefault  bool
}

func Spoiled(inner dispatch.Converter, opts ...SpoiledOption) *SpoiledConverter {
	s := &SpoiledConverter{inner: inner}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SpoiledConverter) Convert(ctx context.Context, c *dispatch.Context, segment string) (dispatch.Value, error) {
	return s.inner.Convert(ctx, c, segment)
}

// Optional is always false; an empty match is an empty list.
func (*SpoiledConverter) Optional() bool { return false }

func (*SpoiledConverter) Default() dispatch.Value { return dispatch.None }

func (s *SpoiledConverter) ListDefault() ([]any, bool) {
	if !s.hasDefault {
		return nil, false
	}
	return append([]any{}, s.listDefault...), true
}

// OneofConverter only accepts converted values listed in choices. Numeric
// choices are compared as float64, the type Number produces.
type OneofConverter struct {
	inner   dispatch.Converter
	choices []any
}

func Oneof(inner dispatch.Converter, choices ...any) *OneofConverter {
	return &OneofConverter{inner: inner, choices: funk.Map(choices, asFloat).([]any)}
}

func asFloat(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	}
	return v
}

func (o *OneofConverter) Convert(ctx context.Context, c *dispatch.Context, segment string) (dispatch.Value, error) {
	value, err := o.inner.Convert(ctx, c, segment)
	if err != nil {
		return dispatch.None, err
	}
	v, ok := value.Get()
	if !ok || !funk.Contains(o.choices, asFloat(v)) {
		return dispatch.None, nil
	}
	return value, nil
}

func (*OneofConverter) Optional() bool { return false }

func (*OneofConverter) Default() dispatch.Value { return dispatch.None }

func (o *OneofConverter) Choices() []any {
	return append([]any(nil), o.choices...)
}
