// Package convert holds the argument converters used by dispatch commands.
//
// Every converter returns dispatch.None when a segment does not describe a
// value of its type, and never reports lookup failures as errors.
package convert

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"GoBotExt/core/dispatch"
)

var (
	userMention    = regexp.MustCompile(`^<@!?([0-9]+)>$`)
	roleMention    = regexp.MustCompile(`^<@&([0-9]+)>$`)
	channelMention = regexp.MustCompile(`^<#([0-9]+)>$`)
	snowflake      = regexp.MustCompile(`^([0-9]+)$`)
	snowflakePair  = regexp.MustCompile(`^([0-9]+)-([0-9]+)$`)
	messageLink    = regexp.MustCompile(`([0-9]+)/([0-9]+)/([0-9]+)$`)
)

// submatch returns the first capture group of pattern in segment.
func submatch(pattern *regexp.Regexp, segment string) (string, bool) {
	m := pattern.FindStringSubmatch(segment)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// idPair splits an "outerid-innerid" segment.
func idPair(segment string) (outer, inner string, ok bool) {
	m := snowflakePair.FindStringSubmatch(segment)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

type Option func(*base)

// Optional lets the argument be left out.
func Optional() Option {
	return func(b *base) { b.optional = true }
}

// WithDefault sets the value used when the argument is left out. It implies Optional.
func WithDefault(v any) Option {
	return func(b *base) {
		b.optional = true
		b.def = dispatch.Some(v)
	}
}

type base struct {
	optional bool
	def      dispatch.Value
}

func newBase(opts []Option) base {
	var b base
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b base) Optional() bool         { return b.optional }
func (b base) Default() dispatch.Value { return b.def }

// NumberConverter parses a numeric literal into a float64.
type NumberConverter struct{ base }

func Number(opts ...Option) *NumberConverter {
	return &NumberConverter{newBase(opts)}
}

func (*NumberConverter) Convert(_ context.Context, _ *dispatch.Context, segment string) (dispatch.Value, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(segment), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return dispatch.None, nil
	}
	return dispatch.Some(n), nil
}

// StringConverter passes the segment through unchanged.
type StringConverter struct{ base }

func String(opts ...Option) *StringConverter {
	return &StringConverter{newBase(opts)}
}

func (*StringConverter) Convert(_ context.Context, _ *dispatch.Context, segment string) (dispatch.Value, error) {
	return dispatch.Some(segment), nil
}
