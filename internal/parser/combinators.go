package parser

import "github.com/scriptlex/rbparse/internal/token"

// Rule is implemented by every grammar rule usable with the generic
// combinators below. StartsNow is a cheap, allocation-free lookahead
// that decides whether this rule may apply at the cursor; Parse performs
// the actual (possibly backtracking) parse.
type Rule[T any] interface {
	StartsNow(p *Parser) bool
	Parse(p *Parser) (T, *ParseError)
}

// ruleFunc adapts a pair of plain functions into a Rule[T], the common
// case where a rule doesn't need its own named type.
type ruleFunc[T any] struct {
	starts func(p *Parser) bool
	parse  func(p *Parser) (T, *ParseError)
}

func (r ruleFunc[T]) StartsNow(p *Parser) bool             { return r.starts(p) }
func (r ruleFunc[T]) Parse(p *Parser) (T, *ParseError)     { return r.parse(p) }

// RuleOf builds an ad hoc Rule[T] from a starts-now predicate and a parse
// function, for call sites that don't want to declare a named type.
func RuleOf[T any](starts func(p *Parser) bool, parse func(p *Parser) (T, *ParseError)) Rule[T] {
	return ruleFunc[T]{starts: starts, parse: parse}
}

// OneOf tries, in order, each rule whose StartsNow reports true. A
// branch that fails with a required error is surfaced directly; one that
// fails with a lookahead error is rolled back to its checkpoint and the
// next rule is tried — this mirrors original_source's one_of.rs. The
// rules whose StartsNow reported false are then asked to Parse anyway in
// order, so back-to-back lookahead-style rules that don't implement a
// cheap StartsNow still compose. If nothing succeeds, every failure is
// aggregated into a OneOfErr.
func OneOf[T any](p *Parser, rules ...Rule[T]) (T, *ParseError) {
	var zero T
	var errs []*ParseError
	start := p.current().Span

	for _, r := range rules {
		if !r.StartsNow(p) {
			continue
		}
		cp := p.Mark()
		v, err := r.Parse(p)
		if err == nil {
			return v, nil
		}
		if !err.IsLookahead() {
			return zero, err
		}
		p.ResetTo(cp)
		errs = append(errs, err)
	}

	for _, r := range rules {
		if r.StartsNow(p) {
			continue // already tried above
		}
		cp := p.Mark()
		v, err := r.Parse(p)
		if err == nil {
			return v, nil
		}
		p.ResetTo(cp)
		errs = append(errs, err)
	}

	return zero, NewOneOfError(start, errs)
}

// AllOf runs a fixed sequence of heterogeneous steps via the supplied
// closures, stopping at the first failure and wrapping it in a SeqErr
// labeled with the sequence's name and the failing step's index. Per
// NewSeqError, a step-0 failure keeps whatever Lookahead value it
// already had (the sequence hasn't committed to anything yet), while a
// failure at any later index is promoted to required. Because Go
// generics can't express a variadic heterogeneous tuple, AllOf takes
// []func(p *Parser) *ParseError — callers assign results to locals
// captured by each closure.
func AllOf(p *Parser, label string, steps ...func(p *Parser) *ParseError) *ParseError {
	for i, step := range steps {
		if err := step(p); err != nil {
			return NewSeqError(label, i, err)
		}
	}
	return nil
}

// SeparatedBy parses zero or more T, calling sep after each item to
// consume a separator and stopping when sep reports false. An empty
// result is returned whenever item.StartsNow is false at entry; an item
// whose Parse fails ends the list with a SeqErr.
func SeparatedBy[T any](p *Parser, item Rule[T], sep func(p *Parser) bool) ([]T, *ParseError) {
	var out []T
	if !item.StartsNow(p) {
		return out, nil
	}
	for {
		v, err := item.Parse(p)
		if err != nil {
			return out, NewSeqError("separated-by", len(out), err)
		}
		out = append(out, v)
		if !sep(p) {
			return out, nil
		}
	}
}

// AtLeastOnce parses one or more T with no separator, stopping as soon
// as item.StartsNow reports false. It fails if the first Parse fails
// (StartsNow having already promised it would apply).
func AtLeastOnce[T any](p *Parser, item Rule[T]) ([]T, *ParseError) {
	var out []T
	for item.StartsNow(p) {
		v, err := item.Parse(p)
		if err != nil {
			return out, NewSeqError("at-least-once", len(out), err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return out, NewTokenError("at least one element", p.current(), true)
	}
	return out, nil
}

// Maybe parses T if item.StartsNow reports true, returning (zero, nil,
// false) otherwise — never a lookahead failure, since absence is a valid
// outcome for an optional rule.
func Maybe[T any](p *Parser, item Rule[T]) (T, *ParseError, bool) {
	var zero T
	if !item.StartsNow(p) {
		return zero, nil, false
	}
	v, err := item.Parse(p)
	if err != nil {
		return zero, err, true
	}
	return v, nil, true
}

// Optional is a convenience name for Maybe, dropping the found flag for
// call sites that only care about the value (nil on absence).
func Optional[T any](p *Parser, item Rule[T]) (*T, *ParseError) {
	v, err, found := Maybe(p, item)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &v, nil
}

// Choice is a readability alias for OneOf, kept for call sites that read
// more naturally as "pick one of these alternatives" than "one of".
func Choice[T any](p *Parser, rules ...Rule[T]) (T, *ParseError) {
	return OneOf(p, rules...)
}

// BetweenSpan is the pair of delimiter spans Between reports alongside
// the wrapped value.
type BetweenSpan struct {
	Open, Close token.Span
}

// Between parses open, then inner, then close, returning inner's value
// and the spans of both delimiter tokens — the common "(...)"/"[...]"/
// "{...}" wrapper shape.
func Between[T any](p *Parser, openKind, closeKind token.Kind, inner func(p *Parser) (T, *ParseError)) (T, BetweenSpan, *ParseError) {
	var zero T
	openTok, err := p.expect(openKind, false)
	if err != nil {
		return zero, BetweenSpan{}, err
	}
	v, err := inner(p)
	if err != nil {
		return zero, BetweenSpan{}, err
	}
	closeTok, err := p.expect(closeKind, false)
	if err != nil {
		return zero, BetweenSpan{}, err
	}
	return v, BetweenSpan{Open: openTok.Span, Close: closeTok.Span}, nil
}
