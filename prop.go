package inertia

import "context"

// Outcome is the result delivered by an asynchronous prop producer.
type Outcome struct {
	Value any
	Err   error
}

type sourceKind uint8

const (
	sourceValue sourceKind = iota
	sourceFunc
	sourceAsync
)

// Source is the value behind a prop: a plain value, a synchronous producer,
// or an asynchronous producer. The variant is fixed at construction.
//
// A Source placed directly in Props is evaluated on every response where the
// prop survives partial-reload filtering:
//
//	inertia.Props{
//	    "user":  inertia.Func(func(ctx context.Context) (any, error) { return users.Current(ctx) }),
//	    "stats": inertia.Async(statsFeed),
//	}
type Source struct {
	kind  sourceKind
	value any
	fn    func(context.Context) (any, error)
	async func(context.Context) <-chan Outcome
}

// Value wraps a plain value as a Source.
func Value(v any) Source {
	return Source{kind: sourceValue, value: v}
}

// Func wraps a synchronous producer. The engine runs it on its own goroutine
// so slow producers don't hold up sibling props.
func Func(fn func(ctx context.Context) (any, error)) Source {
	return Source{kind: sourceFunc, fn: fn}
}

// Async wraps an asynchronous producer. It is invoked once and the engine
// waits for the first Outcome on the returned channel.
func Async(fn func(ctx context.Context) <-chan Outcome) Source {
	return Source{kind: sourceAsync, async: fn}
}

// invoke evaluates the source. Must be called at most once per response.
func (s Source) invoke(ctx context.Context) (any, error) {
	switch s.kind {
	case sourceFunc:
		if s.fn == nil {
			return nil, nil
		}
		return s.fn(ctx)
	case sourceAsync:
		if s.async == nil {
			return nil, nil
		}
		ch := s.async(ctx)
		if ch == nil {
			return nil, nil
		}
		select {
		case out, ok := <-ch:
			if !ok {
				return nil, nil
			}
			return out.Value, out.Err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	default:
		return s.value, nil
	}
}

// Kind identifies how a wrapped prop takes part in a response.
type Kind uint8

const (
	// KindAlways props are sent on every response, ignoring only/except.
	KindAlways Kind = iota + 1
	// KindLazy props are only sent when a partial reload asks for them.
	KindLazy
	// KindOptional is the newer name for KindLazy.
	KindOptional
	// KindDefer props are fetched by the client after the first render.
	KindDefer
	// KindMerge props are merged into client-side state instead of replacing it.
	KindMerge
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAlways:
		return "always"
	case KindLazy:
		return "lazy"
	case KindOptional:
		return "optional"
	case KindDefer:
		return "defer"
	case KindMerge:
		return "merge"
	default:
		return "unknown"
	}
}

// DefaultGroup is the deferred-prop group used when none is given.
const DefaultGroup = "default"

// Prop is a prop with an inclusion or merge policy attached.
//
// Build one with Always, Lazy, Optional, Defer or Merge. Props that carry no
// policy don't need a wrapper: put the plain value or Source in Props.
type Prop struct {
	kind                Kind
	src                 Source
	suppressOnFirstLoad bool
	mergeable           bool
	group               string
}

// Always marks a prop that is included on every response, including partial
// reloads that don't name it.
func Always(src Source) Prop {
	return Prop{kind: KindAlways, src: src}
}

// Lazy marks a prop that is never sent on a first visit. It is evaluated only
// when a partial reload requests it.
func Lazy(src Source) Prop {
	return Prop{kind: KindLazy, src: src, suppressOnFirstLoad: true}
}

// Optional is Lazy under the name used by current Inertia adapters.
func Optional(src Source) Prop {
	return Prop{kind: KindOptional, src: src, suppressOnFirstLoad: true}
}

// Defer marks a prop the client loads with a follow-up partial reload after
// the first render. Props sharing a group are fetched together; the group
// defaults to DefaultGroup.
//
//	"comments": inertia.Defer(inertia.Func(loadComments)),
//	"stats":    inertia.Defer(inertia.Func(loadStats), "sidebar"),
func Defer(src Source, group ...string) Prop {
	g := DefaultGroup
	if len(group) > 0 && group[0] != "" {
		g = group[0]
	}
	return Prop{kind: KindDefer, src: src, suppressOnFirstLoad: true, group: g}
}

// Merge marks a prop whose value the client merges with what it already has
// (e.g. appending a page of results) unless the request resets it.
func Merge(src Source) Prop {
	return Prop{kind: KindMerge, src: src, mergeable: true}
}

// Merge returns a copy of p that the client merges instead of replacing.
// Typically chained on Defer:
//
//	"feed": inertia.Defer(inertia.Func(nextPage)).Merge(),
func (p Prop) Merge() Prop {
	p.mergeable = true
	return p
}

// Kind returns the prop's kind.
func (p Prop) Kind() Kind {
	return p.kind
}

// Group returns the deferred group, or "" for props that aren't deferred.
func (p Prop) Group() string {
	return p.group
}

// IsMergeable reports whether the prop contributes to the merge directive.
func (p Prop) IsMergeable() bool {
	return p.mergeable
}

// SuppressesFirstLoad reports whether the prop is left out of full visits.
func (p Prop) SuppressesFirstLoad() bool {
	return p.suppressOnFirstLoad
}
