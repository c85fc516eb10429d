package inertia

import "github.com/pthm/inertia/lib/naming"

// Props maps prop names to values. A value may be:
//   - any plain value, sent as-is
//   - a Source (Value, Func, Async), evaluated per response
//   - a Prop (Always, Lazy, Optional, Defer, Merge) carrying a policy
//   - a nested Props or map[string]any, resolved with the same rules
//
// Names are matched case-insensitively and camelCased on the wire.
type Props map[string]any

// Propser is implemented by page models that know how to present themselves
// as Props. It replaces reading exported fields through reflection:
//
//	func (p DashboardPage) InertiaProps() inertia.Props {
//	    return inertia.Props{"user": p.User, "stats": inertia.Defer(inertia.Func(p.loadStats))}
//	}
type Propser interface {
	InertiaProps() Props
}

// PropsOf returns the Props for a page model, or empty Props for nil.
func PropsOf(p Propser) Props {
	if p == nil {
		return Props{}
	}
	if props := p.InertiaProps(); props != nil {
		return props
	}
	return Props{}
}

// canonical returns a copy of props keyed by camelCased names.
func (p Props) canonical() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[naming.CamelCase(k)] = v
	}
	return out
}

// mergeBeneath returns base overlaid with p; p wins on name collisions.
// Both sides are compared by their camelCased names.
func (p Props) mergeBeneath(base Props) Props {
	out := make(Props, len(base)+len(p))
	for k, v := range base {
		out[naming.CamelCase(k)] = v
	}
	for k, v := range p {
		out[naming.CamelCase(k)] = v
	}
	return out
}

// policy returns the wrapped Prop for v, if any.
func policy(v any) (Prop, bool) {
	p, ok := v.(Prop)
	return p, ok
}
