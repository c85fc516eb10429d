package inertia

import (
	"net/http"

	"github.com/pthm/inertia/lib/naming"
)

// partialRequest is what the request headers say about a partial reload.
type partialRequest struct {
	component string
	only      naming.Set
	except    naming.Set
	reset     naming.Set
}

func parsePartial(r *http.Request) partialRequest {
	return partialRequest{
		component: PartialComponent(r),
		only:      naming.NewSet(PartialOnly(r)...),
		except:    naming.NewSet(PartialExcept(r)...),
		reset:     naming.NewSet(ResetProps(r)...),
	}
}

// isPartialFor reports whether the request is a partial reload of component.
func (p partialRequest) isPartialFor(component string) bool {
	return p.component != "" && p.component == component
}

// filter selects the declared props that should be evaluated for this
// response.
//
// A full visit drops every first-load-suppressing prop (Lazy, Optional,
// Defer). A partial reload keeps the full declared set, narrowed to the only
// list and then by the except list; empty lists don't restrict. Always props
// are spliced back from declared in both cases, replacing any filtered entry
// of the same name.
func (p partialRequest) filter(component string, declared Props) Props {
	out := make(Props, len(declared))

	if !p.isPartialFor(component) {
		for name, v := range declared {
			if prop, ok := policy(v); ok && prop.suppressOnFirstLoad {
				continue
			}
			out[name] = v
		}
	} else {
		for name, v := range declared {
			if p.only.Len() > 0 && !p.only.Has(name) {
				continue
			}
			if p.except.Len() > 0 && p.except.Has(name) {
				continue
			}
			out[name] = v
		}
	}

	for name, v := range declared {
		if prop, ok := policy(v); ok && prop.kind == KindAlways {
			out[name] = v
		}
	}
	return out
}
