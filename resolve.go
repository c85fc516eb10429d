package inertia

import (
	"context"
	"reflect"
	"sync"

	"github.com/pthm/inertia/lib/naming"
	"golang.org/x/sync/errgroup"
)

// resolveProps evaluates every entry of props and returns the wire-ready
// values keyed by camelCased name.
//
// Entries are independent: each one that needs evaluation runs on its own
// goroutine and the call returns once all of them, including nested
// mappings, have finished. The first failure cancels the context handed to
// the remaining producers and is returned as a *PropError.
func resolveProps(ctx context.Context, props Props) (map[string]any, error) {
	return resolveMap(ctx, props, nil)
}

// ancestors is the chain of mappings being resolved above the current one.
type ancestors struct {
	ptr    uintptr
	parent *ancestors
}

func (a *ancestors) contains(ptr uintptr) bool {
	for ; a != nil; a = a.parent {
		if a.ptr == ptr {
			return true
		}
	}
	return false
}

func resolveMap(ctx context.Context, props Props, seen *ancestors) (map[string]any, error) {
	out := make(map[string]any, len(props))
	seen = &ancestors{ptr: reflect.ValueOf(props).Pointer(), parent: seen}

	// Plain entries are copied before any goroutine starts writing to out.
	pending := make(map[string]any)
	for name, v := range props {
		key := naming.CamelCase(name)
		if needsEvaluation(v) {
			pending[key] = v
			continue
		}
		out[key] = v
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for key, v := range pending {
		g.Go(func() error {
			resolved, err := resolveValue(gctx, v, seen)
			if err != nil {
				return wrapPropError(key, err)
			}
			mu.Lock()
			out[key] = resolved
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// resolveValue unwraps policy wrappers, invokes producers and recurses into
// mappings. Each Source is invoked exactly once here.
func resolveValue(ctx context.Context, v any, seen *ancestors) (any, error) {
	switch val := v.(type) {
	case Prop:
		return resolveSource(ctx, val.src, seen)
	case Source:
		return resolveSource(ctx, val, seen)
	case Props:
		return resolveNested(ctx, val, seen)
	case map[string]any:
		return resolveNested(ctx, Props(val), seen)
	default:
		return v, nil
	}
}

func resolveSource(ctx context.Context, src Source, seen *ancestors) (any, error) {
	result, err := src.invoke(ctx)
	if err != nil {
		return nil, err
	}
	switch nested := result.(type) {
	case Props:
		if nested == nil {
			return result, nil
		}
		return resolveNested(ctx, nested, seen)
	case map[string]any:
		if nested == nil {
			return result, nil
		}
		return resolveNested(ctx, Props(nested), seen)
	}
	return result, nil
}

// resolveNested resolves a mapping, writing it as null when it already
// encloses itself.
func resolveNested(ctx context.Context, props Props, seen *ancestors) (any, error) {
	if seen.contains(reflect.ValueOf(props).Pointer()) {
		return nil, nil
	}
	return resolveMap(ctx, props, seen)
}

// needsEvaluation reports whether v holds a producer or a mapping that may
// contain one. Nil mappings go to the wire unchanged, as null.
func needsEvaluation(v any) bool {
	switch val := v.(type) {
	case Prop, Source:
		return true
	case Props:
		return val != nil
	case map[string]any:
		return val != nil
	}
	return false
}
