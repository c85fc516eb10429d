package inertia

import (
	"sort"

	"github.com/pthm/inertia/lib/naming"
)

// mergeProps lists the declared mergeable props that made it into the
// resolved output and weren't reset by the client. Returns nil when empty so
// the field is left off the wire.
func mergeProps(declared Props, resolved map[string]any, reset naming.Set) []string {
	var names []string
	for name, v := range declared {
		prop, ok := policy(v)
		if !ok || !prop.mergeable {
			continue
		}
		if reset.Has(name) {
			continue
		}
		key := naming.CamelCase(name)
		if _, ok := resolved[key]; !ok {
			continue
		}
		names = append(names, key)
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	return names
}

// deferredProps groups the declared deferred props by group name. Partial
// reloads never carry the directive.
func deferredProps(declared Props, partial bool) map[string][]string {
	if partial {
		return nil
	}
	var groups map[string][]string
	for name, v := range declared {
		prop, ok := policy(v)
		if !ok || prop.kind != KindDefer {
			continue
		}
		if groups == nil {
			groups = make(map[string][]string)
		}
		groups[prop.group] = append(groups[prop.group], naming.CamelCase(name))
	}
	for _, names := range groups {
		sort.Strings(names)
	}
	return groups
}
