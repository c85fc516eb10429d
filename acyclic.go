package inertia

import (
	"encoding"
	"encoding/json"
	"reflect"
)

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// breakCycles returns props with every map, slice or pointer that re-enters
// one of its own ancestors replaced by nil, so the page always encodes.
// Values shared between siblings are kept. Props without cycles are
// returned as is.
func breakCycles(props map[string]any) map[string]any {
	b := &cycleBreaker{path: make(map[refKey]struct{})}
	v, changed := b.walk(reflect.ValueOf(props))
	if !changed {
		return props
	}
	return v.Interface().(map[string]any)
}

type refKey struct {
	ptr uintptr
	len int
	typ reflect.Type
}

type cycleBreaker struct {
	path map[refKey]struct{}
}

// enter marks a reference as being walked. It reports false when the
// reference is already on the path.
func (b *cycleBreaker) enter(k refKey) bool {
	if _, ok := b.path[k]; ok {
		return false
	}
	b.path[k] = struct{}{}
	return true
}

func (b *cycleBreaker) leave(k refKey) {
	delete(b.path, k)
}

// walk returns a value of v's type with cycles cut, and whether anything
// beneath v had to change. Unchanged values are returned without copying.
func (b *cycleBreaker) walk(v reflect.Value) (reflect.Value, bool) {
	if !v.IsValid() || marshalsItself(v.Type()) {
		return v, false
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return v, false
		}
		inner, changed := b.walk(v.Elem())
		if !changed {
			return v, false
		}
		nv := reflect.New(v.Type()).Elem()
		nv.Set(inner)
		return nv, true

	case reflect.Pointer:
		if v.IsNil() {
			return v, false
		}
		k := refKey{ptr: v.Pointer(), typ: v.Type()}
		if !b.enter(k) {
			return reflect.Zero(v.Type()), true
		}
		defer b.leave(k)

		elem, changed := b.walk(v.Elem())
		if !changed {
			return v, false
		}
		np := reflect.New(v.Type().Elem())
		np.Elem().Set(elem)
		return np, true

	case reflect.Map:
		if v.IsNil() {
			return v, false
		}
		k := refKey{ptr: v.Pointer(), typ: v.Type()}
		if !b.enter(k) {
			return reflect.Zero(v.Type()), true
		}
		defer b.leave(k)

		type entry struct{ key, val reflect.Value }
		entries := make([]entry, 0, v.Len())
		changed := false
		iter := v.MapRange()
		for iter.Next() {
			val, c := b.walk(iter.Value())
			changed = changed || c
			entries = append(entries, entry{iter.Key(), val})
		}
		if !changed {
			return v, false
		}
		nm := reflect.MakeMapWithSize(v.Type(), len(entries))
		for _, e := range entries {
			nm.SetMapIndex(e.key, e.val)
		}
		return nm, true

	case reflect.Slice:
		if v.IsNil() || v.Type().Elem().Kind() == reflect.Uint8 {
			return v, false
		}
		k := refKey{ptr: v.Pointer(), len: v.Len(), typ: v.Type()}
		if !b.enter(k) {
			return reflect.Zero(v.Type()), true
		}
		defer b.leave(k)

		var ns reflect.Value
		for i := 0; i < v.Len(); i++ {
			elem, changed := b.walk(v.Index(i))
			if !changed {
				continue
			}
			if !ns.IsValid() {
				ns = reflect.MakeSlice(v.Type(), v.Len(), v.Len())
				reflect.Copy(ns, v)
			}
			ns.Index(i).Set(elem)
		}
		if !ns.IsValid() {
			return v, false
		}
		return ns, true

	case reflect.Array:
		var na reflect.Value
		for i := 0; i < v.Len(); i++ {
			elem, changed := b.walk(v.Index(i))
			if !changed {
				continue
			}
			if !na.IsValid() {
				na = reflect.New(v.Type()).Elem()
				na.Set(v)
			}
			na.Index(i).Set(elem)
		}
		if !na.IsValid() {
			return v, false
		}
		return na, true

	case reflect.Struct:
		var ns reflect.Value
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			field, changed := b.walk(v.Field(i))
			if !changed {
				continue
			}
			if !ns.IsValid() {
				ns = reflect.New(t).Elem()
				ns.Set(v)
			}
			ns.Field(i).Set(field)
		}
		if !ns.IsValid() {
			return v, false
		}
		return ns, true
	}
	return v, false
}

// marshalsItself reports whether t controls its own encoding, in which case
// its contents are left alone.
func marshalsItself(t reflect.Type) bool {
	if t.Kind() == reflect.Interface {
		return false
	}
	if t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType) {
		return true
	}
	pt := reflect.PointerTo(t)
	return pt.Implements(jsonMarshalerType) || pt.Implements(textMarshalerType)
}
