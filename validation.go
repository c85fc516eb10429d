package inertia

import (
	"errors"
	"iter"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/pthm/inertia/lib/naming"
)

// ValidationState is the host's view of whether the submitted input was
// valid. FieldErrors yields (field, message) pairs; a field may appear more
// than once and only its first message is sent to the client.
type ValidationState interface {
	Valid() bool
	FieldErrors() iter.Seq2[string, string]
}

// ErrorBag collects validation messages per field. The zero value is ready
// to use and valid.
type ErrorBag struct {
	fields []string
	msgs   map[string][]string
}

// ErrorBagFrom builds an ErrorBag from a field → messages map.
func ErrorBagFrom(m map[string][]string) *ErrorBag {
	b := &ErrorBag{}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		for _, msg := range m[k] {
			b.Add(k, msg)
		}
	}
	return b
}

// Add records a message for field.
func (b *ErrorBag) Add(field, message string) *ErrorBag {
	if b.msgs == nil {
		b.msgs = make(map[string][]string)
	}
	if _, ok := b.msgs[field]; !ok {
		b.fields = append(b.fields, field)
	}
	b.msgs[field] = append(b.msgs[field], message)
	return b
}

// Valid reports whether no messages were added.
func (b *ErrorBag) Valid() bool {
	return b == nil || len(b.fields) == 0
}

// FieldErrors yields every message in the order fields were first added.
func (b *ErrorBag) FieldErrors() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if b == nil {
			return
		}
		for _, f := range b.fields {
			for _, msg := range b.msgs[f] {
				if !yield(f, msg) {
					return
				}
			}
		}
	}
}

// Map returns a copy of the messages keyed by field.
func (b *ErrorBag) Map() map[string][]string {
	out := make(map[string][]string)
	if b == nil {
		return out
	}
	for f, msgs := range b.msgs {
		out[f] = slices.Clone(msgs)
	}
	return out
}

// ErrorsFromValidator converts the error returned by a go-playground
// validator into an ErrorBag. Fields are keyed by their struct field name
// (or the name registered with RegisterTagNameFunc); a nil or non-validation
// error yields an empty bag.
func ErrorsFromValidator(err error) *ErrorBag {
	b := &ErrorBag{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return b
	}
	for _, fe := range verrs {
		b.Add(fe.Field(), validationMessage(fe))
	}
	return b
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "The " + fe.Field() + " field is required."
	case "email":
		return "The " + fe.Field() + " field must be a valid email address."
	case "min":
		return "The " + fe.Field() + " field must be at least " + fe.Param() + "."
	case "max":
		return "The " + fe.Field() + " field must not be greater than " + fe.Param() + "."
	}
	return fe.Error()
}

// errorsProp builds the value of props.errors: the first message of every
// invalid field keyed by camelCased field name, or an empty map.
func errorsProp(state ValidationState) map[string]string {
	out := make(map[string]string)
	if state == nil || state.Valid() {
		return out
	}
	for field, msg := range state.FieldErrors() {
		key := naming.CamelCase(field)
		if _, seen := out[key]; seen {
			continue
		}
		out[key] = msg
	}
	return out
}
