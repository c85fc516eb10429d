package inertia

import (
	"errors"
	"fmt"
)

// Sentinel errors for response construction.
var (
	ErrNoRequestContext = errors.New("inertia: request context not found (is Middleware installed?)")
	ErrNoRootView       = errors.New("inertia: root view not configured")
	ErrSSRUnavailable   = errors.New("inertia: ssr gateway returned no response")
)

// PropError reports a prop whose producer failed. It unwraps to the
// producer's own error, so errors.Is and errors.As see through it.
type PropError struct {
	Name string
	Err  error
}

func (e *PropError) Error() string {
	return fmt.Sprintf("inertia: resolving prop %q: %v", e.Path(), e.root())
}

func (e *PropError) Unwrap() error {
	return e.Err
}

// Path returns the dotted path to the failing prop, e.g. "testDict.key".
func (e *PropError) Path() string {
	var inner *PropError
	if errors.As(e.Err, &inner) {
		return e.Name + "." + inner.Path()
	}
	return e.Name
}

func (e *PropError) root() error {
	var inner *PropError
	if errors.As(e.Err, &inner) {
		return inner.root()
	}
	return e.Err
}

func wrapPropError(name string, err error) error {
	return &PropError{Name: name, Err: err}
}

// IsPropError checks if err came from a failing prop producer.
func IsPropError(err error) bool {
	var pe *PropError
	return errors.As(err, &pe)
}
