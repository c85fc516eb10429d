// Package flash stores one-request state, such as validation errors and
// status messages, between a redirect and the visit that follows it.
//
// Data is written with Put before redirecting and read back with Pull on the
// next request; Pull consumes it. When the next request has to be replayed
// (the Inertia client reloads after a version conflict), the caller puts the
// pulled data back so the replayed request sees it again.
//
// Two stores are provided:
//   - CookieStore keeps the data client-side in a signed or encrypted cookie
//   - RedisStore keeps it server-side, keyed by a random session cookie
package flash

import (
	"context"
	"net/http"
)

// Data is the flashed state.
type Data struct {
	Errors   map[string][]string `msgpack:"e,omitempty" json:"errors,omitempty"`
	Messages map[string]string   `msgpack:"m,omitempty" json:"messages,omitempty"`
}

// IsZero reports whether d carries nothing.
func (d Data) IsZero() bool {
	return len(d.Errors) == 0 && len(d.Messages) == 0
}

// WithError returns a copy of d with message added to field.
func (d Data) WithError(field, message string) Data {
	errs := make(map[string][]string, len(d.Errors)+1)
	for k, v := range d.Errors {
		errs[k] = v
	}
	errs[field] = append(append([]string(nil), errs[field]...), message)
	d.Errors = errs
	return d
}

// WithMessage returns a copy of d with a message at the given level
// ("success", "error", ...).
func (d Data) WithMessage(level, message string) Data {
	msgs := make(map[string]string, len(d.Messages)+1)
	for k, v := range d.Messages {
		msgs[k] = v
	}
	msgs[level] = message
	d.Messages = msgs
	return d
}

// Store persists flash data across one redirect.
type Store interface {
	// Pull returns the data flashed for this client and removes it.
	// A client with nothing flashed gets zero Data and no error.
	Pull(ctx context.Context, w http.ResponseWriter, r *http.Request) (Data, error)
	// Put flashes d for the client's next request.
	Put(ctx context.Context, w http.ResponseWriter, r *http.Request, d Data) error
}

// Flash levels for status messages.
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelWarning = "warning"
	LevelInfo    = "info"
)
