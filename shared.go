package inertia

import (
	"context"
	"sync"

	"github.com/pthm/inertia/flash"
	"github.com/pthm/inertia/lib/naming"
)

type requestContextKey struct{}

// RequestContext holds the state a request accumulates before its response
// is built: shared props, validation errors, flash data pulled from the
// flash store, and history flags.
//
// Middleware installs one per request. Handlers reach it through the
// package-level helpers (Share, SetErrors, ClearHistory...) which take the
// request's context, so no state is kept outside the request.
type RequestContext struct {
	mu             sync.Mutex
	shared         Props
	errors         ValidationState
	flash          flash.Data
	encryptHistory *bool
	clearHistory   bool
}

// WithRequestContext returns a child context carrying a fresh RequestContext.
// Middleware calls this; use it directly when rendering outside Middleware,
// e.g. in tests.
func WithRequestContext(ctx context.Context) (context.Context, *RequestContext) {
	rc := &RequestContext{}
	return context.WithValue(ctx, requestContextKey{}, rc), rc
}

// FromContext returns the RequestContext installed on ctx.
func FromContext(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey{}).(*RequestContext)
	return rc, ok
}

func mustRequestContext(ctx context.Context) (*RequestContext, error) {
	rc, ok := FromContext(ctx)
	if !ok {
		return nil, ErrNoRequestContext
	}
	return rc, nil
}

// Share adds a prop that is merged beneath the page props of this request's
// response. Page props win on name collisions.
//
//	inertia.Share(r.Context(), "auth", inertia.Props{"user": user})
func Share(ctx context.Context, key string, value any) error {
	rc, err := mustRequestContext(ctx)
	if err != nil {
		return err
	}
	rc.Share(key, value)
	return nil
}

// ShareAll adds every entry of props as shared data.
func ShareAll(ctx context.Context, props Props) error {
	rc, err := mustRequestContext(ctx)
	if err != nil {
		return err
	}
	rc.ShareAll(props)
	return nil
}

// SetErrors records the validation state for this request's response.
func SetErrors(ctx context.Context, state ValidationState) error {
	rc, err := mustRequestContext(ctx)
	if err != nil {
		return err
	}
	rc.mu.Lock()
	rc.errors = state
	rc.mu.Unlock()
	return nil
}

// ClearHistory asks the client to clear its encrypted history state.
func ClearHistory(ctx context.Context) error {
	rc, err := mustRequestContext(ctx)
	if err != nil {
		return err
	}
	rc.mu.Lock()
	rc.clearHistory = true
	rc.mu.Unlock()
	return nil
}

// EncryptHistory overrides the configured history encryption for this request.
func EncryptHistory(ctx context.Context, encrypt bool) error {
	rc, err := mustRequestContext(ctx)
	if err != nil {
		return err
	}
	rc.mu.Lock()
	rc.encryptHistory = &encrypt
	rc.mu.Unlock()
	return nil
}

// Share sets one shared prop. The key is camelCased on write.
func (rc *RequestContext) Share(key string, value any) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.shared == nil {
		rc.shared = make(Props)
	}
	rc.shared[naming.CamelCase(key)] = value
}

// ShareAll sets every entry of props as shared data.
func (rc *RequestContext) ShareAll(props Props) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.shared == nil {
		rc.shared = make(Props, len(props))
	}
	for k, v := range props {
		rc.shared[naming.CamelCase(k)] = v
	}
}

// Shared returns a copy of the shared props.
func (rc *RequestContext) Shared() Props {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	out := make(Props, len(rc.shared))
	for k, v := range rc.shared {
		out[k] = v
	}
	return out
}

// Flash returns the flash data pulled for this request.
func (rc *RequestContext) Flash() flash.Data {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.flash
}

func (rc *RequestContext) setFlash(d flash.Data) {
	rc.mu.Lock()
	rc.flash = d
	rc.mu.Unlock()
}

// validation returns the explicit validation state, falling back to errors
// replayed from the flash store.
func (rc *RequestContext) validation() ValidationState {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.errors != nil {
		return rc.errors
	}
	if len(rc.flash.Errors) > 0 {
		return ErrorBagFrom(rc.flash.Errors)
	}
	return nil
}

func (rc *RequestContext) history() (encrypt *bool, clear bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.encryptHistory, rc.clearHistory
}
