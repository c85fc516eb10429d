package inertia

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pthm/inertia/flash"
)

// Inertia builds protocol responses. Create one at startup with New and pass
// it to the handlers that render pages; it holds only read-mostly
// configuration and is safe for concurrent use.
type Inertia struct {
	rootView       RootView
	rootID         string
	version        func() string
	hasVersion     bool
	gateway        Gateway
	ssr            bool
	flash          flash.Store
	encryptHistory bool
	log            *slog.Logger
	metrics        *Metrics

	// OnError is called when the middleware fails in a way the handler never
	// sees (flash store errors on the version-conflict path). Rendering
	// errors are returned from Render instead.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// Option configures New.
type Option func(*Inertia)

// WithRootView sets the template rendered on full page loads.
func WithRootView(v RootView) Option {
	return func(in *Inertia) {
		in.rootView = v
	}
}

// WithRootElementID sets the id of the element the client mounts on.
// Defaults to "app".
func WithRootElementID(id string) Option {
	return func(in *Inertia) {
		in.rootID = id
	}
}

// WithVersion sets a fixed asset version.
func WithVersion(version string) Option {
	return func(in *Inertia) {
		in.version = func() string { return version }
		in.hasVersion = true
	}
}

// WithVersionFunc sets a function returning the current asset version. It is
// called on every request that needs the version and must be safe for
// concurrent use.
func WithVersionFunc(fn func() string) Option {
	return func(in *Inertia) {
		in.version = fn
		in.hasVersion = fn != nil
	}
}

// WithSSR enables server-side rendering through gateway.
func WithSSR(gateway Gateway) Option {
	return func(in *Inertia) {
		in.gateway = gateway
		in.ssr = gateway != nil
	}
}

// WithFlashStore sets where flash data (validation errors, messages) is kept
// between a redirect and the next visit.
func WithFlashStore(store flash.Store) Option {
	return func(in *Inertia) {
		in.flash = store
	}
}

// WithEncryptHistory turns on history encryption for every page by default.
func WithEncryptHistory(encrypt bool) Option {
	return func(in *Inertia) {
		in.encryptHistory = encrypt
	}
}

// WithLogHandler sets the slog.Handler used for diagnostics. If unset,
// logging is discarded.
func WithLogHandler(h slog.Handler) Option {
	return func(in *Inertia) {
		if h != nil {
			in.log = slog.New(h)
		}
	}
}

// WithMetrics records response outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(in *Inertia) {
		in.metrics = m
	}
}

// New creates an Inertia response builder.
func New(opts ...Option) *Inertia {
	in := &Inertia{
		rootView: DefaultRootView,
		rootID:   "app",
		version:  func() string { return "" },
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(in)
	}

	if in.OnError == nil {
		in.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, "Internal error", http.StatusInternalServerError)
		}
	}
	return in
}

// NewFromConfig creates an Inertia from a Config, typically loaded with
// ConfigFromEnv. Options are applied after the config.
func NewFromConfig(cfg Config, opts ...Option) (*Inertia, error) {
	var base []Option
	if cfg.Version != "" {
		base = append(base, WithVersion(cfg.Version))
	}
	if cfg.SSREnabled {
		base = append(base, WithSSR(NewHTTPGateway(cfg.SSRURL)))
	}
	if cfg.EncryptHistory {
		base = append(base, WithEncryptHistory(true))
	}
	if cfg.FlashKey != "" {
		store, err := flash.NewCookieStore([]byte(cfg.FlashKey))
		if err != nil {
			return nil, fmt.Errorf("inertia: flash store: %w", err)
		}
		base = append(base, WithFlashStore(store))
	}
	return New(append(base, opts...)...), nil
}

// Version returns the current asset version.
func (in *Inertia) Version() string {
	return in.version()
}

// pageVersion returns the version for the page object; nil when no version
// is configured so the field serializes as null.
func (in *Inertia) pageVersion() *string {
	if !in.hasVersion {
		return nil
	}
	v := in.version()
	return &v
}
