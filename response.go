package inertia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
)

// RenderOption customizes a single Render call.
type RenderOption func(*renderOptions)

type renderOptions struct {
	viewData       map[string]any
	errors         ValidationState
	encryptHistory *bool
	clearHistory   bool
}

// WithViewData passes extra values to the root view. They are not sent to
// the client.
func WithViewData(data map[string]any) RenderOption {
	return func(o *renderOptions) {
		if o.viewData == nil {
			o.viewData = make(map[string]any, len(data))
		}
		for k, v := range data {
			o.viewData[k] = v
		}
	}
}

// WithErrors sets the validation state reported in props.errors, taking
// precedence over SetErrors and flashed errors.
func WithErrors(state ValidationState) RenderOption {
	return func(o *renderOptions) {
		o.errors = state
	}
}

// WithHistoryEncryption overrides history encryption for this page.
func WithHistoryEncryption(encrypt bool) RenderOption {
	return func(o *renderOptions) {
		o.encryptHistory = &encrypt
	}
}

// WithClearHistory asks the client to clear its encrypted history.
func WithClearHistory() RenderOption {
	return func(o *renderOptions) {
		o.clearHistory = true
	}
}

// Render writes the response for component with the given props.
//
// Inertia visits get the page object as JSON; any other request gets the
// root view with the page embedded. Prop producers run before anything is
// written, so when one fails Render returns its error (a *PropError) and the
// caller's error handling decides the response:
//
//	func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
//	    err := h.inertia.Render(w, r, "Users/Show", inertia.Props{
//	        "user":  user,
//	        "posts": inertia.Defer(inertia.Func(h.loadPosts)),
//	    })
//	    if err != nil {
//	        http.Error(w, "Internal error", http.StatusInternalServerError)
//	    }
//	}
func (in *Inertia) Render(w http.ResponseWriter, r *http.Request, component string, props Props, opts ...RenderOption) error {
	start := time.Now()
	o := &renderOptions{}
	for _, opt := range opts {
		opt(o)
	}

	page, err := in.buildPage(r, component, props, o)
	if err != nil {
		if IsPropError(err) {
			in.metrics.propError()
		}
		return err
	}

	partial := parsePartial(r).isPartialFor(component)
	if IsInertia(r) {
		if err := in.writeJSON(w, page); err != nil {
			return err
		}
		in.metrics.observeRender("json", partial, start)
		return nil
	}
	if err := in.writeView(w, r, page, o.viewData); err != nil {
		return err
	}
	in.metrics.observeRender("html", partial, start)
	return nil
}

// RenderPage is Render for page models implementing Propser.
func (in *Inertia) RenderPage(w http.ResponseWriter, r *http.Request, component string, model Propser, opts ...RenderOption) error {
	return in.Render(w, r, component, PropsOf(model), opts...)
}

// buildPage runs the prop pipeline: shared merge, partial filtering with the
// Always splice, evaluation, cycle breaking, directives, then errors.
func (in *Inertia) buildPage(r *http.Request, component string, props Props, o *renderOptions) (*Page, error) {
	ctx := r.Context()
	rc, hasRC := FromContext(ctx)

	declared := props.canonical()
	if hasRC {
		declared = props.mergeBeneath(rc.Shared())
	}

	partial := parsePartial(r)
	isPartial := partial.isPartialFor(component)
	selected := partial.filter(component, declared)

	resolved, err := resolveProps(ctx, selected)
	if err != nil {
		return nil, err
	}
	resolved = breakCycles(resolved)

	page := &Page{
		Component:      component,
		Props:          resolved,
		URL:            RequestedURI(r),
		Version:        in.pageVersion(),
		EncryptHistory: in.encryptHistory,
		MergeProps:     mergeProps(declared, resolved, partial.reset),
		DeferredProps:  deferredProps(declared, isPartial),
	}

	state := o.errors
	if hasRC {
		encrypt, clear := rc.history()
		if encrypt != nil {
			page.EncryptHistory = *encrypt
		}
		page.ClearHistory = clear
		if state == nil {
			state = rc.validation()
		}
	}
	if o.encryptHistory != nil {
		page.EncryptHistory = *o.encryptHistory
	}
	if o.clearHistory {
		page.ClearHistory = true
	}

	page.Props["errors"] = scopedErrors(r, errorsProp(state))
	return page, nil
}

// scopedErrors nests errors under the client's error bag, if it named one.
func scopedErrors(r *http.Request, errs map[string]string) any {
	bag := ErrorBagName(r)
	if bag == "" || len(errs) == 0 {
		return errs
	}
	return map[string]any{bag: errs}
}

func (in *Inertia) writeJSON(w http.ResponseWriter, page *Page) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(page); err != nil {
		return fmt.Errorf("inertia: encode page: %w", err)
	}

	h := w.Header()
	h.Set(HeaderInertia, "true")
	h.Set("Vary", "Accept")
	h.Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}

func (in *Inertia) writeView(w http.ResponseWriter, r *http.Request, page *Page, viewData map[string]any) error {
	shell, err := in.shell(r.Context(), page)
	if err != nil {
		return err
	}
	shell.ViewData = viewData

	var buf bytes.Buffer
	if err := in.rootView(shell).Render(r.Context(), &buf); err != nil {
		return fmt.Errorf("inertia: render root view: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = buf.WriteTo(w)
	return err
}

// shell prepares the head and body for the root view, dispatching to the
// SSR server when enabled. SSR failures fall back to client-side hydration.
func (in *Inertia) shell(ctx context.Context, page *Page) (*Shell, error) {
	if in.rootView == nil {
		return nil, ErrNoRootView
	}

	if in.ssr {
		resp, err := in.gateway.Dispatch(ctx, page)
		if err == nil && resp == nil {
			err = ErrSSRUnavailable
		}
		if err == nil {
			return &Shell{Page: page, Head: ssrHead(resp), Body: ssrBody(resp)}, nil
		}
		in.log.WarnContext(ctx, "ssr dispatch failed, falling back to client rendering",
			slog.String("component", page.Component), slog.Any("error", err))
		in.metrics.ssrFallback()
	}

	body, err := AppElement(in.rootID, page)
	if err != nil {
		return nil, fmt.Errorf("inertia: encode page: %w", err)
	}
	return &Shell{Page: page, Head: templ.NopComponent, Body: body}, nil
}
