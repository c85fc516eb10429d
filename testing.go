package inertia

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
)

// TestResult holds a recorded response for testing.
//
// Page is decoded from the JSON body of Inertia visits, or from the
// data-page attribute of a full page load; it is nil for responses that
// carry no page (409, redirects).
type TestResult struct {
	Body       string
	StatusCode int
	Headers    http.Header
	Page       *Page
}

// VisitOption shapes the request sent by TestVisit.
type VisitOption func(*http.Request)

// AsInertia marks the request as an Inertia XHR visit.
func AsInertia() VisitOption {
	return func(r *http.Request) {
		r.Header.Set(HeaderInertia, "true")
	}
}

// WithClientVersion sets the asset version the client claims to have.
func WithClientVersion(version string) VisitOption {
	return func(r *http.Request) {
		r.Header.Set(HeaderVersion, version)
	}
}

// WithPartial makes the request a partial reload of component, optionally
// restricted to only.
func WithPartial(component string, only ...string) VisitOption {
	return func(r *http.Request) {
		r.Header.Set(HeaderInertia, "true")
		r.Header.Set(HeaderPartialComponent, component)
		if len(only) > 0 {
			r.Header.Set(HeaderPartialOnly, strings.Join(only, ","))
		}
	}
}

// WithPartialExcept makes the request a partial reload of component that
// excludes the named props.
func WithPartialExcept(component string, except ...string) VisitOption {
	return func(r *http.Request) {
		r.Header.Set(HeaderInertia, "true")
		r.Header.Set(HeaderPartialComponent, component)
		r.Header.Set(HeaderPartialExcept, strings.Join(except, ","))
	}
}

// WithReset asks for the named merge props to be replaced instead of merged.
func WithReset(names ...string) VisitOption {
	return func(r *http.Request) {
		r.Header.Set(HeaderReset, strings.Join(names, ","))
	}
}

// WithErrorBag scopes validation errors to bag.
func WithErrorBag(bag string) VisitOption {
	return func(r *http.Request) {
		r.Header.Set(HeaderErrorBag, bag)
	}
}

// WithRequestHeader sets an arbitrary header.
func WithRequestHeader(key, value string) VisitOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// WithCookies adds cookies to the request, e.g. the ones set by a previous
// TestResult to follow a flash redirect.
func WithCookies(cookies ...*http.Cookie) VisitOption {
	return func(r *http.Request) {
		for _, c := range cookies {
			r.AddCookie(c)
		}
	}
}

// TestVisit sends a request through h and records the response.
//
// Wrap your handler with Middleware when the test needs the version gate,
// shared props or flash data:
//
//	result, err := inertia.TestVisit(in.Middleware(mux), http.MethodGet, "/users/1",
//	    inertia.WithPartial("Users/Show", "posts"))
//	if !result.HasProp("posts") {
//	    t.Fatal("missing posts")
//	}
func TestVisit(h http.Handler, method, target string, opts ...VisitOption) (*TestResult, error) {
	return TestVisitWithBody(h, method, target, nil, opts...)
}

// TestVisitWithBody is TestVisit with a request body.
func TestVisitWithBody(h http.Handler, method, target string, body io.Reader, opts ...VisitOption) (*TestResult, error) {
	req := httptest.NewRequest(method, target, body)
	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	result := &TestResult{
		Body:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}

	page, err := decodePage(rec.Header().Get("Content-Type"), result.Body)
	if err != nil {
		return nil, err
	}
	result.Page = page
	return result, nil
}

var dataPageAttr = regexp.MustCompile(`data-page="([^"]*)"`)

func decodePage(contentType, body string) (*Page, error) {
	var raw string
	switch {
	case strings.HasPrefix(contentType, "application/json"):
		raw = body
	case strings.HasPrefix(contentType, "text/html"):
		m := dataPageAttr.FindStringSubmatch(body)
		if m == nil {
			return nil, nil
		}
		raw = html.UnescapeString(m[1])
	default:
		return nil, nil
	}

	var page Page
	if err := json.Unmarshal([]byte(raw), &page); err != nil {
		return nil, fmt.Errorf("inertia: decode page: %w", err)
	}
	return &page, nil
}

// Cookies returns the cookies set by the response.
func (r *TestResult) Cookies() []*http.Cookie {
	resp := http.Response{Header: r.Headers}
	return resp.Cookies()
}

// HasProp checks if the page carries the named prop.
func (r *TestResult) HasProp(name string) bool {
	if r.Page == nil {
		return false
	}
	_, ok := r.Page.Props[name]
	return ok
}

// Prop returns the decoded value of a prop, or nil.
func (r *TestResult) Prop(name string) any {
	if r.Page == nil {
		return nil
	}
	return r.Page.Props[name]
}

// Errors returns props.errors as decoded from the page.
func (r *TestResult) Errors() map[string]any {
	if r.Page == nil {
		return nil
	}
	errs, _ := r.Page.Props["errors"].(map[string]any)
	return errs
}

// IsJSON checks if the response is an Inertia JSON page.
func (r *TestResult) IsJSON() bool {
	return r.Headers.Get(HeaderInertia) == "true" && strings.HasPrefix(r.Headers.Get("Content-Type"), "application/json")
}

// IsConflict checks if the response forces a full reload with a 409.
func (r *TestResult) IsConflict() bool {
	return r.StatusCode == http.StatusConflict
}

// LocationTarget returns X-Inertia-Location.
func (r *TestResult) LocationTarget() string {
	return r.Headers.Get(HeaderLocation)
}

// WasRedirected checks if the response was a redirect.
func (r *TestResult) WasRedirected() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400 && r.Headers.Get("Location") != ""
}

// RedirectedTo checks if the response was redirected to a specific URL.
func (r *TestResult) RedirectedTo(url string) bool {
	return r.WasRedirected() && r.Headers.Get("Location") == url
}

// BodyContains checks if the body contains a substring.
func (r *TestResult) BodyContains(substr string) bool {
	return strings.Contains(r.Body, substr)
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// HasHeader checks if a header is set with the given value.
func (r *TestResult) HasHeader(key, value string) bool {
	return r.Headers.Get(key) == value
}

// GetHeader returns the value of a header.
func (r *TestResult) GetHeader(key string) string {
	return r.Headers.Get(key)
}
