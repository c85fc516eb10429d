package inertia

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/pthm/inertia/lib/naming"
)

// Protocol headers.
const (
	HeaderInertia          = "X-Inertia"
	HeaderVersion          = "X-Inertia-Version"
	HeaderLocation         = "X-Inertia-Location"
	HeaderPartialComponent = "X-Inertia-Partial-Component"
	HeaderPartialOnly      = "X-Inertia-Partial-Data"
	HeaderPartialExcept    = "X-Inertia-Partial-Except"
	HeaderReset            = "X-Inertia-Reset"
	HeaderErrorBag         = "X-Inertia-Error-Bag"
)

// IsInertia returns true if the request was made by the Inertia client.
//
// The client sends X-Inertia: true on every XHR visit. Any value that parses
// as a boolean marks the request, matching how the header is checked by
// other server adapters:
//
//	if inertia.IsInertia(r) {
//	    // JSON page object
//	}
func IsInertia(r *http.Request) bool {
	_, err := strconv.ParseBool(r.Header.Get(HeaderInertia))
	return err == nil
}

// ClientVersion returns the asset version the client has loaded.
//
// Returns empty string if the header is not present.
func ClientVersion(r *http.Request) string {
	return r.Header.Get(HeaderVersion)
}

// PartialComponent returns the component the client already has rendered
// when it asks for a partial reload.
func PartialComponent(r *http.Request) string {
	return r.Header.Get(HeaderPartialComponent)
}

// PartialOnly returns the prop names requested by a partial reload.
func PartialOnly(r *http.Request) []string {
	return naming.SplitList(r.Header.Get(HeaderPartialOnly))
}

// PartialExcept returns the prop names excluded by a partial reload.
func PartialExcept(r *http.Request) []string {
	return naming.SplitList(r.Header.Get(HeaderPartialExcept))
}

// ResetProps returns the merge props the client asked to reset instead of merge.
func ResetProps(r *http.Request) []string {
	return naming.SplitList(r.Header.Get(HeaderReset))
}

// ErrorBagName returns the error bag name the client scoped its form errors to.
func ErrorBagName(r *http.Request) string {
	return r.Header.Get(HeaderErrorBag)
}

// RequestedURI returns the unescaped path and query of the request, as sent
// back to the client in the page URL and the 409 location.
func RequestedURI(r *http.Request) string {
	uri := r.URL.RequestURI()
	if unescaped, err := url.PathUnescape(uri); err == nil {
		return unescaped
	}
	return uri
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
