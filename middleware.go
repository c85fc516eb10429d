package inertia

import (
	"log/slog"
	"net/http"

	"github.com/pthm/inertia/flash"
)

// Middleware prepares every request for Inertia responses.
//
// It installs the RequestContext, pulls flash data from the flash store
// (flashed messages are shared as the "flash" prop, flashed errors feed
// props.errors) and runs the version gate: an Inertia GET whose X-Inertia-Version differs from
// the current version gets a 409 with X-Inertia-Location so the client does a
// full reload. Flash data pulled for that request is put back for the reload.
//
// For Inertia PUT, PATCH and DELETE requests a 302 written by the handler is
// sent as 303, so the client follows it with a GET.
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("GET /users/{id}", h.Show)
//	http.ListenAndServe(":8080", in.Middleware(mux))
func (in *Inertia) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, rc := WithRequestContext(r.Context())
		r = r.WithContext(ctx)

		if in.flash != nil {
			data, err := in.flash.Pull(ctx, w, r)
			if err != nil {
				in.log.WarnContext(ctx, "flash pull failed", slog.Any("error", err))
			}
			rc.setFlash(data)
			if len(data.Messages) > 0 {
				rc.Share("flash", data.Messages)
			}
		}

		if in.versionConflict(r) {
			in.metrics.versionConflict()
			in.log.DebugContext(ctx, "asset version changed, forcing full reload",
				slog.String("client_version", ClientVersion(r)),
				slog.String("server_version", in.Version()),
				slog.String("url", RequestedURI(r)))

			if in.flash != nil {
				if data := rc.Flash(); !data.IsZero() {
					if err := in.flash.Put(ctx, w, r, data); err != nil {
						in.OnError(w, r, err)
						return
					}
				}
			}
			w.Header().Set(HeaderLocation, RequestedURI(r))
			w.WriteHeader(http.StatusConflict)
			return
		}

		if IsInertia(r) && isMutation(r.Method) {
			w = &seeOtherWriter{ResponseWriter: w}
		}
		next.ServeHTTP(w, r)
	})
}

// versionConflict reports whether r is an Inertia GET made with a stale
// asset version.
func (in *Inertia) versionConflict(r *http.Request) bool {
	if r.Method != http.MethodGet || !IsInertia(r) {
		return false
	}
	return ClientVersion(r) != in.Version()
}

// seeOtherWriter rewrites 302 to 303.
type seeOtherWriter struct {
	http.ResponseWriter
}

func (w *seeOtherWriter) WriteHeader(code int) {
	if code == http.StatusFound {
		code = http.StatusSeeOther
	}
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *seeOtherWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Location sends the client to url with a full page visit. Inertia requests
// get a 409 with X-Inertia-Location, which the client turns into
// window.location; other requests get a plain 302 redirect. Use it for
// external URLs and non-Inertia pages.
func Location(w http.ResponseWriter, r *http.Request, url string) {
	if IsInertia(r) {
		w.Header().Set(HeaderLocation, url)
		w.WriteHeader(http.StatusConflict)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// Redirect stores data in the flash store and redirects to url, usually
// after a form submission:
//
//	if err := validate.Struct(form); err != nil {
//	    bag := inertia.ErrorsFromValidator(err)
//	    return in.Redirect(w, r, "/users/create", flash.Data{Errors: bag.Map()})
//	}
//
// Mutations are redirected with 303 so the client follows with a GET.
func (in *Inertia) Redirect(w http.ResponseWriter, r *http.Request, url string, data flash.Data) error {
	if in.flash != nil && !data.IsZero() {
		if err := in.flash.Put(r.Context(), w, r, data); err != nil {
			return err
		}
	}

	code := http.StatusFound
	if isMutation(r.Method) {
		code = http.StatusSeeOther
	}
	http.Redirect(w, r, url, code)
	return nil
}

// Back redirects to the Referer, or to fallback when there is none.
func (in *Inertia) Back(w http.ResponseWriter, r *http.Request, fallback string, data flash.Data) error {
	url := r.Referer()
	if url == "" {
		url = fallback
	}
	return in.Redirect(w, r, url, data)
}
