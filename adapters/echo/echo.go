// Package inertiaecho provides Echo framework integration for inertia.
//
// Install the middleware on an Echo instance or group, then render pages
// from handlers:
//
//	e := echo.New()
//	in := inertiaecho.Mount(e, inertia.WithVersion(assets.Version))
//
//	e.GET("/users", func(c echo.Context) error {
//	    return inertiaecho.Render(c, in, "Users/Index", inertia.Props{"users": users})
//	})
package inertiaecho

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pthm/inertia"
	"github.com/pthm/inertia/flash"
)

// Mount creates an Inertia and installs its middleware on an Echo instance.
//
//	e := echo.New()
//	in := inertiaecho.Mount(e)
//
//	// With options:
//	in := inertiaecho.Mount(e, inertia.WithRootView(views.App))
func Mount(e *echo.Echo, opts ...inertia.Option) *inertia.Inertia {
	in := inertia.New(opts...)
	e.Use(Middleware(in))
	return in
}

// MountGroup creates an Inertia and installs its middleware on an Echo group.
// This lets Inertia pages share middleware with the group (auth, logging, etc.).
//
//	g := e.Group("/app", authMiddleware)
//	in := inertiaecho.MountGroup(g)
func MountGroup(g *echo.Group, opts ...inertia.Option) *inertia.Inertia {
	in := inertia.New(opts...)
	g.Use(Middleware(in))
	return in
}

// Middleware adapts in.Middleware to Echo.
func Middleware(in *inertia.Inertia) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var nextErr error
			h := in.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c.SetRequest(r)
				c.Response().Writer = w
				nextErr = next(c)
			}))
			h.ServeHTTP(c.Response().Writer, c.Request())
			return nextErr
		}
	}
}

// Render writes an Inertia page to the Echo response.
//
//	func show(c echo.Context) error {
//	    return inertiaecho.Render(c, in, "Users/Show", inertia.Props{"user": user})
//	}
func Render(c echo.Context, in *inertia.Inertia, component string, props inertia.Props, opts ...inertia.RenderOption) error {
	return in.Render(c.Response(), c.Request(), component, props, opts...)
}

// Share adds a shared prop for the current request.
func Share(c echo.Context, key string, value any) error {
	return inertia.Share(c.Request().Context(), key, value)
}

// Redirect flashes data and redirects, see inertia.Inertia.Redirect.
func Redirect(c echo.Context, in *inertia.Inertia, url string, data flash.Data) error {
	return in.Redirect(c.Response(), c.Request(), url, data)
}

// Location forces a full page visit to url, see inertia.Location.
func Location(c echo.Context, url string) error {
	inertia.Location(c.Response(), c.Request(), url)
	return nil
}
