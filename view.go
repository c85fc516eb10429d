package inertia

import (
	"context"
	"encoding/json"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Shell is everything a root view needs to render the HTML document of a
// full page load.
type Shell struct {
	// Page is the page object the client boots with.
	Page *Page

	// Head holds the SSR head tags, or renders nothing without SSR.
	Head templ.Component

	// Body is the SSR markup, or the empty app element carrying the page
	// object for client-side hydration.
	Body templ.Component

	// ViewData carries extra values from WithViewData to the template.
	ViewData map[string]any
}

// RootView renders the HTML document around an Inertia app.
//
// Write it as a templ template taking the shell:
//
//	templ App(s *inertia.Shell) {
//	    <!DOCTYPE html>
//	    <html>
//	        <head>
//	            @s.Head
//	            <script type="module" src="/build/app.js"></script>
//	        </head>
//	        <body>@s.Body</body>
//	    </html>
//	}
type RootView func(s *Shell) templ.Component

// DefaultRootView is a bare HTML document with no application assets. It is
// used when no root view is configured and is mostly useful in tests.
func DefaultRootView(s *Shell) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html><head><meta charset="utf-8">`); err != nil {
			return err
		}
		if err := s.Head.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</head><body>`); err != nil {
			return err
		}
		if err := s.Body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// AppElement returns the element the client mounts on, with the page object
// HTML-escaped into its data-page attribute.
func AppElement(id string, page *Page) (templ.Component, error) {
	data, err := json.Marshal(page)
	if err != nil {
		return nil, err
	}
	markup := `<div id="` + html.EscapeString(id) + `" data-page="` + html.EscapeString(string(data)) + `"></div>`
	return templ.Raw(markup), nil
}

func ssrHead(resp *SSRResponse) templ.Component {
	return templ.Raw(strings.Join(resp.Head, "\n"))
}

func ssrBody(resp *SSRResponse) templ.Component {
	return templ.Raw(resp.Body)
}
