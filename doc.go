// Package inertia implements the server side of the Inertia.js protocol for
// net/http applications.
//
// A handler renders a named client-side page component with a set of props.
// The first visit gets a full HTML document with the page object embedded;
// later visits made by the Inertia client (X-Inertia: true) get the page
// object as JSON and the client swaps components without a full reload.
//
// # Setup
//
// Create one Inertia at startup and wrap your router with its middleware:
//
//	in := inertia.New(
//	    inertia.WithRootView(views.App),
//	    inertia.WithVersion(assets.Version),
//	)
//	http.ListenAndServe(":8080", in.Middleware(mux))
//
// Or load settings from the environment (INERTIA_VERSION, INERTIA_SSR_URL...):
//
//	cfg, err := inertia.ConfigFromEnv()
//	in, err := inertia.NewFromConfig(cfg, inertia.WithRootView(views.App))
//
// # Props
//
// Props are plain values, producers, or producers wrapped in a policy:
//
//	in.Render(w, r, "Users/Index", inertia.Props{
//	    "users":   users,                                   // always sent
//	    "filters": inertia.Func(loadFilters),              // evaluated per response
//	    "roles":   inertia.Optional(inertia.Func(loadRoles)), // only when asked for
//	    "stats":   inertia.Defer(inertia.Func(loadStats)),    // fetched after first render
//	    "feed":    inertia.Merge(inertia.Func(nextPage)),     // appended client-side
//	    "auth":    inertia.Always(inertia.Value(user)),       // survives partial reloads
//	})
//
// Producers run concurrently; nested maps are resolved with the same rules.
// A failing producer fails the whole render with a *PropError and nothing is
// written.
//
// # Partial reloads
//
// The client can reload a subset of the current page's props by sending
// X-Inertia-Partial-Component with X-Inertia-Partial-Data (only) or
// X-Inertia-Partial-Except. Always props are included regardless.
//
// # Shared data and validation
//
// Middleware gives every request a RequestContext. Handlers and earlier
// middleware add props with Share and validation errors with SetErrors;
// validation errors stored with Redirect are replayed from the flash store
// on the next visit and exposed as props.errors.
//
// # Asset versioning
//
// When an Inertia GET carries an X-Inertia-Version that differs from the
// current version, Middleware answers 409 with X-Inertia-Location and the
// client performs a full page load.
package inertia
