package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-playground/validator/v10"
	"github.com/joeshaw/envdecode"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pthm/inertia"
	"github.com/pthm/inertia/flash"
	"github.com/redis/go-redis/v9"
)

type serverConfig struct {
	Addr      string `env:"ADDR,default=:8080"`
	RedisAddr string `env:"REDIS_ADDR"`
}

type todoForm struct {
	Title string `validate:"required,min=3"`
}

func main() {
	var cfg serverConfig
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		log.Fatal(err)
	}
	icfg, err := inertia.ConfigFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	metrics, err := inertia.NewMetrics(reg)
	if err != nil {
		log.Fatal(err)
	}

	opts := []inertia.Option{
		inertia.WithRootView(rootView),
		inertia.WithMetrics(metrics),
		inertia.WithLogHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	if icfg.Version == "" {
		opts = append(opts, inertia.WithVersion("dev"))
	}
	if cfg.RedisAddr != "" {
		store, err := flash.NewRedisStore(flash.RedisConfig{
			Client: redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}),
		})
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()
		opts = append(opts, inertia.WithFlashStore(store))
	} else if icfg.FlashKey == "" {
		store, err := flash.NewCookieStore([]byte("example-flash-key"))
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, inertia.WithFlashStore(store))
	}

	in, err := inertia.NewFromConfig(icfg, opts...)
	if err != nil {
		log.Fatal(err)
	}

	app := &app{in: in, store: NewStore(), validate: validator.New()}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", app.index)
	mux.HandleFunc("POST /todos", app.create)
	mux.HandleFunc("PATCH /todos/{id}", app.toggle)
	mux.HandleFunc("DELETE /todos/{id}", app.remove)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /docs", func(w http.ResponseWriter, r *http.Request) {
		inertia.Location(w, r, "https://inertiajs.com")
	})

	fmt.Printf("Starting server at http://localhost%s\n", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, in.Middleware(app.shareApp(mux))); err != nil {
		log.Fatal(err)
	}
}

type app struct {
	in       *inertia.Inertia
	store    *Store
	validate *validator.Validate
}

// shareApp runs inside the Inertia middleware and shares props every page needs.
func (a *app) shareApp(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = inertia.Share(r.Context(), "appName", "Todos")
		next.ServeHTTP(w, r)
	})
}

func (a *app) index(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	todos, more := a.store.Page(page, 10)
	err := a.in.Render(w, r, "Todos/Index", inertia.Props{
		"todos":   inertia.Merge(inertia.Value(todos)),
		"hasMore": more,
		"page":    page,
		"stats": inertia.Defer(inertia.Func(func(ctx context.Context) (any, error) {
			return a.store.Stats(), nil
		}), "sidebar"),
		"user": inertia.Always(inertia.Value("guest")),
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "render failed", slog.Any("error", err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func (a *app) create(w http.ResponseWriter, r *http.Request) {
	form := todoForm{Title: r.FormValue("title")}
	if err := a.validate.Struct(form); err != nil {
		err = a.in.Back(w, r, "/", flash.Data{Errors: inertia.ErrorsFromValidator(err).Map()})
		a.redirectFailed(w, r, err)
		return
	}
	a.store.Add(form.Title)
	err := a.in.Redirect(w, r, "/", flash.Data{}.WithMessage(flash.LevelSuccess, "Todo added"))
	a.redirectFailed(w, r, err)
}

func (a *app) toggle(w http.ResponseWriter, r *http.Request) {
	if !a.store.Toggle(r.PathValue("id")) {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (a *app) remove(w http.ResponseWriter, r *http.Request) {
	if !a.store.Delete(r.PathValue("id")) {
		http.NotFound(w, r)
		return
	}
	err := a.in.Redirect(w, r, "/", flash.Data{}.WithMessage(flash.LevelInfo, "Todo deleted"))
	a.redirectFailed(w, r, err)
}

// redirectFailed reports a redirect that could not store its flash data.
func (a *app) redirectFailed(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	slog.ErrorContext(r.Context(), "redirect failed", slog.Any("error", err))
	http.Error(w, "Internal error", http.StatusInternalServerError)
}

func rootView(s *inertia.Shell) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Todos</title>`); err != nil {
			return err
		}
		if err := s.Head.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<script type="module" src="/build/app.js"></script></head><body>`); err != nil {
			return err
		}
		if err := s.Body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}
