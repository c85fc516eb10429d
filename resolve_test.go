package inertia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestResolvePropsPlainAndProducers(t *testing.T) {
	props := Props{
		"Title":    "Home",
		"count":    Value(3),
		"user":     Func(func(ctx context.Context) (any, error) { return "ada", nil }),
		"feed":     Async(func(ctx context.Context) <-chan Outcome { return ready(Outcome{Value: []string{"a"}}) }),
		"comments": Lazy(Value("lazy")),
	}

	got, err := resolveProps(context.Background(), props)
	if err != nil {
		t.Fatalf("resolveProps failed: %v", err)
	}

	want := map[string]any{
		"title":    "Home",
		"count":    3,
		"user":     "ada",
		"feed":     []string{"a"},
		"comments": "lazy",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolveProps() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvePropsNested(t *testing.T) {
	props := Props{
		"testDict": map[string]any{
			"Key":   Func(func(ctx context.Context) (any, error) { return "value", nil }),
			"plain": 1,
		},
		"settings": Func(func(ctx context.Context) (any, error) {
			return Props{"Theme": Value("dark")}, nil
		}),
	}

	got, err := resolveProps(context.Background(), props)
	if err != nil {
		t.Fatalf("resolveProps failed: %v", err)
	}

	want := map[string]any{
		"testDict": map[string]any{"key": "value", "plain": 1},
		"settings": map[string]any{"theme": "dark"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolveProps() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvePropsInvokesOnce(t *testing.T) {
	var calls atomic.Int32
	props := Props{
		"counter": Always(Func(func(ctx context.Context) (any, error) {
			return calls.Add(1), nil
		})),
	}

	if _, err := resolveProps(context.Background(), props); err != nil {
		t.Fatalf("resolveProps failed: %v", err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("producer called %d times, want 1", n)
	}
}

func TestResolvePropsConcurrent(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	// waiter only finishes once releaser has started, so sequential
	// evaluation would deadlock.
	props := Props{
		"waiter": Func(func(ctx context.Context) (any, error) {
			select {
			case <-release:
				return "done", nil
			case <-time.After(2 * time.Second):
				return nil, errors.New("producers did not run concurrently")
			}
		}),
		"releaser": Func(func(ctx context.Context) (any, error) {
			close(started)
			close(release)
			return "ok", nil
		}),
	}

	got, err := resolveProps(context.Background(), props)
	if err != nil {
		t.Fatalf("resolveProps failed: %v", err)
	}
	<-started
	if got["waiter"] != "done" || got["releaser"] != "ok" {
		t.Errorf("resolveProps() = %v", got)
	}
}

func TestResolvePropsMixedPlainAndProducers(t *testing.T) {
	// Plain entries interleaved with producers; run with -race.
	for range 20 {
		props := make(Props, 200)
		want := make(map[string]any, 200)
		for i := range 200 {
			name := fmt.Sprintf("p%d", i)
			if i%2 == 0 {
				props[name] = Func(func(ctx context.Context) (any, error) { return i, nil })
			} else {
				props[name] = i
			}
			want[name] = i
		}

		got, err := resolveProps(context.Background(), props)
		if err != nil {
			t.Fatalf("resolveProps failed: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("resolveProps() mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestResolvePropsNilMappings(t *testing.T) {
	var (
		nilMap   map[string]any
		nilProps Props
	)
	props := Props{
		"filters": nilMap,
		"extra":   nilProps,
		"loaded":  Func(func(ctx context.Context) (any, error) { return nilMap, nil }),
	}

	got, err := resolveProps(context.Background(), props)
	if err != nil {
		t.Fatalf("resolveProps failed: %v", err)
	}
	for _, name := range []string{"filters", "extra", "loaded"} {
		v, ok := got[name]
		if !ok {
			t.Errorf("%s missing from result", name)
			continue
		}
		out, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %s: %v", name, err)
		}
		if string(out) != "null" {
			t.Errorf("%s encodes as %s, want null", name, out)
		}
	}
}

func TestResolvePropsSelfReferencingMap(t *testing.T) {
	tree := map[string]any{"name": "root"}
	tree["self"] = tree
	tree["child"] = map[string]any{"parent": tree}

	got, err := resolveProps(context.Background(), Props{"tree": tree})
	if err != nil {
		t.Fatalf("resolveProps failed: %v", err)
	}
	want := map[string]any{
		"tree": map[string]any{
			"name":  "root",
			"self":  nil,
			"child": map[string]any{"parent": nil},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolveProps() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvePropsError(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("top level", func(t *testing.T) {
		props := Props{
			"fine":   "x",
			"broken": Func(func(ctx context.Context) (any, error) { return nil, errBoom }),
		}
		got, err := resolveProps(context.Background(), props)
		if got != nil {
			t.Errorf("resolveProps() = %v, want nil on failure", got)
		}
		if !errors.Is(err, errBoom) {
			t.Fatalf("error = %v, want %v", err, errBoom)
		}
		var pe *PropError
		if !errors.As(err, &pe) || pe.Path() != "broken" {
			t.Errorf("error = %v, want PropError for broken", err)
		}
	})

	t.Run("nested", func(t *testing.T) {
		props := Props{
			"testDict": map[string]any{
				"key": Async(func(ctx context.Context) <-chan Outcome { return ready(Outcome{Err: errBoom}) }),
			},
		}
		_, err := resolveProps(context.Background(), props)
		var pe *PropError
		if !errors.As(err, &pe) || pe.Path() != "testDict.key" {
			t.Fatalf("error = %v, want PropError at testDict.key", err)
		}
		if !errors.Is(err, errBoom) {
			t.Errorf("error should unwrap to %v", errBoom)
		}
	})
}

func ready(o Outcome) <-chan Outcome {
	ch := make(chan Outcome, 1)
	ch <- o
	return ch
}
