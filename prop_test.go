package inertia

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPropConstructors(t *testing.T) {
	src := Value(1)
	tests := []struct {
		name      string
		prop      Prop
		kind      Kind
		suppress  bool
		mergeable bool
		group     string
	}{
		{"always", Always(src), KindAlways, false, false, ""},
		{"lazy", Lazy(src), KindLazy, true, false, ""},
		{"optional", Optional(src), KindOptional, true, false, ""},
		{"defer", Defer(src), KindDefer, true, false, DefaultGroup},
		{"defer with group", Defer(src, "sidebar"), KindDefer, true, false, "sidebar"},
		{"defer with empty group", Defer(src, ""), KindDefer, true, false, DefaultGroup},
		{"merge", Merge(src), KindMerge, false, true, ""},
		{"defer merge", Defer(src).Merge(), KindDefer, true, true, DefaultGroup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.prop.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
			if got := tt.prop.SuppressesFirstLoad(); got != tt.suppress {
				t.Errorf("SuppressesFirstLoad() = %v, want %v", got, tt.suppress)
			}
			if got := tt.prop.IsMergeable(); got != tt.mergeable {
				t.Errorf("IsMergeable() = %v, want %v", got, tt.mergeable)
			}
			if got := tt.prop.Group(); got != tt.group {
				t.Errorf("Group() = %q, want %q", got, tt.group)
			}
		})
	}
}

func TestPropMergeDoesNotMutate(t *testing.T) {
	base := Defer(Value(1))
	merged := base.Merge()

	if base.IsMergeable() {
		t.Error("Merge() should return a copy, not mutate the receiver")
	}
	if !merged.IsMergeable() {
		t.Error("Merge() result should be mergeable")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind   Kind
		expect string
	}{
		{KindAlways, "always"},
		{KindLazy, "lazy"},
		{KindOptional, "optional"},
		{KindDefer, "defer"},
		{KindMerge, "merge"},
		{Kind(0), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expect {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expect)
		}
	}
}

func TestSourceInvoke(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("value", func(t *testing.T) {
		got, err := Value("hello").invoke(context.Background())
		if err != nil || got != "hello" {
			t.Errorf("invoke() = %v, %v; want hello, nil", got, err)
		}
	})

	t.Run("func", func(t *testing.T) {
		src := Func(func(ctx context.Context) (any, error) { return 42, nil })
		got, err := src.invoke(context.Background())
		if err != nil || got != 42 {
			t.Errorf("invoke() = %v, %v; want 42, nil", got, err)
		}
	})

	t.Run("func error", func(t *testing.T) {
		src := Func(func(ctx context.Context) (any, error) { return nil, errBoom })
		if _, err := src.invoke(context.Background()); !errors.Is(err, errBoom) {
			t.Errorf("invoke() error = %v, want %v", err, errBoom)
		}
	})

	t.Run("async", func(t *testing.T) {
		src := Async(func(ctx context.Context) <-chan Outcome {
			ch := make(chan Outcome, 1)
			go func() { ch <- Outcome{Value: "later"} }()
			return ch
		})
		got, err := src.invoke(context.Background())
		if err != nil || got != "later" {
			t.Errorf("invoke() = %v, %v; want later, nil", got, err)
		}
	})

	t.Run("async error", func(t *testing.T) {
		src := Async(func(ctx context.Context) <-chan Outcome {
			ch := make(chan Outcome, 1)
			ch <- Outcome{Err: errBoom}
			return ch
		})
		if _, err := src.invoke(context.Background()); !errors.Is(err, errBoom) {
			t.Errorf("invoke() error = %v, want %v", err, errBoom)
		}
	})

	t.Run("async cancelled", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		src := Async(func(ctx context.Context) <-chan Outcome {
			return make(chan Outcome)
		})
		if _, err := src.invoke(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("invoke() error = %v, want %v", err, context.DeadlineExceeded)
		}
	})

	t.Run("async closed", func(t *testing.T) {
		src := Async(func(ctx context.Context) <-chan Outcome {
			ch := make(chan Outcome)
			close(ch)
			return ch
		})
		got, err := src.invoke(context.Background())
		if err != nil || got != nil {
			t.Errorf("invoke() = %v, %v; want nil, nil", got, err)
		}
	})
}

type dashboardPage struct {
	UserName string
}

func (p dashboardPage) InertiaProps() Props {
	return Props{"UserName": p.UserName}
}

func TestPropsOf(t *testing.T) {
	if got := PropsOf(nil); got == nil || len(got) != 0 {
		t.Errorf("PropsOf(nil) = %v, want empty Props", got)
	}

	got := PropsOf(dashboardPage{UserName: "ada"})
	if got["UserName"] != "ada" {
		t.Errorf("PropsOf() = %v, want UserName=ada", got)
	}
}

func TestMergeBeneath(t *testing.T) {
	shared := Props{"Auth": "shared-auth", "appName": "demo"}
	page := Props{"auth": "page-auth", "Title": "Home"}

	got := page.mergeBeneath(shared)
	want := Props{"auth": "page-auth", "appName": "demo", "title": "Home"}

	if len(got) != len(want) {
		t.Fatalf("mergeBeneath() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("mergeBeneath()[%q] = %v, want %v", k, got[k], v)
		}
	}
}
