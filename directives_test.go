package inertia

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pthm/inertia/lib/naming"
)

func TestMergeProps(t *testing.T) {
	declared := Props{
		"posts":    Merge(Value(1)),
		"comments": Defer(Value(2)).Merge(),
		"users":    Merge(Value(3)),
		"title":    "plain",
		"stats":    Lazy(Value(4)),
	}

	tests := []struct {
		name     string
		resolved []string
		reset    []string
		expect   []string
	}{
		{"all resolved", []string{"posts", "comments", "users", "title"}, nil, []string{"comments", "posts", "users"}},
		{"only resolved count", []string{"posts", "title"}, nil, []string{"posts"}},
		{"reset removes", []string{"posts", "comments", "users"}, []string{"POSTS"}, []string{"comments", "users"}},
		{"empty is nil", []string{"title"}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := make(map[string]any, len(tt.resolved))
			for _, n := range tt.resolved {
				resolved[n] = true
			}
			got := mergeProps(declared, resolved, naming.NewSet(tt.reset...))
			if diff := cmp.Diff(tt.expect, got); diff != "" {
				t.Errorf("mergeProps() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeferredProps(t *testing.T) {
	declared := Props{
		"comments": Defer(Value(1)),
		"stats":    Defer(Value(2), "sidebar"),
		"activity": Defer(Value(3), "sidebar"),
		"feed":     Defer(Value(4)).Merge(),
		"title":    "plain",
		"users":    Lazy(Value(5)),
	}

	want := map[string][]string{
		DefaultGroup: {"comments", "feed"},
		"sidebar":    {"activity", "stats"},
	}
	if diff := cmp.Diff(want, deferredProps(declared, false)); diff != "" {
		t.Errorf("deferredProps() mismatch (-want +got):\n%s", diff)
	}

	if got := deferredProps(declared, true); got != nil {
		t.Errorf("deferredProps(partial) = %v, want nil", got)
	}

	if got := deferredProps(Props{"title": "plain"}, false); got != nil {
		t.Errorf("deferredProps(no defers) = %v, want nil", got)
	}
}
