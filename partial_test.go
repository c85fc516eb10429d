package inertia

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func keys(p Props) []string {
	out := make([]string, 0, len(p))
	for k := range p {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func TestPartialFilter(t *testing.T) {
	declared := Props{
		"testFunc":     "plain",
		"testLazy":     Lazy(Value("lazy")),
		"testOptional": Optional(Value("optional")),
		"testDefer":    Defer(Value("defer")),
		"testAlways":   Always(Value("always")),
		"testMerge":    Merge(Value("merge")),
	}

	tests := []struct {
		name      string
		component string
		only      string
		except    string
		expect    []string
	}{
		{
			name:   "first visit drops suppressed props",
			expect: []string{"testAlways", "testFunc", "testMerge"},
		},
		{
			name:      "other component is not partial",
			component: "Other/Page",
			only:      "testLazy",
			expect:    []string{"testAlways", "testFunc", "testMerge"},
		},
		{
			name:      "partial without lists keeps everything",
			component: "Test/Page",
			expect:    []string{"testAlways", "testDefer", "testFunc", "testLazy", "testMerge", "testOptional"},
		},
		{
			name:      "only",
			component: "Test/Page",
			only:      "testLazy",
			expect:    []string{"testAlways", "testLazy"},
		},
		{
			name:      "only is case-insensitive",
			component: "Test/Page",
			only:      "TESTLAZY,testdefer",
			expect:    []string{"testAlways", "testDefer", "testLazy"},
		},
		{
			name:      "except",
			component: "Test/Page",
			except:    "testFunc,testLazy",
			expect:    []string{"testAlways", "testDefer", "testMerge", "testOptional"},
		},
		{
			name:      "only then except",
			component: "Test/Page",
			only:      "testFunc,testLazy",
			except:    "testLazy",
			expect:    []string{"testAlways", "testFunc"},
		},
		{
			name:      "except cannot drop always",
			component: "Test/Page",
			except:    "testAlways",
			expect:    []string{"testAlways", "testDefer", "testFunc", "testLazy", "testMerge", "testOptional"},
		},
		{
			name:      "unknown names are ignored",
			component: "Test/Page",
			only:      "missing",
			expect:    []string{"testAlways"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.component != "" {
				req.Header.Set(HeaderPartialComponent, tt.component)
			}
			if tt.only != "" {
				req.Header.Set(HeaderPartialOnly, tt.only)
			}
			if tt.except != "" {
				req.Header.Set(HeaderPartialExcept, tt.except)
			}

			got := parsePartial(req).filter("Test/Page", declared)
			if diff := cmp.Diff(tt.expect, keys(got)); diff != "" {
				t.Errorf("filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIsPartialForExactMatch(t *testing.T) {
	tests := []struct {
		header string
		expect bool
	}{
		{"Test/Page", true},
		{"test/page", false},
		{"", false},
	}

	for _, tt := range tests {
		p := partialRequest{component: tt.header}
		if got := p.isPartialFor("Test/Page"); got != tt.expect {
			t.Errorf("isPartialFor(%q) = %v, want %v", tt.header, got, tt.expect)
		}
	}
}
