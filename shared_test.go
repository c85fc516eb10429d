package inertia

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/pthm/inertia/flash"
)

func TestPackageHelpersNeedRequestContext(t *testing.T) {
	ctx := context.Background()

	checks := map[string]error{
		"Share":          Share(ctx, "a", 1),
		"ShareAll":       ShareAll(ctx, Props{"a": 1}),
		"SetErrors":      SetErrors(ctx, &ErrorBag{}),
		"ClearHistory":   ClearHistory(ctx),
		"EncryptHistory": EncryptHistory(ctx, true),
	}
	for name, err := range checks {
		if !errors.Is(err, ErrNoRequestContext) {
			t.Errorf("%s() error = %v, want %v", name, err, ErrNoRequestContext)
		}
	}
}

func TestShareCamelCasesKeys(t *testing.T) {
	ctx, rc := WithRequestContext(context.Background())

	if err := Share(ctx, "AppName", "demo"); err != nil {
		t.Fatalf("Share failed: %v", err)
	}
	if err := ShareAll(ctx, Props{"Auth": "user", "locale": "en"}); err != nil {
		t.Fatalf("ShareAll failed: %v", err)
	}

	shared := rc.Shared()
	for _, k := range []string{"appName", "auth", "locale"} {
		if _, ok := shared[k]; !ok {
			t.Errorf("Shared() missing %q: %v", k, shared)
		}
	}

	shared["mutated"] = true
	if _, ok := rc.Shared()["mutated"]; ok {
		t.Error("Shared() should return a copy")
	}
}

func TestShareConcurrent(t *testing.T) {
	ctx, rc := WithRequestContext(context.Background())

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = Share(ctx, "key"+string(rune('a'+i%26)), i)
		}()
	}
	wg.Wait()

	if n := len(rc.Shared()); n != 26 {
		t.Errorf("len(Shared()) = %d, want 26", n)
	}
}

func TestValidationFallsBackToFlash(t *testing.T) {
	_, rc := WithRequestContext(context.Background())

	if rc.validation() != nil {
		t.Error("validation() should be nil with no errors")
	}

	rc.setFlash(flash.Data{}.WithError("email", "flashed"))
	got := errorsProp(rc.validation())
	if got["email"] != "flashed" {
		t.Errorf("validation() from flash = %v", got)
	}

	rc.errors = (&ErrorBag{}).Add("email", "explicit")
	got = errorsProp(rc.validation())
	if got["email"] != "explicit" {
		t.Errorf("explicit errors should win over flash, got %v", got)
	}
}

func TestHistoryFlags(t *testing.T) {
	ctx, rc := WithRequestContext(context.Background())

	encrypt, clear := rc.history()
	if encrypt != nil || clear {
		t.Errorf("history() = %v, %v; want nil, false", encrypt, clear)
	}

	_ = EncryptHistory(ctx, false)
	_ = ClearHistory(ctx)

	encrypt, clear = rc.history()
	if encrypt == nil || *encrypt || !clear {
		t.Errorf("history() = %v, %v; want false, true", encrypt, clear)
	}
}
