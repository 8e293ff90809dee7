package guard

import (
	"context"
	"testing"
	"time"

	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/webapp/session"
)

func record() *domain.SessionRecord {
	return &domain.SessionRecord{ID: "u1", Name: "Ana", Email: "ana@example.com"}
}

func TestDecideGuardedWithoutSession(t *testing.T) {
	g := New(session.NewMemoryFlags())

	for _, page := range []Page{PageDashboard, PageProfile, PagePredict} {
		d := g.Decide(context.Background(), page, "s1", nil)
		if d.State != DeniedShowMessage {
			t.Errorf("page %s: state = %s, want denied_show_message", page, d.State)
		}
		if d.Redirect != "" {
			t.Errorf("page %s: unexpected redirect %q", page, d.Redirect)
		}
	}
}

func TestDecideGuardedWithSession(t *testing.T) {
	g := New(session.NewMemoryFlags())

	d := g.Decide(context.Background(), PageDashboard, "s1", record())
	if d.State != Allowed {
		t.Fatalf("state = %s, want allowed", d.State)
	}
}

func TestDecideAuthPageWithoutSession(t *testing.T) {
	g := New(session.NewMemoryFlags())

	d := g.Decide(context.Background(), PageLogin, "s1", nil)
	if d.State != Unguarded {
		t.Fatalf("state = %s, want unguarded", d.State)
	}
}

func TestDecideReverseRedirectSingleShot(t *testing.T) {
	flags := session.NewMemoryFlags()
	g := New(flags)

	first := g.Decide(context.Background(), PageLogin, "s1", record())
	if first.State != RedirectingToDashboard {
		t.Fatalf("first decision state = %s, want redirecting_to_dashboard", first.State)
	}
	if first.Redirect != DashboardPath {
		t.Fatalf("first decision redirect = %q, want %q", first.Redirect, DashboardPath)
	}

	// A second trigger within the flag TTL must not redirect again.
	second := g.Decide(context.Background(), PageLogin, "s1", record())
	if second.State != Unguarded {
		t.Fatalf("second decision state = %s, want unguarded", second.State)
	}
}

func TestDecideReverseRedirectPerPageAndScope(t *testing.T) {
	g := New(session.NewMemoryFlags())

	if d := g.Decide(context.Background(), PageLogin, "s1", record()); d.State != RedirectingToDashboard {
		t.Fatalf("login s1: state = %s", d.State)
	}
	// Signup has its own flag.
	if d := g.Decide(context.Background(), PageSignup, "s1", record()); d.State != RedirectingToDashboard {
		t.Fatalf("signup s1: state = %s", d.State)
	}
	// Another browsing session is unaffected.
	if d := g.Decide(context.Background(), PageLogin, "s2", record()); d.State != RedirectingToDashboard {
		t.Fatalf("login s2: state = %s", d.State)
	}
}

func TestDecideRedirectAfterFlagExpiry(t *testing.T) {
	now := time.Now()
	flags := session.NewMemoryFlags()
	flags.SetClock(func() time.Time { return now })
	g := New(flags)

	if d := g.Decide(context.Background(), PageLogin, "s1", record()); d.State != RedirectingToDashboard {
		t.Fatalf("first: state = %s", d.State)
	}

	now = now.Add(4 * time.Second)
	if d := g.Decide(context.Background(), PageLogin, "s1", record()); d.State != RedirectingToDashboard {
		t.Fatalf("after expiry: state = %s, want redirecting_to_dashboard", d.State)
	}
}

type failingFlags struct{}

func (failingFlags) TrySet(context.Context, string, string, time.Duration) (bool, error) {
	return false, context.DeadlineExceeded
}

func TestDecideFlagStoreFailureSkipsRedirect(t *testing.T) {
	g := New(failingFlags{})

	d := g.Decide(context.Background(), PageLogin, "s1", record())
	if d.State != Unguarded {
		t.Fatalf("state = %s, want unguarded on flag store failure", d.State)
	}
}
