// Package guard decides, per page load, whether the current page may
// proceed, must show a login prompt, or must redirect.
package guard

import (
	"context"
	"time"

	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/webapp/session"
)

// State is the auth guard's per-page-load outcome.
type State int

const (
	Unguarded State = iota
	Allowed
	DeniedShowMessage
	RedirectingToDashboard
)

func (s State) String() string {
	switch s {
	case Unguarded:
		return "unguarded"
	case Allowed:
		return "allowed"
	case DeniedShowMessage:
		return "denied_show_message"
	case RedirectingToDashboard:
		return "redirecting_to_dashboard"
	default:
		return "unknown"
	}
}

// Page identifies the page being loaded.
type Page string

const (
	PageLogin      Page = "login"
	PageSignup     Page = "signup"
	PageDashboard  Page = "dashboard"
	PageProfile    Page = "profile"
	PagePredict    Page = "predict"
	PageResultGood Page = "result_good"
	PageResultBad  Page = "result_bad"
)

// IsAuthPage reports whether p is one of the authentication pages, which
// the guard never redirects away from based on missing auth alone.
func (p Page) IsAuthPage() bool {
	return p == PageLogin || p == PageSignup
}

// DashboardPath is the target of the reverse redirect.
const DashboardPath = "/dashboard"

// redirectFlagTTL bounds how long a redirect decision suppresses
// re-entrant triggers for the same target page.
const redirectFlagTTL = 3 * time.Second

// Decision is the one-shot result of a guard check. Redirect is only set
// for the redirecting states.
type Decision struct {
	State    State
	Redirect string
}

// Guard evaluates page loads against the current session.
type Guard struct {
	flags session.FlagStore
}

func New(flags session.FlagStore) *Guard {
	return &Guard{flags: flags}
}

// Decide runs the state machine for one page load. scope identifies the
// browsing session the redirect flag belongs to.
//
// Policy: a guarded page with no session renders an inline login prompt and
// never navigates, so a broken session can never cause a redirect loop. An
// auth page with a live session redirects to the dashboard exactly once per
// flag lifetime; duplicate triggers within the TTL fall through to a normal
// page render.
func (g *Guard) Decide(ctx context.Context, page Page, scope string, record *domain.SessionRecord) Decision {
	if page.IsAuthPage() {
		if record == nil {
			return Decision{State: Unguarded}
		}

		won, err := g.flags.TrySet(ctx, scope, string(page), redirectFlagTTL)
		if err != nil || !won {
			// Flag already set (or unavailable): skip the redirect.
			return Decision{State: Unguarded}
		}
		return Decision{State: RedirectingToDashboard, Redirect: DashboardPath}
	}

	if record == nil {
		return Decision{State: DeniedShowMessage}
	}
	return Decision{State: Allowed}
}
