// Package loader fetches page data from the backend and reduces it to
// view models. Each loader serialises its own fetches: while one load is
// in flight, further triggers are silent no-ops rather than queued work.
package loader

import (
	"context"
	"sync"

	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/webapp/apiclient"
	"github.com/salesai/dashboard-system/internal/webapp/view"
	"github.com/salesai/dashboard-system/pkg/logger"
)

// DashboardAPI is the slice of the backend client the dashboard loader uses.
type DashboardAPI interface {
	Dashboard(ctx context.Context) (*domain.DashboardData, error)
}

// DashboardLoader builds the dashboard view. The mutex is the in-progress
// flag: TryLock failing means a load is already running, and the deferred
// unlock releases it on every exit path.
type DashboardLoader struct {
	api DashboardAPI
	mu  sync.Mutex
}

func NewDashboard(api DashboardAPI) *DashboardLoader {
	return &DashboardLoader{api: api}
}

// Load fetches dashboard data and returns the resulting view. The second
// return is false when another load was already in flight; the returned
// view is then a plain loading state and the caller renders nothing new.
func (l *DashboardLoader) Load(ctx context.Context) (view.Dashboard, bool) {
	if !l.mu.TryLock() {
		return view.Dashboard{State: view.StateLoading}, false
	}
	defer l.mu.Unlock()

	data, err := l.api.Dashboard(ctx)
	if err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("dashboard load failed")
		return view.DashboardError(err), true
	}
	return view.BuildDashboard(data), true
}

// ProfileAPI is the slice of the backend client the profile loader uses.
type ProfileAPI interface {
	Profile(ctx context.Context, userID string) (*apiclient.ProfileResponse, error)
}

// ProfileLoader builds the profile view, gated on a session record.
type ProfileLoader struct {
	api ProfileAPI
	mu  sync.Mutex
}

func NewProfile(api ProfileAPI) *ProfileLoader {
	return &ProfileLoader{api: api}
}

// Load fetches the profile for the session's user. With no session the
// page renders a login prompt. A transport failure leaves the page in its
// prior state, so the caller gets ok=false and renders nothing.
func (l *ProfileLoader) Load(ctx context.Context, record *domain.SessionRecord) (view.Profile, bool) {
	if record == nil {
		return view.LoginRequired(), true
	}

	if !l.mu.TryLock() {
		return view.Profile{State: view.StateLoading}, false
	}
	defer l.mu.Unlock()

	resp, err := l.api.Profile(ctx, record.ID)
	if err != nil {
		log := logger.Get()
		log.Error().Err(err).Str("user_id", record.ID).Msg("profile load failed")
		return view.Profile{}, false
	}
	return view.BuildProfile(resp.Success, resp.User, resp.PredictionCount), true
}
