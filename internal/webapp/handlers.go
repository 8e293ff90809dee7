package webapp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/webapp/apiclient"
	"github.com/salesai/dashboard-system/internal/webapp/flow"
	"github.com/salesai/dashboard-system/internal/webapp/guard"
	"github.com/salesai/dashboard-system/internal/webapp/loader"
	"github.com/salesai/dashboard-system/internal/webapp/session"
	"github.com/salesai/dashboard-system/internal/webapp/view"
	"github.com/salesai/dashboard-system/pkg/logger"
)

// Backend is the slice of the API client the page handlers call directly.
// The loaders and flows hold their own narrower slices.
type Backend interface {
	Signup(ctx context.Context, req apiclient.SignupRequest) (*apiclient.SignupResponse, error)
	Login(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error)
	LoadDataset(ctx context.Context) (*apiclient.LoadDatasetResponse, error)
	Health(ctx context.Context) (*domain.HealthReport, error)
}

// Handlers serves the webapp pages.
type Handlers struct {
	api        Backend
	sessions   session.Store
	codec      *session.TokenCodec
	guard      *guard.Guard
	dashboards *loader.DashboardLoader
	profiles   *loader.ProfileLoader
	predictor  *flow.Predictor
	deleter    *flow.AccountDeleter
}

func NewHandlers(api *apiclient.Client, sessions session.Store, flags session.FlagStore, codec *session.TokenCodec) *Handlers {
	return &Handlers{
		api:        api,
		sessions:   sessions,
		codec:      codec,
		guard:      guard.New(flags),
		dashboards: loader.NewDashboard(api),
		profiles:   loader.NewProfile(api),
		predictor:  flow.NewPredictor(api),
		deleter:    flow.NewAccountDeleter(api, sessions),
	}
}

func (h *Handlers) page(c echo.Context, title string) PageData {
	return PageData{Title: title, User: currentUser(c)}
}

// Home routes to the dashboard for logged-in users, login otherwise.
func (h *Handlers) Home(c echo.Context) error {
	if currentUser(c) != nil {
		return c.Redirect(http.StatusFound, "/dashboard")
	}
	return c.Redirect(http.StatusFound, "/login")
}

// LoginPage renders the login form. A live session redirects to the
// dashboard instead, at most once per guard-flag lifetime.
func (h *Handlers) LoginPage(c echo.Context) error {
	d := h.guard.Decide(c.Request().Context(), guard.PageLogin, sessionID(c), currentUser(c))
	if d.State == guard.RedirectingToDashboard {
		return c.Redirect(http.StatusFound, d.Redirect)
	}
	return c.Render(http.StatusOK, "login", h.page(c, "Log in"))
}

// LoginSubmit authenticates against the backend and establishes the
// session on success.
func (h *Handlers) LoginSubmit(c echo.Context) error {
	ctx := c.Request().Context()

	resp, err := h.api.Login(ctx, apiclient.LoginRequest{
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	})
	if err != nil {
		logger.Get().Error().Err(err).Msg("login request failed")
		data := h.page(c, "Log in")
		data.Flash = "Could not reach the backend. Please try again."
		return c.Render(http.StatusOK, "login", data)
	}
	if !resp.Success || resp.User == nil {
		data := h.page(c, "Log in")
		data.Flash = resp.Message
		if data.Flash == "" {
			data.Flash = "Invalid email or password"
		}
		return c.Render(http.StatusUnauthorized, "login", data)
	}

	sid := session.NewID()
	if err := h.sessions.Set(ctx, sid, *resp.User, session.DefaultTTL); err != nil {
		logger.Get().Error().Err(err).Msg("persisting session failed")
		data := h.page(c, "Log in")
		data.Flash = "Could not establish a session. Please try again."
		return c.Render(http.StatusOK, "login", data)
	}

	token, err := h.codec.Mint(sid, session.DefaultTTL)
	if err != nil {
		return err
	}
	c.SetCookie(sessionCookie(token, session.DefaultTTL))

	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// SignupPage renders the registration form, with the same reverse
// redirect as the login page.
func (h *Handlers) SignupPage(c echo.Context) error {
	d := h.guard.Decide(c.Request().Context(), guard.PageSignup, sessionID(c), currentUser(c))
	if d.State == guard.RedirectingToDashboard {
		return c.Redirect(http.StatusFound, d.Redirect)
	}
	return c.Render(http.StatusOK, "signup", h.page(c, "Sign up"))
}

func (h *Handlers) SignupSubmit(c echo.Context) error {
	resp, err := h.api.Signup(c.Request().Context(), apiclient.SignupRequest{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	})
	if err != nil {
		logger.Get().Error().Err(err).Msg("signup request failed")
		data := h.page(c, "Sign up")
		data.Flash = "Could not reach the backend. Please try again."
		return c.Render(http.StatusOK, "signup", data)
	}
	if !resp.Success {
		data := h.page(c, "Sign up")
		data.Flash = resp.Message
		if data.Flash == "" {
			data.Flash = "Signup failed"
		}
		return c.Render(http.StatusOK, "signup", data)
	}

	data := h.page(c, "Log in")
	data.Flash = "Account created. Please log in."
	return c.Render(http.StatusOK, "login", data)
}

// Logout clears the session record and expires the cookie.
func (h *Handlers) Logout(c echo.Context) error {
	if sid := sessionID(c); sid != "" {
		if err := h.sessions.Clear(c.Request().Context(), sid); err != nil {
			logger.Get().Warn().Err(err).Msg("clearing session on logout failed")
		}
	}
	c.SetCookie(expiredSessionCookie())
	return c.Redirect(http.StatusSeeOther, "/login")
}

// Dashboard renders the dashboard page for the logged-in user.
func (h *Handlers) Dashboard(c echo.Context) error {
	data := h.page(c, "Dashboard")
	if data.User == nil {
		return c.Render(http.StatusOK, "dashboard", data)
	}

	v, ok := h.dashboards.Load(c.Request().Context())
	if !ok {
		// Another load is in flight; show a brief loading page that
		// retries on its own.
		data.Data = v
		data.Refresh = "1"
		return c.Render(http.StatusOK, "dashboard", data)
	}
	data.Data = v
	return c.Render(http.StatusOK, "dashboard", data)
}

// LoadSample loads the sample dataset, then sends the browser back to the
// dashboard after a short delay.
func (h *Handlers) LoadSample(c echo.Context) error {
	data := h.page(c, "Dashboard")
	if data.User == nil {
		return c.Render(http.StatusOK, "dashboard", data)
	}

	resp, err := h.api.LoadDataset(c.Request().Context())
	switch {
	case err != nil:
		logger.Get().Error().Err(err).Msg("loading sample dataset failed")
		data.Flash = "Loading the sample dataset failed. Please try again."
	case !resp.Success:
		data.Flash = resp.Message
		if data.Flash == "" {
			data.Flash = "Loading the sample dataset failed"
		}
	default:
		data.Flash = "Sample dataset loaded. Returning to the dashboard."
		data.Refresh = "2;url=/dashboard"
	}

	data.Data = view.Dashboard{State: view.StateEmpty, Actions: []string{view.ActionLoadSampleData, view.ActionCheckHealth}}
	return c.Render(http.StatusOK, "dashboard", data)
}

// HealthCheck renders the backend connectivity report.
func (h *Handlers) HealthCheck(c echo.Context) error {
	data := h.page(c, "Backend health")

	report, err := h.api.Health(c.Request().Context())
	if err != nil {
		logger.Get().Error().Err(err).Msg("health check failed")
		report = &domain.HealthReport{
			Status:  domain.HealthStatusUnhealthy,
			MongoDB: domain.MongoDisconnected,
			Error:   err.Error(),
		}
	}
	data.Data = report
	return c.Render(http.StatusOK, "health", data)
}

// Profile renders the profile page for the logged-in user.
func (h *Handlers) Profile(c echo.Context) error {
	data := h.page(c, "Profile")

	v, ok := h.profiles.Load(c.Request().Context(), data.User)
	if !ok {
		data.Flash = "Could not refresh your profile. Please try again."
		v = view.Profile{State: view.StateError, Message: "Unable to load profile"}
	}
	data.Data = v
	return c.Render(http.StatusOK, "profile", data)
}

// PredictPage renders the prediction form.
func (h *Handlers) PredictPage(c echo.Context) error {
	return c.Render(http.StatusOK, "predict", h.page(c, "Predict"))
}

// PredictSubmit scores the submitted order and routes to one of the two
// result pages by label.
func (h *Handlers) PredictSubmit(c echo.Context) error {
	out := h.predictor.Submit(c.Request().Context(), currentUser(c), c.FormValue("quantity"), c.FormValue("sales_price"))
	if out.LoginRequired {
		return c.Render(http.StatusOK, "predict", h.page(c, "Predict"))
	}
	if out.Redirect != "" {
		return c.Redirect(http.StatusSeeOther, out.Redirect)
	}

	data := h.page(c, "Predict")
	data.Flash = out.Message
	return c.Render(http.StatusOK, "predict", data)
}

func (h *Handlers) ResultGood(c echo.Context) error {
	if d := h.guard.Decide(c.Request().Context(), guard.PageResultGood, sessionID(c), currentUser(c)); d.State == guard.DeniedShowMessage {
		return h.renderLoginRequired(c, "Prediction result")
	}
	return c.Render(http.StatusOK, "result_good", h.page(c, "Good sale"))
}

func (h *Handlers) ResultBad(c echo.Context) error {
	if d := h.guard.Decide(c.Request().Context(), guard.PageResultBad, sessionID(c), currentUser(c)); d.State == guard.DeniedShowMessage {
		return h.renderLoginRequired(c, "Prediction result")
	}
	return c.Render(http.StatusOK, "result_bad", h.page(c, "Bad sale"))
}

// DeleteAccount runs the destructive deletion flow. The confirmation is
// collected in the browser; the hidden field records it.
func (h *Handlers) DeleteAccount(c echo.Context) error {
	confirmed := c.FormValue("confirmed") == "yes"

	out := h.deleter.Delete(c.Request().Context(), sessionID(c), currentUser(c), confirmed)
	if out.LoginRequired {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	if out.Redirect != "" {
		c.SetCookie(expiredSessionCookie())
		data := PageData{Title: "Sign up", Flash: out.Message}
		return c.Render(http.StatusOK, "signup", data)
	}

	data := h.page(c, "Profile")
	data.Flash = out.Message
	v, ok := h.profiles.Load(c.Request().Context(), data.User)
	if !ok {
		v = view.Profile{State: view.StateError, Message: "Unable to load profile"}
	}
	data.Data = v
	return c.Render(http.StatusOK, "profile", data)
}

func (h *Handlers) renderLoginRequired(c echo.Context, title string) error {
	data := h.page(c, title)
	data.Data = view.LoginRequired()
	return c.Render(http.StatusOK, "profile", data)
}

func sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
