package webapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/webapp/apiclient"
	"github.com/salesai/dashboard-system/internal/webapp/flow"
	"github.com/salesai/dashboard-system/internal/webapp/guard"
	"github.com/salesai/dashboard-system/internal/webapp/loader"
	"github.com/salesai/dashboard-system/internal/webapp/session"
)

type stubBackend struct {
	loginFn   func(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error)
	signupFn  func(ctx context.Context, req apiclient.SignupRequest) (*apiclient.SignupResponse, error)
	loadFn    func(ctx context.Context) (*apiclient.LoadDatasetResponse, error)
	healthFn  func(ctx context.Context) (*domain.HealthReport, error)
	dashFn    func(ctx context.Context) (*domain.DashboardData, error)
	profileFn func(ctx context.Context, userID string) (*apiclient.ProfileResponse, error)
	predictFn func(ctx context.Context, req domain.PredictionInput) (*apiclient.PredictResponse, error)
	deleteFn  func(ctx context.Context, userID string) (*apiclient.DeleteAccountResponse, error)
}

func (s *stubBackend) Login(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error) {
	return s.loginFn(ctx, req)
}
func (s *stubBackend) Signup(ctx context.Context, req apiclient.SignupRequest) (*apiclient.SignupResponse, error) {
	return s.signupFn(ctx, req)
}
func (s *stubBackend) LoadDataset(ctx context.Context) (*apiclient.LoadDatasetResponse, error) {
	return s.loadFn(ctx)
}
func (s *stubBackend) Health(ctx context.Context) (*domain.HealthReport, error) {
	return s.healthFn(ctx)
}
func (s *stubBackend) Dashboard(ctx context.Context) (*domain.DashboardData, error) {
	return s.dashFn(ctx)
}
func (s *stubBackend) Profile(ctx context.Context, userID string) (*apiclient.ProfileResponse, error) {
	return s.profileFn(ctx, userID)
}
func (s *stubBackend) Predict(ctx context.Context, req domain.PredictionInput) (*apiclient.PredictResponse, error) {
	return s.predictFn(ctx, req)
}
func (s *stubBackend) DeleteAccount(ctx context.Context, userID string) (*apiclient.DeleteAccountResponse, error) {
	return s.deleteFn(ctx, userID)
}

type testApp struct {
	e        *echo.Echo
	backend  *stubBackend
	sessions *session.MemoryStore
	codec    *session.TokenCodec
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	backend := &stubBackend{}
	sessions := session.NewMemoryStore()
	flags := session.NewMemoryFlags()
	codec := session.NewTokenCodec("test-secret")

	h := &Handlers{
		api:        backend,
		sessions:   sessions,
		codec:      codec,
		guard:      guard.New(flags),
		dashboards: loader.NewDashboard(backend),
		profiles:   loader.NewProfile(backend),
		predictor:  flow.NewPredictor(backend),
		deleter:    flow.NewAccountDeleter(backend, sessions),
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = NewRenderer()
	e.Use(Session(codec, sessions))

	e.GET("/", h.Home)
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.LoginSubmit)
	e.GET("/signup", h.SignupPage)
	e.POST("/signup", h.SignupSubmit)
	e.POST("/logout", h.Logout)
	e.GET("/dashboard", h.Dashboard)
	e.POST("/dashboard/load-sample", h.LoadSample)
	e.GET("/health-check", h.HealthCheck)
	e.GET("/profile", h.Profile)
	e.POST("/delete-account", h.DeleteAccount)
	e.GET("/predict", h.PredictPage)
	e.POST("/predict", h.PredictSubmit)
	e.GET("/predict/result/good", h.ResultGood)
	e.GET("/predict/result/bad", h.ResultBad)

	return &testApp{e: e, backend: backend, sessions: sessions, codec: codec}
}

// loggedInCookie seeds a session record and returns its signed cookie.
func (a *testApp) loggedInCookie(t *testing.T) *http.Cookie {
	t.Helper()
	record := domain.SessionRecord{ID: "u1", Name: "Ana", Email: "ana@example.com"}
	if err := a.sessions.Set(context.Background(), "sid-1", record, session.DefaultTTL); err != nil {
		t.Fatalf("seeding session: %v", err)
	}
	token, err := a.codec.Mint("sid-1", session.DefaultTTL)
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	return &http.Cookie{Name: session.CookieName, Value: token}
}

func (a *testApp) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func TestDashboardWithoutSessionShowsLoginPrompt(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/dashboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (no redirect)", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please log in") {
		t.Error("expected inline login prompt")
	}
}

func TestDashboardWithSession(t *testing.T) {
	app := newTestApp(t)
	app.backend.dashFn = func(ctx context.Context) (*domain.DashboardData, error) {
		return &domain.DashboardData{
			Stats: domain.DashboardStats{
				TotalSales:          1200.5,
				InvoiceCount:        40,
				CategoryFrequencies: map[string]int64{"Retail": 30, "Online": 10},
			},
		}, nil
	}

	rec := app.get("/dashboard", app.loggedInCookie(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "$1200.50") {
		t.Error("total sales missing from page")
	}
	if !strings.Contains(body, "Retail (30)") {
		t.Error("top categories missing from page")
	}
}

func TestLoginPageWithSessionRedirectsOnce(t *testing.T) {
	app := newTestApp(t)
	cookie := app.loggedInCookie(t)

	first := app.get("/login", cookie)
	if first.Code != http.StatusFound {
		t.Fatalf("first visit: status = %d, want 302", first.Code)
	}
	if loc := first.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("redirect target = %q", loc)
	}

	// Within the guard-flag lifetime the page renders normally instead of
	// redirecting again.
	second := app.get("/login", cookie)
	if second.Code != http.StatusOK {
		t.Fatalf("second visit: status = %d, want 200", second.Code)
	}
}

func TestLoginEstablishesSession(t *testing.T) {
	app := newTestApp(t)
	app.backend.loginFn = func(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error) {
		return &apiclient.LoginResponse{
			Success: true,
			User:    &domain.SessionRecord{ID: "u1", Name: "Ana", Email: req.Email},
		}, nil
	}

	form := url.Values{"email": {"ana@example.com"}, "password": {"secret1"}}
	rec := app.postForm("/login", form, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	cookies := rec.Result().Cookies()
	var sid string
	for _, c := range cookies {
		if c.Name == session.CookieName {
			var err error
			sid, err = app.codec.Parse(c.Value)
			if err != nil {
				t.Fatalf("cookie token invalid: %v", err)
			}
		}
	}
	if sid == "" {
		t.Fatal("no session cookie set")
	}
	if app.sessions.Get(context.Background(), sid) == nil {
		t.Fatal("no session record persisted")
	}
}

func TestLoginFailureShowsMessage(t *testing.T) {
	app := newTestApp(t)
	app.backend.loginFn = func(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error) {
		return &apiclient.LoginResponse{Success: false, Message: "Invalid email or password"}, nil
	}

	form := url.Values{"email": {"ana@example.com"}, "password": {"wrong"}}
	rec := app.postForm("/login", form, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid email or password") {
		t.Error("server message missing from page")
	}
}

func TestCorruptedSessionRendersAsLoggedOut(t *testing.T) {
	app := newTestApp(t)

	app.sessions.SetRaw("sid-1", []byte("{broken"))
	token, err := app.codec.Mint("sid-1", session.DefaultTTL)
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	cookie := &http.Cookie{Name: session.CookieName, Value: token}

	rec := app.get("/dashboard", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please log in") {
		t.Error("corrupted session should render the login prompt")
	}
	if app.sessions.Get(context.Background(), "sid-1") != nil {
		t.Error("corrupted record was not cleared")
	}
}

func TestPredictSubmitRoutesByLabel(t *testing.T) {
	app := newTestApp(t)
	label := "good"
	app.backend.predictFn = func(ctx context.Context, req domain.PredictionInput) (*apiclient.PredictResponse, error) {
		return &apiclient.PredictResponse{Success: true, Label: label}, nil
	}
	cookie := app.loggedInCookie(t)
	form := url.Values{"quantity": {"3"}, "sales_price": {"12.5"}}

	rec := app.postForm("/predict", form, cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/predict/result/good" {
		t.Fatalf("good label: status %d location %q", rec.Code, rec.Header().Get("Location"))
	}

	label = "unexpected-label"
	rec = app.postForm("/predict", form, cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/predict/result/bad" {
		t.Fatalf("unrecognized label: status %d location %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestDeleteAccountClearsSessionAndLandsOnSignup(t *testing.T) {
	app := newTestApp(t)
	app.backend.deleteFn = func(ctx context.Context, userID string) (*apiclient.DeleteAccountResponse, error) {
		if userID != "u1" {
			t.Fatalf("unexpected user id %q", userID)
		}
		return &apiclient.DeleteAccountResponse{Success: true, PredictionsDeleted: 5}, nil
	}
	cookie := app.loggedInCookie(t)

	rec := app.postForm("/delete-account", url.Values{"confirmed": {"yes"}}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sign up") {
		t.Error("expected the signup page after deletion")
	}
	if !strings.Contains(rec.Body.String(), "5 predictions") {
		t.Error("expected the removed prediction count")
	}
	if app.sessions.Get(context.Background(), "sid-1") != nil {
		t.Fatal("session record still present after account deletion")
	}
}

func TestDeleteAccountFailureShowsCurrentProfile(t *testing.T) {
	app := newTestApp(t)
	app.backend.deleteFn = func(ctx context.Context, userID string) (*apiclient.DeleteAccountResponse, error) {
		return &apiclient.DeleteAccountResponse{Success: false, Message: "Deletion is temporarily unavailable"}, nil
	}
	app.backend.profileFn = func(ctx context.Context, userID string) (*apiclient.ProfileResponse, error) {
		return &apiclient.ProfileResponse{
			Success:         true,
			User:            &domain.SessionRecord{ID: "u1", Name: "Ana", Email: "ana@example.com"},
			PredictionCount: 7,
		}, nil
	}
	cookie := app.loggedInCookie(t)

	rec := app.postForm("/delete-account", url.Values{"confirmed": {"yes"}}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Deletion is temporarily unavailable") {
		t.Error("server message missing from page")
	}
	// The page shows the user's real prediction count, not a placeholder.
	if !strings.Contains(body, "Predictions made:</strong> 7") {
		t.Error("expected the current prediction count on the profile page")
	}
	if app.sessions.Get(context.Background(), "sid-1") == nil {
		t.Fatal("session should survive a failed deletion")
	}
}

func TestDeleteAccountWithoutConfirmationKeepsAccount(t *testing.T) {
	app := newTestApp(t)
	app.backend.deleteFn = func(ctx context.Context, userID string) (*apiclient.DeleteAccountResponse, error) {
		t.Fatal("backend must not be called without confirmation")
		return nil, nil
	}
	cookie := app.loggedInCookie(t)

	rec := app.postForm("/delete-account", url.Values{}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if app.sessions.Get(context.Background(), "sid-1") == nil {
		t.Fatal("session should survive an unconfirmed deletion")
	}
}

func TestHealthCheckTransportFailure(t *testing.T) {
	app := newTestApp(t)
	app.backend.healthFn = func(ctx context.Context) (*domain.HealthReport, error) {
		return nil, context.DeadlineExceeded
	}

	rec := app.get("/health-check", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Connectivity test failed") {
		t.Error("expected the connection-failure diagnostic")
	}
}
