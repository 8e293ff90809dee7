package webapp

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/salesai/dashboard-system/internal/webapp/apiclient"
	"github.com/salesai/dashboard-system/internal/webapp/session"
)

// NewRouter builds the Echo instance serving the webapp pages.
func NewRouter(api *apiclient.Client, sessions session.Store, flags session.FlagStore, sessionSecret string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = NewRenderer()

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	codec := session.NewTokenCodec(sessionSecret)
	e.Use(Session(codec, sessions))

	h := NewHandlers(api, sessions, flags, codec)

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

	return e
}
