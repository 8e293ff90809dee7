package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/salesai/dashboard-system/internal/api/handler"
	"github.com/salesai/dashboard-system/internal/core/service"
	"github.com/salesai/dashboard-system/internal/infrastructure/chart"
	"github.com/salesai/dashboard-system/internal/infrastructure/dataset"
	mongodb "github.com/salesai/dashboard-system/internal/infrastructure/db/mongo"
	"github.com/salesai/dashboard-system/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all API routes
// registered.
func NewRouter(client *mongo.Client, db *mongo.Database) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("salesdash"))

	// --- Dependencies ---
	users := mongodb.NewUserRepository(db)
	datasets := mongodb.NewDatasetRepository(db)
	predictions := mongodb.NewPredictionRepository(db)
	models := mongodb.NewModelRepository(db)
	accounts := mongodb.NewAccountRepository(client, db)

	log := logger.Get()
	authService := service.NewAuthService(users)
	analyticsService := service.NewAnalyticsService(datasets, chart.NewRenderer(), log)
	predictionService := service.NewPredictionService(models, predictions, log)
	accountService := service.NewAccountService(accounts, log)
	datasetService := service.NewDatasetService(datasets, models, dataset.NewSample(), mongodb.NewPinger(client), log)

	authHandler := handler.NewAuthHandler(authService, predictions)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	predictionHandler := handler.NewPredictionHandler(predictionService)
	accountHandler := handler.NewAccountHandler(accountService)
	datasetHandler := handler.NewDatasetHandler(datasetService)

	// --- Routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.GET("/profile/:id", authHandler.Profile)

	e.GET("/dashboard", analyticsHandler.Dashboard)
	e.POST("/predict", predictionHandler.Predict)
	e.GET("/aggregations/predictions", predictionHandler.Report)
	e.DELETE("/delete-account", accountHandler.Delete)

	e.POST("/load-dataset", datasetHandler.LoadDataset)
	e.POST("/train-model", datasetHandler.TrainModel)
	e.GET("/health", datasetHandler.Health)

	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
