package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/spendperks/rewards-api/internal/api/handler"
	"github.com/spendperks/rewards-api/internal/api/middleware"
	"github.com/spendperks/rewards-api/internal/core/domain"
	"github.com/spendperks/rewards-api/internal/core/ports"
	"github.com/spendperks/rewards-api/internal/core/service"
	"github.com/spendperks/rewards-api/internal/infrastructure/config"
	"github.com/spendperks/rewards-api/internal/infrastructure/gemini"
	"github.com/spendperks/rewards-api/internal/infrastructure/memory"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The broadcaster is created by the caller because its run loop is tied to
// the process lifecycle.
func NewRouter(cfg *config.Config, events ports.Broadcaster, wsHandler echo.HandlerFunc, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowCredentials: false,
	}))
	e.Use(echoprometheus.NewMiddleware("rewards"))

	// --- Dependencies ---
	directory := memory.NewDirectory()
	sessionStore := memory.NewSessionStore()
	ledgerStore := memory.NewLedgerStore(directory.StartingBalance, service.DemoWalletSeed)
	catalogStore := memory.NewCatalogStore()

	sessionService := service.NewSessionService(directory, sessionStore, cfg.SessionTTL, log)
	ledgerService := service.NewLedgerService(ledgerStore, log)
	catalogService := service.NewCatalogService(catalogStore, events, log)
	simulationService := service.NewSimulationService(ledgerStore, events, cfg.Simulation.Interval, log)
	geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, log)
	insightService := service.NewInsightService(geminiClient, log)

	authHandler := handler.NewAuthHandler(sessionService)
	walletHandler := handler.NewWalletHandler(ledgerService)
	perkHandler := handler.NewPerkHandler(catalogService, ledgerService)
	dashHandler := handler.NewDashHandler(catalogService)
	simulationHandler := handler.NewSimulationHandler(simulationService)
	insightHandler := handler.NewInsightHandler(insightService)
	healthHandler := handler.NewHealthHandler()

	userAuth := middleware.SessionAuth(sessionService, domain.SessionKindUser)
	dashAuth := middleware.SessionAuth(sessionService, domain.SessionKindDashboard)

	// --- User routes ---
	user := e.Group("/api/user")
	user.POST("/login", authHandler.UserLogin)
	user.POST("/logout", authHandler.UserLogout, userAuth)
	user.GET("/balance", walletHandler.Balance, userAuth)
	user.GET("/wallet", walletHandler.Wallet, userAuth)
	user.POST("/transactions", walletHandler.CreateTransaction, userAuth)
	user.GET("/perks", perkHandler.GeneralPerks, userAuth)
	user.GET("/partners", perkHandler.Partners, userAuth)
	user.GET("/partners/:partnerSlug/perks", perkHandler.PartnerPerks, userAuth)
	user.POST("/redeem-perk", perkHandler.RedeemPerk, userAuth)
	user.POST("/:partner/redeem-perks", perkHandler.RedeemPartnerPerk, userAuth)
	user.GET("/start-test", simulationHandler.StartTest, userAuth)
	user.GET("/end-test", simulationHandler.EndTest, userAuth)
	// Open in the original client contract: the UI calls these before any
	// session exists on some screens.
	user.POST("/generate-roast", insightHandler.GenerateRoast)
	user.POST("/analyze-wellbeing", insightHandler.AnalyzeWellbeing)

	// --- Dashboard routes ---
	dash := e.Group("/api/dash")
	dash.POST("/login", authHandler.DashboardLogin)
	dash.GET("/redeems", dashHandler.Redeems, dashAuth)
	dash.GET("/partner", dashHandler.Partner, dashAuth)
	dash.GET("/deals", dashHandler.Deals, dashAuth)
	dash.GET("/stats", dashHandler.Stats, dashAuth)
	dash.POST("/add-perk", dashHandler.AddPerk, dashAuth)

	// --- Infra routes ---
	e.GET("/api/health", healthHandler.Liveness)
	e.GET("/ws", wsHandler)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.Static("/images", "public/images")

	return e
}
