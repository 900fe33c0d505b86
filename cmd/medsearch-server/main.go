package main

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medsearch/aggregator/internal/config"
	"github.com/medsearch/aggregator/internal/domain/cq"
	"github.com/medsearch/aggregator/internal/domain/cqevidence"
	"github.com/medsearch/aggregator/internal/domain/meshproxy"
	"github.com/medsearch/aggregator/internal/domain/search"
	"github.com/medsearch/aggregator/internal/domain/suggest"
	"github.com/medsearch/aggregator/internal/domain/synonym"
	"github.com/medsearch/aggregator/internal/platform/aiproxy"
	"github.com/medsearch/aggregator/internal/platform/middleware"
	"github.com/medsearch/aggregator/internal/platform/translate"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medsearch-server",
		Short: "Federated medical literature search aggregator",
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the aggregator API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	api := e.Group("/api")
	limiter := middleware.NewIPRateLimiter()
	api.Use(middleware.RateLimit(limiter))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	orchestrator := search.New(cfg)
	search.NewHandler(orchestrator).RegisterRoutes(api)

	cqevidence.NewHandler(orchestrator.PubMed, synonym.DefaultIndex).RegisterRoutes(api)
	cq.NewHandler().RegisterRoutes(api)
	suggest.NewHandler().RegisterRoutes(api)
	meshproxy.NewHandler(meshproxy.NewClient(cfg.MeSHBaseURL)).RegisterRoutes(api)
	translate.NewHandler(orchestrator.Translate).RegisterRoutes(api)
	aiproxy.NewHandler(aiproxy.NewClient(cfg.AIEndpoint)).RegisterRoutes(api)

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		message := "internal server error"
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			}
		}
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]string{"error": message})
		}
	}

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	return e.Start(":" + cfg.Port)
}
