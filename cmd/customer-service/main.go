package main

import (
	"context"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"crmshop/config"
	"crmshop/store"
	"crmshop/web"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "customer-service").Logger()

	cfg := config.Load("8001")

	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connect failed")
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("schema migration failed")
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = web.JSONErrorHandler(logger)

	web.NewCustomerHandler(st, logger).Register(e)

	logger.Info().Str("port", cfg.Port).Msg("customer service listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
