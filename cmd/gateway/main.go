package main

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"crmshop/config"
	"crmshop/web"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "gateway").Logger()

	cfg := config.Load("8000")

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = web.JSONErrorHandler(logger)

	web.NewGatewayHandler(cfg, logger).Register(e)

	logger.Info().
		Str("port", cfg.Port).
		Str("customers", cfg.CustomerServiceURL).
		Str("orders", cfg.OrderServiceURL).
		Msg("gateway listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
