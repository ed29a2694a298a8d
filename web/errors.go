package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"crmshop/responses"
)

// JSONErrorHandler keeps every error response in the {"error": ...} envelope,
// including the router's own 404 and 405 answers.
func JSONErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}

		msg := "Internal server error"
		switch code {
		case http.StatusNotFound:
			msg = "Not found"
		case http.StatusMethodNotAllowed:
			msg = "Method not allowed"
		default:
			logger.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
		}

		if werr := c.JSON(code, responses.ErrorResponse{Error: msg}); werr != nil {
			logger.Error().Err(werr).Msg("error response write failed")
		}
	}
}

// Healthz is the static liveness answer shared by all three services.
func Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, responses.HealthResponse{Status: "ok"})
}

// methodNotAllowed is the backend services' fallback for anything outside
// their resource routes.
func methodNotAllowed(c echo.Context) error {
	return c.JSON(http.StatusMethodNotAllowed, responses.ErrorResponse{Error: "Method not allowed"})
}

func dbError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, responses.ErrorResponse{Error: "Database error"})
}
