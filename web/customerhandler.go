package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"crmshop/model"
	"crmshop/responses"
	"crmshop/store"
)

// CustomerHandler serves the customer service HTTP surface.
type CustomerHandler struct {
	store    *store.Store
	validate *validator.Validate
	log      zerolog.Logger
}

func NewCustomerHandler(s *store.Store, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{store: s, validate: validator.New(), log: logger}
}

// Register mounts the customer routes. The ping route is registered before
// the :id route so echo matches it as a static segment.
func (h *CustomerHandler) Register(e *echo.Echo) {
	e.GET("/healthz", Healthz)
	e.GET("/customers/ping", h.Ping)
	e.GET("/customers", h.List)
	e.POST("/customers", h.Create)
	e.GET("/customers/:id", h.Get)
	e.DELETE("/customers/:id", h.Delete)
	e.RouteNotFound("/*", methodNotAllowed)
}

// Ping opens a connection and runs a trivial query, reporting both elapsed
// times. Diagnostic only; it touches no domain data.
func (h *CustomerHandler) Ping(c echo.Context) error {
	tm, err := h.store.Ping(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("store ping failed")
		return dbError(c)
	}
	setServerTiming(c, stage{"conn", tm.ConnMS}, stage{"query", tm.QueryMS}, stage{"ser", 0})
	return c.JSON(http.StatusOK, responses.PingResponse{Status: "ok", ConnMS: tm.ConnMS, QueryMS: tm.QueryMS})
}

func (h *CustomerHandler) List(c echo.Context) error {
	customers, tm, err := h.store.ListCustomers(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("customer list failed")
		return dbError(c)
	}
	return timedJSON(c, http.StatusOK, customers, tm)
}

func (h *CustomerHandler) Create(c echo.Context) error {
	var req model.CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "Invalid JSON"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: customerValidationMessage(err)})
	}

	customer, tm, err := h.store.InsertCustomer(c.Request().Context(), *req.Name, *req.Email)
	if err != nil {
		h.log.Error().Err(err).Msg("customer insert failed")
		return dbError(c)
	}
	return timedJSON(c, http.StatusCreated, customer, tm)
}

func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "Invalid customer ID"})
	}

	customer, tm, err := h.store.GetCustomer(c.Request().Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("customer get failed")
		return dbError(c)
	}
	if customer == nil {
		return c.JSON(http.StatusNotFound, responses.ErrorResponse{Error: "Customer not found"})
	}
	return timedJSON(c, http.StatusOK, customer, tm)
}

func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "Invalid customer ID"})
	}

	deleted, tm, err := h.store.DeleteCustomer(c.Request().Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("customer delete failed")
		return dbError(c)
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, responses.ErrorResponse{Error: "Customer not found"})
	}
	setServerTiming(c, stage{"conn", tm.ConnMS}, stage{"query", tm.QueryMS})
	return c.NoContent(http.StatusNoContent)
}

// customerValidationMessage maps a validator error onto the client-facing
// message for it. Presence violations win over format ones.
func customerValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid JSON"
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" || fe.Tag() == "min" {
			return "name and email are required"
		}
	}
	switch fe := verrs[0]; {
	case fe.Field() == "Name" && fe.Tag() == "max":
		return "name must be 255 characters or less"
	default:
		return "invalid email format"
	}
}
