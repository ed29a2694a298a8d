package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"crmshop/model"
	"crmshop/responses"
	"crmshop/store"
)

// OrderHandler serves the order service HTTP surface. Order creation runs a
// fixed pipeline: validate the input locally, verify the customer remotely,
// then write locally. The verifier is an interface so tests can stub the
// remote step.
type OrderHandler struct {
	store    *store.Store
	verifier CustomerVerifier
	validate *validator.Validate
	log      zerolog.Logger
}

func NewOrderHandler(s *store.Store, v CustomerVerifier, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{store: s, verifier: v, validate: validator.New(), log: logger}
}

func (h *OrderHandler) Register(e *echo.Echo) {
	e.GET("/healthz", Healthz)
	e.GET("/orders", h.List)
	e.POST("/orders", h.Create)
	e.GET("/orders/:id", h.Get)
	e.RouteNotFound("/*", methodNotAllowed)
}

func (h *OrderHandler) List(c echo.Context) error {
	orders, tm, err := h.store.ListOrders(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("order list failed")
		return dbError(c)
	}
	return timedJSON(c, http.StatusOK, orders, tm)
}

func (h *OrderHandler) Create(c echo.Context) error {
	var req model.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "Invalid JSON"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: orderValidationMessage(err)})
	}

	// verify the customer exists before touching the local store; a
	// non-200 answer and an unreachable service are different failures
	t := time.Now()
	found, err := h.verifier.Verify(c.Request().Context(), *req.CustomerID)
	verifyMS := msSince(t)
	if err != nil {
		h.log.Warn().Err(err).Int64("customer_id", *req.CustomerID).Msg("customer service unreachable")
		return c.JSON(http.StatusBadGateway, responses.ErrorResponse{Error: "Customer service unavailable"})
	}
	if !found {
		return c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "Customer not found"})
	}

	order, tm, err := h.store.InsertOrder(c.Request().Context(), *req.CustomerID, *req.Product, *req.Quantity)
	if err != nil {
		h.log.Error().Err(err).Msg("order insert failed")
		return dbError(c)
	}
	return timedJSON(c, http.StatusCreated, order, tm, stage{"verify", verifyMS})
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "Invalid order ID"})
	}

	order, tm, err := h.store.GetOrder(c.Request().Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("order get failed")
		return dbError(c)
	}
	if order == nil {
		return c.JSON(http.StatusNotFound, responses.ErrorResponse{Error: "Order not found"})
	}
	return timedJSON(c, http.StatusOK, order, tm)
}

// orderValidationMessage maps a validator error onto the client-facing
// message for it. Each violation has its own distinct message.
func orderValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid JSON"
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" || fe.Tag() == "min" {
			return "customer_id, product, and quantity are required"
		}
	}
	switch fe := verrs[0]; {
	case fe.Field() == "CustomerID":
		return "customer_id must be positive"
	case fe.Field() == "Product":
		return "product must be 255 characters or less"
	default:
		return "quantity must be positive"
	}
}
