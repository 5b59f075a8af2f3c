// Package http exposes the board's REST and WebSocket surface. It translates
// inbound requests into commands and queries and maps domain errors onto
// HTTP status codes.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"kitchenboard/internal/core/application/projection"
	"kitchenboard/internal/core/application/usecases/commands"
	"kitchenboard/internal/core/application/usecases/queries"
	"kitchenboard/internal/core/domain/model/kernel"
	"kitchenboard/internal/core/domain/model/order"
	"kitchenboard/internal/pkg/errs"
	"kitchenboard/internal/riders"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MoneyRequest carries a price in a request body.
type MoneyRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// ItemRequest carries one order line in a request body.
type ItemRequest struct {
	Name     string       `json:"name"`
	Price    MoneyRequest `json:"price"`
	Quantity int          `json:"quantity"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	Items []ItemRequest `json:"items"`
}

// EditItemsRequest is the body of PATCH /api/v1/orders/:id.
type EditItemsRequest struct {
	Items []ItemRequest `json:"items"`
}

// AdvanceStateRequest is the body of PATCH /api/v1/orders/:id/state.
type AdvanceStateRequest struct {
	State string `json:"state"`
}

// PickupRequest is the body of POST /api/v1/orders/:id/pickup.
type PickupRequest struct {
	RiderID string `json:"riderId"`
}

// AttachPhotoRequest is the body of POST /api/v1/orders/:id/photo-evidence.
type AttachPhotoRequest struct {
	Photo string `json:"photo"`
}

// riderPool is the slice of the rider pool the server depends on.
type riderPool interface {
	Riders(ctx context.Context) ([]riders.Rider, error)
	Attempt(ctx context.Context, riderID string) error
}

// eventFeed hands out broadcast subscriptions for WebSocket clients.
type eventFeed interface {
	Subscribe() (<-chan projection.Event, func())
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler  *commands.CreateOrderCommandHandler
	advanceStateHandler *commands.AdvanceOrderStateCommandHandler
	pickupHandler       *commands.PickupOrderCommandHandler
	recoverHandler      *commands.RecoverOrderCommandHandler
	editItemsHandler    *commands.EditOrderItemsCommandHandler
	attachPhotoHandler  *commands.AttachPhotoEvidenceCommandHandler
	getActiveHandler    queries.GetActiveOrdersQueryHandler
	getHistoryHandler   queries.GetOrderHistoryQueryHandler
	getOrderHandler     queries.GetOrderQueryHandler
	pool                riderPool
	feed                eventFeed
}

// NewServer creates a new HTTP server with the required command and query
// handlers, the rider pool and the broadcast feed for WebSocket clients.
func NewServer(
	createOrderHandler *commands.CreateOrderCommandHandler,
	advanceStateHandler *commands.AdvanceOrderStateCommandHandler,
	pickupHandler *commands.PickupOrderCommandHandler,
	recoverHandler *commands.RecoverOrderCommandHandler,
	editItemsHandler *commands.EditOrderItemsCommandHandler,
	attachPhotoHandler *commands.AttachPhotoEvidenceCommandHandler,
	getActiveHandler queries.GetActiveOrdersQueryHandler,
	getHistoryHandler queries.GetOrderHistoryQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	pool riderPool,
	feed eventFeed,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		advanceStateHandler: advanceStateHandler,
		pickupHandler:       pickupHandler,
		recoverHandler:      recoverHandler,
		editItemsHandler:    editItemsHandler,
		attachPhotoHandler:  attachPhotoHandler,
		getActiveHandler:    getActiveHandler,
		getHistoryHandler:   getHistoryHandler,
		getOrderHandler:     getOrderHandler,
		pool:                pool,
		feed:                feed,
	}
}

// RegisterRoutes wires every endpoint onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetActiveOrders)
	api.GET("/orders/history", s.GetOrderHistory)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id", s.EditOrderItems)
	api.PATCH("/orders/:id/state", s.AdvanceOrderState)
	api.POST("/orders/:id/pickup", s.PickupOrder)
	api.POST("/orders/:id/recover", s.RecoverOrder)
	api.POST("/orders/:id/photo-evidence", s.AttachPhotoEvidence)
	api.GET("/riders", s.GetRiders)
	api.POST("/riders/:id/pickup", s.RiderPickup)

	e.GET("/ws", s.ServeWebSocket)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(toItemInputs(request.Items))
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	projected, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, projected)
}

// GetActiveOrders handles GET /api/v1/orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	projections, err := s.getActiveHandler.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return domainErrorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, projections)
}

// GetOrderHistory handles GET /api/v1/orders/history. The optional "hours"
// query parameter widens or narrows the trailing window.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	var window time.Duration
	if raw := ctx.QueryParam("hours"); raw != "" {
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, "hours must be a number")
		}
		window = time.Duration(hours * float64(time.Hour))
	}

	query, err := queries.NewGetOrderHistoryQuery(window)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	projections, err := s.getHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, projections)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	projected, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, projected)
}

// EditOrderItems handles PATCH /api/v1/orders/:id.
func (s *Server) EditOrderItems(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	var request EditItemsRequest
	if err = ctx.Bind(&request); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewEditOrderItemsCommand(orderID, toItemInputs(request.Items))
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	projected, err := s.editItemsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, projected)
}

// AdvanceOrderState handles PATCH /api/v1/orders/:id/state.
func (s *Server) AdvanceOrderState(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	var request AdvanceStateRequest
	if err = ctx.Bind(&request); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	target, err := order.StateFromString(request.State)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderStateCommand(orderID, target)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	projected, err := s.advanceStateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, projected)
}

// PickupOrder handles POST /api/v1/orders/:id/pickup.
func (s *Server) PickupOrder(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	var request PickupRequest
	if err = ctx.Bind(&request); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewPickupOrderCommand(orderID, request.RiderID)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	projected, err := s.pickupHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, projected)
}

// RecoverOrder handles POST /api/v1/orders/:id/recover.
func (s *Server) RecoverOrder(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	cmd, err := commands.NewRecoverOrderCommand(orderID)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	projected, err := s.recoverHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, projected)
}

// AttachPhotoEvidence handles POST /api/v1/orders/:id/photo-evidence.
func (s *Server) AttachPhotoEvidence(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid order id")
	}

	var request AttachPhotoRequest
	if err = ctx.Bind(&request); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewAttachPhotoEvidenceCommand(orderID, request.Photo)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}

	projected, err := s.attachPhotoHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainErrorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, projected)
}

// GetRiders handles GET /api/v1/riders.
func (s *Server) GetRiders(ctx echo.Context) error {
	snapshot, err := s.pool.Riders(ctx.Request().Context())
	if err != nil {
		return domainErrorJSON(ctx, err)
	}
	return ctx.JSON(http.StatusOK, snapshot)
}

// RiderPickup handles POST /api/v1/riders/:id/pickup. The pool decides
// locally whether the rider's order is ready; only then does the pickup
// command run.
func (s *Server) RiderPickup(ctx echo.Context) error {
	riderID := ctx.Param("id")
	if riderID == "" {
		return errorJSON(ctx, http.StatusBadRequest, "rider id is required")
	}

	if err := s.pool.Attempt(ctx.Request().Context(), riderID); err != nil {
		return domainErrorJSON(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func parseOrderID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func toItemInputs(items []ItemRequest) []commands.ItemInput {
	inputs := make([]commands.ItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, commands.ItemInput{
			Name:          item.Name,
			PriceAmount:   item.Price.Amount,
			PriceCurrency: item.Price.Currency,
			Quantity:      item.Quantity,
		})
	}
	return inputs
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

// domainErrorJSON maps the error taxonomy onto HTTP statuses: validation
// failures are 400, unknown objects 404, state and transition conflicts 409,
// storage outages 503. Anything unrecognized is a 500.
func domainErrorJSON(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState), errors.Is(err, errs.ErrInvalidTransition):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrStorageUnavailable):
		code = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}
