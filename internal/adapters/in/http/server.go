// Package http exposes the application's use cases over a REST API.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	claimOrderHandler        commands.ClaimOrderCommandHandler
	markAlertReadHandler     commands.MarkAlertReadCommandHandler

	// Query handlers
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler
	getOrderHandler           queries.GetOrderQueryHandler
	getFareQuoteHandler       queries.GetFareQuoteQueryHandler
	getAlertsHandler          queries.GetAlertsQueryHandler

	tokens ports.TokenRegistrar
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	markAlertReadHandler commands.MarkAlertReadCommandHandler,
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getFareQuoteHandler queries.GetFareQuoteQueryHandler,
	getAlertsHandler queries.GetAlertsQueryHandler,
	tokens ports.TokenRegistrar,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		changeOrderStatusHandler:  changeOrderStatusHandler,
		claimOrderHandler:         claimOrderHandler,
		markAlertReadHandler:      markAlertReadHandler,
		getAvailableOrdersHandler: getAvailableOrdersHandler,
		getOrderHandler:           getOrderHandler,
		getFareQuoteHandler:       getFareQuoteHandler,
		getAlertsHandler:          getAlertsHandler,
		tokens:                    tokens,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/available", s.GetAvailableOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/claim", s.ClaimOrder)
	api.GET("/quote", s.GetFareQuote)
	api.GET("/alerts", s.GetAlerts)
	api.POST("/alerts/:id/read", s.MarkAlertRead)
	api.POST("/devices", s.RegisterDevice)

	e.GET("/health", s.Health)
}

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GeoPointRequest is a latitude/longitude pair in a request body.
type GeoPointRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OrderItemRequest is one line of a new order.
type OrderItemRequest struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unitPrice"`
}

// NewOrderRequest is the body for POST /api/v1/orders.
type NewOrderRequest struct {
	CustomerID       string             `json:"customerId"`
	VendorID         string             `json:"vendorId"`
	RouteID          string             `json:"routeId"`
	Items            []OrderItemRequest `json:"items"`
	VendorLocation   GeoPointRequest    `json:"vendorLocation"`
	CustomerLocation GeoPointRequest    `json:"customerLocation"`
	EtaMinutes       float64            `json:"etaMinutes"`
	Peak             bool               `json:"peak"`
	Rain             bool               `json:"rain"`
	Festival         bool               `json:"festival"`
}

// ChangeStatusRequest is the body for POST /api/v1/orders/:id/status.
type ChangeStatusRequest struct {
	Role    string `json:"role"`
	ActorID string `json:"actorId"`
	Status  string `json:"status"`
}

// ClaimRequest is the body for POST /api/v1/orders/:id/claim. Location
// is the courier's position at claim time and may be omitted.
type ClaimRequest struct {
	CourierID string           `json:"courierId"`
	Location  *GeoPointRequest `json:"location,omitempty"`
}

// MarkAlertReadRequest is the body for POST /api/v1/alerts/:id/read.
type MarkAlertReadRequest struct {
	ActorID string `json:"actorId"`
}

// RegisterDeviceRequest is the body for POST /api/v1/devices.
type RegisterDeviceRequest struct {
	ActorID        string `json:"actorId"`
	PrimaryToken   string `json:"primaryToken"`
	SecondaryToken string `json:"secondaryToken"`
}

// FareQuoteRequest carries the query parameters of GET /api/v1/quote.
type FareQuoteRequest struct {
	OriginLat  float64 `query:"originLat"`
	OriginLng  float64 `query:"originLng"`
	DestLat    float64 `query:"destLat"`
	DestLng    float64 `query:"destLng"`
	EtaMinutes float64 `query:"etaMinutes"`
	Peak       bool    `query:"peak"`
	Rain       bool    `query:"rain"`
	Festival   bool    `query:"festival"`
}

// CreateOrder handles POST /api/v1/orders - places a new order and quotes its fee.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customerId: "+err.Error())
	}
	vendorID, err := kernel.UUIDFromString(req.VendorID)
	if err != nil {
		return badRequest(ctx, "Invalid vendorId: "+err.Error())
	}
	routeID, err := kernel.UUIDFromString(req.RouteID)
	if err != nil {
		return badRequest(ctx, "Invalid routeId: "+err.Error())
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, line := range req.Items {
		item, itemErr := order.NewItem(line.Name, line.Quantity, line.UnitPrice)
		if itemErr != nil {
			return badRequest(ctx, "Invalid order item: "+itemErr.Error())
		}
		items = append(items, item)
	}

	vendorLoc, err := kernel.NewGeoPoint(req.VendorLocation.Lat, req.VendorLocation.Lng)
	if err != nil {
		return badRequest(ctx, "Invalid vendorLocation: "+err.Error())
	}
	customerLoc, err := kernel.NewGeoPoint(req.CustomerLocation.Lat, req.CustomerLocation.Lng)
	if err != nil {
		return badRequest(ctx, "Invalid customerLocation: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, vendorID, routeID, items,
		vendorLoc, customerLoc, req.EtaMinutes,
		services.SurgeFlags{Peak: req.Peak, Rain: req.Rain, Festival: req.Festival},
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - moves an order
// through its lifecycle on behalf of the requesting actor.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req ChangeStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, err := actorFromRequest(req.Role, req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor: "+err.Error())
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, actor, target)
	if err != nil {
		return badRequest(ctx, "Invalid transition request: "+err.Error())
	}

	if handleErr := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// ClaimOrder handles POST /api/v1/orders/:id/claim - a courier's attempt to
// take an unassigned order. Exactly one concurrent claimer wins.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req ClaimRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courierId: "+err.Error())
	}

	var location *kernel.GeoPoint
	if req.Location != nil {
		point, locErr := kernel.NewGeoPoint(req.Location.Lat, req.Location.Lng)
		if locErr != nil {
			return badRequest(ctx, "Invalid location: "+locErr.Error())
		}
		location = &point
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, courierID, location)
	if err != nil {
		return badRequest(ctx, "Invalid claim request: "+err.Error())
	}

	if handleErr := s.claimOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetAvailableOrders handles GET /api/v1/orders/available - the claimable pool.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	query := queries.NewGetAvailableOrdersQuery()

	orders, err := s.getAvailableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:id - a single order with its items.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetFareQuote handles GET /api/v1/quote - prices a prospective delivery
// without creating anything.
func (s *Server) GetFareQuote(ctx echo.Context) error {
	var req FareQuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid query parameters")
	}

	origin, err := kernel.NewGeoPoint(req.OriginLat, req.OriginLng)
	if err != nil {
		return badRequest(ctx, "Invalid origin: "+err.Error())
	}
	dest, err := kernel.NewGeoPoint(req.DestLat, req.DestLng)
	if err != nil {
		return badRequest(ctx, "Invalid destination: "+err.Error())
	}

	query, err := queries.NewGetFareQuoteQuery(origin, dest, req.EtaMinutes,
		services.SurgeFlags{Peak: req.Peak, Rain: req.Rain, Festival: req.Festival})
	if err != nil {
		return badRequest(ctx, "Invalid quote request: "+err.Error())
	}

	resp, err := s.getFareQuoteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetAlerts handles GET /api/v1/alerts - the actor's alerts, broadcasts included.
func (s *Server) GetAlerts(ctx echo.Context) error {
	targetID, err := kernel.UUIDFromString(ctx.QueryParam("targetId"))
	if err != nil {
		return badRequest(ctx, "Invalid targetId: "+err.Error())
	}

	query, err := queries.NewGetAlertsQuery(targetID)
	if err != nil {
		return badRequest(ctx, "Invalid targetId: "+err.Error())
	}

	alerts, err := s.getAlertsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, alerts)
}

// MarkAlertRead handles POST /api/v1/alerts/:id/read.
func (s *Server) MarkAlertRead(ctx echo.Context) error {
	alertID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid alert id: "+err.Error())
	}

	var req MarkAlertReadRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actorId: "+err.Error())
	}

	cmd, err := commands.NewMarkAlertReadCommand(alertID, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if handleErr := s.markAlertReadHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// RegisterDevice handles POST /api/v1/devices - stores an actor's push
// channel tokens for later notification fan-out.
func (s *Server) RegisterDevice(ctx echo.Context) error {
	var req RegisterDeviceRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actorId: "+err.Error())
	}

	if req.PrimaryToken == "" && req.SecondaryToken == "" {
		return badRequest(ctx, "At least one token is required")
	}

	err = s.tokens.Register(ctx.Request().Context(), actorID, ports.ChannelTokens{
		Primary:   req.PrimaryToken,
		Secondary: req.SecondaryToken,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// actorFromRequest parses a role/id pair. The system role never arrives over
// HTTP; forced cancellations are driven by the background sweeper.
func actorFromRequest(role string, actorID string) (services.Actor, error) {
	parsed, err := services.ParseRole(role)
	if err != nil {
		return services.Actor{}, err
	}

	id, err := kernel.UUIDFromString(actorID)
	if err != nil {
		return services.Actor{}, err
	}

	return services.NewActor(parsed, id)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain and infrastructure errors onto HTTP statuses.
func writeError(ctx echo.Context, err error) error {
	code := statusForError(err)
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, order.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrAlreadyClaimed),
		errors.Is(err, order.ErrPreconditionFailed),
		errors.Is(err, ports.ErrOrderModified):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
