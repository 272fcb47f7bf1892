// Package http exposes the cart, checkout and order tracking API.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"foodorder/internal/core/application/tracking"
	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

type OrderWatcher interface {
	Watch(ctx context.Context, customerID, orderID kernel.UUID, onUpdate func(tracking.Update)) (tracking.Unsubscribe, error)
}

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	AddCartItem         CommandHandler[commands.AddCartItemCommand]
	SetCartItemQuantity CommandHandler[commands.SetCartItemQuantityCommand]
	ClearCart           CommandHandler[commands.ClearCartCommand]
	SubmitOrder         QueryHandler[commands.SubmitOrderCommand, commands.SubmitOrderResult]
	RetryOrderItems     CommandHandler[commands.RetryOrderItemsCommand]
	Reorder             QueryHandler[commands.ReorderCommand, commands.ReorderResult]

	GetCart         QueryHandler[queries.GetCartQuery, queries.CartView]
	GetOrderDetails QueryHandler[queries.GetOrderDetailsQuery, queries.OrderDetails]
	GetOrderHistory QueryHandler[queries.GetOrderHistoryQuery, []queries.OrderSummary]

	Carts   ports.CartStore
	Watcher OrderWatcher
}

// Server maps HTTP requests onto application use cases.
type Server struct {
	h         Handlers
	auth      *Authenticator
	validator *RequestValidator
	logger    *slog.Logger
}

func NewServer(handlers Handlers, auth *Authenticator, validator *RequestValidator, logger *slog.Logger) *Server {
	return &Server{
		h:         handlers,
		auth:      auth,
		validator: validator,
		logger:    logger.With("component", "http"),
	}
}

// NewEcho builds the router with tracing and panic recovery installed.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware("foodorder-api")))
	s.Register(e)
	return e
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/openapi.yaml", s.OpenAPIDocument)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", s.auth.Middleware(), s.validator.Middleware())

	api.GET("/cart", s.GetCart)
	api.POST("/cart/items", s.AddCartItem)
	api.PUT("/cart/items/:itemId", s.SetCartItemQuantity)
	api.DELETE("/cart/items/:itemId", s.RemoveCartItem)
	api.DELETE("/cart", s.ClearCart)

	api.POST("/orders", s.SubmitOrder)
	api.GET("/orders", s.GetOrderHistory)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/items/retry", s.RetryOrderItems)
	api.POST("/orders/:id/reorder", s.Reorder)
	api.GET("/orders/:id/live", s.WatchOrder)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// OpenAPIDocument handles GET /openapi.yaml.
func (s *Server) OpenAPIDocument(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/yaml", openAPIDocument)
}

func pathUUID(c echo.Context, name string) (kernel.UUID, bool) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, false
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil || id.Validate() != nil {
		return kernel.UUID{}, false
	}
	return id, true
}
