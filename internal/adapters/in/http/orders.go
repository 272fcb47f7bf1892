package http

import (
	"errors"
	"net/http"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type AddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

type SubmitOrderRequest struct {
	DeliveryAddress      AddressRequest `json:"delivery_address"`
	DeliveryInstructions string         `json:"delivery_instructions"`
	PaymentMethod        string         `json:"payment_method"`
}

type SubmitOrderResponse struct {
	OrderID     string       `json:"order_id"`
	OrderNumber string       `json:"order_number"`
	TotalAmount kernel.Money `json:"total_amount"`
}

// OrderResponse is the tracking payload: the order plus its display status.
type OrderResponse struct {
	queries.OrderDetails
	StatusInfo queries.StatusView `json:"status_info"`
	Stale      bool               `json:"stale"`
}

// ReorderResponse is the refreshed cart plus the menu items that could not
// be copied from the past order.
type ReorderResponse struct {
	Cart    queries.CartView `json:"cart"`
	Skipped []string         `json:"skipped_menu_item_ids"`
}

type OrderSummaryResponse struct {
	queries.OrderSummary
	StatusInfo queries.StatusView `json:"status_info"`
}

func newOrderResponse(details queries.OrderDetails, stale bool) OrderResponse {
	return OrderResponse{
		OrderDetails: details,
		StatusInfo:   queries.NewStatusView(details.Status),
		Stale:        stale,
	}
}

// SubmitOrder handles POST /api/v1/orders. The session cart is cleared only
// when both writes succeed; after a partial write it is kept for the retry.
func (s *Server) SubmitOrder(c echo.Context) error {
	var req SubmitOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "card"
	}

	ctx := c.Request().Context()
	customerID := customerIDFrom(c)
	sessionCart, err := s.sessionCart(c, customerID)
	if err != nil {
		return s.fail(c, err)
	}

	address, err := kernel.NewAddress(
		req.DeliveryAddress.Street,
		req.DeliveryAddress.City,
		req.DeliveryAddress.State,
		req.DeliveryAddress.ZipCode,
	)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewSubmitOrderCommand(customerID, sessionCart, order.Checkout{
		Address:              address,
		DeliveryInstructions: req.DeliveryInstructions,
		PaymentMethod:        req.PaymentMethod,
	})
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.h.SubmitOrder.Handle(ctx, cmd)
	if err != nil {
		return s.fail(c, err)
	}

	s.clearSessionCart(c, customerID)

	return c.JSON(http.StatusCreated, SubmitOrderResponse{
		OrderID:     result.OrderID.String(),
		OrderNumber: result.OrderNumber,
		TotalAmount: result.Total,
	})
}

// RetryOrderItems handles POST /api/v1/orders/:id/items/retry.
func (s *Server) RetryOrderItems(c echo.Context) error {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid order id")
	}

	customerID := customerIDFrom(c)
	sessionCart, err := s.sessionCart(c, customerID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRetryOrderItemsCommand(customerID, orderID, sessionCart)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.RetryOrderItems.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	s.clearSessionCart(c, customerID)

	return c.JSON(http.StatusOK, map[string]string{"order_id": orderID.String()})
}

// Reorder handles POST /api/v1/orders/:id/reorder.
func (s *Server) Reorder(c echo.Context) error {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid order id")
	}

	ctx := c.Request().Context()
	customerID := customerIDFrom(c)
	cmd, err := commands.NewReorderCommand(customerID, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	result, err := s.h.Reorder.Handle(ctx, cmd)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetCartQuery(customerID)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.h.GetCart.Handle(ctx, query)
	if err != nil {
		return s.fail(c, err)
	}

	skipped := make([]string, len(result.Skipped))
	for i, id := range result.Skipped {
		skipped[i] = id.String()
	}
	return c.JSON(http.StatusOK, ReorderResponse{Cart: view, Skipped: skipped})
}

// GetOrderHistory handles GET /api/v1/orders.
func (s *Server) GetOrderHistory(c echo.Context) error {
	query, err := queries.NewGetOrderHistoryQuery(customerIDFrom(c))
	if err != nil {
		return s.fail(c, err)
	}

	history, err := s.h.GetOrderHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]OrderSummaryResponse, len(history))
	for i, summary := range history {
		response[i] = OrderSummaryResponse{
			OrderSummary: summary,
			StatusInfo:   queries.NewStatusView(summary.Status),
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid order id")
	}

	query, err := queries.NewGetOrderDetailsQuery(customerIDFrom(c), orderID)
	if err != nil {
		return s.fail(c, err)
	}

	details, err := s.h.GetOrderDetails.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(details, false))
}

// sessionCart returns nil without error when the customer has no cart; the
// command constructors report it as an empty cart.
func (s *Server) sessionCart(c echo.Context, customerID kernel.UUID) (*cart.Cart, error) {
	sessionCart, err := s.h.Carts.Get(c.Request().Context(), customerID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return sessionCart, err
}

func (s *Server) clearSessionCart(c echo.Context, customerID kernel.UUID) {
	if err := s.h.Carts.Delete(c.Request().Context(), customerID); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			"customer_id", customerID.String(),
			"error", err)
	}
}
