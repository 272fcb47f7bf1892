package http

import (
	"net/http"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type AddCartItemRequest struct {
	MenuItemID          string `json:"menu_item_id"`
	Quantity            *int   `json:"quantity"`
	SpecialInstructions string `json:"special_instructions"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /api/v1/cart.
func (s *Server) GetCart(c echo.Context) error {
	query, err := queries.NewGetCartQuery(customerIDFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondCart(c, query)
}

// AddCartItem handles POST /api/v1/cart/items. Quantity defaults to 1.
func (s *Server) AddCartItem(c echo.Context) error {
	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	menuItemID, err := kernel.UUIDFromString(req.MenuItemID)
	if err != nil {
		return badRequest(c, "Invalid menu item id")
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cmd, err := commands.NewAddCartItemCommand(customerIDFrom(c), menuItemID, quantity, req.SpecialInstructions)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.AddCartItem.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return s.currentCart(c)
}

// SetCartItemQuantity handles PUT /api/v1/cart/items/:itemId. Zero removes the line.
func (s *Server) SetCartItemQuantity(c echo.Context) error {
	menuItemID, ok := pathUUID(c, "itemId")
	if !ok {
		return badRequest(c, "Invalid menu item id")
	}
	var req SetQuantityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return s.setQuantity(c, menuItemID, req.Quantity)
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:itemId.
func (s *Server) RemoveCartItem(c echo.Context) error {
	menuItemID, ok := pathUUID(c, "itemId")
	if !ok {
		return badRequest(c, "Invalid menu item id")
	}
	return s.setQuantity(c, menuItemID, 0)
}

// ClearCart handles DELETE /api/v1/cart.
func (s *Server) ClearCart(c echo.Context) error {
	cmd, err := commands.NewClearCartCommand(customerIDFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.ClearCart.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) setQuantity(c echo.Context, menuItemID kernel.UUID, quantity int) error {
	cmd, err := commands.NewSetCartItemQuantityCommand(customerIDFrom(c), menuItemID, quantity)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.SetCartItemQuantity.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return s.currentCart(c)
}

func (s *Server) currentCart(c echo.Context) error {
	query, err := queries.NewGetCartQuery(customerIDFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondCart(c, query)
}

func (s *Server) respondCart(c echo.Context, query queries.GetCartQuery) error {
	view, err := s.h.GetCart.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}
