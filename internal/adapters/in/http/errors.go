package http

import (
	"errors"
	"net/http"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PartialWriteResponse tells the client which order header is waiting for
// its items, so it can call the retry endpoint instead of resubmitting.
type PartialWriteResponse struct {
	Code        int    `json:"code"`
	Error       string `json:"error"`
	Message     string `json:"message"`
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
}

func (s *Server) fail(c echo.Context, err error) error {
	var partial *commands.PartialWriteError
	switch {
	case errors.As(err, &partial):
		s.logger.Error("order saved without items",
			"order_id", partial.OrderID.String(),
			"order_number", partial.OrderNumber,
			"error", partial.Cause)
		return c.JSON(http.StatusBadGateway, PartialWriteResponse{
			Code:        http.StatusBadGateway,
			Error:       "partial_write",
			Message:     "Order was created but its items could not be saved",
			OrderID:     partial.OrderID.String(),
			OrderNumber: partial.OrderNumber,
		})
	case errors.Is(err, commands.ErrOrderItemsAlreadySaved):
		return c.JSON(http.StatusConflict, ErrorResponse{Code: http.StatusConflict, Message: err.Error()})
	case errs.IsValidation(err):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Code: http.StatusNotFound, Message: err.Error()})
	default:
		s.logger.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: message})
}
