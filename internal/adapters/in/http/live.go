package http

import (
	"net/http"
	"time"

	"foodorder/internal/core/application/tracking"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// WatchOrder handles GET /api/v1/orders/:id/live. The order is fetched before
// the upgrade so a missing or foreign order is a plain 404. Each frame is a
// full OrderResponse; a slow client only ever receives the latest one.
func (s *Server) WatchOrder(c echo.Context) error {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return badRequest(c, "Invalid order id")
	}

	frames := make(chan tracking.Update, 1)
	onUpdate := func(u tracking.Update) {
		select {
		case frames <- u:
		default:
			select {
			case <-frames:
			default:
			}
			frames <- u
		}
	}

	unsubscribe, err := s.h.Watcher.Watch(c.Request().Context(), customerIDFrom(c), orderID, onUpdate)
	if err != nil {
		return s.fail(c, err)
	}
	defer unsubscribe()

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "order_id", orderID.String(), "error", err)
		return nil
	}
	defer func() { _ = conn.Close() }()

	// Client messages are ignored; reading detects the close.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			return nil
		case u := <-frames:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = conn.WriteJSON(newOrderResponse(u.Details, u.Stale)); err != nil {
				return nil
			}
		case <-ticker.C:
			if err = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		}
	}
}
