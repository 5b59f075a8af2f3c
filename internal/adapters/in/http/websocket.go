package http

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/net/websocket"
)

// ServeWebSocket handles GET /ws. Each connection gets its own hub
// subscription and receives every event published after it connected;
// there is no replay of earlier events. Clients fetch the current board
// over REST first and then follow the feed.
func (s *Server) ServeWebSocket(ctx echo.Context) error {
	handler := websocket.Handler(func(conn *websocket.Conn) {
		defer conn.Close()

		events, unsubscribe := s.feed.Subscribe()
		defer unsubscribe()

		done := ctx.Request().Context().Done()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				if err := websocket.JSON.Send(conn, event); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})

	handler.ServeHTTP(ctx.Response(), ctx.Request())
	return nil
}
