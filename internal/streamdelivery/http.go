package streamdelivery

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const writeTimeout = 5 * time.Second

// Handler upgrades http requests to WebSocket streams fed by a Hub.
type Handler struct {
	hub            *Hub
	snapshot       func() []Message
	originPatterns []string
}

// NewHandler returns stream handler. snapshot provides the messages every
// client receives right after connecting and may be nil.
func NewHandler(hub *Hub, snapshot func() []Message, originPatterns []string) *Handler {
	return &Handler{
		hub:            hub,
		snapshot:       snapshot,
		originPatterns: originPatterns,
	}
}

// Stream handles http request to subscribe to live updates.
func (h *Handler) Stream(gctx *gin.Context) {
	l := zerolog.Ctx(gctx.Request.Context())

	conn, err := websocket.Accept(gctx.Writer, gctx.Request, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		l.Info().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")

	c := h.hub.register()
	defer h.hub.unregister(c)

	// Clients only listen; CloseRead handles control frames and cancels
	// ctx once the peer goes away.
	ctx := conn.CloseRead(gctx.Request.Context())

	if h.snapshot != nil {
		for _, msg := range h.snapshot() {
			if err := write(ctx, conn, msg); err != nil {
				l.Debug().Err(err).Msg("stream closed")
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case msg := <-c.send:
			if err := write(ctx, conn, msg); err != nil {
				if !errors.Is(err, context.Canceled) {
					l.Debug().Err(err).Msg("stream closed")
				}

				return
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	return wsjson.Write(ctx, conn, msg)
}
