package streamdelivery

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

func TestHubDropsWhenFull(t *testing.T) {
	hub := NewHub(1, zerolog.Nop())

	c := hub.register()
	require.Equal(t, 1, hub.Clients())

	hub.Broadcast(Message{Type: TypeRates, Data: 1})
	hub.Broadcast(Message{Type: TypeRates, Data: 2})

	require.Len(t, c.send, 1)
	require.Equal(t, 1, (<-c.send).Data)

	hub.unregister(c)
	require.Equal(t, 0, hub.Clients())

	// Nobody is listening; must not block.
	hub.Broadcast(Message{Type: TypeAlert})
}

func TestStream(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewHub(8, zerolog.Nop())
	snapshot := func() []Message {
		return []Message{{Type: TypeLedger, Data: "hello"}}
	}

	engine := gin.New()
	engine.GET("/stream", NewHandler(hub, snapshot, nil).Stream)

	server := httptest.NewServer(engine)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/stream"

	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	var got Message
	require.NoError(t, wsjson.Read(ctx, conn, &got))
	require.Equal(t, Message{Type: TypeLedger, Data: "hello"}, got)

	hub.Broadcast(Message{Type: TypeRates, Data: map[string]any{"EUR": "4.35"}})

	require.NoError(t, wsjson.Read(ctx, conn, &got))
	require.Equal(t, TypeRates, got.Type)
	require.Equal(t, map[string]any{"EUR": "4.35"}, got.Data)

	conn.Close(websocket.StatusNormalClosure, "")

	require.Eventually(t, func() bool {
		return hub.Clients() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
