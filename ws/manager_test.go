package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobboard_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketManager_NotifyUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := NewWebSocketManager()
	go manager.Run(ctx)

	client := &Client{UserID: "u1", Send: make(chan Event, 1), Manager: manager}
	manager.register <- client
	require.Eventually(t, func() bool { return manager.Connections("u1") == 1 }, time.Second, 10*time.Millisecond)

	manager.NotifyUser("u1", "notification", map[string]string{"title": "hi"})
	// буфер на одно событие: второе отбрасывается без блокировки
	manager.NotifyUser("u1", "notification", map[string]string{"title": "dropped"})
	manager.NotifyUser("u2", "notification", nil)

	event := <-client.Send
	assert.Equal(t, "notification", event.Type)
	assert.Len(t, client.Send, 0)

	manager.unregister <- client
	require.Eventually(t, func() bool { return manager.Connections("u1") == 0 }, time.Second, 10*time.Millisecond)
	_, open := <-client.Send
	assert.False(t, open)
}

func TestWebSocketHandler_PushesEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := NewWebSocketManager()
	go manager.Run(ctx)

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		c.Set(contextkeys.UserIDKey, c.Query("as"))
	}, NewWebSocketHandler(manager).ServeWS)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?as=u1"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.Eventually(t, func() bool { return manager.Connections("u1") == 1 }, time.Second, 10*time.Millisecond)
	manager.NotifyUser("u1", "notification", map[string]string{"title": "Application update"})

	var event struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "notification", event.Type)
	assert.Equal(t, "Application update", event.Payload["title"])
}

func TestWebSocketHandler_RequiresUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", NewWebSocketHandler(NewWebSocketManager()).ServeWS)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebSocketManager_StoppedDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	manager := NewWebSocketManager()
	stopped := make(chan struct{})
	go func() {
		manager.Run(ctx)
		close(stopped)
	}()

	active := &Client{UserID: "u1", Send: make(chan Event, 1), Manager: manager}
	require.True(t, manager.Register(active))
	require.Eventually(t, func() bool { return manager.Connections("u1") == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	<-stopped

	// после остановки Run отправки в register/unregister не должны зависать
	finished := make(chan bool, 1)
	go func() {
		late := &Client{UserID: "u2", Send: make(chan Event, 1), Manager: manager}
		ok := manager.Register(late)
		manager.Unregister(late)
		manager.Unregister(active)
		finished <- ok
	}()

	select {
	case ok := <-finished:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("register/unregister blocked after manager stopped")
	}
	assert.Equal(t, 0, manager.Connections("u1"))
	_, open := <-active.Send
	assert.False(t, open)
}

func TestWebSocketHandler_ClosesConnectionAfterShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	manager := NewWebSocketManager()
	stopped := make(chan struct{})
	go func() {
		manager.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		c.Set(contextkeys.UserIDKey, "u1")
	}, NewWebSocketHandler(manager).ServeWS)

	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
	assert.Equal(t, 0, manager.Connections("u1"))
}
