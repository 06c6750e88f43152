package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// connPair dials a throwaway websocket server and returns both ends.
func connPair(t *testing.T) (client, server *websocket.Conn) {
	t.Helper()

	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, <-serverConns
}

func TestRegisterAndSendToUser(t *testing.T) {
	mgr := NewManager()
	client, server := connPair(t)

	mgr.Register("u1", server)
	assert.True(t, mgr.IsConnected("u1"))

	require.NoError(t, mgr.SendToUser("u1", []byte(`{"event":"room_updated"}`)))

	mt, payload, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, mt)
	assert.JSONEq(t, `{"event":"room_updated"}`, string(payload))
}

func TestSendToUserNotConnected(t *testing.T) {
	mgr := NewManager()
	assert.Error(t, mgr.SendToUser("ghost", []byte("hi")))
	assert.False(t, mgr.IsConnected("ghost"))
}

func TestBroadcastSkipsDisconnected(t *testing.T) {
	mgr := NewManager()
	clientA, serverA := connPair(t)
	clientB, serverB := connPair(t)

	mgr.Register("a", serverA)
	mgr.Register("b", serverB)

	sent := mgr.Broadcast([]string{"a", "b", "ghost"}, []byte("update"))
	assert.Equal(t, 2, sent)

	_, payload, err := clientA.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "update", string(payload))

	_, payload, err = clientB.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "update", string(payload))
}

func TestUnregisterClosesConnection(t *testing.T) {
	mgr := NewManager()
	_, server := connPair(t)

	mgr.Register("u1", server)
	mgr.Unregister("u1")

	assert.False(t, mgr.IsConnected("u1"))
	assert.Error(t, mgr.SendToUser("u1", []byte("hi")))
}

func TestRegisterReplacesExistingConnection(t *testing.T) {
	mgr := NewManager()
	_, oldServer := connPair(t)
	newClient, newServer := connPair(t)

	mgr.Register("u1", oldServer)
	mgr.Register("u1", newServer)

	require.NoError(t, mgr.SendToUser("u1", []byte("fresh")))
	_, payload, err := newClient.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(payload))
}
