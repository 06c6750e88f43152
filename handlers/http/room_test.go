package httpHandler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"expenseml-server/entities"
	"expenseml-server/ws"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wsTestUpgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func wsConnPair(t *testing.T) (client, server *websocket.Conn) {
	t.Helper()

	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := wsTestUpgrader.Upgrade(w, r, nil)
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

func TestNotifyRoomPushesToOtherMembers(t *testing.T) {
	mgr := ws.NewManager()
	handler := NewRoomHandler(nil, mgr)

	actorConn, actorServerConn := wsConnPair(t)
	memberConn, memberServerConn := wsConnPair(t)
	mgr.Register("actor", actorServerConn)
	mgr.Register("member", memberServerConn)

	handler.notifyRoom([]entities.User{{ID: "actor"}, {ID: "member"}}, "actor")

	// The other member receives the event.
	_, payload, err := memberConn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"room_updated"}`, string(payload))

	// The actor does not; the read on their side times out.
	require.NoError(t, actorConn.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = actorConn.ReadMessage()
	assert.Error(t, err)
}

func TestNotifyRoomNilManagerIsNoop(t *testing.T) {
	handler := NewRoomHandler(nil, nil)
	assert.NotPanics(t, func() {
		handler.notifyRoom([]entities.User{{ID: "a"}}, "a")
	})
}
