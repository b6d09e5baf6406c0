package telemetry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/brineforge/rigid2d"
)

func newTestEngine(t *testing.T) *rigid2d.Engine {
	t.Helper()
	e := rigid2d.NewEngine(rigid2d.EngineOptions{Gravity: &rigid2d.Gravity{}})
	body, err := rigid2d.NewBody(e.Context, []rigid2d.Vector{
		{X: -10, Y: -10}, {X: 10, Y: -10}, {X: 10, Y: 10}, {X: -10, Y: 10},
	}, rigid2d.BodyOptions{Label: "box"})
	require.NoError(t, err)
	e.World.AddBody(body)
	return e
}

func TestRecorderBroadcastsFrameToConnectedClient(t *testing.T) {
	rec := NewRecorder(nil)
	engine := newTestEngine(t)
	rec.Attach(engine)

	server := httptest.NewServer(http.HandlerFunc(rec.ServeHTTP))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return rec.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	engine.Update(0)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame Frame
	require.NoError(t, json.Unmarshal(data, &frame))
	require.Len(t, frame.Bodies, 1)
	require.Equal(t, "box", frame.Bodies[0].Label)
}

func TestRecorderDropsDisconnectedClient(t *testing.T) {
	rec := NewRecorder(nil)
	engine := newTestEngine(t)
	rec.Attach(engine)

	server := httptest.NewServer(http.HandlerFunc(rec.ServeHTTP))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return rec.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()
	engine.Update(0)

	require.Eventually(t, func() bool { return rec.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}
