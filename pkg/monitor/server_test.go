package monitor

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (
	*EventCollector, *httptest.Server,
) {
	t.Helper()
	collector := NewEventCollector()
	dashboard := NewDashboardData("test-run")
	s := NewServer("127.0.0.1:0", collector, dashboard)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return collector, ts
}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func TestServer_Health(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestServer_Dashboard(t *testing.T) {
	collector, ts := newTestServer(t)
	collector.Emit(RunEvent{
		Type: EventCompleted, Fixture: "cue-align",
	})

	resp, err := http.Get(ts.URL + "/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	var snap DashboardData
	require.NoError(t,
		json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "test-run", snap.RunID)
	assert.Equal(t, "passed",
		snap.Fixtures["cue-align"].Status)
}

func TestServer_WebSocketStream(t *testing.T) {
	collector, ts := newTestServer(t)

	conn, resp, err := websocket.DefaultDialer.Dial(
		wsURL(ts), nil,
	)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	// The first message is the dashboard snapshot.
	require.NoError(t,
		conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var snap DashboardData
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, "test-run", snap.RunID)

	// Events emitted after connect stream live.
	collector.EmitStarted("cue-align", "vttparse")

	_, data, err = conn.ReadMessage()
	require.NoError(t, err)

	var event RunEvent
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, EventStarted, event.Type)
	assert.Equal(t, "cue-align", event.Fixture)
	assert.Equal(t, "vttparse", event.Engine)
}

func TestServer_EventsUpdateDashboard(t *testing.T) {
	collector, ts := newTestServer(t)

	collector.Emit(RunEvent{
		Type: EventFailed, Fixture: "timing", Message: "boom",
	})

	resp, err := http.Get(ts.URL + "/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	var snap DashboardData
	require.NoError(t,
		json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "failed", snap.Fixtures["timing"].Status)
	assert.Equal(t, "boom", snap.Fixtures["timing"].Message)
}
