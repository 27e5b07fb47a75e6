package stream

import (
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/debrislab/internal/debris"
)

func startTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	srv := NewServer("", hub, debris.DefaultEnvironment())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return hub, ts
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	return conn
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.Count() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("hub has %d clients, want %d", hub.Count(), want)
}

func TestBroadcastDeliversFrame(t *testing.T) {
	hub, ts := startTestServer(t)
	conn := dialWS(t, ts)
	defer conn.Close()
	waitForClients(t, hub, 1)

	env := debris.DefaultEnvironment()
	pop := debris.NewPopulation(env, rand.New(rand.NewSource(1)))
	pop.SpawnExplosion(debris.Vec2{X: 600, Y: 400}, 300, 5, debris.Soft)
	hub.Broadcast(pop.Snapshot())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}

	var frame debris.Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if len(frame.Particles) != 5 {
		t.Fatalf("frame has %d particles, want 5", len(frame.Particles))
	}
	if frame.Spawned != 5 {
		t.Errorf("frame.Spawned = %d, want 5", frame.Spawned)
	}
	for _, p := range frame.Particles {
		if p.Kind != debris.Soft {
			t.Errorf("particle %d kind = %v, want soft", p.ID, p.Kind)
		}
		if p.Size < 3 || p.Size > 15 {
			t.Errorf("particle %d size = %f, want within [3, 15]", p.ID, p.Size)
		}
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub, ts := startTestServer(t)
	a := dialWS(t, ts)
	defer a.Close()
	b := dialWS(t, ts)
	defer b.Close()
	waitForClients(t, hub, 2)

	pop := debris.NewPopulation(debris.DefaultEnvironment(), rand.New(rand.NewSource(2)))
	pop.SpawnExplosion(debris.Vec2{X: 100, Y: 100}, 200, 3, debris.Rigid)
	hub.Broadcast(pop.Snapshot())

	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read frame: %v", err)
		}
		var frame debris.Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			t.Fatalf("unmarshal frame: %v", err)
		}
		if len(frame.Particles) != 3 {
			t.Errorf("frame has %d particles, want 3", len(frame.Particles))
		}
	}
}

func TestViewerCommandsReachHub(t *testing.T) {
	hub, ts := startTestServer(t)
	conn := dialWS(t, ts)
	defer conn.Close()
	waitForClients(t, hub, 1)

	burst := Command{Op: OpBurst, X: 320, Y: 240, Force: 400, Count: 12, Kind: "rigid"}
	if err := conn.WriteJSON(burst); err != nil {
		t.Fatalf("write command: %v", err)
	}

	select {
	case got := <-hub.Commands():
		if got != burst {
			t.Errorf("received %+v, want %+v", got, burst)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("command never arrived")
	}
}

func TestMalformedMessagesAreIgnored(t *testing.T) {
	hub, ts := startTestServer(t)
	conn := dialWS(t, ts)
	defer conn.Close()
	waitForClients(t, hub, 1)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	if err := conn.WriteJSON(Command{Op: OpClear}); err != nil {
		t.Fatalf("write command: %v", err)
	}

	select {
	case got := <-hub.Commands():
		if got.Op != OpClear {
			t.Errorf("received op %q, want %q", got.Op, OpClear)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("command never arrived")
	}
}

func TestDisconnectedClientsArePruned(t *testing.T) {
	hub, ts := startTestServer(t)
	conn := dialWS(t, ts)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestIndexPageServesViewer(t *testing.T) {
	_, ts := startTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("get index: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	page := string(body)
	if !strings.Contains(page, "<canvas") {
		t.Error("index page has no canvas")
	}
	if !strings.Contains(page, "var W = 1200, H = 800, GROUND = 750;") {
		t.Error("index page missing arena dimensions")
	}

	resp, err = http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("get /nope: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status for unknown path = %d, want 404", resp.StatusCode)
	}
}
