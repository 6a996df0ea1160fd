package preview

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/ripple/internal/errors"
	"github.com/vango-dev/ripple/pkg/dom"
	"github.com/vango-dev/ripple/pkg/reactive"
	"github.com/vango-dev/ripple/pkg/router"
	"github.com/vango-dev/ripple/pkg/vdom"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func counter(rt *reactive.Runtime) func() *vdom.VNode {
	count := reactive.NewSignalIn(rt, 0)
	return func() *vdom.VNode {
		return vdom.Div(
			vdom.Button(vdom.ID("inc"), vdom.OnClick(func() {
				count.Update(func(n int) int { return n + 1 })
			}), "+"),
			vdom.P(vdom.ID("out"), vdom.Textf("Count: %d", count.Get())),
		)
	}
}

func newTestServer(t *testing.T, config *Config) (*Server, *httptest.Server) {
	t.Helper()
	if config.Runtime == nil {
		config.Runtime = reactive.NewRuntime()
	}
	config.Logger = quietLogger()

	s := New(config)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Close()
		ts.Close()
	})
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatal(err)
	}
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return msg
}

func nodeID(t *testing.T, s *Server, elementID string) uint64 {
	t.Helper()
	var id uint64
	if err := s.Do(func() {
		if n := dom.GetElementByID(s.Document().Body(), elementID); n != nil {
			id = n.ID()
		}
	}); err != nil {
		t.Fatal(err)
	}
	if id == 0 {
		t.Fatalf("element #%s not found", elementID)
	}
	return id
}

func TestMountPublishesSnapshot(t *testing.T) {
	cfg := &Config{}
	s, _ := newTestServer(t, cfg)

	if got := s.Snapshot(); got != "" {
		t.Errorf("Snapshot() before mount = %q, want empty", got)
	}
	if err := s.Mount(counter(cfg.Runtime)); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	snap := s.Snapshot()
	if !strings.Contains(snap, "Count: 0") {
		t.Errorf("Snapshot() = %q, want it to contain Count: 0", snap)
	}
	if !strings.Contains(snap, `data-rid="`) {
		t.Errorf("Snapshot() = %q, want data-rid attributes", snap)
	}
}

func TestRemountReplacesContent(t *testing.T) {
	cfg := &Config{}
	s, _ := newTestServer(t, cfg)

	if err := s.Mount(counter(cfg.Runtime)); err != nil {
		t.Fatal(err)
	}
	if err := s.Mount(func() *vdom.VNode { return vdom.P("other") }); err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot()
	if strings.Contains(snap, "Count") || !strings.Contains(snap, "other") {
		t.Errorf("Snapshot() = %q, want only the second component", snap)
	}
}

func TestPageAndSnapshotRoutes(t *testing.T) {
	cfg := &Config{Title: "Demo <1>"}
	s, ts := newTestServer(t, cfg)
	if err := s.Mount(counter(cfg.Runtime)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"<!DOCTYPE html>", "<title>Demo &lt;1&gt;</title>", "Count: 0", "/ws"}},
		{"/snapshot", []string{"Count: 0", `id="inc"`}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Content-Type = %q, want text/html", ct)
			}
			for _, w := range tt.want {
				if !strings.Contains(string(body), w) {
					t.Errorf("body missing %q:\n%s", w, body)
				}
			}
		})
	}
}

func TestWebSocketEventRoundTrip(t *testing.T) {
	cfg := &Config{}
	s, ts := newTestServer(t, cfg)
	if err := s.Mount(counter(cfg.Runtime)); err != nil {
		t.Fatal(err)
	}

	conn := dial(t, ts)
	initial := readMessage(t, conn)
	if initial.Type != TypeHTML || !strings.Contains(initial.HTML, "Count: 0") {
		t.Fatalf("initial message = %+v, want html with Count: 0", initial)
	}
	if got := s.ClientCount(); got != 1 {
		t.Errorf("ClientCount() = %d, want 1", got)
	}

	id := nodeID(t, s, "inc")
	for want := 1; want <= 2; want++ {
		if err := conn.WriteJSON(Message{Type: TypeEvent, Node: id, Event: "click"}); err != nil {
			t.Fatal(err)
		}
		msg := readMessage(t, conn)
		if msg.Type != TypeHTML {
			t.Fatalf("message = %+v, want html", msg)
		}
		if !strings.Contains(msg.HTML, fmt.Sprintf("Count: %d", want)) {
			t.Errorf("html = %q, want Count: %d", msg.HTML, want)
		}
	}
}

func TestWebSocketInputEvent(t *testing.T) {
	cfg := &Config{}
	s, ts := newTestServer(t, cfg)

	text := reactive.NewSignalIn(cfg.Runtime, "")
	if err := s.Mount(func() *vdom.VNode {
		return vdom.Div(
			vdom.Input(vdom.ID("name"), vdom.Value(text.Get()), vdom.OnInput(func(v string) { text.Set(v) })),
			vdom.P("Hello ", text.Get()),
		)
	}); err != nil {
		t.Fatal(err)
	}

	conn := dial(t, ts)
	readMessage(t, conn)

	id := nodeID(t, s, "name")
	if err := conn.WriteJSON(Message{Type: TypeEvent, Node: id, Event: "input", Value: "Ada"}); err != nil {
		t.Fatal(err)
	}
	msg := readMessage(t, conn)
	if !strings.Contains(msg.HTML, "Hello Ada") {
		t.Errorf("html = %q, want Hello Ada", msg.HTML)
	}
	if !strings.Contains(msg.HTML, `value="Ada"`) {
		t.Errorf("html = %q, want the input value", msg.HTML)
	}
}

func TestWebSocketErrors(t *testing.T) {
	cfg := &Config{}
	s, ts := newTestServer(t, cfg)
	if err := s.Mount(counter(cfg.Runtime)); err != nil {
		t.Fatal(err)
	}

	conn := dial(t, ts)
	readMessage(t, conn)

	tests := []struct {
		name     string
		send     string
		wantCode string
	}{
		{"invalid json", `{"type":`, "E301"},
		{"unknown type", `{"type":"shout"}`, "E301"},
		{"missing event name", `{"type":"event","node":1}`, "E301"},
		{"unknown node", `{"type":"event","node":99999,"event":"click"}`, "E302"},
		{"navigation disabled", `{"type":"navigate","path":"#/x"}`, "E301"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.send)); err != nil {
				t.Fatal(err)
			}
			msg := readMessage(t, conn)
			if msg.Type != TypeError || msg.Code != tt.wantCode {
				t.Errorf("reply = %+v, want error %s", msg, tt.wantCode)
			}
		})
	}
}

func TestWebSocketNavigate(t *testing.T) {
	rt := reactive.NewRuntime()
	r := router.New(router.WithRuntime(rt), router.WithLogger(quietLogger()))
	r.Handle("/", func(router.Params) *vdom.VNode { return vdom.H1("Home") })
	r.Handle("/todos/{id}", func(p router.Params) *vdom.VNode { return vdom.H1("Todo ", p.Get("id")) })

	s, ts := newTestServer(t, &Config{Runtime: rt, Navigate: r.Navigate})
	if err := s.Mount(r.View()); err != nil {
		t.Fatal(err)
	}

	conn := dial(t, ts)
	if msg := readMessage(t, conn); !strings.Contains(msg.HTML, "Home") {
		t.Fatalf("initial html = %q, want Home", msg.HTML)
	}

	if err := conn.WriteJSON(Message{Type: TypeNavigate, Path: "#/todos/7"}); err != nil {
		t.Fatal(err)
	}
	msg := readMessage(t, conn)
	if !strings.Contains(msg.HTML, "Todo 7") {
		t.Errorf("html = %q, want Todo 7", msg.HTML)
	}
}

func TestFocusIsReported(t *testing.T) {
	cfg := &Config{}
	s, ts := newTestServer(t, cfg)
	if err := s.Mount(func() *vdom.VNode {
		return vdom.Input(vdom.ID("field"), vdom.Autofocus(true))
	}); err != nil {
		t.Fatal(err)
	}

	conn := dial(t, ts)
	msg := readMessage(t, conn)
	if want := nodeID(t, s, "field"); msg.Focus != want {
		t.Errorf("Focus = %d, want %d", msg.Focus, want)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := &Config{Registerer: reg, Gatherer: reg}
	s, ts := newTestServer(t, cfg)
	if err := s.Mount(counter(cfg.Runtime)); err != nil {
		t.Fatal(err)
	}

	conn := dial(t, ts)
	readMessage(t, conn)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"bogus"}`)); err != nil {
		t.Fatal(err)
	}
	readMessage(t, conn)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		"ripple_preview_html_pushes_total 1",
		"ripple_preview_clients 1",
		`ripple_preview_messages_total{result="error",type="bogus"} 1`,
		"ripple_reconcile_nodes_created_total",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestDoRunsOnLoopAndRecoversPanics(t *testing.T) {
	s, _ := newTestServer(t, &Config{})

	ran := false
	if err := s.Do(func() { ran = true }); err != nil || !ran {
		t.Fatalf("Do() = %v, ran = %v", err, ran)
	}

	if err := s.Do(func() { panic("boom") }); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Do(panic) = %v, want error mentioning boom", err)
	}

	if err := s.Do(func() {}); err != nil {
		t.Errorf("Do() after panic = %v, loop should keep running", err)
	}

	s.Close()
	if err := s.Do(func() {}); err != ErrClosed {
		t.Errorf("Do() after Close = %v, want ErrClosed", err)
	}
}

func TestRunInvalidAddress(t *testing.T) {
	s := New(&Config{Address: "localhost:99999", Logger: quietLogger(), Runtime: reactive.NewRuntime()})
	defer s.Close()

	err := s.Run(context.Background())
	if !errors.Is(err, "E300") {
		t.Errorf("Run() = %v, want E300", err)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	s := New(&Config{Logger: quietLogger(), Runtime: reactive.NewRuntime()})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/snapshot")
	if err != nil {
		t.Fatalf("GET /snapshot: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	if err := s.Do(func() {}); err != ErrClosed {
		t.Errorf("Do() after shutdown = %v, want ErrClosed", err)
	}
}
