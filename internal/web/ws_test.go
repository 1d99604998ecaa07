package web

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", u, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readWS(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestWebSocketStatusAndEvents(t *testing.T) {
	svc, h := newTestServer(t)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	conn := dialWS(t, srv)

	msg := readWS(t, conn)
	if msg.Type != "status" {
		t.Fatalf("expected status first, got %q", msg.Type)
	}
	var st stateDTO
	if err := json.Unmarshal(msg.Payload, &st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if st.Board[0] != "X" || st.Moves != 1 {
		t.Fatalf("unexpected status %+v", st)
	}

	if _, err := svc.PlayHuman(4); err != nil {
		t.Fatalf("play: %v", err)
	}
	for _, want := range []struct {
		typ  string
		cell int
		cue  string
	}{{"human_moved", 4, "place-human"}, {"computer_moved", 1, "place-computer"}} {
		msg := readWS(t, conn)
		if msg.Type != want.typ {
			t.Fatalf("expected %q, got %q", want.typ, msg.Type)
		}
		var ev eventDTO
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		if ev.Cell == nil || *ev.Cell != want.cell || ev.Cue != want.cue {
			t.Fatalf("unexpected %s payload %+v", want.typ, ev)
		}
	}
}

func TestWebSocketRequestStatus(t *testing.T) {
	_, h := newTestServer(t)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	conn := dialWS(t, srv)

	_ = readWS(t, conn)
	if err := conn.WriteJSON(wsMessage{Type: "request_status"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if msg := readWS(t, conn); msg.Type != "status" {
		t.Fatalf("expected status reply, got %q", msg.Type)
	}
}
