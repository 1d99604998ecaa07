package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jaminalder/minimax-tic-tac-toe/internal/app"
)

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func (h *handlers) ws(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	events, unsub := h.svc.Subscribe(ctx)
	defer unsub()

	requests := make(chan struct{}, 1)
	go func() {
		defer cancel()
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg wsMessage
			if err := json.Unmarshal(message, &msg); err != nil {
				continue
			}
			if msg.Type == "request_status" {
				select {
				case requests <- struct{}{}:
				default:
				}
			}
		}
	}()

	_ = h.writeWSWithHeartbeat(ctx, conn, events, requests)
}

func (h *handlers) statusMessage() []byte {
	return mustMarshal(wsMessage{Type: "status", Payload: mustMarshal(toStateDTO(h.theme, h.svc.Snapshot()))})
}

// writeWSWithHeartbeat is the only writer on conn. It sends the current
// status first, then one message per event, and pings when idle.
func (h *handlers) writeWSWithHeartbeat(ctx context.Context, conn *websocket.Conn, events <-chan app.Event, requests <-chan struct{}) error {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(wsMessage{Type: "ping"})

	write := func(msg []byte) error {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return err
		}
		lastWrite = time.Now()
		return nil
	}

	if err := write(h.statusMessage()); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			msg := mustMarshal(wsMessage{Type: ev.Kind.String(), Payload: mustMarshal(toEventDTO(h.theme, ev))})
			if err := write(msg); err != nil {
				return err
			}
		case <-requests:
			if err := write(h.statusMessage()); err != nil {
				return err
			}
		case <-ticker.C:
			if time.Since(lastWrite) < h.heartbeat {
				continue
			}
			if err := write(pingPayload); err != nil {
				return err
			}
		}
	}
}
