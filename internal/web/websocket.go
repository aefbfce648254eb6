package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"

	"citygrowth/internal/monitoring"
)

var upgrader = websocket.Upgrader{}

const (
	// Time allowed to write a message to the peer.
	writeWait = 1 * time.Second
	// Maximum message size allowed from peer.
	maxMessageSize = 8192
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Time to wait for the peer to acknowledge a close before dropping it.
	closeGracePeriod = 2 * time.Second
)

// errClientGone ends a websocket session once the peer has closed its side.
var errClientGone = errors.New("client disconnected")

// serveWebsocket pushes a frame to the client after every run. The first frame
// describes the grid at the time the client connected.
func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		monitoring.Logf("web: upgrade: %v", err)
		return
	}

	frames := s.hub.subscribe()
	defer s.hub.unsubscribe(frames)

	group, ctx := errgroup.WithContext(r.Context())
	group.Go(func() error {
		return readMessages(ws)
	})
	group.Go(func() error {
		defer closeWebsocket(ctx, ws)
		if err := writeFrame(ws, s.snapshot()); err != nil {
			return err
		}
		return publish(ctx, ws, frames)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, errClientGone) {
		monitoring.Logf("web: websocket: %v", err)
	}
}

// snapshot builds a frame from the current grid.
func (s *Server) snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Server) snapshotLocked() Frame {
	return Frame{
		Session:   s.id.String(),
		Title:     s.title,
		Heights:   s.session.Grid().Heights(),
		Metrics:   s.session.Metrics(),
		Completed: s.session.StepsTaken(),
		Exhausted: s.session.Ledger().Exhausted(),
	}
}

// readMessages drains the peer so that pongs and the close handshake are
// processed. Clients never send commands over the socket.
func readMessages(ws *websocket.Conn) error {
	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if isError(err) {
				return fmt.Errorf("read: %w", err)
			}
			return errClientGone
		}
	}
}

func publish(ctx context.Context, ws *websocket.Conn, frames <-chan Frame) error {
	pinger := channerics.NewTicker(ctx.Done(), pingPeriod)
	payloads := channerics.Convert(ctx.Done(), frames, encodeFrame)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pinger:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
		case payload, ok := <-payloads:
			if !ok {
				return nil
			}
			if payload == nil {
				continue
			}
			if err := writePayload(ws, payload); err != nil {
				return err
			}
		}
	}
}

func encodeFrame(f Frame) []byte {
	b, err := json.Marshal(f)
	if err != nil {
		monitoring.Logf("web: encode frame: %v", err)
		return nil
	}
	return b
}

func writeFrame(ws *websocket.Conn, f Frame) error {
	payload := encodeFrame(f)
	if payload == nil {
		return nil
	}
	return writePayload(ws, payload)
}

func writePayload(ws *websocket.Conn, payload []byte) error {
	if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("set deadline: %w", err)
	}
	if err := ws.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// closeWebsocket starts the close handshake and waits for the reader to see
// the peer's reply, or for the grace period to lapse.
func closeWebsocket(ctx context.Context, ws *websocket.Conn) {
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = ws.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	select {
	case <-ctx.Done():
	case <-time.After(closeGracePeriod):
	}
	ws.Close()
}

func isError(err error) bool {
	return err != nil && websocket.IsUnexpectedCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}
