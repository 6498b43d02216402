package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024
)

// wsConn serialises writes from the solve loop and the pinger.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// handleWebSocket answers each text frame, a SolveRequest, with a
// SolveResponse or an ErrorResponse. Frames are handled in order.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}
	c := &wsConn{conn: conn}
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	s.clock.TickerFunc(ctx, pingPeriod, func() error {
		if err := c.ping(); err != nil {
			cancel()
			return err
		}
		return nil
	}, "ws", "ping")

	s.logger.Debug("Client connected", "remote", r.RemoteAddr)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("WebSocket error", "error", err)
			}
			break
		}

		var reply any
		var req SolveRequest
		if err := json.Unmarshal(data, &req); err != nil {
			_, reply = errorResponse(invalid("invalid request: %v", err))
		} else if resp, err := s.solve(ctx, &req); err != nil {
			var status int
			status, reply = errorResponse(err)
			if status >= http.StatusInternalServerError {
				s.logger.Error("Solve failed", "error", err)
			}
		} else {
			reply = resp
		}

		if err := c.writeJSON(reply); err != nil {
			s.logger.Warn("Failed to write message", "error", err)
			break
		}
	}
	s.logger.Debug("Client disconnected", "remote", r.RemoteAddr)
}
