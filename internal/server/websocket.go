package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/host"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

func (s *Server) authorize(r *http.Request) error {
	if s.config.Token == "" {
		return nil
	}
	if r.URL.Query().Get("token") != s.config.Token {
		return ErrUnauthorized
	}
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if err := s.authorize(r); err != nil {
		s.logger.Warn("Rejected client", log.String("remote_addr", r.RemoteAddr), log.Error(err))
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	count := atomic.AddInt64(&s.clientCount, 1)
	if s.config.MaxClients > 0 && count > int64(s.config.MaxClients) {
		atomic.AddInt64(&s.clientCount, -1)
		http.Error(w, ErrMaxClientsReached.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		atomic.AddInt64(&s.clientCount, -1)
		s.logger.Warn("WebSocket upgrade failed", log.Error(err))
		return
	}

	now := time.Now()
	session := &ClientSession{
		ID:          uuid.NewString(),
		ConnectedAt: now,
		LastSeen:    now.UnixNano(),
		send:        make(chan []byte, s.config.MessageBufferSize),
		done:        make(chan struct{}),
	}
	logger := s.logger.With(log.String("client_id", session.ID))

	defer func() {
		s.clients.Delete(session.ID)
		atomic.AddInt64(&s.clientCount, -1)
		session.close()
		logger.Info("Client disconnected")
	}()

	// Registering and queueing the first snapshot in one loop task keeps the
	// client's stream ordered with later broadcasts.
	ctx := r.Context()
	err = s.loop.Do(ctx, func() error {
		payload, err := json.Marshal(OutputMessage{Type: OutputState, State: ptr(s.view.Snapshot())})
		if err != nil {
			return err
		}
		s.clients.Store(session.ID, session)
		s.enqueue(session, payload)
		return nil
	})
	if err != nil {
		logger.Warn("Client registration failed", log.Error(err))
		_ = conn.Close()
		return
	}

	conn.SetPongHandler(func(string) error {
		atomic.StoreInt64(&session.LastSeen, time.Now().UnixNano())
		return nil
	})

	logger.Info("Client connected", log.String("remote_addr", r.RemoteAddr))
	go s.writePump(conn, session, logger)
	s.readPump(ctx, conn, session, logger)
}

// writePump owns every write on conn and closes it once the session ends.
// Pings keep clients that never send input alive through health checks.
func (s *Server) writePump(conn *websocket.Conn, session *ClientSession, logger log.Log) {
	ping := time.NewTicker(s.config.PingInterval)
	defer func() {
		ping.Stop()
		_ = conn.Close()
	}()
	for {
		select {
		case <-ping.C:
			deadline := time.Now().Add(s.config.WriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				logger.Debug("Ping failed", log.Error(err))
				session.close()
				return
			}
		case payload := <-session.send:
			_ = conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Debug("Write failed", log.Error(err))
				session.close()
				return
			}
		case <-session.done:
			deadline := time.Now().Add(s.config.WriteTimeout)
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
			return
		}
	}
}

func (s *Server) readPump(ctx context.Context, conn *websocket.Conn, session *ClientSession, logger log.Log) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("Read failed", log.Error(err))
			}
			return
		}
		received := time.Now()
		atomic.StoreInt64(&session.LastSeen, received.UnixNano())

		var msg InputMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError(session, errors.Join(ErrInvalidMessage, err))
			continue
		}

		err = s.loop.Do(ctx, func() error { return msg.Apply(s.view, received) })
		switch {
		case errors.Is(err, host.ErrLoopClosed), errors.Is(err, context.Canceled):
			return
		case err != nil:
			logger.Debug("Input rejected", log.String("gesture", msg.Gesture), log.Error(err))
			s.sendError(session, err)
		}
	}
}

func (s *Server) sendError(session *ClientSession, err error) {
	payload, merr := json.Marshal(OutputMessage{Type: OutputError, Error: err.Error()})
	if merr != nil {
		return
	}
	s.enqueue(session, payload)
}

func ptr[T any](v T) *T { return &v }
