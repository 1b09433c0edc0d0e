package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeusync/interact/internal/core/events/bus"
	"github.com/zeusync/interact/internal/core/interaction"
	"github.com/zeusync/interact/internal/core/model"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/host"
)

// Server exposes one Interactive to websocket clients. Every client may
// drive the view and every client receives each published state.
type Server struct {
	view     *interaction.Interactive
	loop     *host.Loop
	events   bus.EventBus
	sub      bus.Subscription
	observer *busObserver

	httpServer *http.Server
	listener   net.Listener

	clients     sync.Map // map[string]*ClientSession
	clientCount int64    // atomic

	running int32 // atomic bool
	closed  int32 // atomic bool

	config Config
	logger log.Log

	workerGroup sync.WaitGroup
	stopChan    chan struct{}
}

type Config struct {
	ListenAddr string
	MaxClients int
	// Token, when set, must be passed as the token query parameter.
	Token               string
	MessageBufferSize   int
	WriteTimeout        time.Duration
	HealthCheckInterval time.Duration
	// PingInterval must stay below ClientTimeout so that clients which only
	// watch keep answering pings.
	PingInterval  time.Duration
	ClientTimeout time.Duration
}

func DefaultServerConfig() Config {
	return Config{
		ListenAddr:          "127.0.0.1:8080",
		MaxClients:          64,
		MessageBufferSize:   256,
		WriteTimeout:        5 * time.Second,
		HealthCheckInterval: 30 * time.Second,
		PingInterval:        30 * time.Second,
		ClientTimeout:       5 * time.Minute,
	}
}

// ClientSession is one connected websocket client.
type ClientSession struct {
	ID          string
	ConnectedAt time.Time
	LastSeen    int64 // atomic unix nanoseconds

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func (c *ClientSession) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// NewServer subscribes to the view's state and prepares the HTTP handler.
// The loop must be running before clients connect.
func NewServer(config Config, view *interaction.Interactive, loop *host.Loop, events bus.EventBus, logger log.Log) (*Server, error) {
	defaults := DefaultServerConfig()
	if config.MessageBufferSize <= 0 {
		config.MessageBufferSize = defaults.MessageBufferSize
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}
	if config.HealthCheckInterval <= 0 {
		config.HealthCheckInterval = defaults.HealthCheckInterval
	}
	if config.ClientTimeout <= 0 {
		config.ClientTimeout = defaults.ClientTimeout
	}
	if config.PingInterval <= 0 {
		config.PingInterval = defaults.PingInterval
	}
	if logger == nil {
		logger = log.NewNop()
	}

	s := &Server{
		view:   view,
		loop:   loop,
		events: events,
		config: config,
		logger: logger.With(log.String("component", "server")),
	}

	sub, err := events.SubscribeTopic(view.ID(), interaction.EventStateChanged, s.onStateChanged)
	if err != nil {
		return nil, err
	}
	s.sub = sub
	s.observer = &busObserver{logger: s.logger}
	events.AddObserver(s.observer)

	s.logger.Info("Server created",
		log.String("listen_addr", config.ListenAddr),
		log.Int("max_clients", config.MaxClients))
	return s, nil
}

// Handler routes the websocket endpoint and the JSON endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/state", s.handleState)
	mux.HandleFunc("/stats", s.handleStats)
	return mux
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(_ context.Context) error {
	if atomic.LoadInt32(&s.closed) == 1 {
		return ErrServerClosed
	}
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}

	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		atomic.StoreInt32(&s.running, 0)
		s.logger.Error("Failed to create listener", log.Error(err))
		return err
	}
	s.listener = listener
	s.stopChan = make(chan struct{})
	s.httpServer = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server failed", log.Error(err))
		}
	}()
	s.startWorkers()

	s.logger.Info("Server listening", log.String("addr", listener.Addr().String()))
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.ListenAddr
}

// Stop shuts the HTTP server down and disconnects every client.
func (s *Server) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 1, 0) {
		return ErrServerNotRunning
	}
	s.logger.Info("Stopping server")

	close(s.stopChan)
	err := s.httpServer.Shutdown(ctx)
	s.disconnectAll()
	s.workerGroup.Wait()

	s.logger.Info("Server stopped")
	return err
}

// Close stops the server if needed and drops the state subscription.
func (s *Server) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil
	}
	if atomic.LoadInt32(&s.running) == 1 {
		_ = s.Stop(context.Background())
	}
	s.disconnectAll()
	s.events.RemoveObserver(s.observer)
	return s.events.Unsubscribe(s.sub)
}

type Stats struct {
	ClientCount int64               `json:"client_count"`
	Running     bool                `json:"running"`
	Events      bus.EventBusMetrics `json:"events"`
	Topics      []bus.TopicInfo     `json:"topics"`
}

func (s *Server) GetStats() Stats {
	return Stats{
		ClientCount: atomic.LoadInt64(&s.clientCount),
		Running:     atomic.LoadInt32(&s.running) == 1,
		Events:      s.events.GetMetrics(),
		Topics:      s.events.GetTopics(),
	}
}

// onStateChanged runs on the loop goroutine for every published snapshot.
func (s *Server) onStateChanged(e bus.Event) error {
	snap, ok := e.Data().(model.Snapshot)
	if !ok {
		return nil
	}
	payload, err := json.Marshal(OutputMessage{Type: OutputState, State: &snap})
	if err != nil {
		return err
	}
	s.broadcast(payload)
	return nil
}

func (s *Server) broadcast(payload []byte) {
	s.clients.Range(func(_, value any) bool {
		s.enqueue(value.(*ClientSession), payload)
		return true
	})
}

// enqueue never blocks the loop; a client that cannot keep up loses frames.
func (s *Server) enqueue(session *ClientSession, payload []byte) {
	select {
	case session.send <- payload:
	default:
		s.logger.Warn("Dropping frame for slow client", log.String("client_id", session.ID))
	}
}

func (s *Server) disconnectAll() {
	s.clients.Range(func(_, value any) bool {
		value.(*ClientSession).close()
		return true
	})
}

func (s *Server) startWorkers() {
	stop := s.stopChan
	s.workerGroup.Add(1)
	go func() {
		defer s.workerGroup.Done()
		s.healthMonitor(stop)
	}()
}

func (s *Server) healthMonitor(stop <-chan struct{}) {
	ticker := time.NewTicker(s.config.HealthCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.performHealthChecks()
		case <-stop:
			return
		}
	}
}

// performHealthChecks disconnects clients that have been silent longer than
// ClientTimeout.
func (s *Server) performHealthChecks() {
	now := time.Now().UnixNano()
	timeout := s.config.ClientTimeout.Nanoseconds()
	disconnected := 0
	s.clients.Range(func(_, value any) bool {
		session := value.(*ClientSession)
		if now-atomic.LoadInt64(&session.LastSeen) > timeout {
			session.close()
			disconnected++
		}
		return true
	})
	if disconnected > 0 {
		s.logger.Info("Health check completed",
			log.Int("disconnected_clients", disconnected),
			log.Int("active_clients", int(atomic.LoadInt64(&s.clientCount))))
	}
}
