package live

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/blogem/campus-feedback/metrics"
	"github.com/blogem/campus-feedback/models"
)

const (
	maxClients   = 500
	sendBuffer   = 16
	writeTimeout = 5 * time.Second
)

// ErrHubStopped is returned when registering with a stopped hub
var ErrHubStopped = errors.New("hub stopped")

// Message is the payload pushed to dashboard clients. Version orders
// summaries: records are append-only, so a later view never has fewer.
type Message struct {
	Type    string          `json:"type"`
	Version int             `json:"version"`
	Summary *models.Summary `json:"summary"`
}

// --- Command types ---

type hubCmd interface{ hubCmd() }

type cmdRegister struct {
	conn  *websocket.Conn
	errCh chan error
}

func (cmdRegister) hubCmd() {}

type cmdUnregister struct {
	conn *websocket.Conn
}

func (cmdUnregister) hubCmd() {}

type cmdBroadcast struct {
	version int
	data    []byte
}

func (cmdBroadcast) hubCmd() {}

type cmdClientCount struct {
	replyCh chan int
}

func (cmdClientCount) hubCmd() {}

type cmdStop struct{}

func (cmdStop) hubCmd() {}

// --- Per-connection writer ---

type clientWriter struct {
	conn   *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
}

func newClientWriter(conn *websocket.Conn) *clientWriter {
	cw := &clientWriter{
		conn:   conn,
		sendCh: make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
	go cw.run()
	return cw
}

func (cw *clientWriter) run() {
	for {
		select {
		case msg := <-cw.sendCh:
			cw.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := cw.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-cw.done:
			return
		}
	}
}

func (cw *clientWriter) stop() {
	close(cw.done)
	cw.conn.Close()
}

// --- Hub ---

// Hub fans summary updates out to connected dashboards. All state is owned
// by the run goroutine; callers talk to it through commands.
type Hub struct {
	cmdCh   chan hubCmd
	stopped chan struct{}
	clients map[*websocket.Conn]*clientWriter
	latest  []byte
	version int
	metrics *metrics.LiveMetrics
	logger  *zap.Logger
}

// NewHub starts a hub. Stop must be called to release it.
func NewHub(m *metrics.LiveMetrics, logger *zap.Logger) *Hub {
	hub := &Hub{
		cmdCh:   make(chan hubCmd, 256),
		stopped: make(chan struct{}),
		clients: make(map[*websocket.Conn]*clientWriter),
		metrics: m,
		logger:  logger,
	}
	go hub.run()
	return hub
}

func (h *Hub) run() {
	defer close(h.stopped)

	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			h.handleRegister(c)
		case cmdUnregister:
			h.handleUnregister(c.conn)
		case cmdBroadcast:
			h.handleBroadcast(c)
		case cmdClientCount:
			c.replyCh <- len(h.clients)
		case cmdStop:
			h.handleStop()
			return
		}
	}
}

func (h *Hub) handleRegister(c cmdRegister) {
	if len(h.clients) >= maxClients {
		h.logger.Warn("Rejecting live client, limit reached", zap.Int("max_clients", maxClients))
		c.conn.Close()
		c.errCh <- errors.New("too many live clients")
		return
	}

	cw := newClientWriter(c.conn)
	h.clients[c.conn] = cw
	h.metrics.ActiveConnections.Inc()

	// New dashboards start from the latest summary
	if h.latest != nil {
		cw.sendCh <- h.latest
	}

	h.logger.Debug("Live client registered", zap.Int("clients", len(h.clients)))
	c.errCh <- nil
}

func (h *Hub) handleUnregister(conn *websocket.Conn) {
	cw, exists := h.clients[conn]
	if !exists {
		return
	}

	cw.stop()
	delete(h.clients, conn)
	h.metrics.ActiveConnections.Dec()
	h.logger.Debug("Live client unregistered", zap.Int("clients", len(h.clients)))
}

func (h *Hub) handleBroadcast(c cmdBroadcast) {
	// Concurrent submissions can publish out of order; never go backwards
	if h.latest != nil && c.version <= h.version {
		h.logger.Debug("Dropping stale summary",
			zap.Int("version", c.version),
			zap.Int("latest_version", h.version),
		)
		return
	}

	h.latest = c.data
	h.version = c.version
	h.metrics.MessagesPublished.Inc()

	var slow []*websocket.Conn
	for conn, cw := range h.clients {
		select {
		case cw.sendCh <- c.data:
		default:
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		h.logger.Info("Disconnecting slow live client")
		h.metrics.SlowClientsEvicted.Inc()
		h.handleUnregister(conn)
	}
}

func (h *Hub) handleStop() {
	for conn, cw := range h.clients {
		cw.stop()
		delete(h.clients, conn)
		h.metrics.ActiveConnections.Dec()
	}
}

// send delivers a command unless the hub has stopped
func (h *Hub) send(cmd hubCmd) bool {
	select {
	case h.cmdCh <- cmd:
		return true
	case <-h.stopped:
		return false
	}
}

// --- Public API ---

// Register hands a connection to the hub. On error the connection is closed.
func (h *Hub) Register(conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	if !h.send(cmdRegister{conn: conn, errCh: errCh}) {
		conn.Close()
		return ErrHubStopped
	}
	select {
	case err := <-errCh:
		return err
	case <-h.stopped:
		conn.Close()
		return ErrHubStopped
	}
}

// Unregister removes a connection and closes it
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.send(cmdUnregister{conn: conn})
}

// Publish pushes a summary to every connected dashboard
func (h *Hub) Publish(summary *models.Summary) {
	data, err := json.Marshal(Message{Type: "summary", Version: summary.Total, Summary: summary})
	if err != nil {
		h.logger.Error("Failed to marshal summary", zap.Error(err))
		return
	}
	h.send(cmdBroadcast{version: summary.Total, data: data})
}

// ClientCount returns the number of connected dashboards
func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	if !h.send(cmdClientCount{replyCh: replyCh}) {
		return 0
	}
	select {
	case n := <-replyCh:
		return n
	case <-h.stopped:
		return 0
	}
}

// Stop disconnects every client and ends the hub goroutine. It is safe to call more than once.
func (h *Hub) Stop() {
	h.send(cmdStop{})
	<-h.stopped
}
