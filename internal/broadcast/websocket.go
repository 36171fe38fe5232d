package broadcast

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Hub is a websocket reference Broadcaster (spec §6.4's external
// streaming collaborator): every connected client receives every
// published Event as a JSON text frame, best-effort.
type Hub struct {
	logger   *logrus.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

// NewHub creates an empty Hub. Register it on an http.ServeMux with
// its ServeHTTP method to accept client connections.
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[*websocket.Conn]chan []byte),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades a connection and registers it as a broadcast
// client until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Debug("broadcast: websocket upgrade failed")
		return
	}

	outbound := make(chan []byte, 64)
	h.mu.Lock()
	h.clients[conn] = outbound
	h.mu.Unlock()

	go h.writeLoop(conn, outbound)
	go h.readLoop(conn)
}

// readLoop discards client input and unregisters the client once the
// connection closes (clients are write-only subscribers).
func (h *Hub) readLoop(conn *websocket.Conn) {
	defer h.unregister(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(conn *websocket.Conn, outbound <-chan []byte) {
	defer conn.Close()
	for payload := range outbound {
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if outbound, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(outbound)
	}
}

// Publish implements Broadcaster: marshal evt once and fan it out to
// every connected client, dropping slow clients rather than blocking.
func (h *Hub) Publish(evt Event) error {
	payload, err := evt.Marshal()
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, outbound := range h.clients {
		select {
		case outbound <- payload:
		default:
			h.logger.Debug("broadcast: dropping slow websocket client")
			delete(h.clients, conn)
			close(outbound)
			conn.Close()
		}
	}
	return nil
}

// Close disconnects every client.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, outbound := range h.clients {
		delete(h.clients, conn)
		close(outbound)
		conn.Close()
	}
	return nil
}

// ListenAndServe runs an HTTP server exposing the Hub at path until
// ctx is canceled.
func (h *Hub) ListenAndServe(ctx context.Context, addr, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, h)
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
