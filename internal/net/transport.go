package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"TraceBoard/internal/state"
)

// LibraryPath is the websocket endpoint boards sync their library on.
const LibraryPath = "/library"

const MsgSnapshot = "snapshot"

// Message is the wire format of the library channel.
type Message struct {
	Type     string          `json:"type"`
	Snapshot *state.Snapshot `json:"snapshot,omitempty"`
}

// Peer is one websocket connection to another board.
type Peer struct {
	Conn *websocket.Conn
	mu   sync.Mutex // serializes writes
}

func (p *Peer) Addr() string { return p.Conn.RemoteAddr().String() }

// Send writes snap to the peer.
func (p *Peer) Send(snap state.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Conn.WriteJSON(Message{Type: MsgSnapshot, Snapshot: &snap})
}

// Listen calls fn for every snapshot the peer sends until the connection
// fails or is closed.
func (p *Peer) Listen(fn func(state.Snapshot)) error {
	for {
		var msg Message
		if err := p.Conn.ReadJSON(&msg); err != nil {
			return err
		}
		if msg.Type != MsgSnapshot || msg.Snapshot == nil {
			log.Printf("Ignoring '%s' message from %s", msg.Type, p.Addr())
			continue
		}
		fn(*msg.Snapshot)
	}
}

func (p *Peer) Close() error { return p.Conn.Close() }

// Dial connects to the board at addr (host:port).
func Dial(ctx context.Context, addr string) (*Peer, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, "ws://"+addr+LibraryPath, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	log.Printf("[CLIENT] Connected to %s", addr)
	return &Peer{Conn: conn}, nil
}

// Hub is run by the HOST: it hands its library to every board that
// connects and relays accepted edits between them.
type Hub struct {
	lib      *state.Library
	upgrader websocket.Upgrader
	peers    map[string]*Peer
	mu       sync.RWMutex
}

func NewHub(lib *state.Library) *Hub {
	return &Hub{
		lib: lib,
		upgrader: websocket.Upgrader{
			// Boards only talk on the local network; any origin is fine.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[string]*Peer),
	}
}

func (h *Hub) add(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[p.Addr()] = p
	log.Printf("[HOST] Added connection: %s", p.Addr())
}

func (h *Hub) remove(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.peers, p.Addr())
	log.Printf("[HOST] Removed connection: %s", p.Addr())
}

// Len returns the number of connected boards.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Broadcast sends snap to every connected board except exclude.
func (h *Hub) Broadcast(snap state.Snapshot, exclude *Peer) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, p := range h.peers {
		if p == exclude {
			continue
		}
		if err := p.Send(snap); err != nil {
			log.Printf("[HOST] Error sending to %s: %v", p.Addr(), err)
		}
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HOST] Upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	p := &Peer{Conn: conn}
	defer p.Close()

	// Register before sending so no edit made in between is missed; a
	// duplicate is rejected by the receiver's clock.
	h.add(p)
	defer h.remove(p)
	if err := p.Send(h.lib.Snapshot()); err != nil {
		log.Printf("[HOST] Initial sync to %s failed: %v", p.Addr(), err)
		return
	}

	err = p.Listen(func(snap state.Snapshot) {
		log.Printf("[HOST] Received snapshot from %s", p.Addr())
		if h.lib.Merge(snap) {
			h.Broadcast(snap, p)
		}
	})
	log.Printf("[HOST] Client %s disconnected: %v", p.Addr(), err)
}

// ListenAndServe serves the hub on port until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle(LibraryPath, h)
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[HOST] Library server listening on port %d", port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
