package replication

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"lightstation/pkg/game/lightswitch"
)

type peer struct {
	id  string
	out chan []byte
}

// Hub is the server side. It snapshots new peers, broadcasts every local
// state change and applies peers' toggle requests on the tick.
type Hub struct {
	world Authority
	sched Poster
	log   *zap.Logger

	upgrader   websocket.Upgrader
	readWait   time.Duration
	pingPeriod time.Duration

	mu    sync.Mutex
	peers map[string]*peer
}

// NewHub creates a hub serving world
func NewHub(world Authority, sched Poster, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		world: world,
		sched: sched,
		log:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		readWait:   readWait,
		pingPeriod: pingPeriod,
		peers:      make(map[string]*peer),
	}
}

// SetReadWait changes how long a silent peer is kept. Pings go out at nine
// tenths of it. Call before serving.
func (h *Hub) SetReadWait(d time.Duration) {
	h.readWait = d
	h.pingPeriod = d * 9 / 10
}

// Peers returns the number of connected peers
func (h *Hub) Peers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

// SwitchChanged broadcasts a local state change to every peer
func (h *Hub) SwitchChanged(change lightswitch.StateChange) {
	h.broadcast(Message{Type: TypeState, SwitchID: change.SwitchID, On: change.On})
}

func (h *Hub) broadcast(m Message) {
	b, err := json.Marshal(m)
	if err != nil {
		h.log.Error("encode broadcast", zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, p := range h.peers {
		h.enqueue(p, b)
	}
}

// enqueue never blocks the tick; a peer that cannot keep up misses the message
func (h *Hub) enqueue(p *peer, b []byte) {
	select {
	case p.out <- b:
	default:
		h.log.Warn("peer queue full, dropping message", zap.String("peer_id", p.id))
	}
}

// Handler upgrades the request and serves one peer until it disconnects
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			h.log.Debug("upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		p := &peer{id: uuid.NewString(), out: make(chan []byte, queueSize)}
		log := h.log.With(zap.String("peer_id", p.id), zap.String("remote", r.RemoteAddr))

		h.mu.Lock()
		h.peers[p.id] = p
		h.mu.Unlock()
		log.Info("peer connected")

		defer func() {
			h.mu.Lock()
			delete(h.peers, p.id)
			h.mu.Unlock()
			log.Info("peer disconnected")
		}()

		// The snapshot is taken on the tick so it orders correctly against broadcasts.
		h.sched.Post(func() {
			b, err := json.Marshal(Message{Type: TypeSnapshot, States: h.world.States()})
			if err != nil {
				log.Error("encode snapshot", zap.Error(err))
				return
			}
			h.mu.Lock()
			if _, ok := h.peers[p.id]; ok {
				h.enqueue(p, b)
			}
			h.mu.Unlock()
		})

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		go func() {
			ticker := time.NewTicker(h.pingPeriod)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case b := <-p.out:
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				case <-ticker.C:
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(h.readWait))
		})
		for {
			_ = conn.SetReadDeadline(time.Now().Add(h.readWait))
			_, raw, err := conn.ReadMessage()
			if err != nil {
				cancel()
				return
			}
			m, err := decode(raw)
			if err != nil {
				log.Debug("bad message", zap.Error(err))
				continue
			}
			if m.Type != TypeToggle {
				continue
			}
			id := m.SwitchID
			h.sched.Post(func() {
				if !h.world.Toggle(id) {
					log.Warn("toggle for unknown switch", zap.String("switch_id", id))
				}
			})
		}
	}
}
