package replication

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client is a non-authoritative peer. Toggles go to the server; state comes back.
type Client struct {
	conn  *websocket.Conn
	world Replica
	sched Poster
	log   *zap.Logger

	out       chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// Dial connects to the hub at url
func Dial(ctx context.Context, url string, world Replica, sched Poster, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Client{
		conn:  conn,
		world: world,
		sched: sched,
		log:   logger.With(zap.String("server", url)),
		out:   make(chan []byte, queueSize),
		done:  make(chan struct{}),
	}, nil
}

// RequestToggle asks the server to toggle a switch
func (c *Client) RequestToggle(switchID string) {
	b, err := json.Marshal(Message{Type: TypeToggle, SwitchID: switchID})
	if err != nil {
		c.log.Error("encode toggle", zap.Error(err))
		return
	}
	select {
	case c.out <- b:
	case <-c.done:
	default:
		c.log.Warn("toggle queue full, dropping request", zap.String("switch_id", switchID))
	}
}

// Run pumps messages until ctx is cancelled or the connection drops
func (c *Client) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		c.Close()
	}()

	go func() {
		for {
			select {
			case <-c.done:
				return
			case b := <-c.out:
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
					c.log.Warn("write failed", zap.Error(err))
					cancel()
					return
				}
			}
		}
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read: %w", err)
		}
		m, err := decode(raw)
		if err != nil {
			c.log.Debug("bad message", zap.Error(err))
			continue
		}
		c.apply(m)
	}
}

func (c *Client) apply(m Message) {
	switch m.Type {
	case TypeState:
		id, on := m.SwitchID, m.On
		c.sched.Post(func() {
			c.world.ApplyRemote(id, on)
		})
	case TypeSnapshot:
		ids := make([]string, 0, len(m.States))
		for id := range m.States {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		states := m.States
		c.sched.Post(func() {
			for _, id := range ids {
				if !c.world.ApplyRemote(id, states[id]) {
					c.log.Warn("snapshot names unknown switch", zap.String("switch_id", id))
				}
			}
		})
	}
}

// Close shuts the connection. Safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		err = c.conn.Close()
	})
	return err
}
