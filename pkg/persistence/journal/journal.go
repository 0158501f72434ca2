// Package journal records switch state changes in SQLite so a restarted
// server comes back with every switch where it was left.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"lightstation/pkg/game/lightswitch"
)

// Sources recorded with each event
const (
	SourceLocal = "local"
	SourcePower = "power"
)

// Event is one journaled state change
type Event struct {
	ID       int64
	SwitchID string
	On       bool
	Source   string
	At       time.Time
}

type req struct {
	event Event
	flush chan struct{}
}

// Journal appends events on a writer goroutine so the tick never waits on disk
type Journal struct {
	db  *sql.DB
	log *zap.Logger

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	// mu guards closed against sends racing the close of ch
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
	now     func() time.Time
}

// Open opens (creating if needed) the journal at path
func Open(path string, logger *zap.Logger) (*Journal, error) {
	if path == "" {
		return nil, fmt.Errorf("empty journal path")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("journal dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal pragmas: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal schema: %w", err)
	}

	j := &Journal{
		db:  db,
		log: logger,
		ch:  make(chan req, 4096),
		now: time.Now,
	}
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.loop()
	}()
	return j, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS switch_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			switch_id TEXT NOT NULL,
			on_state INTEGER NOT NULL,
			source TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_switch_events_switch ON switch_events(switch_id, id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// SwitchChanged journals a local state change
func (j *Journal) SwitchChanged(change lightswitch.StateChange) {
	source := SourceLocal
	if change.Power {
		source = SourcePower
	}
	j.Record(Event{SwitchID: change.SwitchID, On: change.On, Source: source})
}

// Record queues an event. Returns false if the journal is closed or the
// queue is full, in which case the event is dropped.
func (j *Journal) Record(ev Event) bool {
	if j == nil {
		return false
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return false
	}
	if ev.At.IsZero() {
		ev.At = j.now()
	}
	if ev.Source == "" {
		ev.Source = SourceLocal
	}
	select {
	case j.ch <- req{event: ev}:
		return true
	default:
		if j.dropped.Add(1) == 1 {
			j.log.Warn("journal queue full, dropping events")
		}
		return false
	}
}

// Dropped returns how many events were dropped because the queue was full
func (j *Journal) Dropped() uint64 {
	return j.dropped.Load()
}

// Flush waits until every event queued before the call is written
func (j *Journal) Flush(ctx context.Context) error {
	if j == nil {
		return nil
	}
	done := make(chan struct{})
	j.mu.RLock()
	if j.closed {
		j.mu.RUnlock()
		return nil
	}
	select {
	case j.ch <- req{flush: done}:
	case <-ctx.Done():
		j.mu.RUnlock()
		return ctx.Err()
	}
	j.mu.RUnlock()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LastStates returns the most recent state of every journaled switch
func (j *Journal) LastStates(ctx context.Context) (map[string]bool, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT switch_id, on_state FROM switch_events
		WHERE id IN (SELECT MAX(id) FROM switch_events GROUP BY switch_id)`)
	if err != nil {
		return nil, fmt.Errorf("last states: %w", err)
	}
	defer rows.Close()

	states := make(map[string]bool)
	for rows.Next() {
		var id string
		var on int
		if err := rows.Scan(&id, &on); err != nil {
			return nil, fmt.Errorf("last states: %w", err)
		}
		states[id] = on != 0
	}
	return states, rows.Err()
}

// Events returns up to limit events for a switch, newest first
func (j *Journal) Events(ctx context.Context, switchID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, switch_id, on_state, source, recorded_at FROM switch_events
		WHERE switch_id = ? ORDER BY id DESC LIMIT ?`, switchID, limit)
	if err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		var on int
		var at string
		if err := rows.Scan(&ev.ID, &ev.SwitchID, &on, &ev.Source, &at); err != nil {
			return nil, fmt.Errorf("events: %w", err)
		}
		ev.On = on != 0
		ev.At, _ = time.Parse(time.RFC3339Nano, at)
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Close drains the queue and closes the database
func (j *Journal) Close() error {
	var err error
	j.once.Do(func() {
		j.mu.Lock()
		j.closed = true
		close(j.ch)
		j.mu.Unlock()
		j.wg.Wait()
		err = j.db.Close()
	})
	return err
}

func (j *Journal) loop() {
	insert, err := j.db.Prepare(`INSERT INTO switch_events(switch_id,on_state,source,recorded_at) VALUES(?,?,?,?)`)
	if err != nil {
		j.log.Error("journal prepare failed", zap.Error(err))
	}
	defer func() {
		if insert != nil {
			_ = insert.Close()
		}
	}()

	for r := range j.ch {
		if r.flush != nil {
			close(r.flush)
			continue
		}
		if insert == nil {
			continue
		}
		ev := r.event
		on := 0
		if ev.On {
			on = 1
		}
		if _, err := insert.Exec(ev.SwitchID, on, ev.Source, ev.At.UTC().Format(time.RFC3339Nano)); err != nil {
			j.log.Warn("journal write failed", zap.String("switch_id", ev.SwitchID), zap.Error(err))
		}
	}
}
