package indexdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"swarmisle/internal/sim/world"
)

// SQLiteIndex is a read model of a run: tick digests, week summaries and
// snapshot locations. It never feeds back into the simulation.
type SQLiteIndex struct {
	db *sql.DB

	ch chan req
	wg sync.WaitGroup

	// mu orders sends against close(ch).
	mu     sync.Mutex
	closed bool

	dropped atomic.Uint64
}

type reqKind int

const durableAttempts = 5

const (
	reqTick reqKind = iota + 1
	reqWeek
	reqSnapshot
)

type req struct {
	kind reqKind

	tick     world.TickLogEntry
	week     world.WeekSummary
	snapshot snapshotRow
}

type snapshotRow struct {
	Tick   uint64
	Week   int
	Path   string
	Seed   uint32
	Agents int
	Food   int
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan req, 65536),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
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
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS ticks (
			tick INTEGER PRIMARY KEY,
			clock REAL NOT NULL,
			digest TEXT NOT NULL,
			alive_r INTEGER NOT NULL,
			alive_g INTEGER NOT NULL,
			alive_b INTEGER NOT NULL,
			fainted INTEGER NOT NULL,
			food INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS weeks (
			week INTEGER PRIMARY KEY,
			tick INTEGER NOT NULL,
			clock REAL NOT NULL,
			alive_r INTEGER NOT NULL,
			alive_g INTEGER NOT NULL,
			alive_b INTEGER NOT NULL,
			fainted INTEGER NOT NULL,
			food INTEGER NOT NULL,
			mean_hp REAL NOT NULL,
			mean_xp REAL NOT NULL,
			mean_radius REAL NOT NULL,
			radius_stddev REAL NOT NULL,
			raw_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_weeks_tick ON weeks(tick);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			tick INTEGER PRIMARY KEY,
			week INTEGER NOT NULL,
			path TEXT NOT NULL,
			seed INTEGER NOT NULL,
			agents INTEGER NOT NULL,
			food INTEGER NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()

	s.wg.Wait()
	return s.db.Close()
}

// Dropped counts tick rows skipped because the writer was behind or a
// transaction could not be opened.
func (s *SQLiteIndex) Dropped() uint64 { return s.dropped.Load() }

// SetRunMeta records the run's seeds. It writes synchronously.
func (s *SQLiteIndex) SetRunMeta(seed, terrainSeed uint32, ticksPerWeek int) error {
	if s == nil {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	kv := map[string]string{
		"schema_version": "1",
		"seed":           strconv.FormatUint(uint64(seed), 10),
		"terrain_seed":   strconv.FormatUint(uint64(terrainSeed), 10),
		"ticks_per_week": strconv.Itoa(ticksPerWeek),
	}
	for k, v := range kv {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES(?,?)`, k, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// WriteTick satisfies world.TickLogger. Entries are dropped if the writer
// falls behind; the JSONL log stays the source of truth.
func (s *SQLiteIndex) WriteTick(entry world.TickLogEntry) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	select {
	case s.ch <- req{kind: reqTick, tick: entry}:
	default:
		s.dropped.Add(1)
	}
	return nil
}

// enqueue blocks until r is queued. The writer keeps draining while Close
// waits on mu, so holding it across the send cannot deadlock.
func (s *SQLiteIndex) enqueue(r req) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.ch <- r
}

// RecordWeek blocks until queued; week rows are never dropped.
func (s *SQLiteIndex) RecordWeek(sum world.WeekSummary) {
	if s == nil {
		return
	}
	s.enqueue(req{kind: reqWeek, week: sum})
}

// RecordSnapshot blocks until queued; snapshot rows are never dropped.
func (s *SQLiteIndex) RecordSnapshot(path string, rec world.Record) {
	if s == nil {
		return
	}
	r := snapshotRow{
		Tick:   rec.Meta.Tick,
		Week:   rec.Meta.Week,
		Path:   path,
		Seed:   rec.Meta.Seed,
		Agents: len(rec.Agents),
		Food:   len(rec.Food),
	}
	s.enqueue(req{kind: reqSnapshot, snapshot: r})
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()

	insertTick, _ := s.db.Prepare(`INSERT OR REPLACE INTO ticks(tick,clock,digest,alive_r,alive_g,alive_b,fainted,food) VALUES(?,?,?,?,?,?,?,?)`)
	insertWeek, _ := s.db.Prepare(`INSERT OR REPLACE INTO weeks(week,tick,clock,alive_r,alive_g,alive_b,fainted,food,mean_hp,mean_xp,mean_radius,radius_stddev,raw_json) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	insertSnapshot, _ := s.db.Prepare(`INSERT OR REPLACE INTO snapshots(tick,week,path,seed,agents,food) VALUES(?,?,?,?,?,?)`)
	defer func() {
		for _, st := range []*sql.Stmt{insertTick, insertWeek, insertSnapshot} {
			if st != nil {
				_ = st.Close()
			}
		}
	}()

	var (
		tx            *sql.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 2000
		commitMaxWait = 2 * time.Second
	)

	// begin retries with backoff; it gives up only after attempts tries.
	begin := func(attempts int) bool {
		if tx != nil {
			return true
		}
		for i := 0; i < attempts; i++ {
			txx, err := s.db.BeginTx(ctx, nil)
			if err == nil {
				tx = txx
				opCount = 0
				lastCommit = time.Now()
				return true
			}
			time.Sleep(time.Duration(i+1) * 20 * time.Millisecond)
		}
		return false
	}
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	exec := func(st *sql.Stmt, args ...any) bool {
		if st == nil {
			return false
		}
		if _, err := tx.Stmt(st).Exec(args...); err != nil {
			rollback()
			return false
		}
		opCount++
		return true
	}
	// durable writes one row in its own transaction after committing the
	// open tick batch, so a later tick failure cannot roll it back.
	durable := func(st *sql.Stmt, args ...any) {
		commit()
		for attempt := 0; attempt < durableAttempts; attempt++ {
			if !begin(durableAttempts) {
				return
			}
			if exec(st, args...) {
				commit()
				return
			}
			time.Sleep(time.Duration(attempt+1) * 20 * time.Millisecond)
		}
	}

	for r := range s.ch {
		switch r.kind {
		case reqTick:
			if !begin(1) {
				s.dropped.Add(1)
				continue
			}
			t := r.tick
			if !exec(insertTick, int64(t.Tick), t.Clock, t.Digest, t.Alive[0], t.Alive[1], t.Alive[2], t.Fainted, t.Food) {
				s.dropped.Add(1)
			}

		case reqWeek:
			w := r.week
			raw, _ := json.Marshal(w)
			fainted := w.Fainted[0] + w.Fainted[1] + w.Fainted[2]
			durable(insertWeek, w.Week, int64(w.Tick), w.Clock, w.Alive[0], w.Alive[1], w.Alive[2], fainted, w.Food,
				w.MeanHP, w.MeanXP, w.MeanRadius, w.RadiusStdDev, string(raw))

		case reqSnapshot:
			sn := r.snapshot
			durable(insertSnapshot, int64(sn.Tick), sn.Week, sn.Path, int64(sn.Seed), sn.Agents, sn.Food)
		}
		if tx != nil && (opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait) {
			commit()
		}
	}

	commit()
}

// Weeks reads back every recorded week summary in order.
func (s *SQLiteIndex) Weeks(ctx context.Context) ([]world.WeekSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT raw_json FROM weeks ORDER BY week`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []world.WeekSummary
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var w world.WeekSummary
		if err := json.Unmarshal([]byte(raw), &w); err != nil {
			return nil, fmt.Errorf("week row: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
