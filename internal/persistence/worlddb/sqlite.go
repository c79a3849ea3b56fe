package worlddb

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"timehelm.world/internal/protocol"
	"timehelm.world/internal/sim/world"
)

// stateNamespace is the UUIDv5 namespace for stable entity row ids.
// Deterministic: the same player or entity id always maps to the same row.
var stateNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// RowID returns the stable database id for a world entity id.
func RowID(id string) string {
	return uuid.NewSHA1(stateNamespace, []byte(id)).String()
}

// SQLiteStore persists periodic world exports to a local SQLite database.
// Writes go through a buffered channel to a single writer goroutine so the
// sim loop never blocks on disk.
type SQLiteStore struct {
	db *sql.DB

	ch   chan world.Export
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

func OpenSQLite(path string) (*SQLiteStore, error) {
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

	s := &SQLiteStore{
		db: db,
		// Exports arrive at most once per persist interval; a small buffer
		// absorbs a slow disk without stalling anything.
		ch: make(chan world.Export, 64),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for the upsert-heavy persist cycle.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
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
		`CREATE TABLE IF NOT EXISTS game_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			game_time_minutes INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS entities (
			id TEXT PRIMARY KEY,
			world_id TEXT NOT NULL,
			entity_type TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			z INTEGER NOT NULL,
			rotation REAL NOT NULL,
			activity TEXT,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entities_type ON entities(entity_type);`,
		`CREATE TABLE IF NOT EXISTS players_seen (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			first_seen TEXT NOT NULL,
			last_seen TEXT NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// RecordExport enqueues a world export for persistence. Never blocks; if the
// writer falls behind the export is dropped (the next one supersedes it).
func (s *SQLiteStore) RecordExport(ex world.Export) {
	if s == nil || s.closed.Load() {
		return
	}
	select {
	case s.ch <- ex:
	default:
	}
}

// LoadGameTime reads the last persisted game time. Returns ok=false when the
// database has no state row yet.
func (s *SQLiteStore) LoadGameTime(ctx context.Context) (minutes int64, ok bool, err error) {
	row := s.db.QueryRowContext(ctx, `SELECT game_time_minutes FROM game_state WHERE id = 1`)
	if err := row.Scan(&minutes); err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, err
	}
	return minutes, true, nil
}

func (s *SQLiteStore) loop() {
	ctx := context.Background()

	for ex := range s.ch {
		if err := s.writeExport(ctx, ex); err != nil {
			// Keep going; the next export retries the same rows.
			continue
		}
	}
}

func (s *SQLiteStore) writeExport(ctx context.Context, ex world.Export) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1')`); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`INSERT INTO game_state(id,game_time_minutes,tick,updated_at) VALUES(1,?,?,?)
		 ON CONFLICT(id) DO UPDATE SET game_time_minutes=excluded.game_time_minutes, tick=excluded.tick, updated_at=excluded.updated_at`,
		ex.GameTimeMinutes, int64(ex.Tick), now,
	); err != nil {
		return err
	}

	upsertEntity, err := tx.Prepare(
		`INSERT INTO entities(id,world_id,entity_type,x,y,z,rotation,activity,updated_at) VALUES(?,?,?,?,?,?,?,?,?)
		 ON CONFLICT(id) DO UPDATE SET x=excluded.x, y=excluded.y, z=excluded.z, rotation=excluded.rotation, activity=excluded.activity, updated_at=excluded.updated_at`)
	if err != nil {
		return err
	}
	defer upsertEntity.Close()

	upsertSeen, err := tx.Prepare(
		`INSERT INTO players_seen(id,username,first_seen,last_seen) VALUES(?,?,?,?)
		 ON CONFLICT(id) DO UPDATE SET username=excluded.username, last_seen=excluded.last_seen`)
	if err != nil {
		return err
	}
	defer upsertSeen.Close()

	for _, p := range ex.Players {
		if _, err := upsertEntity.Exec(
			RowID(p.ID), p.ID, "human",
			cm(p.Position.X), cm(p.Position.Y), cm(p.Position.Z),
			p.Rotation, p.Activity, now,
		); err != nil {
			return err
		}
		if _, err := upsertSeen.Exec(RowID(p.ID), p.Username, now, now); err != nil {
			return err
		}
	}
	for _, e := range ex.Entities {
		// Human entities mirror the players and walkers the other loops
		// already wrote; persisting them too would double every character.
		if e.EntityType == protocol.EntityHuman {
			continue
		}
		if _, err := upsertEntity.Exec(
			RowID(e.ID), e.ID, e.EntityType,
			cm(e.Position.X), cm(e.Position.Y), cm(e.Position.Z),
			e.Rotation.Y, "", now,
		); err != nil {
			return err
		}
	}
	for _, w := range ex.Walkers {
		id := fmt.Sprintf("walker_%d", w.Index+1)
		if _, err := upsertEntity.Exec(
			RowID(id), id, "human",
			cm(w.X), 0, cm(w.Z),
			w.Yaw, w.Mode, now,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Positions are stored as whole centimeters.
func cm(v float64) int64 { return int64(math.Round(v)) }
