package worlddb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"timehelm.world/internal/protocol"
	"timehelm.world/internal/sim/world"
)

func TestRowID_Deterministic(t *testing.T) {
	a := RowID("player_abc")
	b := RowID("player_abc")
	if a != b {
		t.Fatalf("RowID not stable: %s vs %s", a, b)
	}
	if a == RowID("player_xyz") {
		t.Fatal("distinct ids mapped to the same row id")
	}
}

func TestSQLiteStore_PersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}

	s.RecordExport(world.Export{
		Tick:            120,
		GameTimeMinutes: 1718000000,
		Players: []protocol.Player{
			{ID: "p1", Username: "ada", Position: protocol.Position{X: 120.4, Z: -250.6}, Rotation: 1.2, Activity: "cooking"},
		},
		Entities: []protocol.Entity{
			{ID: "human_p1", EntityType: protocol.EntityHuman, Position: protocol.Position{X: 120.4, Z: -250.6}},
			{ID: "human_walker_1", EntityType: protocol.EntityHuman, Position: protocol.Position{X: 800}},
			{ID: "ball_1", EntityType: protocol.EntityBall, Position: protocol.Position{X: -300, Y: 500, Z: -400}},
		},
		Walkers: []world.WalkerState{
			{Index: 0, X: 800, Z: 0, Yaw: 0.5, Mode: "walking"},
		},
	})
	// Close drains the writer queue before returning.
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	minutes, ok, err := s2.LoadGameTime(context.Background())
	if err != nil {
		t.Fatalf("LoadGameTime: %v", err)
	}
	if !ok || minutes != 1718000000 {
		t.Fatalf("game time: got %d ok=%v", minutes, ok)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM entities`).Scan(&n); err != nil {
		t.Fatalf("count entities: %v", err)
	}
	// One row per character plus the ball. The human_* entity mirrors must
	// not show up as rows of their own.
	if n != 3 {
		t.Fatalf("entities: got %d, want 3", n)
	}
	var mirrored int
	if err := db.QueryRow(`SELECT COUNT(*) FROM entities WHERE world_id LIKE 'human_%'`).Scan(&mirrored); err != nil {
		t.Fatalf("count mirrors: %v", err)
	}
	if mirrored != 0 {
		t.Fatalf("mirrored human entities persisted: %d", mirrored)
	}

	var x, z int64
	if err := db.QueryRow(`SELECT x, z FROM entities WHERE id = ?`, RowID("p1")).Scan(&x, &z); err != nil {
		t.Fatalf("player row: %v", err)
	}
	if x != 120 || z != -251 {
		t.Fatalf("rounded cm position: got (%d,%d)", x, z)
	}

	var seen int
	if err := db.QueryRow(`SELECT COUNT(*) FROM players_seen`).Scan(&seen); err != nil {
		t.Fatalf("players_seen: %v", err)
	}
	if seen != 1 {
		t.Fatalf("players_seen: got %d, want 1", seen)
	}
}

func TestLoadGameTime_Empty(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "world.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	_, ok, err := s.LoadGameTime(context.Background())
	if err != nil {
		t.Fatalf("LoadGameTime: %v", err)
	}
	if ok {
		t.Fatal("expected no state row in a fresh database")
	}
}
