package snapshot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	snap := SnapshotV1{
		Header:          Header{Version: 1, WorldID: "world_1", Tick: 4200},
		Seed:            1337,
		BoundaryCm:      5000,
		GameTimeMinutes: 1718000000,
		Players: []PlayerV1{
			{ID: "p1", Username: "ada", X: 120, Z: -300, Yaw: 1.5, Activity: "cooking"},
		},
		Walkers: []WalkerV1{
			{Index: 0, X: 800, Z: 0, Yaw: 0, Mode: "walking"},
			{Index: 1, X: -400, Z: 650, Yaw: 2.1, Mode: "idle"},
		},
		Ball: &BallV1{ID: "ball_1337", X: -300, Y: 220, Z: -400, VY: -310},
	}

	path := filepath.Join(t.TempDir(), "snapshots", "snap_4200.zst")
	if err := WriteSnapshot(path, snap); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if got.Header != snap.Header {
		t.Fatalf("header: got %+v want %+v", got.Header, snap.Header)
	}
	if got.GameTimeMinutes != snap.GameTimeMinutes || got.Seed != snap.Seed {
		t.Fatalf("scalars: got %+v", got)
	}
	if len(got.Players) != 1 || got.Players[0] != snap.Players[0] {
		t.Fatalf("players: got %+v", got.Players)
	}
	if len(got.Walkers) != 2 || got.Walkers[1] != snap.Walkers[1] {
		t.Fatalf("walkers: got %+v", got.Walkers)
	}
	if got.Ball == nil || *got.Ball != *snap.Ball {
		t.Fatalf("ball: got %+v", got.Ball)
	}
}

// /dev/full accepts the open but fails every write with ENOSPC, which only
// surfaces when the buffered writers flush.
func TestWriteFile_ReportsFlushFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	snap := SnapshotV1{Header: Header{Version: 1, WorldID: "world_1", Tick: 1}}
	if err := writeFile("/dev/full", snap); err == nil {
		t.Fatal("expected an error writing to a full device")
	}
}

func TestReadSnapshot_MissingFile(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope.zst")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
