package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

type Header struct {
	Version int    `json:"version"`
	WorldID string `json:"world_id"`
	Tick    uint64 `json:"tick"`
}

// SnapshotV1 captures enough world state to resume a session: the clock base,
// every player, walker and entity, and the parameters needed to keep the
// walker draws deterministic.
type SnapshotV1 struct {
	Header Header `json:"header"`

	Seed            int64 `json:"seed"`
	BoundaryCm      int   `json:"boundary_cm"`
	GameTimeMinutes int64 `json:"game_time_minutes"`

	Players  []PlayerV1 `json:"players"`
	Walkers  []WalkerV1 `json:"walkers"`
	Ball     *BallV1    `json:"ball,omitempty"`
	PlansDig string     `json:"plans_digest,omitempty"`
}

type PlayerV1 struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Yaw      float64 `json:"yaw"`
	Activity string  `json:"activity,omitempty"`
}

type WalkerV1 struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Z     float64 `json:"z"`
	Yaw   float64 `json:"yaw"`
	Mode  string  `json:"mode"`
}

type BallV1 struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
	VY float64 `json:"vy"`
}

// WriteSnapshot writes zstd-compressed content with a plain JSON header line
// in front so tools can identify a snapshot without decoding the body.
// The write goes through a temp file and rename so a crash or a failed write
// never leaves a truncated snapshot at the final path.
func WriteSnapshot(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := writeFile(tmp, snap); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func writeFile(path string, snap SnapshotV1) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = f.Close()
		return err
	}

	bw := bufio.NewWriterSize(enc, 256*1024)

	err = encodeSnapshot(bw, snap)
	// Flush and close in order; a failure anywhere means the file is truncated
	// and must not be renamed into place.
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	if cerr := enc.Close(); err == nil {
		err = cerr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func encodeSnapshot(bw *bufio.Writer, snap SnapshotV1) error {
	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// Skip the header line; the gob body carries the header too.
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}
