package world

import (
	"fmt"
	"math"
	"time"

	"timehelm.world/internal/persistence/snapshot"
	"timehelm.world/internal/protocol"
)

// BuildSnapshot converts an export into the snapshot wire form. The plans
// digest pins which structure catalog the state was generated against.
func (w *World) BuildSnapshot(ex Export, plansDigest string) snapshot.SnapshotV1 {
	snap := snapshot.SnapshotV1{
		Header: snapshot.Header{
			Version: 1,
			WorldID: w.cfg.ID,
			Tick:    ex.Tick,
		},
		Seed:            w.cfg.Seed,
		BoundaryCm:      w.cfg.BoundaryCm,
		GameTimeMinutes: ex.GameTimeMinutes,
		PlansDig:        plansDigest,
	}
	for _, p := range ex.Players {
		snap.Players = append(snap.Players, snapshot.PlayerV1{
			ID:       p.ID,
			Username: p.Username,
			X:        p.Position.X,
			Y:        p.Position.Y,
			Z:        p.Position.Z,
			Yaw:      p.Rotation,
			Activity: p.Activity,
		})
	}
	for _, wk := range ex.Walkers {
		snap.Walkers = append(snap.Walkers, snapshot.WalkerV1{
			Index: wk.Index, X: wk.X, Z: wk.Z, Yaw: wk.Yaw, Mode: wk.Mode,
		})
	}
	for _, e := range ex.Entities {
		if e.EntityType == protocol.EntityBall {
			snap.Ball = &snapshot.BallV1{
				ID: e.ID, X: e.Position.X, Y: e.Position.Y, Z: e.Position.Z,
				VY: ex.BallVY,
			}
		}
	}
	return snap
}

// Restore overwrites the fresh world with snapshot state. Must be called
// before Run starts; it touches loop-owned state directly.
func (w *World) Restore(snap snapshot.SnapshotV1) error {
	if snap.Header.Version != 1 {
		return fmt.Errorf("unsupported snapshot version %d", snap.Header.Version)
	}
	if snap.Seed != w.cfg.Seed {
		return fmt.Errorf("snapshot seed %d does not match world seed %d", snap.Seed, w.cfg.Seed)
	}

	w.tick.Store(snap.Header.Tick)
	w.clock.Sync(snap.GameTimeMinutes, time.Now())

	// Players come back without connections. They stay visible in broadcasts
	// and persistence until they rejoin; a rejoin replaces the restored state
	// with whatever the Join message carries.
	w.players = map[string]*playerState{}
	for _, p := range snap.Players {
		w.players[p.ID] = &playerState{
			ID:       p.ID,
			Username: p.Username,
			Pos:      protocol.Position{X: p.X, Y: p.Y, Z: p.Z},
			Yaw:      p.Yaw,
			Activity: p.Activity,
		}
	}

	for _, s := range snap.Walkers {
		if s.Index < 0 || s.Index >= len(w.walkers) {
			continue
		}
		wk := w.walkers[s.Index]
		wk.Pos.X = s.X
		wk.Pos.Z = s.Z
		wk.Yaw = math.Mod(s.Yaw, tau)
		wk.Mode = s.Mode
	}

	if snap.Ball != nil && w.ball != nil {
		w.ball.Pos = protocol.Position{X: snap.Ball.X, Y: snap.Ball.Y, Z: snap.Ball.Z}
		w.ball.VY = snap.Ball.VY
	}
	return nil
}
