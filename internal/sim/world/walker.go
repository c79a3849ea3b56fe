package world

import (
	"fmt"
	"math"

	"timehelm.world/internal/protocol"
)

// Walker modes.
const (
	walkerIdle    = "idle"
	walkerWalking = "walking"
)

// walkerState is one placeholder character doing the weighted random walk:
// every decide interval it draws idle / turn / walk, and while walking it
// advances a fixed step per tick in its facing direction. All randomness is
// hashed from the world seed and tick, so replays are deterministic.
type walkerState struct {
	Index int
	ID    string
	Pos   protocol.Position
	Yaw   float64
	Mode  string
}

// WalkerState is the exported form for snapshots.
type WalkerState struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Z     float64 `json:"z"`
	Yaw   float64 `json:"yaw"`
	Mode  string  `json:"mode"`
}

func newWalker(cfg Config, index int) *walkerState {
	// Spread initial spawns on a ring around the origin.
	angle := tau * float64(index) / float64(max(cfg.WalkerCount, 1))
	const ringR = 800.0
	return &walkerState{
		Index: index,
		ID:    fmt.Sprintf("walker_%d", index+1),
		Pos:   protocol.Position{X: ringR * math.Cos(angle), Z: ringR * math.Sin(angle)},
		Yaw:   angle,
		Mode:  walkerIdle,
	}
}

const tau = 2 * math.Pi

func (w *World) stepWalkers(tick uint64) {
	cfg := w.cfg
	decide := uint64(cfg.WalkerDecideEveryTicks)
	for _, wk := range w.walkers {
		// Stagger decisions so walkers do not all change at once.
		if (tick+uint64(wk.Index))%decide == 0 {
			roll := hash2(cfg.Seed, wk.Index, int(tick)) % 1000
			switch {
			case roll < uint64(cfg.WalkerIdlePermille):
				wk.Mode = walkerIdle
			case roll < uint64(cfg.WalkerIdlePermille+cfg.WalkerTurnPermille):
				wk.Mode = walkerWalking
				turn := hash2(cfg.Seed, wk.Index, int(tick)+1) % 1000
				wk.Yaw = tau * float64(turn) / 1000
			default:
				wk.Mode = walkerWalking
			}
		}
		if wk.Mode != walkerWalking {
			continue
		}
		step := float64(cfg.WalkerStepCmPerTick)
		wk.Pos.X += step * math.Cos(wk.Yaw)
		wk.Pos.Z += step * math.Sin(wk.Yaw)

		// Turn around at the world boundary.
		b := float64(cfg.BoundaryCm)
		if wk.Pos.X < -b || wk.Pos.X > b || wk.Pos.Z < -b || wk.Pos.Z > b {
			wk.Pos.X = clamp(wk.Pos.X, -b, b)
			wk.Pos.Z = clamp(wk.Pos.Z, -b, b)
			wk.Yaw = math.Mod(wk.Yaw+math.Pi, tau)
		}
	}
}

func (wk *walkerState) toPlayer() protocol.Player {
	activity := protocol.ActivityIdle
	if wk.Mode == walkerWalking {
		activity = protocol.ActivityCommuting
	}
	return protocol.Player{
		ID:       wk.ID,
		Username: wk.ID,
		Position: wk.Pos,
		Rotation: wk.Yaw,
		IsMoving: wk.Mode == walkerWalking,
		Activity: activity,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
