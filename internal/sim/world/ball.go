package world

import "timehelm.world/internal/protocol"

// Ball radius in cm; the ball rests with its center one radius above ground.
const ballRadius = 50.0

// stepBall integrates the bouncing ball: constant gravity, elastic-ish
// bounce off the ground plane, spin proportional to fall speed. The full
// rigid-body simulation of the original is out of scope; this keeps the one
// visible physics object alive.
func (w *World) stepBall(dt float64) {
	b := w.ball
	if b == nil {
		return
	}
	b.VY += w.cfg.BallGravityCmS2 * dt
	b.Pos.Y += b.VY * dt

	if b.Pos.Y < ballRadius {
		b.Pos.Y = ballRadius
		rest := float64(w.cfg.BallRestitutionPermille) / 1000
		b.VY = -b.VY * rest
		// Kill tiny residual bounces.
		if b.VY < 20 {
			b.VY = 0
		}
	}

	// Visible spin while airborne.
	b.Rot.X += (b.VY / 1000) * dt
}

func (b *ballState) toEntity() protocol.Entity {
	return protocol.Entity{
		ID:         b.ID,
		EntityType: protocol.EntityBall,
		Position:   b.Pos,
		Rotation:   b.Rot,
	}
}
