package world

import "testing"

func TestBall_FallsAndBounces(t *testing.T) {
	w := newTestWorld(t)
	dt := 1.0 / 60

	startY := w.ball.Pos.Y
	for i := 0; i < 30; i++ {
		w.stepBall(dt)
	}
	if w.ball.Pos.Y >= startY {
		t.Fatalf("ball did not fall: start %.1f now %.1f", startY, w.ball.Pos.Y)
	}

	// Run long enough to hit the ground at least once.
	var bounced bool
	for i := 0; i < 60*10; i++ {
		w.stepBall(dt)
		if w.ball.VY > 0 {
			bounced = true
		}
		if w.ball.Pos.Y < ballRadius {
			t.Fatalf("ball sank below rest height: %.2f", w.ball.Pos.Y)
		}
	}
	if !bounced {
		t.Fatal("ball never bounced")
	}
}

func TestBall_ComesToRest(t *testing.T) {
	w := newTestWorld(t)
	dt := 1.0 / 60

	// A minute of sim time is plenty for the bounces to decay.
	for i := 0; i < 60*60; i++ {
		w.stepBall(dt)
	}
	if w.ball.VY != 0 {
		t.Fatalf("ball still moving: vy=%.3f", w.ball.VY)
	}
	if w.ball.Pos.Y != ballRadius {
		t.Fatalf("rest height: got %.2f, want %.2f", w.ball.Pos.Y, ballRadius)
	}
}
