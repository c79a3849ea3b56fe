package world

import (
	"math"
	"testing"
)

func TestWalkers_DeterministicAcrossRuns(t *testing.T) {
	w1 := newTestWorld(t)
	w2 := newTestWorld(t)

	for tick := uint64(1); tick <= 1000; tick++ {
		w1.stepWalkers(tick)
		w2.stepWalkers(tick)
	}

	for i := range w1.walkers {
		a, b := w1.walkers[i], w2.walkers[i]
		if a.Pos != b.Pos || a.Yaw != b.Yaw || a.Mode != b.Mode {
			t.Fatalf("walker %d diverged: %+v vs %+v", i, a, b)
		}
	}
}

func TestWalkers_SeedChangesBehavior(t *testing.T) {
	cfg := testConfig()
	w1, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cfg.Seed = 43
	w2, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for tick := uint64(1); tick <= 2000; tick++ {
		w1.stepWalkers(tick)
		w2.stepWalkers(tick)
	}

	same := true
	for i := range w1.walkers {
		if w1.walkers[i].Pos != w2.walkers[i].Pos {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical walker paths")
	}
}

func TestWalkers_StayInsideBoundary(t *testing.T) {
	cfg := testConfig()
	cfg.BoundaryCm = 1000
	w, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for tick := uint64(1); tick <= 20000; tick++ {
		w.stepWalkers(tick)
		for _, wk := range w.walkers {
			if math.Abs(wk.Pos.X) > 1000 || math.Abs(wk.Pos.Z) > 1000 {
				t.Fatalf("walker %d escaped at tick %d: %+v", wk.Index, tick, wk.Pos)
			}
		}
	}
}

func TestWalker_ToPlayerActivity(t *testing.T) {
	wk := &walkerState{ID: "walker_1", Mode: walkerWalking}
	p := wk.toPlayer()
	if p.Activity != "commuting" || !p.IsMoving {
		t.Fatalf("walking walker: %+v", p)
	}
	wk.Mode = walkerIdle
	p = wk.toPlayer()
	if p.Activity != "idle" || p.IsMoving {
		t.Fatalf("idle walker: %+v", p)
	}
}
