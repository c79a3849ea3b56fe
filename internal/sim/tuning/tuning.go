package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	TickRateHz       int `yaml:"tick_rate_hz"`
	BroadcastHz      int `yaml:"broadcast_hz"`
	PersistEverySec  int `yaml:"persist_every_sec"`
	SnapshotEverySec int `yaml:"snapshot_every_sec"`
	BoundaryCm       int `yaml:"boundary_cm"`

	Ball    Ball    `yaml:"ball"`
	Walkers Walkers `yaml:"walkers"`
}

// Ball tunes the bouncing ball entity.
type Ball struct {
	SpawnX              float64 `yaml:"spawn_x"`
	SpawnY              float64 `yaml:"spawn_y"`
	SpawnZ              float64 `yaml:"spawn_z"`
	GravityCmS2         float64 `yaml:"gravity_cm_s2"`
	RestitutionPermille int     `yaml:"restitution_permille"`
}

// Walkers tunes the placeholder NPC random walk.
type Walkers struct {
	Count            int `yaml:"count"`
	DecideEveryTicks int `yaml:"decide_every_ticks"`
	StepCmPerTick    int `yaml:"step_cm_per_tick"`
	IdlePermille     int `yaml:"idle_permille"`
	TurnPermille     int `yaml:"turn_permille"`
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func Defaults() Tuning {
	return Tuning{
		TickRateHz:       60,
		BroadcastHz:      10,
		PersistEverySec:  60,
		SnapshotEverySec: 300,
		BoundaryCm:       5000,
		Ball: Ball{
			SpawnX:              -300,
			SpawnY:              500,
			SpawnZ:              -400,
			GravityCmS2:         -981,
			RestitutionPermille: 950,
		},
		Walkers: Walkers{
			Count:            4,
			DecideEveryTicks: 120,
			StepCmPerTick:    6,
			IdlePermille:     400,
			TurnPermille:     300,
		},
	}
}
