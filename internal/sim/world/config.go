package world

type Config struct {
	ID          string
	TickRateHz  int
	BroadcastHz int
	BoundaryCm  int
	Seed        int64

	// Bouncing ball entity.
	BallSpawnX              float64
	BallSpawnY              float64
	BallSpawnZ              float64
	BallGravityCmS2         float64
	BallRestitutionPermille int

	// Placeholder NPC walkers.
	WalkerCount            int
	WalkerDecideEveryTicks int
	WalkerStepCmPerTick    int
	WalkerIdlePermille     int
	WalkerTurnPermille     int
}

func (c *Config) applyDefaults() {
	if c.ID == "" {
		c.ID = "world_1"
	}
	if c.TickRateHz <= 0 {
		c.TickRateHz = 60
	}
	if c.BroadcastHz <= 0 {
		c.BroadcastHz = 10
	}
	if c.BroadcastHz > c.TickRateHz {
		c.BroadcastHz = c.TickRateHz
	}
	if c.BoundaryCm <= 0 {
		c.BoundaryCm = 5000
	}
	if c.BallSpawnX == 0 && c.BallSpawnZ == 0 {
		c.BallSpawnX = -300
		c.BallSpawnZ = -400
	}
	if c.BallSpawnY <= 0 {
		c.BallSpawnY = 500
	}
	if c.BallGravityCmS2 == 0 {
		c.BallGravityCmS2 = -981
	}
	if c.BallRestitutionPermille <= 0 || c.BallRestitutionPermille > 1000 {
		c.BallRestitutionPermille = 950
	}
	if c.WalkerCount < 0 {
		c.WalkerCount = 0
	}
	if c.WalkerDecideEveryTicks <= 0 {
		c.WalkerDecideEveryTicks = 120
	}
	if c.WalkerStepCmPerTick <= 0 {
		c.WalkerStepCmPerTick = 6
	}
	if c.WalkerIdlePermille <= 0 {
		c.WalkerIdlePermille = 400
	}
	if c.WalkerTurnPermille <= 0 {
		c.WalkerTurnPermille = 300
	}
}
