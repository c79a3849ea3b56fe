package world

import (
	"fmt"
	"sync/atomic"
	"time"

	"timehelm.world/internal/protocol"
	"timehelm.world/internal/sim/calendar"
	"timehelm.world/internal/sim/catalogs"
	"timehelm.world/internal/sim/structure"
)

// JoinRequest enters a player into the world. Out receives serialized
// server messages for this client; Resp gets the join reply.
type JoinRequest struct {
	Player protocol.Player
	Out    chan []byte
	Resp   chan JoinResponse
}

// JoinResponse is sent back to the transport once the join is applied.
type JoinResponse struct {
	TimeSync   protocol.TimeSyncMsg
	WorldState protocol.WorldStateMsg
	ErrorCode  string
}

// ActionEnvelope is one decoded client message routed into the world loop.
// Exactly one of the pointers is set.
type ActionEnvelope struct {
	PlayerID    string
	Move        *protocol.MoveMsg
	SetActivity *protocol.SetActivityMsg
}

// ExportRequest asks the loop for a consistent copy of the live state,
// used by persistence and snapshots without sharing memory.
type ExportRequest struct {
	Resp chan Export
}

// Export is a point-in-time copy of the world for off-thread consumers.
type Export struct {
	Tick            uint64
	GameTimeMinutes int64
	Players         []protocol.Player
	Entities        []protocol.Entity
	Walkers         []WalkerState
	BallVY          float64
}

// EventEntry is one line in the world event log.
type EventEntry struct {
	Tick     uint64  `json:"tick"`
	Kind     string  `json:"kind"` // "join","leave","move","activity"
	PlayerID string  `json:"player_id"`
	Activity string  `json:"activity,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Z        float64 `json:"z,omitempty"`
}

// EventLogger persists event entries. Implemented in internal/persistence.
type EventLogger interface {
	WriteEvent(EventEntry) error
}

// World is a single-threaded authoritative simulation. All state must be
// accessed only from the world loop goroutine; outside callers go through
// the channels.
type World struct {
	cfg Config

	tick  atomic.Uint64
	clock *calendar.GameClock

	players map[string]*playerState
	clients map[string]*clientState
	ball    *ballState
	walkers []*walkerState

	// Static geometry, generated once at world setup.
	structures []*structure.Structure

	inbox  chan ActionEnvelope
	join   chan JoinRequest
	leave  chan string
	export chan ExportRequest
	stop   chan struct{}

	// Optional logger (may be nil).
	eventLogger EventLogger
}

type playerState struct {
	ID       string
	Username string
	Pos      protocol.Position
	Yaw      float64
	IsMoving bool
	Activity string
}

type clientState struct {
	Out chan []byte
}

type ballState struct {
	ID  string
	Pos protocol.Position
	Rot protocol.Rotation
	VY  float64
}

// New builds a fresh world: structures are generated from the plan catalog's
// placements, the ball is spawned, walkers are seeded, and the game clock is
// synced to unix seconds (1 real second = 1 game minute).
func New(cfg Config, cats *catalogs.Catalogs) (*World, error) {
	cfg.applyDefaults()

	w := &World{
		cfg:     cfg,
		clock:   calendar.NewGameClock(),
		players: map[string]*playerState{},
		clients: map[string]*clientState{},
		inbox:   make(chan ActionEnvelope, 256),
		join:    make(chan JoinRequest, 16),
		leave:   make(chan string, 16),
		export:  make(chan ExportRequest, 4),
		stop:    make(chan struct{}),
	}

	now := time.Now()
	w.clock.Sync(now.Unix(), now)

	if cats != nil {
		for _, pl := range cats.Plans.Placements {
			plan, ok := cats.Plans.ByID[pl.Plan]
			if !ok {
				return nil, fmt.Errorf("placement references unknown plan %q", pl.Plan)
			}
			w.structures = append(w.structures, structure.Build(plan, structure.Vec2{X: pl.X, Z: pl.Z}))
		}
	}

	w.ball = &ballState{
		ID:  fmt.Sprintf("ball_%d", cfg.Seed),
		Pos: protocol.Position{X: cfg.BallSpawnX, Y: cfg.BallSpawnY, Z: cfg.BallSpawnZ},
	}

	for i := 0; i < cfg.WalkerCount; i++ {
		w.walkers = append(w.walkers, newWalker(cfg, i))
	}

	return w, nil
}

func (w *World) Inbox() chan<- ActionEnvelope { return w.inbox }
func (w *World) Join() chan<- JoinRequest     { return w.join }
func (w *World) Leave() chan<- string         { return w.leave }
func (w *World) Export() chan<- ExportRequest { return w.export }

func (w *World) CurrentTick() uint64 { return w.tick.Load() }

// GameTimeMinutes reads the extrapolated game clock. Safe from any goroutine.
func (w *World) GameTimeMinutes() int64 { return w.clock.ReadAt(time.Now()) }

// SyncClock overwrites the clock base, e.g. after a snapshot resume.
func (w *World) SyncClock(minutes int64, at time.Time) { w.clock.Sync(minutes, at) }

// Structures exposes the generated static geometry for scene setup.
// The elements are read-only to callers.
func (w *World) Structures() []*structure.Structure { return w.structures }

func (w *World) SetEventLogger(l EventLogger) { w.eventLogger = l }

func (w *World) logEvent(e EventEntry) {
	if w.eventLogger == nil {
		return
	}
	_ = w.eventLogger.WriteEvent(e)
}
