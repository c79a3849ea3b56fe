package world

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"timehelm.world/internal/protocol"
	"timehelm.world/internal/sim/calendar"
)

// Run drives the world at the configured tick rate until the context is
// canceled or Stop is called. Joins, leaves and actions are buffered between
// ticks and applied in arrival order at the next tick.
func (w *World) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(w.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var pendingActions []ActionEnvelope
	var pendingJoins []JoinRequest
	var pendingLeaves []string

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stop:
			return nil
		case req := <-w.join:
			pendingJoins = append(pendingJoins, req)
		case id := <-w.leave:
			pendingLeaves = append(pendingLeaves, id)
		case env := <-w.inbox:
			pendingActions = append(pendingActions, env)
		case req := <-w.export:
			req.Resp <- w.exportState()
		case <-ticker.C:
			w.StepOnce(pendingJoins, pendingLeaves, pendingActions)
			pendingJoins = pendingJoins[:0]
			pendingLeaves = pendingLeaves[:0]
			pendingActions = pendingActions[:0]
		}
	}
}

func (w *World) Stop() { close(w.stop) }

// StepOnce advances the world by one tick. Exposed for tests; Run calls it
// from the loop goroutine.
func (w *World) StepOnce(joins []JoinRequest, leaves []string, actions []ActionEnvelope) uint64 {
	tick := w.tick.Add(1)

	for _, req := range joins {
		w.applyJoin(tick, req)
	}
	for _, id := range leaves {
		w.applyLeave(tick, id)
	}
	for _, env := range actions {
		w.applyAction(tick, env)
	}

	dt := 1 / float64(w.cfg.TickRateHz)
	w.stepBall(dt)
	w.stepWalkers(tick)

	every := uint64(w.cfg.TickRateHz / w.cfg.BroadcastHz)
	if every == 0 || tick%every == 0 {
		w.broadcastWorldState()
	}
	return tick
}

func (w *World) applyJoin(tick uint64, req JoinRequest) {
	p := req.Player
	if p.ID == "" || !protocol.IsKnownActivity(p.Activity) {
		if req.Resp != nil {
			req.Resp <- JoinResponse{ErrorCode: protocol.ErrBadRequest}
		}
		return
	}
	w.players[p.ID] = &playerState{
		ID:       p.ID,
		Username: p.Username,
		Pos:      p.Position,
		Yaw:      p.Rotation,
		IsMoving: p.IsMoving,
		Activity: p.Activity,
	}
	if req.Out != nil {
		w.clients[p.ID] = &clientState{Out: req.Out}
	}
	w.logEvent(EventEntry{Tick: tick, Kind: "join", PlayerID: p.ID, X: p.Position.X, Y: p.Position.Y, Z: p.Position.Z})

	if req.Resp != nil {
		req.Resp <- JoinResponse{
			TimeSync: protocol.TimeSyncMsg{
				Type:            protocol.TypeTimeSync,
				GameTimeMinutes: w.GameTimeMinutes(),
			},
			WorldState: w.buildWorldState(),
		}
	}
}

func (w *World) applyLeave(tick uint64, id string) {
	if _, ok := w.players[id]; !ok {
		return
	}
	delete(w.players, id)
	delete(w.clients, id)
	w.logEvent(EventEntry{Tick: tick, Kind: "leave", PlayerID: id})
	w.broadcast(protocol.LeaveMsg{Type: protocol.TypeLeave, PlayerID: id})
}

func (w *World) applyAction(tick uint64, env ActionEnvelope) {
	switch {
	case env.Move != nil:
		m := env.Move
		p, ok := w.players[m.PlayerID]
		if !ok || m.PlayerID != env.PlayerID {
			return
		}
		p.Pos = m.Position
		p.Yaw = m.Rotation
		p.IsMoving = m.IsMoving
		w.logEvent(EventEntry{Tick: tick, Kind: "move", PlayerID: p.ID, X: p.Pos.X, Y: p.Pos.Y, Z: p.Pos.Z})

	case env.SetActivity != nil:
		sa := env.SetActivity
		p, ok := w.players[sa.PlayerID]
		if !ok || sa.PlayerID != env.PlayerID {
			return
		}
		if !protocol.IsKnownActivity(sa.Activity) {
			w.sendTo(sa.PlayerID, protocol.ErrorMsg{
				Type: protocol.TypeError, Code: protocol.ErrBadActivity, Message: sa.Activity,
			})
			return
		}
		p.Activity = sa.Activity
		w.logEvent(EventEntry{Tick: tick, Kind: "activity", PlayerID: p.ID, Activity: sa.Activity})
		w.broadcast(protocol.ActivityChangedMsg{
			Type: protocol.TypeActivityChanged, PlayerID: p.ID, Activity: sa.Activity,
		})
	}
}

func (w *World) buildTimeInfo() protocol.TimeInfo {
	minutes := w.GameTimeMinutes()
	hours := calendar.TimeOfDayHours(minutes)
	return protocol.TimeInfo{
		GameTimeMinutes: minutes,
		Clock:           calendar.Format(minutes),
		TimeOfDayHours:  hours,
		Daylight:        DaylightAt(hours),
	}
}

func (w *World) buildWorldState() protocol.WorldStateMsg {
	players := make([]protocol.Player, 0, len(w.players)+len(w.walkers))
	entities := make([]protocol.Entity, 0, len(w.players)+len(w.walkers)+1)

	for _, p := range w.sortedPlayers() {
		wire := protocol.Player{
			ID: p.ID, Username: p.Username,
			Position: p.Pos, Rotation: p.Yaw,
			IsMoving: p.IsMoving, Activity: p.Activity,
		}
		players = append(players, wire)
		entities = append(entities, protocol.Entity{
			ID:         "human_" + p.ID,
			EntityType: protocol.EntityHuman,
			Position:   p.Pos,
			Rotation:   protocol.Rotation{Y: p.Yaw},
		})
	}
	for _, wk := range w.walkers {
		players = append(players, wk.toPlayer())
		entities = append(entities, protocol.Entity{
			ID:         "human_" + wk.ID,
			EntityType: protocol.EntityHuman,
			Position:   wk.Pos,
			Rotation:   protocol.Rotation{Y: wk.Yaw},
		})
	}
	if w.ball != nil {
		entities = append(entities, w.ball.toEntity())
	}

	return protocol.WorldStateMsg{
		Type:     protocol.TypeWorldState,
		Players:  players,
		Entities: entities,
		Time:     w.buildTimeInfo(),
	}
}

func (w *World) broadcastWorldState() {
	if len(w.clients) == 0 {
		return
	}
	w.broadcast(w.buildWorldState())
}

func (w *World) broadcast(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	for _, c := range w.clients {
		select {
		case c.Out <- b:
		default:
			// Slow client: drop; the next world state resynchronizes it.
		}
	}
}

func (w *World) sendTo(id string, v any) {
	c, ok := w.clients[id]
	if !ok {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case c.Out <- b:
	default:
	}
}

// sortedPlayers keeps broadcast and export ordering stable across ticks.
func (w *World) sortedPlayers() []*playerState {
	out := make([]*playerState, 0, len(w.players))
	for _, p := range w.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (w *World) exportState() Export {
	ex := Export{
		Tick:            w.tick.Load(),
		GameTimeMinutes: w.GameTimeMinutes(),
	}
	for _, p := range w.sortedPlayers() {
		ex.Players = append(ex.Players, protocol.Player{
			ID: p.ID, Username: p.Username,
			Position: p.Pos, Rotation: p.Yaw,
			IsMoving: p.IsMoving, Activity: p.Activity,
		})
		ex.Entities = append(ex.Entities, protocol.Entity{
			ID:         "human_" + p.ID,
			EntityType: protocol.EntityHuman,
			Position:   p.Pos,
			Rotation:   protocol.Rotation{Y: p.Yaw},
		})
	}
	for _, wk := range w.walkers {
		ex.Entities = append(ex.Entities, protocol.Entity{
			ID:         "human_" + wk.ID,
			EntityType: protocol.EntityHuman,
			Position:   wk.Pos,
			Rotation:   protocol.Rotation{Y: wk.Yaw},
		})
		ex.Walkers = append(ex.Walkers, WalkerState{
			Index: wk.Index, X: wk.Pos.X, Z: wk.Pos.Z, Yaw: wk.Yaw, Mode: wk.Mode,
		})
	}
	if w.ball != nil {
		ex.Entities = append(ex.Entities, w.ball.toEntity())
		ex.BallVY = w.ball.VY
	}
	return ex
}
