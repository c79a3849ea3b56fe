package main

import (
	"encoding/json"
	"flag"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"timehelm.world/internal/protocol"
)

// A headless client for load testing and demos: it joins with a random
// identity, wanders the world and changes activity now and then.
func main() {
	var (
		url  = flag.String("url", "ws://localhost:8080/ws", "ws url")
		name = flag.String("name", "bot", "player username")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[bot] ", log.LstdFlags|log.Lmicroseconds)
	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		logger.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	self := protocol.Player{
		ID:       uuid.NewString(),
		Username: *name,
		Activity: protocol.ActivityIdle,
	}
	join := protocol.JoinMsg{Type: protocol.TypeJoin, Player: self}
	if err := conn.WriteJSON(join); err != nil {
		logger.Fatalf("send Join: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	yaw := r.Float64() * 2 * math.Pi
	walking := false

	moveTicker := time.NewTicker(100 * time.Millisecond)
	defer moveTicker.Stop()
	decideTicker := time.NewTicker(4 * time.Second)
	defer decideTicker.Stop()

	// Reader: log server state, drain everything else.
	go func() {
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				logger.Printf("read: %v", err)
				os.Exit(0)
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil {
				continue
			}
			switch base.Type {
			case protocol.TypeTimeSync:
				var ts protocol.TimeSyncMsg
				if err := json.Unmarshal(msg, &ts); err != nil {
					continue
				}
				logger.Printf("TimeSync game_time_minutes=%d", ts.GameTimeMinutes)
			case protocol.TypeWorldState:
				var st protocol.WorldStateMsg
				if err := json.Unmarshal(msg, &st); err != nil {
					continue
				}
				if st.Time.GameTimeMinutes%60 == 0 {
					logger.Printf("WorldState players=%d entities=%d clock=%s", len(st.Players), len(st.Entities), st.Time.Clock)
				}
			case protocol.TypeError:
				var e protocol.ErrorMsg
				if err := json.Unmarshal(msg, &e); err != nil {
					continue
				}
				logger.Printf("Error code=%s message=%s", e.Code, e.Message)
			}
		}
	}()

	activities := []string{
		protocol.ActivityIdle,
		protocol.ActivityCommuting,
		protocol.ActivityCooking,
		protocol.ActivityWatchingTV,
		protocol.ActivityReading,
	}

	for {
		select {
		case <-stop:
			return
		case <-decideTicker.C:
			// Flip between wandering and loitering; pick a new heading and
			// activity when the mood changes.
			walking = r.Intn(10) < 6
			if walking {
				yaw = r.Float64() * 2 * math.Pi
			}
			activity := activities[r.Intn(len(activities))]
			sa := protocol.SetActivityMsg{
				Type:     protocol.TypeSetActivity,
				PlayerID: self.ID,
				Activity: activity,
			}
			if err := conn.WriteJSON(sa); err != nil {
				return
			}
		case <-moveTicker.C:
			if !walking {
				continue
			}
			const stepCm = 40.0
			self.Position.X += stepCm * math.Cos(yaw)
			self.Position.Z += stepCm * math.Sin(yaw)
			mv := protocol.MoveMsg{
				Type:     protocol.TypeMove,
				PlayerID: self.ID,
				Position: self.Position,
				Rotation: yaw,
				IsMoving: true,
			}
			if err := conn.WriteJSON(mv); err != nil {
				return
			}
		}
	}
}
