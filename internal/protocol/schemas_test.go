package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"timehelm.world/internal/protocol"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, raw []byte) {
		t.Helper()
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			t.Fatalf("unmarshal sample: %v", err)
		}
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	joinSchema := compile("join.schema.json")
	moveSchema := compile("move.schema.json")
	setActivitySchema := compile("set_activity.schema.json")
	timeSyncSchema := compile("time_sync.schema.json")
	worldStateSchema := compile("world_state.schema.json")

	validate(joinSchema, []byte(`{
	  "type":"Join",
	  "player":{
	    "id":"p1","username":"ada",
	    "position":{"x":0,"y":0,"z":0},
	    "rotation":0,
	    "activity":"idle"
	  }
	}`))

	validate(moveSchema, []byte(`{
	  "type":"Move",
	  "player_id":"p1",
	  "position":{"x":120.5,"y":0,"z":-340},
	  "rotation":1.57,
	  "is_moving":true
	}`))

	validate(setActivitySchema, []byte(`{
	  "type":"SetActivity",
	  "player_id":"p1",
	  "activity":"cooking"
	}`))

	validate(timeSyncSchema, []byte(`{
	  "type":"TimeSync",
	  "game_time_minutes":1718000000
	}`))

	// A marshaled WorldState must satisfy its own schema.
	ws := protocol.WorldStateMsg{
		Type: protocol.TypeWorldState,
		Players: []protocol.Player{{
			ID: "p1", Username: "ada",
			Position: protocol.Position{X: 100, Z: -200},
			Activity: protocol.ActivityWorking,
		}},
		Entities: []protocol.Entity{{
			ID: "ball_1", EntityType: protocol.EntityBall,
			Position: protocol.Position{X: -300, Y: 500, Z: -400},
		}},
		Time: protocol.TimeInfo{
			GameTimeMinutes: 1500,
			Clock:           "0000/01/02 01:00",
			TimeOfDayHours:  1.0,
			Daylight:        protocol.Daylight{SunAngle: -1.2, Intensity: 0.05, SkyColor: [3]float64{0.02, 0.03, 0.08}},
		},
	}
	raw, err := json.Marshal(ws)
	if err != nil {
		t.Fatalf("marshal world state: %v", err)
	}
	validate(worldStateSchema, raw)
}

func TestDecodeBase(t *testing.T) {
	base, err := protocol.DecodeBase([]byte(`{"type":"Move","player_id":"p1"}`))
	if err != nil {
		t.Fatalf("DecodeBase: %v", err)
	}
	if base.Type != protocol.TypeMove {
		t.Fatalf("type: got %q", base.Type)
	}
}

func TestActivityAndCodeSets(t *testing.T) {
	for _, a := range []string{"", "idle", "watching_tv", "commuting"} {
		if !protocol.IsKnownActivity(a) {
			t.Fatalf("activity %q should be known", a)
		}
	}
	if protocol.IsKnownActivity("flying") {
		t.Fatal("unknown activity accepted")
	}
	if !protocol.IsKnownCode(protocol.ErrBadActivity) || protocol.IsKnownCode("E_NOPE") {
		t.Fatal("error code set mismatch")
	}
}
