package protocol

// Position is a point in the world. Units are centimeters; Y is vertical.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Rotation is Euler angles in radians.
type Rotation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Player is the wire form of a player character.
type Player struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Position Position `json:"position"`
	// Rotation around the Y axis, radians.
	Rotation float64 `json:"rotation"`
	IsMoving bool    `json:"is_moving,omitempty"`
	Activity string  `json:"activity,omitempty"`
}

// Entity types.
const (
	EntityHuman = "human"
	EntityBall  = "ball"
)

// Entity is the wire form of a non-player object.
type Entity struct {
	ID         string   `json:"id"`
	EntityType string   `json:"entity_type"`
	Position   Position `json:"position"`
	Rotation   Rotation `json:"rotation"`
}

// Join (client -> server): a player joining the game.
type JoinMsg struct {
	Type   string `json:"type"`
	Player Player `json:"player"`
}

// Leave (server -> client): a player left.
type LeaveMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id"`
}

// Move (client -> server): a player movement update.
type MoveMsg struct {
	Type     string   `json:"type"`
	PlayerID string   `json:"player_id"`
	Position Position `json:"position"`
	Rotation float64  `json:"rotation"`
	IsMoving bool     `json:"is_moving,omitempty"`
}

// SetActivity (client -> server): change the player's current activity.
type SetActivityMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id"`
	Activity string `json:"activity"`
}

// ActivityChanged (server -> client).
type ActivityChangedMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id"`
	Activity string `json:"activity"`
}

// Daylight is the server-derived lighting state so clients do not re-derive
// the day/night cycle themselves.
type Daylight struct {
	// SunAngle is the sun's elevation over the horizon in radians; negative
	// at night.
	SunAngle  float64 `json:"sun_angle"`
	Intensity float64 `json:"intensity"`
	// SkyColor is linear RGB in [0,1].
	SkyColor [3]float64 `json:"sky_color"`
}

// TimeInfo carries the calendar view of the current game time.
type TimeInfo struct {
	GameTimeMinutes int64    `json:"game_time_minutes"`
	Clock           string   `json:"clock"` // "YYYY/MM/DD HH:MM"
	TimeOfDayHours  float64  `json:"time_of_day_hours"`
	Daylight        Daylight `json:"daylight"`
}

// WorldState (server -> client): complete world snapshot, broadcast
// periodically to keep clients synchronized.
type WorldStateMsg struct {
	Type     string   `json:"type"`
	Players  []Player `json:"players"`
	Entities []Entity `json:"entities"`
	Time     TimeInfo `json:"time"`
}

// TimeSync (server -> client): authoritative game-minute count, sent on
// connect. 1 real second advances game time by 1 minute.
type TimeSyncMsg struct {
	Type            string `json:"type"`
	GameTimeMinutes int64  `json:"game_time_minutes"`
}

// Error (server -> client).
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}
