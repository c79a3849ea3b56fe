package protocol

import "encoding/json"

// Message types. All messages are tagged JSON with a "type" field so they can
// be routed before full decoding.
const (
	TypeJoin            = "Join"
	TypeLeave           = "Leave"
	TypeMove            = "Move"
	TypeSetActivity     = "SetActivity"
	TypeActivityChanged = "ActivityChanged"
	TypeWorldState      = "WorldState"
	TypeTimeSync        = "TimeSync"
	TypeError           = "Error"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type string `json:"type"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
