package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"timehelm.world/internal/protocol"
	"timehelm.world/internal/sim/world"
)

type Server struct {
	world *world.World
	log   *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(w *world.World, logger *log.Logger) *Server {
	s := &Server{
		world: w,
		log:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
	return s
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		playerID, out := s.handshake(conn)
		if playerID == "" {
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				break
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil {
				continue
			}
			switch base.Type {
			case protocol.TypeMove:
				var mv protocol.MoveMsg
				if err := json.Unmarshal(msg, &mv); err != nil {
					continue
				}
				s.world.Inbox() <- world.ActionEnvelope{PlayerID: playerID, Move: &mv}
			case protocol.TypeSetActivity:
				var sa protocol.SetActivityMsg
				if err := json.Unmarshal(msg, &sa); err != nil {
					continue
				}
				s.world.Inbox() <- world.ActionEnvelope{PlayerID: playerID, SetActivity: &sa}
			default:
				// Unknown client message, ignore.
			}
		}

		// Cleanup.
		s.world.Leave() <- playerID
	}
}

// wsConn is the subset of *websocket.Conn the handshake needs.
type wsConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

// handshake expects the first client message to be Join, registers the player
// with the world and sends the TimeSync and initial WorldState back on the
// raw connection before the writer goroutine takes over.
func (s *Server) handshake(conn wsConn) (playerID string, out chan []byte) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", nil
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeJoin {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected Join"), time.Now().Add(time.Second))
		return "", nil
	}

	var join protocol.JoinMsg
	if err := json.Unmarshal(msg, &join); err != nil {
		return "", nil
	}

	out = make(chan []byte, 32)

	respCh := make(chan world.JoinResponse, 1)
	s.world.Join() <- world.JoinRequest{
		Player: join.Player,
		Out:    out,
		Resp:   respCh,
	}
	resp := <-respCh

	if resp.ErrorCode != "" {
		_ = writeJSON(conn, protocol.ErrorMsg{Type: protocol.TypeError, Code: resp.ErrorCode})
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, resp.ErrorCode), time.Now().Add(time.Second))
		return "", nil
	}

	// The world registered the player when Join succeeded; any failure from
	// here on must be followed by a Leave or the player lingers forever.
	if err := writeJSON(conn, resp.TimeSync); err != nil {
		s.world.Leave() <- join.Player.ID
		return "", nil
	}
	if err := writeJSON(conn, resp.WorldState); err != nil {
		s.world.Leave() <- join.Player.ID
		return "", nil
	}

	return join.Player.ID, out
}

func writeJSON(conn wsConn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
