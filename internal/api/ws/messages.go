package ws

import (
	"encoding/json"

	"tak-online/internal/game"
)

// Inbound action names.
const (
	ActionJoinRoom         = "joinRoom"
	ActionLeaveRoom        = "leaveRoom"
	ActionChatMessage      = "chatMessage"
	ActionSelectStack      = "selectStack"
	ActionMakeMove         = "makeMove"
	ActionChangePieceStand = "changePieceStand"
	ActionPlayAgain        = "playAgain"
)

// Envelope is every frame on the socket in both directions.
type Envelope struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

type joinRoomPayload struct {
	RoomID    string `json:"roomId" validate:"required,max=64"`
	Username  string `json:"username" validate:"required,max=32"`
	Mode      string `json:"mode" validate:"required,oneof=local multiplayer"`
	BoardSize int    `json:"boardSize" validate:"omitempty,min=3,max=6"`
}

type roomPayload struct {
	RoomID string `json:"roomId" validate:"required"`
}

type chatPayload struct {
	RoomID   string `json:"roomId" validate:"required"`
	Username string `json:"username"`
	Content  string `json:"content" validate:"required"`
}

type selectStackPayload struct {
	RoomID string       `json:"roomId" validate:"required"`
	Pieces []game.Piece `json:"pieces" validate:"required,min=1"`
}

type makeMovePayload struct {
	RoomID string    `json:"roomId" validate:"required"`
	Move   game.Move `json:"move"`
}

type changePieceStandPayload struct {
	RoomID  string `json:"roomId" validate:"required"`
	PieceID string `json:"pieceId" validate:"required"`
}

type playAgainPayload struct {
	RoomID   string `json:"roomId" validate:"required"`
	Username string `json:"username"`
}

func pieceIDs(ps []game.Piece) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}
