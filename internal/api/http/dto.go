package http

import (
	"tak-online/internal/archive"
	"tak-online/internal/game"
	"tak-online/internal/room"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

type RoomListResponse struct {
	Rooms []room.Summary `json:"rooms"`
}

// RoomResponse pairs the lobby view of a room with its full game state.
type RoomResponse struct {
	Room  room.Summary    `json:"room"`
	State *game.GameState `json:"gameState"`
}

// MovesResponse lists where the current selection may drop next.
type MovesResponse struct {
	RoomID        string          `json:"roomId"`
	CurrentPlayer game.Color      `json:"currentPlayer"`
	SelectedStack []game.Piece    `json:"selectedStack"`
	Destinations  []game.Position `json:"destinations"`
}

// MatchQuery is the query string of GET /v1/matches.
type MatchQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

type MatchListResponse struct {
	Matches []archive.Match `json:"matches"`
}

type BoardSizeInfo struct {
	Size      int `json:"size"`
	Stones    int `json:"stones"`
	Capstones int `json:"capstones"`
}

// ConfigResponse is the public part of the server configuration.
type ConfigResponse struct {
	DefaultBoardSize int             `json:"defaultBoardSize"`
	BoardSizes       []BoardSizeInfo `json:"boardSizes"`
	MaxChatLength    int             `json:"maxChatLength"`
	MaxChatHistory   int             `json:"maxChatHistory"`
	RoomIdleTimeout  string          `json:"roomIdleTimeout"`
}
