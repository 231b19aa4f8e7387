package ws

import (
	"tak-online/internal/game"
	"tak-online/internal/room"
)

// RoomManager is the set of intents the hub forwards from clients.
type RoomManager interface {
	JoinRoom(connID, roomID, username string, mode room.Mode, boardSize int) error
	LeaveRoom(connID, roomID string) error
	Disconnect(connID string)
	PostChat(connID, roomID, content string) error
	SelectStack(connID, roomID string, ids []string) error
	MakeMove(connID, roomID string, mv game.Move) error
	ChangePieceStand(connID, roomID, pieceID string) error
	PlayAgain(connID, roomID string) error
}
