package room

import "errors"

var (
	ErrRoomNotFound = errors.New("room: not found")
	ErrRoomFull     = errors.New("room: full")
	ErrModeMismatch = errors.New("room: mode does not match")
	ErrNotInRoom    = errors.New("room: connection is not a player here")
	ErrInvalidMode  = errors.New("room: unknown mode")
)
