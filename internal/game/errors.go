package game

import "errors"

var (
	ErrInvalidBoardSize    = errors.New("game: board size must be between 3 and 6")
	ErrGameNotStarted      = errors.New("game: not started")
	ErrGameOver            = errors.New("game: already over")
	ErrNotYourTurn         = errors.New("game: not your turn")
	ErrNoSelection         = errors.New("game: no stack selected")
	ErrSelectionInProgress = errors.New("game: stack move already in progress")
	ErrIllegalSelection    = errors.New("game: illegal selection")
	ErrIllegalMove         = errors.New("game: illegal move")
	ErrIllegalToggle       = errors.New("game: piece cannot be toggled")
	ErrUnknownPiece        = errors.New("game: unknown piece")
)
