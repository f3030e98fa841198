package errors

import "errors"

var (
	ErrNoPlayers      = errors.New("at least one player is required")
	ErrNoMoves        = errors.New("board is full; no moves available")
	ErrSearchInternal = errors.New("failed to select a move despite available columns")
	ErrColumnFull     = errors.New("column is full")
	ErrColumnRange    = errors.New("column index out of range")
	ErrGameOver       = errors.New("game is over")
	ErrGameNotFound   = errors.New("game not found")
	ErrInvalidPlayer  = errors.New("invalid player id")
	ErrInternal       = errors.New("internal error")
)
