package checkbit

import "errors"

var (
	// ErrInvalidMove is returned when a move cannot be applied to the board.
	ErrInvalidMove = errors.New("invalid move")
	// ErrInvalidSnapshot is returned by UnmarshalBinary for data that does not describe a valid board.
	ErrInvalidSnapshot = errors.New("invalid board snapshot")
)
