package checkbit

import "fmt"

// Move is a displacement from one square to another in coordinate form.
type Move struct {
	From Square
	To   Square
}

// String returns the move in coordinate notation, e.g. "e2e4".
func (m Move) String() string { return m.From.String() + m.To.String() }

// ParseMove parses coordinate notation such as "e2e4".
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return Move{}, fmt.Errorf("checkbit: invalid move %q", s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return Move{}, fmt.Errorf("checkbit: invalid move %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:])
	if err != nil {
		return Move{}, fmt.Errorf("checkbit: invalid move %q: %w", s, err)
	}
	return Move{From: from, To: to}, nil
}
