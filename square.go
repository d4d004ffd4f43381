package checkbit

import (
	"fmt"
	"strings"
)

// A Square is one of the 64 squares on a chess board, numbered rank*8 + file (A1 = 0, H8 = 63).
type Square int8

// NoSquare marks the absence of a square (e.g. no en passant target).
const NoSquare Square = -1

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// A File is a column of the board, FileA through FileH.
type File int8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// A Rank is a row of the board, Rank1 through Rank8.
type Rank int8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const (
	fileChars = "abcdefgh"
	rankChars = "12345678"
)

// NewSquare returns the square at the intersection of f and r.
func NewSquare(f File, r Rank) Square {
	return Square(int(r)*NumOfFiles + int(f))
}

// File returns the square's file.
func (sq Square) File() File { return File(int(sq) % NumOfFiles) }

// Rank returns the square's rank.
func (sq Square) Rank() Rank { return Rank(int(sq) / NumOfFiles) }

// Valid reports whether sq addresses a square on the board.
func (sq Square) Valid() bool { return sq >= A1 && sq <= H8 }

func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return sq.File().String() + sq.Rank().String()
}

func (f File) String() string { return fileChars[f : f+1] }

func (r Rank) String() string { return rankChars[r : r+1] }

// ParseSquare converts algebraic coordinates such as "e4" into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("checkbit: invalid square %q", s)
	}
	f := strings.IndexByte(fileChars, s[0])
	r := strings.IndexByte(rankChars, s[1])
	if f < 0 || r < 0 {
		return NoSquare, fmt.Errorf("checkbit: invalid square %q", s)
	}
	return NewSquare(File(f), Rank(r)), nil
}
