package checkbit

import (
	"fmt"
	"math/bits"
	"strings"
)

// Bitboard is a set of squares: bit i is set when square i is in the set.
type Bitboard uint64

// --- Constants ---

const (
	NumOfSquaresInBoard = 64 // Total squares on the board.
	NumOfFiles          = 8  // Number of files (columns).
	NumOfRanks          = 8  // Number of ranks (rows).
	NumOfPieces         = 6  // Number of piece types (P, N, B, R, Q, K).
	NumOfColors         = 2
)

// --- Predefined Bitboard Constants ---

const (
	EmptyBB Bitboard = 0
	FullBB  Bitboard = ^EmptyBB // All squares set

	// Files (LSB = Rank 1)
	FileABB Bitboard = 0x0101010101010101
	FileBBB Bitboard = FileABB << 1
	FileCBB Bitboard = FileABB << 2
	FileDBB Bitboard = FileABB << 3
	FileEBB Bitboard = FileABB << 4
	FileFBB Bitboard = FileABB << 5
	FileGBB Bitboard = FileABB << 6
	FileHBB Bitboard = FileABB << 7

	// Ranks (LSB = File A)
	Rank1BB Bitboard = 0xFF
	Rank2BB Bitboard = Rank1BB << (8 * 1)
	Rank3BB Bitboard = Rank1BB << (8 * 2)
	Rank4BB Bitboard = Rank1BB << (8 * 3)
	Rank5BB Bitboard = Rank1BB << (8 * 4)
	Rank6BB Bitboard = Rank1BB << (8 * 5)
	Rank7BB Bitboard = Rank1BB << (8 * 6)
	Rank8BB Bitboard = Rank1BB << (8 * 7)

	// Edge Masks
	NotAFile  Bitboard = ^FileABB
	NotHFile  Bitboard = ^FileHBB
	NotABFile Bitboard = ^(FileABB | FileBBB)
	NotGHFile Bitboard = ^(FileGBB | FileHBB)

	CenterFourMask     Bitboard = 0x0000001818000000 // d4, e4, d5, e5
	ExtendedCenterMask Bitboard = 0x00003C3C3C3C0000 // c3-f6
)

// --- Bitboard Manipulation ---

// SquareBB returns a bitboard with only the given square set.
// An invalid square is a caller bug: it panics in checkbitdebug builds and yields EmptyBB otherwise.
func SquareBB(sq Square) Bitboard {
	if sq >= A1 && sq <= H8 {
		return 1 << uint(sq)
	}
	assertSquare(sq)
	return EmptyBB
}

// Set sets the bit corresponding to the square.
func (b Bitboard) Set(sq Square) Bitboard { return b | SquareBB(sq) }

// Clear clears the bit corresponding to the square.
func (b Bitboard) Clear(sq Square) Bitboard { return b &^ SquareBB(sq) }

// Toggle toggles the bit corresponding to the square.
func (b Bitboard) Toggle(sq Square) Bitboard { return b ^ SquareBB(sq) }

// Occupied reports whether the square's bit is set.
func (b Bitboard) Occupied(sq Square) bool {
	return (b & SquareBB(sq)) != 0
}

// IsEmpty checks if the bitboard is empty.
func (b Bitboard) IsEmpty() bool { return b == 0 }

// PopCount counts the number of set bits.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// LSB finds the index of the least significant bit. Returns (square, true) or (NoSquare, false).
func (b Bitboard) LSB() (Square, bool) {
	if b == 0 {
		return NoSquare, false
	}
	return Square(bits.TrailingZeros64(uint64(b))), true
}

// MSB finds the index of the most significant bit. Returns (square, true) or (NoSquare, false).
func (b Bitboard) MSB() (Square, bool) {
	if b == 0 {
		return NoSquare, false
	}
	return Square(NumOfSquaresInBoard - 1 - bits.LeadingZeros64(uint64(b))), true
}

// PopLSB finds and removes the least significant bit.
// Returns (square, new bitboard, true) or (NoSquare, original bitboard, false).
func (b Bitboard) PopLSB() (Square, Bitboard, bool) {
	if b == 0 {
		return NoSquare, b, false
	}
	sq := Square(bits.TrailingZeros64(uint64(b)))
	// b & (b-1) clears the LSB
	return sq, b & (b - 1), true
}

// Scan returns the squares of all set bits, ordered LSB to MSB.
func (b Bitboard) Scan() []Square {
	squares := make([]Square, 0, b.PopCount())
	for tempBB := b; tempBB != EmptyBB; {
		sq, next, _ := tempBB.PopLSB()
		squares = append(squares, sq)
		tempBB = next
	}
	return squares
}

// And performs a bitwise AND operation.
func (b Bitboard) And(other Bitboard) Bitboard { return b & other }

// Or performs a bitwise OR operation.
func (b Bitboard) Or(other Bitboard) Bitboard { return b | other }

// Xor performs a bitwise XOR operation.
func (b Bitboard) Xor(other Bitboard) Bitboard { return b ^ other }

// Not performs a bitwise NOT operation.
func (b Bitboard) Not() Bitboard { return ^b }

// AndNot performs a bitwise AND NOT operation (b & ~other).
func (b Bitboard) AndNot(other Bitboard) Bitboard { return b &^ other }

// --- Edge-aware shifts ---
// Each shift reports ok == false instead of wrapping when a set bit sits on the edge it would cross.

// ShiftNorth moves every square one rank up.
func (b Bitboard) ShiftNorth() (Bitboard, bool) {
	if b&Rank8BB != 0 {
		return EmptyBB, false
	}
	return b << 8, true
}

// ShiftSouth moves every square one rank down.
func (b Bitboard) ShiftSouth() (Bitboard, bool) {
	if b&Rank1BB != 0 {
		return EmptyBB, false
	}
	return b >> 8, true
}

// ShiftEast moves every square one file towards H.
func (b Bitboard) ShiftEast() (Bitboard, bool) {
	if b&FileHBB != 0 {
		return EmptyBB, false
	}
	return b << 1, true
}

// ShiftWest moves every square one file towards A.
func (b Bitboard) ShiftWest() (Bitboard, bool) {
	if b&FileABB != 0 {
		return EmptyBB, false
	}
	return b >> 1, true
}

// Reverse reverses the bits of the bitboard (A1 <-> H8).
func (b Bitboard) Reverse() Bitboard { return Bitboard(bits.Reverse64(uint64(b))) }

// String returns the 64-bit binary string representation (MSB=H8, LSB=A1).
func (b Bitboard) String() string {
	var sb strings.Builder
	for i := 63; i >= 0; i-- {
		if (uint64(b)>>i)&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Draw returns a string visually representing the bitboard on a chessboard grid.
func (b Bitboard) Draw() string {
	var sb strings.Builder
	sb.WriteString("\n  a b c d e f g h\n")
	for r := Rank8; r >= Rank1; r-- {
		sb.WriteString(fmt.Sprintf("%d ", r+1))
		for f := FileA; f <= FileH; f++ {
			if b.Occupied(NewSquare(f, r)) {
				sb.WriteString("X ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteString(fmt.Sprintf("%d\n", r+1))
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
