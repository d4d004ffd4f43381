package checkbit

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// Standard starting arrangement, one bitboard per piece type.
var startingPieces = [NumOfColors][NumOfPieces]Bitboard{
	White: {
		Pawn:   Rank2BB,
		Knight: 0x0000000000000042,
		Bishop: 0x0000000000000024,
		Rook:   0x0000000000000081,
		Queen:  0x0000000000000008,
		King:   0x0000000000000010,
	},
	Black: {
		Pawn:   Rank7BB,
		Knight: 0x4200000000000000,
		Bishop: 0x2400000000000000,
		Rook:   0x8100000000000000,
		Queen:  0x0800000000000000,
		King:   0x1000000000000000,
	},
}

// A Board holds one bitboard per piece type and color plus the en passant target.
//
// A Board has a single writer. Copy it to explore moves on other goroutines.
type Board struct {
	pieces [NumOfColors][NumOfPieces]Bitboard

	// Convenience Bitboards
	occupied [NumOfColors]Bitboard // Combined pieces per color

	// Square passed over by the last two-square pawn advance, or NoSquare.
	enPassant Square
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{enPassant: NoSquare}
}

// StartingBoard returns a board with the standard 32-piece starting arrangement.
func StartingBoard() *Board {
	b := &Board{pieces: startingPieces, enPassant: NoSquare}
	b.calcConvenienceBBs()
	return b
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	cp := *b
	return &cp
}

// PieceAt returns the type and color of the piece on sq; ok is false for an empty square.
// White occupancy is tested before Black, then piece types in Pawn..King order.
func (b *Board) PieceAt(sq Square) (pt PieceType, c Color, ok bool) {
	sqBB := SquareBB(sq)
	switch {
	case b.occupied[White]&sqBB != 0:
		c = White
	case b.occupied[Black]&sqBB != 0:
		c = Black
	default:
		return 0, 0, false
	}
	for _, pt := range PieceTypes {
		if b.pieces[c][pt]&sqBB != 0 {
			return pt, c, true
		}
	}
	return 0, 0, false
}

// Piece returns the piece located on sq, or NoPiece.
func (b *Board) Piece(sq Square) Piece {
	pt, c, ok := b.PieceAt(sq)
	if !ok {
		return NoPiece
	}
	return NewPiece(pt, c)
}

// Pieces returns the bitboard of pieces of type pt and color c.
func (b *Board) Pieces(pt PieceType, c Color) Bitboard { return b.pieces[c][pt] }

// Occupancy returns every square holding a piece of color c.
func (b *Board) Occupancy(c Color) Bitboard { return b.occupied[c] }

// TotalOccupancy returns every occupied square.
func (b *Board) TotalOccupancy() Bitboard { return b.occupied[White] | b.occupied[Black] }

// EnPassant returns the current en passant target square, if any.
func (b *Board) EnPassant() (Square, bool) {
	return b.enPassant, b.enPassant != NoSquare
}

// PlacePiece puts a piece on sq without clearing anything else.
// It is for building positions only; use ApplyMove to play moves.
func (b *Board) PlacePiece(pt PieceType, c Color, sq Square) {
	b.pieces[c][pt] = b.pieces[c][pt].Set(sq)
	b.calcConvenienceBBs()
}

// SetEnPassant sets the en passant target directly, for positions read from outside.
// NoSquare clears it; a square off rank 3 and rank 6 is rejected.
func (b *Board) SetEnPassant(sq Square) error {
	if !validEnPassant(sq) {
		return fmt.Errorf("checkbit: invalid en passant square %d", sq)
	}
	b.enPassant = sq
	return nil
}

// ApplyMove moves the piece on from to to, removing any enemy piece captured on to or by en passant,
// and recomputes the en passant target. The move is not checked against Moves; see ApplyPseudoLegalMove.
func (b *Board) ApplyMove(from, to Square) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("%w: square out of range (%d -> %d)", ErrInvalidMove, from, to)
	}
	pt, c, ok := b.PieceAt(from)
	if !ok {
		return fmt.Errorf("%w: no piece on %s", ErrInvalidMove, from)
	}
	if b.occupied[c].Occupied(to) {
		return fmt.Errorf("%w: %s %s on %s cannot move onto its own piece on %s", ErrInvalidMove, c, pt, from, to)
	}
	enemy := c.Other()

	// 1. Clear the origin square for the moving piece
	b.pieces[c][pt] = b.pieces[c][pt].Clear(from)

	// 2. Handle capture: clear whatever enemy piece stands on the destination
	if b.occupied[enemy].Occupied(to) {
		for _, captured := range PieceTypes {
			b.pieces[enemy][captured] = b.pieces[enemy][captured].Clear(to)
		}
	}

	// 3. En passant: the captured pawn stands behind the target square, not on it
	if pt == Pawn && to == b.enPassant && diagonallyAdjacent(from, to) {
		b.pieces[enemy][Pawn] = b.pieces[enemy][Pawn].Clear(pawnBehind(to, c))
	}

	// 4. Place the moving piece on the destination
	b.pieces[c][pt] = b.pieces[c][pt].Set(to)

	// 5. Only a double push from the home rank leaves an en passant target
	b.enPassant = NoSquare
	if pt == Pawn && from.Rank() == pawnHomeRank(c) && abs(int(to)-int(from)) == 2*NumOfFiles {
		b.enPassant = (from + to) / 2
	}

	b.calcConvenienceBBs()
	return nil
}

// ApplyPseudoLegalMove applies the move only if to is among Moves(from).
func (b *Board) ApplyPseudoLegalMove(from, to Square) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("%w: square out of range (%d -> %d)", ErrInvalidMove, from, to)
	}
	if !b.Moves(from).Occupied(to) {
		return fmt.Errorf("%w: %s%s is not a pseudo-legal move", ErrInvalidMove, from, to)
	}
	return b.ApplyMove(from, to)
}

// calcConvenienceBBs refreshes the combined per-color bitboards.
func (b *Board) calcConvenienceBBs() {
	for c := White; c <= Black; c++ {
		all := EmptyBB
		for _, bb := range b.pieces[c] {
			all |= bb
		}
		b.occupied[c] = all
	}
}

// pawnHomeRank returns the rank pawns of color c start on.
func pawnHomeRank(c Color) Rank {
	if c == White {
		return Rank2
	}
	return Rank7
}

// pawnBehind returns the square one rank behind sq from the point of view of color c.
func pawnBehind(sq Square, c Color) Square {
	if c == White {
		return sq - NumOfFiles
	}
	return sq + NumOfFiles
}

func validEnPassant(sq Square) bool {
	return sq == NoSquare || (sq.Valid() && (sq.Rank() == Rank3 || sq.Rank() == Rank6))
}

func diagonallyAdjacent(a, b Square) bool {
	return abs(int(a.File())-int(b.File())) == 1 && abs(int(a.Rank())-int(b.Rank())) == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// --- FEN and Debugging ---

// Draw returns visual representation of the board useful for debugging.
func (b *Board) Draw() string {
	var sb strings.Builder
	sb.WriteString("\n  a b c d e f g h\n")
	for r := Rank8; r >= Rank1; r-- {
		sb.WriteString(r.String() + " ")
		for f := FileA; f <= FileH; f++ {
			p := b.Piece(NewSquare(f, r))
			if p == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteString(r.String() + "\n")
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// String implements the fmt.Stringer interface and returns
// a string in the FEN board format: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR
func (b *Board) String() string {
	var fen strings.Builder
	for r := Rank8; r >= Rank1; r-- {
		emptyCount := 0
		for f := FileA; f <= FileH; f++ {
			p := b.Piece(NewSquare(f, r))
			if p == NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				fen.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			fen.WriteString(p.getFENChar())
		}
		if emptyCount > 0 {
			fen.WriteString(strconv.Itoa(emptyCount))
		}
		if r != Rank1 {
			fen.WriteString("/")
		}
	}
	return fen.String()
}

// --- Serialization ---

const snapshotSize = NumOfColors*NumOfPieces*8 + 1

// MarshalBinary implements the encoding.BinaryMarshaler interface.
// It encodes the 12 piece bitboards (White then Black, Pawn..King) big-endian,
// followed by one byte holding the en passant square (0xFF for none).
func (b *Board) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(snapshotSize)
	if err := binary.Write(buf, binary.BigEndian, b.pieces); err != nil {
		return nil, err
	}
	buf.WriteByte(byte(b.enPassant))
	return buf.Bytes(), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
// Snapshots with overlapping pieces or an impossible en passant square are rejected.
func (b *Board) UnmarshalBinary(data []byte) error {
	if len(data) != snapshotSize {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSnapshot, snapshotSize, len(data))
	}
	var nb Board
	seen := EmptyBB
	for c := White; c <= Black; c++ {
		for _, pt := range PieceTypes {
			off := (int(c)*NumOfPieces + int(pt)) * 8
			bb := Bitboard(binary.BigEndian.Uint64(data[off : off+8]))
			if bb&seen != 0 {
				return fmt.Errorf("%w: %s %s overlaps another piece", ErrInvalidSnapshot, c, pt)
			}
			seen |= bb
			nb.pieces[c][pt] = bb
		}
	}
	nb.enPassant = Square(int8(data[snapshotSize-1]))
	if !validEnPassant(nb.enPassant) {
		return fmt.Errorf("%w: en passant square %d", ErrInvalidSnapshot, data[snapshotSize-1])
	}
	nb.calcConvenienceBBs()
	*b = nb
	return nil
}
