package checkbit

// Color is the side a piece belongs to.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// PieceType is a colorless piece kind. The values double as indices into the board's piece sets.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// PieceTypes lists every piece type in the order pieces are looked up on a square.
var PieceTypes = [NumOfPieces]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	}
	return "NoPieceType"
}

// Piece packs a piece type and a color. The zero value is NoPiece.
type Piece uint8

const NoPiece Piece = 0

// NewPiece returns the piece of type pt and color c.
func NewPiece(pt PieceType, c Color) Piece {
	return Piece(uint8(c)*NumOfPieces + uint8(pt) + 1)
}

// Type returns the piece type. The result is meaningless for NoPiece.
func (p Piece) Type() PieceType { return PieceType((p - 1) % NumOfPieces) }

// Color returns the piece color. The result is meaningless for NoPiece.
func (p Piece) Color() Color { return Color((p - 1) / NumOfPieces) }

var (
	pieceGlyphs = [2][NumOfPieces]string{
		{"♙", "♘", "♗", "♖", "♕", "♔"},
		{"♟", "♞", "♝", "♜", "♛", "♚"},
	}
	fenChars = [2][NumOfPieces]string{
		{"P", "N", "B", "R", "Q", "K"},
		{"p", "n", "b", "r", "q", "k"},
	}
)

// String returns the Unicode chess glyph for the piece.
func (p Piece) String() string {
	if p == NoPiece {
		return " "
	}
	return pieceGlyphs[p.Color()][p.Type()]
}

// getFENChar returns the FEN letter for the piece (upper case for White).
func (p Piece) getFENChar() string {
	if p == NoPiece {
		return ""
	}
	return fenChars[p.Color()][p.Type()]
}
