package perft

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"

	"github.com/0x5844/checkbit"
)

// ErrBadFEN is returned for a FEN string that does not describe a position.
var ErrBadFEN = errors.New("bad FEN")

// ErrNoOracle is returned when dragontoothmg cannot judge a position: each side needs exactly
// one king and no pawn may stand on the first or last rank.
var ErrNoOracle = errors.New("position not supported by the legal move oracle")

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FromFEN builds a Board from a FEN string and returns it with the side to move.
// Castling rights and move counters are read but not kept.
func FromFEN(fen string) (*checkbit.Board, checkbit.Color, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, checkbit.White, fmt.Errorf("%w: %q: expected at least placement and side to move", ErrBadFEN, fen)
	}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != checkbit.NumOfRanks {
		return nil, checkbit.White, fmt.Errorf("%w: %q: expected %d ranks, got %d", ErrBadFEN, fen, checkbit.NumOfRanks, len(ranks))
	}
	for i, rank := range ranks {
		if err := checkRank(rank); err != nil {
			return nil, checkbit.White, fmt.Errorf("%w: %q: rank %d: %v", ErrBadFEN, fen, checkbit.NumOfRanks-i, err)
		}
	}

	var side checkbit.Color
	switch fields[1] {
	case "w":
		side = checkbit.White
	case "b":
		side = checkbit.Black
	default:
		return nil, checkbit.White, fmt.Errorf("%w: %q: side to move %q", ErrBadFEN, fen, fields[1])
	}

	// Fill in the optional trailing fields with their defaults.
	defaults := []string{"-", "-", "0", "1"}
	for len(fields) < 6 {
		fields = append(fields, defaults[len(fields)-2])
	}

	ep := checkbit.NoSquare
	if fields[3] != "-" {
		sq, err := checkbit.ParseSquare(fields[3])
		if err != nil || (sq.Rank() != checkbit.Rank3 && sq.Rank() != checkbit.Rank6) {
			return nil, checkbit.White, fmt.Errorf("%w: %q: en passant square %q", ErrBadFEN, fen, fields[3])
		}
		ep = sq
	}

	dt, err := parseFen(strings.Join(fields, " "))
	if err != nil {
		return nil, checkbit.White, fmt.Errorf("%w: %q: %v", ErrBadFEN, fen, err)
	}

	b := checkbit.NewBoard()
	place(b, checkbit.White, dt.White)
	place(b, checkbit.Black, dt.Black)
	if err := b.SetEnPassant(ep); err != nil {
		return nil, checkbit.White, fmt.Errorf("%w: %q: %v", ErrBadFEN, fen, err)
	}
	return b, side, nil
}

// ToFEN writes b as a FEN string with side to move. Castling is always "-".
func ToFEN(b *checkbit.Board, side checkbit.Color) string {
	stm := "w"
	if side == checkbit.Black {
		stm = "b"
	}
	ep := "-"
	if sq, ok := b.EnPassant(); ok {
		ep = sq.String()
	}
	return fmt.Sprintf("%s %s - %s 0 1", b, stm, ep)
}

// checkRank accepts one FEN rank: piece letters and digits covering exactly eight squares.
func checkRank(rank string) error {
	squares := 0
	for _, ch := range rank {
		switch {
		case ch >= '1' && ch <= '8':
			squares += int(ch - '0')
		case strings.ContainsRune("pnbrqkPNBRQK", ch):
			squares++
		default:
			return fmt.Errorf("unexpected %q", ch)
		}
	}
	if squares != checkbit.NumOfFiles {
		return fmt.Errorf("%q covers %d squares", rank, squares)
	}
	return nil
}

// parseFen wraps dragontoothmg.ParseFen, which panics on malformed input.
func parseFen(fen string) (b dragontoothmg.Board, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return dragontoothmg.ParseFen(fen), nil
}

func place(b *checkbit.Board, c checkbit.Color, bbs dragontoothmg.Bitboards) {
	sets := [checkbit.NumOfPieces]uint64{
		checkbit.Pawn:   bbs.Pawns,
		checkbit.Knight: bbs.Knights,
		checkbit.Bishop: bbs.Bishops,
		checkbit.Rook:   bbs.Rooks,
		checkbit.Queen:  bbs.Queens,
		checkbit.King:   bbs.Kings,
	}
	for pt, bb := range sets {
		for _, sq := range checkbit.Bitboard(bb).Scan() {
			b.PlacePiece(checkbit.PieceType(pt), c, sq)
		}
	}
}

// oracle converts b into a dragontoothmg board.
func oracle(b *checkbit.Board, side checkbit.Color) (dragontoothmg.Board, error) {
	for c := checkbit.White; c <= checkbit.Black; c++ {
		if n := b.Pieces(checkbit.King, c).PopCount(); n != 1 {
			return dragontoothmg.Board{}, fmt.Errorf("%w: %s has %d kings", ErrNoOracle, c, n)
		}
	}
	pawns := b.Pieces(checkbit.Pawn, checkbit.White) | b.Pieces(checkbit.Pawn, checkbit.Black)
	if pawns&(checkbit.Rank1BB|checkbit.Rank8BB) != 0 {
		return dragontoothmg.Board{}, fmt.Errorf("%w: pawn on the first or last rank", ErrNoOracle)
	}
	return parseFen(ToFEN(b, side))
}

// LegalPerft counts positions with dragontoothmg's legal move generator. Each promotion
// choice is a separate move there.
func LegalPerft(b *checkbit.Board, side checkbit.Color, depth int) (uint64, error) {
	dt, err := oracle(b, side)
	if err != nil {
		return 0, err
	}
	return legalPerft(&dt, depth), nil
}

func legalPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += legalPerft(b, depth-1)
		unapply()
	}
	return nodes
}

// Report compares the core's pseudo-legal moves with the legal moves of one position.
type Report struct {
	// Missing holds legal moves the core did not generate. Any entry is a move generation bug.
	Missing []checkbit.Move
	// Extra holds pseudo-legal moves that are not legal, e.g. moves leaving the king in check.
	Extra []checkbit.Move
}

// OK reports whether every legal move was generated.
func (r Report) OK() bool { return len(r.Missing) == 0 }

// CrossCheck compares b.PseudoMoves(side) with dragontoothmg's legal moves by (from, to).
func CrossCheck(b *checkbit.Board, side checkbit.Color) (Report, error) {
	dt, err := oracle(b, side)
	if err != nil {
		return Report{}, err
	}
	legal := make(map[checkbit.Move]bool)
	for _, m := range dt.GenerateLegalMoves() {
		legal[checkbit.Move{From: checkbit.Square(m.From()), To: checkbit.Square(m.To())}] = true
	}

	var r Report
	pseudo := make(map[checkbit.Move]bool)
	for _, m := range b.PseudoMoves(side) {
		pseudo[m] = true
		if !legal[m] {
			r.Extra = append(r.Extra, m)
		}
	}
	for m := range legal {
		if !pseudo[m] {
			r.Missing = append(r.Missing, m)
		}
	}
	slices.SortFunc(r.Missing, func(x, y checkbit.Move) bool {
		if x.From != y.From {
			return x.From < y.From
		}
		return x.To < y.To
	})
	return r, nil
}
