package perft_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/0x5844/checkbit"
	"github.com/0x5844/checkbit/perft"
)

func TestFromFENStartPosition(t *testing.T) {
	b, side, err := perft.FromFEN(perft.StartFEN)
	if err != nil {
		t.Fatal(err)
	}
	if side != checkbit.White {
		t.Fatalf("side to move: got %s want white", side)
	}
	if *b != *checkbit.StartingBoard() {
		t.Fatalf("board mismatch:%s", b.Draw())
	}
}

func TestFromFENEnPassant(t *testing.T) {
	b, side, err := perft.FromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if err != nil {
		t.Fatal(err)
	}
	want := checkbit.StartingBoard()
	if err := want.ApplyMove(checkbit.E2, checkbit.E4); err != nil {
		t.Fatal(err)
	}
	if side != checkbit.Black || *b != *want {
		t.Fatalf("got side %s board:%s want black board:%s", side, b.Draw(), want.Draw())
	}
}

func TestFromFENShortForm(t *testing.T) {
	b, side, err := perft.FromFEN("4k3/8/8/8/8/8/8/4K3 b")
	if err != nil {
		t.Fatal(err)
	}
	if side != checkbit.Black || b.TotalOccupancy().PopCount() != 2 {
		t.Fatalf("got side %s board:%s", side, b.Draw())
	}
}

func TestFromFENErrors(t *testing.T) {
	for _, fen := range []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - e4 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - z9 0 1",
		"rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w - - 0 1",
		"rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		"rnbqkbnr/pppppppp/0/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
	} {
		if _, _, err := perft.FromFEN(fen); !errors.Is(err, perft.ErrBadFEN) {
			t.Errorf("FromFEN(%q): got %v want ErrBadFEN", fen, err)
		}
	}
}

func TestFromFENKinglessBoard(t *testing.T) {
	b, _, err := perft.FromFEN("8/4p3/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("a board without a black king is still a board: %v", err)
	}
	if got := b.TotalOccupancy().PopCount(); got != 2 {
		t.Fatalf("expected 2 pieces but got %d", got)
	}
}

func TestOracleRejectsUnsupportedPositions(t *testing.T) {
	tests := []struct {
		name   string
		pieces []placement
	}{
		{"black king missing", []placement{
			{checkbit.King, checkbit.White, checkbit.E1}, {checkbit.Pawn, checkbit.Black, checkbit.E7},
		}},
		{"no kings", []placement{
			{checkbit.Rook, checkbit.White, checkbit.A1}, {checkbit.Rook, checkbit.Black, checkbit.H8},
		}},
		{"two white kings", []placement{
			{checkbit.King, checkbit.White, checkbit.E1}, {checkbit.King, checkbit.White, checkbit.A1},
			{checkbit.King, checkbit.Black, checkbit.E8},
		}},
		{"pawn on the last rank", []placement{
			{checkbit.King, checkbit.White, checkbit.E1}, {checkbit.King, checkbit.Black, checkbit.A8},
			{checkbit.Pawn, checkbit.White, checkbit.E8},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardWith(tt.pieces...)
			if _, err := perft.LegalPerft(b, checkbit.White, 2); !errors.Is(err, perft.ErrNoOracle) {
				t.Fatalf("LegalPerft: got %v want ErrNoOracle", err)
			}
			if _, err := perft.CrossCheck(b, checkbit.White); !errors.Is(err, perft.ErrNoOracle) {
				t.Fatalf("CrossCheck: got %v want ErrNoOracle", err)
			}
		})
	}
}

func TestToFEN(t *testing.T) {
	b := checkbit.StartingBoard()
	if got, want := perft.ToFEN(b, checkbit.White), "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"; got != want {
		t.Fatalf("ToFEN: got %q want %q", got, want)
	}
	if err := b.ApplyMove(checkbit.D2, checkbit.D4); err != nil {
		t.Fatal(err)
	}
	fen := perft.ToFEN(b, checkbit.Black)
	if want := "rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b - d3 0 1"; fen != want {
		t.Fatalf("ToFEN: got %q want %q", fen, want)
	}
	back, side, err := perft.FromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	if side != checkbit.Black || *back != *b {
		t.Fatalf("FEN round trip lost state:%s", back.Draw())
	}
}

func TestLegalPerftAgreesAtShallowDepth(t *testing.T) {
	b := checkbit.StartingBoard()
	for depth := 1; depth <= 3; depth++ {
		legal, err := perft.LegalPerft(b, checkbit.White, depth)
		if err != nil {
			t.Fatal(err)
		}
		if pseudo := perft.Perft(b, checkbit.White, depth); legal != pseudo {
			t.Fatalf("depth%d: legal %d pseudo %d", depth, legal, pseudo)
		}
	}
}

func TestCrossCheckPinnedKnight(t *testing.T) {
	b := boardWith(
		placement{checkbit.King, checkbit.White, checkbit.E1},
		placement{checkbit.Knight, checkbit.White, checkbit.E2},
		placement{checkbit.Rook, checkbit.Black, checkbit.E8},
		placement{checkbit.King, checkbit.Black, checkbit.A8},
	)
	r, err := perft.CrossCheck(b, checkbit.White)
	if err != nil {
		t.Fatal(err)
	}
	if !r.OK() {
		t.Fatalf("missing legal moves: %v", r.Missing)
	}
	if len(r.Extra) != 6 {
		t.Fatalf("extra: got %v want the 6 knight moves", r.Extra)
	}
	for _, m := range r.Extra {
		if m.From != checkbit.E2 {
			t.Fatalf("unexpected extra move %s", m)
		}
	}
}

// Random games never produce a legal move the core misses.
func TestCrossCheckRandomGames(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for game := 0; game < 10; game++ {
		b := checkbit.StartingBoard()
		side := checkbit.White
		for ply := 0; ply < 60; ply++ {
			moves := b.PseudoMoves(side)
			if len(moves) == 0 || attacksKing(b, side, moves) || pawnOnLastRank(b) {
				break
			}
			r, err := perft.CrossCheck(b, side)
			if err != nil {
				t.Fatal(err)
			}
			if !r.OK() {
				t.Fatalf("game %d ply %d (%s): missing %v", game, ply, perft.ToFEN(b, side), r.Missing)
			}
			m := moves[rng.Intn(len(moves))]
			if err := b.ApplyMove(m.From, m.To); err != nil {
				t.Fatal(err)
			}
			side = side.Other()
		}
	}
}

// attacksKing reports whether side could capture the enemy king, i.e. the position is not legal.
func attacksKing(b *checkbit.Board, side checkbit.Color, moves []checkbit.Move) bool {
	king := b.Pieces(checkbit.King, side.Other())
	for _, m := range moves {
		if king.Occupied(m.To) {
			return true
		}
	}
	return false
}

func pawnOnLastRank(b *checkbit.Board) bool {
	pawns := b.Pieces(checkbit.Pawn, checkbit.White) | b.Pieces(checkbit.Pawn, checkbit.Black)
	return pawns&(checkbit.Rank1BB|checkbit.Rank8BB) != 0
}
