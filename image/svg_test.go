package image_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/0x5844/checkbit"
	"github.com/0x5844/checkbit/image"
)

func TestSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := image.SVG(&buf, checkbit.StartingBoard()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "<svg") || !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Fatalf("not an SVG document:\n%s", out)
	}
	if got := strings.Count(out, "<rect"); got != 64 {
		t.Fatalf("expected 64 squares but got %d", got)
	}
	for _, glyph := range []string{"♔", "♕", "♙", "♚", "♛", "♟"} {
		if !strings.Contains(out, glyph) {
			t.Errorf("missing %s", glyph)
		}
	}
	// a8 is light and sits in the top left corner.
	if !strings.Contains(out, `<rect x="0" y="0" width="45" height="45" style="fill:#f0d9b5"`) {
		t.Fatalf("unexpected top left square:\n%s", out)
	}
}

func TestSVGHighlightAndPerspective(t *testing.T) {
	b := checkbit.NewBoard()
	b.PlacePiece(checkbit.Rook, checkbit.White, checkbit.A8)
	moves := b.Moves(checkbit.A8)

	var white, black bytes.Buffer
	if err := image.SVG(&white, b, image.Highlight(moves, "#aaaa33"), image.Highlight(checkbit.SquareBB(checkbit.A8), "#ff0000")); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(white.String(), "#aaaa33"); got != moves.PopCount() {
		t.Fatalf("expected %d highlighted squares but got %d", moves.PopCount(), got)
	}
	if !strings.Contains(white.String(), `<rect x="0" y="0" width="45" height="45" style="fill:#ff0000"`) {
		t.Fatalf("a8 should be top left from White's side")
	}

	opts := []image.Option{image.Highlight(checkbit.SquareBB(checkbit.A8), "#ff0000"), image.Perspective(checkbit.Black), image.Coordinates(false)}
	if err := image.SVG(&black, b, opts...); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(black.String(), `<rect x="315" y="315" width="45" height="45" style="fill:#ff0000"`) {
		t.Fatalf("a8 should be bottom right from Black's side")
	}
	if got := strings.Count(black.String(), "<text"); got != 1 {
		t.Fatalf("expected only the rook glyph without coordinates but got %d text elements", got)
	}
}

func TestSVGSquareColors(t *testing.T) {
	var buf bytes.Buffer
	if err := image.SVG(&buf, checkbit.NewBoard(), image.SquareColors("#ffffff", "#000000")); err != nil {
		t.Fatal(err)
	}
	for _, fill := range []string{"fill:#ffffff", "fill:#000000"} {
		if got := strings.Count(buf.String(), `style="`+fill+`"`); got != 32 {
			t.Fatalf("expected 32 squares with %s but got %d", fill, got)
		}
	}
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestSVGWriteError(t *testing.T) {
	if err := image.SVG(failingWriter{}, checkbit.StartingBoard()); !errors.Is(err, errWrite) {
		t.Fatalf("got %v want %v", err, errWrite)
	}
}
