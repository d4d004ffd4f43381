// Package image renders boards as SVG.
package image

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/0x5844/checkbit"
)

const (
	squareSize = 45
	boardSize  = squareSize * checkbit.NumOfFiles
)

// An Option changes how SVG draws the board.
type Option func(*encoder)

type highlight struct {
	squares checkbit.Bitboard
	fill    string
}

type encoder struct {
	light, dark string
	perspective checkbit.Color
	coordinates bool
	highlights  []highlight
}

// SquareColors sets the fill of light and dark squares, e.g. "#f0d9b5".
func SquareColors(light, dark string) Option {
	return func(e *encoder) {
		e.light, e.dark = light, dark
	}
}

// Perspective sets the color drawn at the bottom of the board.
func Perspective(c checkbit.Color) Option {
	return func(e *encoder) { e.perspective = c }
}

// Coordinates toggles the file and rank labels.
func Coordinates(on bool) Option {
	return func(e *encoder) { e.coordinates = on }
}

// Highlight fills every square in squares, such as the result of Board.Moves.
// Later highlights are drawn over earlier ones.
func Highlight(squares checkbit.Bitboard, fill string) Option {
	return func(e *encoder) {
		e.highlights = append(e.highlights, highlight{squares: squares, fill: fill})
	}
}

// SVG writes b to w as an SVG image.
func SVG(w io.Writer, b *checkbit.Board, opts ...Option) error {
	e := &encoder{light: "#f0d9b5", dark: "#b58863", coordinates: true}
	for _, opt := range opts {
		opt(e)
	}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(boardSize, boardSize)
	for row := 0; row < checkbit.NumOfRanks; row++ {
		for col := 0; col < checkbit.NumOfFiles; col++ {
			e.drawSquare(canvas, b, e.squareAt(row, col), col*squareSize, row*squareSize)
		}
	}
	canvas.End()
	return ew.err
}

// squareAt maps a row and column, counted from the top left corner, to a square.
func (e *encoder) squareAt(row, col int) checkbit.Square {
	f, r := checkbit.File(col), checkbit.Rank(checkbit.NumOfRanks-1-row)
	if e.perspective == checkbit.Black {
		f, r = checkbit.File(checkbit.NumOfFiles-1-col), checkbit.Rank(row)
	}
	return checkbit.NewSquare(f, r)
}

func (e *encoder) drawSquare(canvas *svg.SVG, b *checkbit.Board, sq checkbit.Square, x, y int) {
	fill, text := e.light, e.dark
	if (int(sq.File())+int(sq.Rank()))%2 == 0 {
		fill, text = e.dark, e.light
	}
	for _, h := range e.highlights {
		if h.squares.Occupied(sq) {
			fill = h.fill
		}
	}
	canvas.Rect(x, y, squareSize, squareSize, "fill:"+fill)

	if p := b.Piece(sq); p != checkbit.NoPiece {
		canvas.Text(x+squareSize/2, y+squareSize*4/5, p.String(), "text-anchor:middle;font-size:36px")
	}
	if !e.coordinates {
		return
	}
	bottom, left := e.squareAt(checkbit.NumOfRanks-1, 0), e.squareAt(0, 0)
	if sq.Rank() == bottom.Rank() {
		canvas.Text(x+squareSize-4, y+squareSize-3, sq.File().String(), "text-anchor:end;font-size:10px;fill:"+text)
	}
	if sq.File() == left.File() {
		canvas.Text(x+3, y+11, sq.Rank().String(), "font-size:10px;fill:"+text)
	}
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
