// Package book implements named opening lines and their exploration.
package book

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	_ "embed"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/0x5844/checkbit"
)

//go:embed lines.tsv
var lineData []byte

const (
	columnCode      = 0
	columnTitle     = 1
	columnMoves     = 2 // Coordinate notation, space separated
	expectedColumns = 3
)

// ErrNoOpenings is returned when no line in the data could be loaded.
var ErrNoOpenings = errors.New("no openings loaded")

var logger = log.New(os.Stderr, "book: ", log.LstdFlags)

// SetLogger replaces the logger that reports skipped lines.
func SetLogger(l *log.Logger) { logger = l }

// A Line is a named sequence of moves from the starting position.
type Line struct {
	code  string
	title string
	moves []checkbit.Move
	board *checkbit.Board
	side  checkbit.Color
}

// Code returns the Encyclopaedia of Chess Openings (ECO) code.
func (l *Line) Code() string { return l.code }

// Title returns the name of the line.
func (l *Line) Title() string { return l.title }

// Moves returns the moves defining the line.
func (l *Line) Moves() []checkbit.Move {
	m := make([]checkbit.Move, len(l.moves))
	copy(m, l.moves)
	return m
}

// Board returns the position at the end of the line and the side to move there.
func (l *Line) Board() (*checkbit.Board, checkbit.Color) {
	return l.board.Copy(), l.side
}

func (l *Line) String() string {
	return fmt.Sprintf("%s %s", l.code, l.title)
}

// Book is a tree of opening lines keyed by move. A loaded Book is safe for concurrent use.
type Book struct {
	root *node
}

// node represents a position within the opening tree.
type node struct {
	parent   *node
	children map[checkbit.Move]*node
	line     *Line           // Line ending at this exact position (if any)
	board    *checkbit.Board // Position after the move leading to this node
	side     checkbit.Color  // Side to move in board
}

func newNode(parent *node, b *checkbit.Board, side checkbit.Color) *node {
	return &node{parent: parent, children: make(map[checkbit.Move]*node), board: b, side: side}
}

// NewBook builds a Book from the embedded opening lines.
func NewBook() (*Book, error) {
	return Load(bytes.NewReader(lineData))
}

// Load builds a Book from tab separated rows of code, title and moves, after a header row.
// Rows that are malformed or contain a move the side to move cannot make are skipped with a warning.
func Load(r io.Reader) (*Book, error) {
	b := &Book{root: newNode(nil, checkbit.StartingBoard(), checkbit.White)}

	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read opening lines: %w", err)
	}

	for i, row := range records {
		if i == 0 {
			continue // Skip header row
		}
		if len(row) < expectedColumns {
			logger.Printf("warning: skipping record %d due to insufficient columns (%d)", i+1, len(row))
			continue
		}
		line := &Line{code: row[columnCode], title: row[columnTitle]}
		if line.moves, err = parseMoves(row[columnMoves]); err != nil {
			logger.Printf("warning: skipping %s: %v", line, err)
			continue
		}
		if err := b.insert(line); err != nil {
			logger.Printf("warning: skipping %s: %v", line, err)
		}
	}

	if len(b.root.children) == 0 {
		return nil, ErrNoOpenings
	}
	return b, nil
}

func parseMoves(s string) ([]checkbit.Move, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, errors.New("empty move list")
	}
	moves := make([]checkbit.Move, 0, len(fields))
	for _, f := range fields {
		m, err := checkbit.ParseMove(f)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// insert replays the line from the starting position and adds it to the tree.
// Nothing is added unless every move is available to the side to move.
func (b *Book) insert(l *Line) error {
	boards := make([]*checkbit.Board, len(l.moves))
	board, side := b.root.board, b.root.side
	for i, m := range l.moves {
		if !slices.Contains(board.PseudoMoves(side), m) {
			return fmt.Errorf("move %d (%s) is not available to %s in %s", i+1, m, side, board)
		}
		board = board.Copy()
		if err := board.ApplyMove(m.From, m.To); err != nil {
			return fmt.Errorf("move %d (%s): %w", i+1, m, err)
		}
		boards[i] = board
		side = side.Other()
	}

	current := b.root
	for i, m := range l.moves {
		child, ok := current.children[m]
		if !ok {
			child = newNode(current, boards[i], current.side.Other())
			current.children[m] = child
		}
		current = child
	}

	if current.line != nil {
		logger.Printf("warning: overwriting line %q with %q at the same position", current.line.title, l.title)
	}
	l.board, l.side = current.board, current.side
	current.line = l
	return nil
}

// Find returns the most specific line for the moves played. If no line is found, Find returns nil.
func (b *Book) Find(moves []checkbit.Move) *Line {
	for n := b.followPath(b.root, moves); n != nil; n = n.parent {
		if n.line != nil {
			return n.line
		}
	}
	return nil
}

// Possible returns the lines reachable after the moves given, ordered by code then title.
// If moves is empty or nil all lines are returned.
func (b *Book) Possible(moves []checkbit.Move) []*Line {
	var lines []*Line
	b.walk(b.followPath(b.root, moves), func(n *node) {
		if n.line != nil {
			lines = append(lines, n.line)
		}
	})
	slices.SortStableFunc(lines, func(a, b *Line) bool {
		if a.code != b.code {
			return a.code < b.code
		}
		return a.title < b.title
	})
	return lines
}

// Lookup returns the line with the given title, or nil.
func (b *Book) Lookup(title string) *Line {
	for _, l := range b.Possible(nil) {
		if l.title == title {
			return l
		}
	}
	return nil
}

func (b *Book) followPath(n *node, moves []checkbit.Move) *node {
	if len(moves) == 0 {
		return n
	}
	c, ok := n.children[moves[0]]
	if !ok {
		return n
	}
	return b.followPath(c, moves[1:])
}

// walk visits n and every node below it, children in move order.
func (b *Book) walk(n *node, visit func(*node)) {
	visit(n)
	keys := maps.Keys(n.children)
	slices.SortFunc(keys, moveLess)
	for _, m := range keys {
		b.walk(n.children[m], visit)
	}
}

func moveLess(a, b checkbit.Move) bool {
	if a.From != b.From {
		return a.From < b.From
	}
	return a.To < b.To
}
