// Command perft counts pseudo-legal move tree leaves from a position.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/0x5844/checkbit"
	"github.com/0x5844/checkbit/book"
	"github.com/0x5844/checkbit/image"
	"github.com/0x5844/checkbit/perft"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("perft: ")

	// Flags (env fallbacks).
	depth := flag.Int("depth", getenvInt("CHECKBIT_DEPTH", 0), "perft depth (required)")
	fen := flag.String("fen", getenv("CHECKBIT_FEN", perft.StartFEN), "FEN string (defaults to initial position)")
	line := flag.String("line", getenv("CHECKBIT_LINE", ""), "start from the end of the named opening line instead of -fen")
	divide := flag.Bool("divide", getenb("CHECKBIT_DIVIDE", false), "print per-move node counts at root")
	workers := flag.Int("workers", getenvInt("CHECKBIT_WORKERS", 1), "goroutines splitting the root moves (0 uses GOMAXPROCS)")
	verify := flag.Bool("verify", getenb("CHECKBIT_VERIFY", false), "compare root moves and node count with dragontoothmg's legal generator")
	svgPath := flag.String("svg", getenv("CHECKBIT_SVG", ""), "write the position as SVG with the side to move's destinations highlighted")
	label := flag.String("label", getenv("CHECKBIT_LABEL", ""), "optional label prefix for one-line output")
	repeat := flag.Int("repeat", getenvInt("CHECKBIT_REPEAT", 1), "repeat perft N times and report aggregate (for steadier timings)")
	flag.Parse()

	if *depth <= 0 {
		log.Fatal("-depth must be > 0")
	}

	board, side, err := position(*fen, *line)
	if err != nil {
		log.Fatal(err)
	}

	if *svgPath != "" {
		fatalIf(writeSVG(*svgPath, board, side), "svg")
	}

	if *verify {
		if !verifyPosition(board, side, *depth) {
			os.Exit(1)
		}
		return
	}

	// Optional divide output
	if *divide {
		div := perft.Divide(board, side, *depth)
		moves := maps.Keys(div)
		// Sort moves for stable output
		slices.SortFunc(moves, func(a, b checkbit.Move) bool { return a.String() < b.String() })
		var sum uint64
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, div[m])
			sum += div[m]
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Timing loop
	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		if *workers == 1 {
			totalNodes += perft.Perft(board, side, *depth)
			continue
		}
		nodes, err := perft.ParallelPerft(ctx, board, side, *depth, *workers)
		if err != nil {
			log.Fatalf("interrupted: %v", err)
		}
		totalNodes += nodes
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
}

// position returns the starting board: the end of a book line when one is named, otherwise the FEN.
func position(fen, line string) (*checkbit.Board, checkbit.Color, error) {
	if line == "" {
		return perft.FromFEN(fen)
	}
	bk, err := book.NewBook()
	if err != nil {
		return nil, checkbit.White, fmt.Errorf("book: %w", err)
	}
	l := bk.Lookup(line)
	if l == nil {
		return nil, checkbit.White, fmt.Errorf("unknown opening line %q", line)
	}
	b, side := l.Board()
	return b, side, nil
}

func verifyPosition(b *checkbit.Board, side checkbit.Color, depth int) bool {
	r, err := perft.CrossCheck(b, side)
	fatalIf(err, "cross-check")
	for _, m := range r.Missing {
		fmt.Printf("missing: %s\n", m)
	}
	for _, m := range r.Extra {
		fmt.Printf("extra: %s\n", m)
	}

	legal, err := perft.LegalPerft(b, side, depth)
	fatalIf(err, "legal perft")
	pseudo := perft.Perft(b, side, depth)
	fmt.Printf("%s\npseudo-legal: %d\nlegal: %d\n", perft.ToFEN(b, side), pseudo, legal)
	return r.OK()
}

func writeSVG(path string, b *checkbit.Board, side checkbit.Color) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	var targets checkbit.Bitboard
	for _, m := range b.PseudoMoves(side) {
		targets = targets.Set(m.To)
	}
	if err := image.SVG(f, b, image.Perspective(side), image.Highlight(targets, "#cdd26a")); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			log.Fatalf("%s: %v", key, err)
		}
		return n
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func fatalIf(err error, label string) {
	if err != nil {
		log.Fatalf("%s: %v", label, err)
	}
}
