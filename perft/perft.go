// Package perft counts the leaf positions of the pseudo-legal move tree.
package perft

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/0x5844/checkbit"
)

// Perft returns the number of positions reached after depth plies, side moving first
// and the sides alternating. Every child position is a Copy advanced with ApplyMove.
func Perft(b *checkbit.Board, side checkbit.Color, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.PseudoMoves(side)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += Perft(child(b, m), side.Other(), depth-1)
	}
	return nodes
}

// Divide returns the Perft count below each root move.
func Divide(b *checkbit.Board, side checkbit.Color, depth int) map[checkbit.Move]uint64 {
	result := make(map[checkbit.Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range b.PseudoMoves(side) {
		result[m] = Perft(child(b, m), side.Other(), depth-1)
	}
	return result
}

// ParallelPerft spreads the root moves over workers goroutines, each working on its own copies.
// workers < 1 uses GOMAXPROCS. Cancelling ctx stops handing out root moves and returns ctx.Err().
func ParallelPerft(ctx context.Context, b *checkbit.Board, side checkbit.Color, depth, workers int) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if depth <= 1 {
		return Perft(b, side, depth), nil
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	root := b.Copy()
	jobs := make(chan checkbit.Move)
	var (
		total atomic.Uint64
		wg    sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range jobs {
				if ctx.Err() != nil {
					continue
				}
				total.Add(Perft(child(root, m), side.Other(), depth-1))
			}
		}()
	}

feed:
	for _, m := range root.PseudoMoves(side) {
		select {
		case jobs <- m:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return total.Load(), nil
}

// child returns a copy of b with m played. m must come from PseudoMoves.
func child(b *checkbit.Board, m checkbit.Move) *checkbit.Board {
	next := b.Copy()
	if err := next.ApplyMove(m.From, m.To); err != nil {
		panic(fmt.Sprintf("perft: generated move %s rejected: %v", m, err))
	}
	return next
}
