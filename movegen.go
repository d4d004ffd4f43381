package checkbit

// Moves returns the pseudo-legal destinations of the piece on sq: geometry, blocking and
// en passant are honoured, king safety is not. An empty square has no moves.
func (b *Board) Moves(sq Square) Bitboard {
	pt, c, ok := b.PieceAt(sq)
	if !ok {
		return EmptyBB
	}
	var moves Bitboard
	switch pt {
	case Knight:
		moves = KnightAttacks(sq)
	case King:
		moves = KingAttacks(sq)
	case Pawn:
		moves = b.pawnMoves(sq, c)
	case Bishop:
		moves = b.bishopMoves(sq, c)
	case Rook:
		moves = b.rookMoves(sq)
	case Queen:
		moves = b.bishopMoves(sq, c) | b.rookMoves(sq)
	}
	// Remove moves that would capture own pieces
	return moves &^ b.occupied[c]
}

// PseudoMoves lists every (from, to) pair available to color c, origins in ascending order.
func (b *Board) PseudoMoves(c Color) []Move {
	var moves []Move
	for pieces := b.occupied[c]; pieces != EmptyBB; {
		from, next, _ := pieces.PopLSB()
		pieces = next
		for targets := b.Moves(from); targets != EmptyBB; {
			to, rest, _ := targets.PopLSB()
			targets = rest
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

// pawnMoves builds pushes and captures from the edge-aware shifts, so a pawn on the A or H file
// never captures around the board and a pawn on its last rank produces nothing.
func (b *Board) pawnMoves(sq Square, c Color) Bitboard {
	forward, epRank := Bitboard.ShiftNorth, Rank5
	if c == Black {
		forward, epRank = Bitboard.ShiftSouth, Rank4
	}
	all := b.TotalOccupancy()
	enemy := b.occupied[c.Other()]

	one, ok := forward(SquareBB(sq))
	if !ok {
		return EmptyBB
	}
	moves := EmptyBB
	if one&all == 0 {
		moves |= one
		if sq.Rank() == pawnHomeRank(c) {
			if two, ok := forward(one); ok && two&all == 0 {
				moves |= two
			}
		}
	}

	for _, side := range [...]func(Bitboard) (Bitboard, bool){Bitboard.ShiftEast, Bitboard.ShiftWest} {
		diag, ok := side(one)
		if !ok {
			continue
		}
		if diag&enemy != 0 {
			moves |= diag
		}
		if b.enPassant != NoSquare && sq.Rank() == epRank && diag == SquareBB(b.enPassant) {
			moves |= diag
		}
	}
	return moves
}

var diagonalSteps = [4]struct{ df, dr int }{
	{1, 1},   // NorthEast
	{1, -1},  // SouthEast
	{-1, -1}, // SouthWest
	{-1, 1},  // NorthWest
}

// bishopMoves walks each diagonal one square at a time, stopping at the first occupied square
// and keeping it only when it holds an enemy piece.
func (b *Board) bishopMoves(sq Square, c Color) Bitboard {
	all := b.TotalOccupancy()
	enemy := b.occupied[c.Other()]
	moves := EmptyBB
	for _, step := range diagonalSteps {
		f, r := int(sq.File()), int(sq.Rank())
		for {
			f, r = f+step.df, r+step.dr
			if f < int(FileA) || f > int(FileH) || r < int(Rank1) || r > int(Rank8) {
				break
			}
			to := NewSquare(File(f), Rank(r))
			if all.Occupied(to) {
				if enemy.Occupied(to) {
					moves = moves.Set(to)
				}
				break
			}
			moves = moves.Set(to)
		}
	}
	return moves
}

// rookMoves resolves each orthogonal ray against the occupancy. The result includes the nearest
// blocker whatever its color; Moves drops friendly blockers.
func (b *Board) rookMoves(sq Square) Bitboard {
	all := b.TotalOccupancy()
	moves := EmptyBB
	for dir := North; dir < NumDirections; dir++ {
		moves |= rayAttacks(sq, dir, all)
	}
	return moves
}

// rayAttacks returns the squares along Ray(sq, dir) up to and including the blocker closest to sq.
func rayAttacks(sq Square, dir Direction, occupancy Bitboard) Bitboard {
	ray := Ray(sq, dir)
	blockers := ray & occupancy
	if blockers == EmptyBB {
		return ray
	}
	var nearest Square
	if dir.Ascending() {
		nearest, _ = blockers.LSB()
	} else {
		nearest, _ = blockers.MSB()
	}
	// Everything beyond the blocker is the blocker's own ray in the same direction.
	return ray &^ Ray(nearest, dir)
}
