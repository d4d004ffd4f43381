package checkbit

// Direction is one of the four orthogonal ray directions used by rook movement.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
	NumDirections
)

// Ascending reports whether square indices grow when stepping away from the origin in d.
// The nearest blocker on an ascending ray is its lowest set square, on a descending ray its highest.
func (d Direction) Ascending() bool { return d == North || d == East }

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	}
	return "NoDirection"
}

// --- Precomputed Attack Tables ---
// Initialized once in init() and read-only afterwards, so any number of goroutines may share them.
var (
	knightAttacks [NumOfSquaresInBoard]Bitboard
	kingAttacks   [NumOfSquaresInBoard]Bitboard
	rays          [NumOfSquaresInBoard][NumDirections]Bitboard // Ray in direction from sq (excluding sq).
)

func init() {
	initKnightAttacks()
	initKingAttacks()
	initRays()
}

// Initializes knight attack tables.
func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		sqBB := SquareBB(sq)
		attacks := EmptyBB
		attacks |= (sqBB << 17) & NotAFile  // Up 2, Right 1
		attacks |= (sqBB << 15) & NotHFile  // Up 2, Left 1
		attacks |= (sqBB << 10) & NotABFile // Up 1, Right 2
		attacks |= (sqBB << 6) & NotGHFile  // Up 1, Left 2
		attacks |= (sqBB >> 6) & NotABFile  // Down 1, Right 2
		attacks |= (sqBB >> 10) & NotGHFile // Down 1, Left 2
		attacks |= (sqBB >> 15) & NotAFile  // Down 2, Right 1
		attacks |= (sqBB >> 17) & NotHFile  // Down 2, Left 1
		knightAttacks[sq] = attacks
	}
}

// Initializes king attack tables.
func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		sqBB := SquareBB(sq)
		attacks := EmptyBB
		attacks |= (sqBB << 9) & NotAFile // NorthEast
		attacks |= sqBB << 8              // North
		attacks |= (sqBB << 7) & NotHFile // NorthWest
		attacks |= (sqBB << 1) & NotAFile // East
		attacks |= (sqBB >> 1) & NotHFile // West
		attacks |= (sqBB >> 7) & NotAFile // SouthEast
		attacks |= sqBB >> 8              // South
		attacks |= (sqBB >> 9) & NotHFile // SouthWest
		kingAttacks[sq] = attacks
	}
}

// Initializes the orthogonal ray tables by walking each direction with the edge-aware shifts.
func initRays() {
	shifts := [NumDirections]func(Bitboard) (Bitboard, bool){
		North: Bitboard.ShiftNorth,
		East:  Bitboard.ShiftEast,
		South: Bitboard.ShiftSouth,
		West:  Bitboard.ShiftWest,
	}
	for sq := A1; sq <= H8; sq++ {
		for dir := North; dir < NumDirections; dir++ {
			ray := EmptyBB
			for cur, ok := shifts[dir](SquareBB(sq)); ok; cur, ok = shifts[dir](cur) {
				ray |= cur
			}
			rays[sq][dir] = ray
		}
	}
}

// KnightAttacks returns the squares a knight on sq jumps to on an empty board.
func KnightAttacks(sq Square) Bitboard {
	if !sq.Valid() {
		assertSquare(sq)
		return EmptyBB
	}
	return knightAttacks[sq]
}

// KingAttacks returns the squares adjacent to sq.
func KingAttacks(sq Square) Bitboard {
	if !sq.Valid() {
		assertSquare(sq)
		return EmptyBB
	}
	return kingAttacks[sq]
}

// Ray returns the precomputed ray from sq in direction dir (excluding sq).
func Ray(sq Square, dir Direction) Bitboard {
	if !sq.Valid() || dir >= NumDirections {
		assertSquare(sq)
		return EmptyBB
	}
	return rays[sq][dir]
}
