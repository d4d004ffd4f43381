package checkbit

import "fmt"

// assertSquare panics on an off-board square when built with the checkbitdebug tag.
func assertSquare(sq Square) {
	if debugAssertions && !sq.Valid() {
		panic(fmt.Sprintf("checkbit: square %d out of range [0,64)", sq))
	}
}
