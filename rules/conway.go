package rules

import "github.com/sheikhrachel/go-gol-duel/model"

/*
ApplyDuelRules applies Conway's Game of Life rules to a two-owner cell.

  - a live cell survives with 2 or 3 live neighbors and keeps its owner
  - a dead cell with exactly 3 live neighbors is born to the majority color
  - a birth with tied colors does not happen

The tie cannot occur with 3 owned neighbors, but the check stays so that the
rule holds if the neighborhood ever changes.

born reports whether the cell came to life this generation.
*/
func ApplyDuelRules(alive bool, owner model.Owner, neighbors, white, black int) (nextAlive bool, nextOwner model.Owner, born bool) {
	if alive {
		if neighbors == 2 || neighbors == 3 {
			return true, owner, false
		}
		return false, model.OwnerNone, false
	}
	if neighbors != 3 {
		return false, model.OwnerNone, false
	}
	switch {
	case white > black:
		return true, model.OwnerWhite, true
	case black > white:
		return true, model.OwnerBlack, true
	default:
		return false, model.OwnerNone, false
	}
}
