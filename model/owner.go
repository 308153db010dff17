package model

// Owner identifies which color controls a live cell
type Owner uint8

const (
	OwnerNone Owner = iota
	OwnerWhite
	OwnerBlack
)

func (o Owner) String() string {
	switch o {
	case OwnerWhite:
		return "White"
	case OwnerBlack:
		return "Black"
	default:
		return "None"
	}
}

// Opponent returns the other color. OwnerNone has no opponent.
func (o Owner) Opponent() Owner {
	switch o {
	case OwnerWhite:
		return OwnerBlack
	case OwnerBlack:
		return OwnerWhite
	default:
		return OwnerNone
	}
}

// SimState governs which mutations are legal at a given time
type SimState uint8

const (
	StateEditing SimState = iota
	StatePlacement
	StateRunning
)

func (s SimState) String() string {
	switch s {
	case StatePlacement:
		return "placement"
	case StateRunning:
		return "running"
	default:
		return "editing"
	}
}
