package model

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	gridPosWhite = "██"
	gridPosBlack = "░░"
	gridPosEmpty = "  "

	// ANSI clear screen + cursor home
	clearSequence = "\033[H\033[2J"
)

// TerminalRenderer draws the grid with y growing upwards, so the top row
// printed is y = height-1
type TerminalRenderer struct {
	Out io.Writer
}

func (r *TerminalRenderer) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// Display renders the grid to the terminal
func (r *TerminalRenderer) Display(g *Grid) {
	var sb strings.Builder
	for y := g.height - 1; y >= 0; y-- {
		for x := range g.width {
			switch g.OwnerAt(x, y) {
			case OwnerWhite:
				sb.WriteString(gridPosWhite)
			case OwnerBlack:
				sb.WriteString(gridPosBlack)
			default:
				sb.WriteString(gridPosEmpty)
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprint(r.out(), sb.String())
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	fmt.Fprint(r.out(), clearSequence)
}
