package events

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sheikhrachel/go-gol-duel/model"
)

// ScoreChanged carries the births credited to each color by one step
type ScoreChanged struct {
	WhiteDelta int
	BlackDelta int
}

// MatchSummary is the result of a finished match. Winner is OwnerNone for a draw.
type MatchSummary struct {
	MatchID    uuid.UUID
	Winner     model.Owner
	WhiteScore int
	BlackScore int
}

// Draw reports whether both colors finished level
func (s MatchSummary) Draw() bool {
	return s.Winner == model.OwnerNone
}

func (s MatchSummary) String() string {
	if s.Draw() {
		return fmt.Sprintf("Draw %d:%d", s.WhiteScore, s.BlackScore)
	}
	return fmt.Sprintf("%s wins %d:%d", s.Winner, s.WhiteScore, s.BlackScore)
}

// Bus fans events out to every registered handler, synchronously and in
// registration order
type Bus struct {
	scoreChanged      []func(ScoreChanged)
	turnChanged       []func()
	placementFinished []func()
	matchEnded        []func(MatchSummary)
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) OnScoreChanged(fn func(ScoreChanged)) {
	b.scoreChanged = append(b.scoreChanged, fn)
}

func (b *Bus) OnTurnChanged(fn func()) {
	b.turnChanged = append(b.turnChanged, fn)
}

func (b *Bus) OnPlacementFinished(fn func()) {
	b.placementFinished = append(b.placementFinished, fn)
}

func (b *Bus) OnMatchEnded(fn func(MatchSummary)) {
	b.matchEnded = append(b.matchEnded, fn)
}

func (b *Bus) EmitScoreChanged(e ScoreChanged) {
	for _, fn := range b.scoreChanged {
		fn(e)
	}
}

func (b *Bus) EmitTurnChanged() {
	for _, fn := range b.turnChanged {
		fn()
	}
}

func (b *Bus) EmitPlacementFinished() {
	for _, fn := range b.placementFinished {
		fn()
	}
}

func (b *Bus) EmitMatchEnded(s MatchSummary) {
	for _, fn := range b.matchEnded {
		fn(s)
	}
}
