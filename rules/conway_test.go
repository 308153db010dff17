package rules

import (
	"testing"

	"github.com/sheikhrachel/go-gol-duel/model"
)

func TestApplyDuelRules(t *testing.T) {
	tests := []struct {
		name      string
		alive     bool
		owner     model.Owner
		n, w, b   int
		wantAlive bool
		wantOwner model.Owner
		wantBorn  bool
	}{
		{"lonely dies", true, model.OwnerWhite, 1, 1, 0, false, model.OwnerNone, false},
		{"two survives", true, model.OwnerBlack, 2, 2, 0, true, model.OwnerBlack, false},
		{"three survives keeps owner", true, model.OwnerWhite, 3, 0, 3, true, model.OwnerWhite, false},
		{"crowded dies", true, model.OwnerWhite, 4, 2, 2, false, model.OwnerNone, false},
		{"birth white majority", false, model.OwnerNone, 3, 2, 1, true, model.OwnerWhite, true},
		{"birth black majority", false, model.OwnerNone, 3, 0, 3, true, model.OwnerBlack, true},
		{"tie no birth", false, model.OwnerNone, 3, 1, 1, false, model.OwnerNone, false},
		{"two neighbors stays dead", false, model.OwnerNone, 2, 2, 0, false, model.OwnerNone, false},
		{"four neighbors stays dead", false, model.OwnerNone, 4, 4, 0, false, model.OwnerNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alive, owner, born := ApplyDuelRules(tt.alive, tt.owner, tt.n, tt.w, tt.b)
			if alive != tt.wantAlive || owner != tt.wantOwner || born != tt.wantBorn {
				t.Fatalf("got (%v, %v, %v), expected (%v, %v, %v)",
					alive, owner, born, tt.wantAlive, tt.wantOwner, tt.wantBorn)
			}
		})
	}
}
