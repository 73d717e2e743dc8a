package game

import "mysterymate/internal/core"

// Snapshot is the position after one accepted move
type Snapshot struct {
	Placement    string     // Board placement at this point
	PreviousMove string     // Move that produced it, empty for the initial position
	NextTurn     core.Color // Whose turn it is at this position
}

func (m *Match) addSnapshot(placement, move string, nextTurn core.Color) {
	m.snapshots = append(m.snapshots, Snapshot{
		Placement:    placement,
		PreviousMove: move,
		NextTurn:     nextTurn,
	})
}

// History returns every snapshot, the initial position first. Empty until both players joined.
func (m *Match) History() []Snapshot {
	out := make([]Snapshot, len(m.snapshots))
	copy(out, m.snapshots)
	return out
}

// Moves lists accepted moves in coordinate notation, e.g. "e2e4" or "a7a8q"
func (m *Match) Moves() []string {
	moves := []string{}
	for i := 1; i < len(m.snapshots); i++ {
		if m.snapshots[i].PreviousMove != "" {
			moves = append(moves, m.snapshots[i].PreviousMove)
		}
	}
	return moves
}

// InitialPlacement is the placement the match started from
func (m *Match) InitialPlacement() string {
	if len(m.snapshots) > 0 {
		return m.snapshots[0].Placement
	}
	return ""
}
