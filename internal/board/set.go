package board

import (
	"math/bits"
	"strings"
)

// PositionSet is a set of squares, one bit per square in Index order
type PositionSet uint64

func (s PositionSet) Has(p Position) bool {
	if !p.Valid() {
		return false
	}
	return s&(1<<uint(p.Index())) != 0
}

func (s *PositionSet) Add(p Position) {
	if p.Valid() {
		*s |= 1 << uint(p.Index())
	}
}

func (s *PositionSet) Remove(p Position) {
	if p.Valid() {
		*s &^= 1 << uint(p.Index())
	}
}

func (s PositionSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

func (s PositionSet) Empty() bool {
	return s == 0
}

func (s PositionSet) Union(o PositionSet) PositionSet {
	return s | o
}

// Positions lists members from a1 to h8
func (s PositionSet) Positions() []Position {
	out := make([]Position, 0, s.Len())
	for v := uint64(s); v != 0; v &= v - 1 {
		out = append(out, positionAt(bits.TrailingZeros64(v)))
	}
	return out
}

// Strings lists members in algebraic notation
func (s PositionSet) Strings() []string {
	ps := s.Positions()
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

func (s PositionSet) String() string {
	return "{" + strings.Join(s.Strings(), " ") + "}"
}

// SetOf builds a set from algebraic squares, ignoring invalid ones
func SetOf(squares ...string) PositionSet {
	var s PositionSet
	for _, sq := range squares {
		if p, err := ParsePosition(sq); err == nil {
			s.Add(p)
		}
	}
	return s
}
