package snake

import (
	"github.com/hoshinonyaruko/snake-classic/structs"
)

// 出生时三节身体的位置，头在前
var startingPositions = []structs.Cell{{X: 0, Y: 0}, {X: -20, Y: 0}, {X: -40, Y: 0}}

// Snake is the player's body. At most one heading change is honored per move.
type Snake struct {
	segments []structs.Cell
	heading  structs.Direction
	canTurn  bool
}

func NewSnake() *Snake {
	s := &Snake{}
	s.Reset()
	return s
}

// Reset restores the three segment starting layout heading right.
func (s *Snake) Reset() {
	s.segments = append(s.segments[:0], startingPositions...)
	s.heading = structs.Right
	s.canTurn = true
}

// Turn changes the heading unless the snake is locked for this move or dir
// reverses the current heading. It reports whether the turn was taken.
func (s *Snake) Turn(dir structs.Direction) bool {
	if !s.canTurn || dir == s.heading.Opposite() {
		return false
	}
	s.heading = dir
	s.canTurn = false
	return true
}

// Move shifts every segment onto its predecessor's cell and advances the head
// one cell along the heading.
func (s *Snake) Move() {
	for i := len(s.segments) - 1; i > 0; i-- {
		s.segments[i] = s.segments[i-1]
	}
	dx, dy := s.heading.Delta()
	s.segments[0] = s.segments[0].Add(dx*CellSize, dy*CellSize)
	s.canTurn = true
}

// Grow appends a segment on top of the tail. It is pulled into place by the
// next Move, so the snake visibly lengthens one move later.
func (s *Snake) Grow() {
	s.segments = append(s.segments, s.segments[len(s.segments)-1])
}

func (s *Snake) Head() structs.Cell {
	return s.segments[0]
}

// SetHead moves the head without touching the body, used for wrap-around.
func (s *Snake) SetHead(c structs.Cell) {
	s.segments[0] = c
}

func (s *Snake) Heading() structs.Direction {
	return s.heading
}

func (s *Snake) CanTurn() bool {
	return s.canTurn
}

func (s *Snake) Len() int {
	return len(s.segments)
}

// Segments returns a copy of the body, head first.
func (s *Snake) Segments() []structs.Cell {
	out := make([]structs.Cell, len(s.segments))
	copy(out, s.segments)
	return out
}

// BitesItself reports whether the head is on any other segment.
func (s *Snake) BitesItself() bool {
	head := s.segments[0]
	for _, seg := range s.segments[1:] {
		if Within(head, seg, SelfRadius) {
			return true
		}
	}
	return false
}
