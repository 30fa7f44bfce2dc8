package tetris

import (
	"math/rand/v2"
	"slices"
	"sync"
)

// Randomizer picks the shape of the next piece.
type Randomizer interface {
	Next() Shape
}

type uniformRandomizer struct{}

// NewUniformRandomizer draws every shape with the same probability, independently
// of previous draws.
func NewUniformRandomizer() Randomizer { return uniformRandomizer{} }

func (uniformRandomizer) Next() Shape { return Shapes[rand.IntN(len(Shapes))] }

type bag struct {
	bag []Shape
	mu  sync.Mutex
}

// NewBagRandomizer deals shapes from a shuffled bag holding each of them once.
// The bag is refilled when it runs empty, so a shape never waits more than 12 draws.
func NewBagRandomizer() Randomizer { return &bag{} }

func (b *bag) Next() Shape {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.bag) == 0 {
		b.bag = slices.Clone(Shapes)
		rand.Shuffle(len(b.bag), func(i, j int) { b.bag[i], b.bag[j] = b.bag[j], b.bag[i] })
	}
	s := b.bag[0]
	b.bag = b.bag[1:]
	return s
}

type sequence struct {
	shapes []Shape
	next   int
	mu     sync.Mutex
}

// NewSequenceRandomizer returns the given shapes in order, starting over after the last one.
func NewSequenceRandomizer(shapes ...Shape) Randomizer {
	if len(shapes) == 0 {
		shapes = Shapes
	}
	return &sequence{shapes: slices.Clone(shapes)}
}

func (s *sequence) Next() Shape {
	s.mu.Lock()
	defer s.mu.Unlock()
	shape := s.shapes[s.next]
	s.next = (s.next + 1) % len(s.shapes)
	return shape
}
