package tetris

import (
	"sync"
	"time"
)

// MockTicker is a mock implementation of the ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }

// Tick fires the ticker with the given time.
func (m *MockTicker) Tick(at time.Time) { m.ch <- at }

func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}

func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
}

func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}

func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// NewTestGame creates a game that only deals shapes, in order, and returns it with a manual ticker.
func NewTestGame(shapes ...Shape) (*Game, *MockTicker) {
	ticker := NewMockTicker()
	return NewGame(&Options{
		Randomizer: NewSequenceRandomizer(shapes...),
		Ticker:     ticker,
	}), ticker
}

// NewTestTetris creates a new Tetris whose pieces always have the given shape.
func NewTestTetris(shape Shape) *Tetris {
	return New(NewSequenceRandomizer(shape), FixedLevel)
}
