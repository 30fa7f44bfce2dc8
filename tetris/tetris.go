// Package tetris contains the logic of the game: the playfield, the pieces,
// collisions, line clears and NES scoring.
package tetris

import (
	"errors"
	"fmt"
	"time"
)

// Gravity is how long the active piece waits before falling one row on its own.
const Gravity = 650 * time.Millisecond

// kicks are the column offsets tried, in order, when a rotation collides.
var kicks = []int{0, 1, -1, 2, -2}

type Action string

const (
	MoveLeft  Action = "left"   // Moves the Tetromino one step to the left.
	MoveRight Action = "right"  // Moves the Tetromino one step to the right.
	Rotate    Action = "rotate" // Rotates the Tetromino clockwise.
	SoftDrop  Action = "down"   // Moves the Tetromino one step down or locks it.
	HardDrop  Action = "drop"   // Drops the Tetromino down the stack and locks it.
	Reset     Action = "reset"  // Starts a new game.
)

var ErrUnknownAction = errors.New("unknown action")

// ParseAction validates an action received from outside the game.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case MoveLeft, MoveRight, Rotate, SoftDrop, HardDrop, Reset:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Result describes what a command did to the game.
type Result struct {
	Moved    bool // the active piece changed position or rotation
	Locked   bool // the active piece was merged into the board
	Cleared  int  // rows cleared by the lock
	Points   int  // points awarded by the lock
	GameOver bool // the next piece had no room and the game started over
	Reset    bool // the game was restarted on request
}

// Changed reports whether the game state is different after the command.
func (r Result) Changed() bool {
	return r.Moved || r.Locked || r.GameOver || r.Reset
}

// Tetris is the state of a single game. It is not safe for concurrent use,
// Game serializes access to it.
type Tetris struct {
	Board      Board
	Tetromino  Tetromino
	Score      int
	Level      int
	LinesClear int

	random    Randomizer
	sinceDrop time.Duration
}

// New starts a game with an empty board and a fresh piece.
func New(r Randomizer, level int) *Tetris {
	if r == nil {
		r = NewUniformRandomizer()
	}
	t := &Tetris{random: r, Level: level}
	t.reset()
	return t
}

// Apply runs the command named by a. Unknown actions do nothing.
func (t *Tetris) Apply(a Action) Result {
	switch a {
	case MoveLeft:
		return t.MoveLeft()
	case MoveRight:
		return t.MoveRight()
	case Rotate:
		return t.Rotate()
	case SoftDrop:
		return t.SoftDrop()
	case HardDrop:
		return t.HardDrop()
	case Reset:
		return t.Reset()
	}
	return Result{}
}

func (t *Tetris) MoveLeft() Result  { return t.move(-1) }
func (t *Tetris) MoveRight() Result { return t.move(1) }

func (t *Tetris) move(dCol int) Result {
	return t.try(t.Tetromino.moved(dCol, 0))
}

// Rotate turns the piece clockwise. If the rotated piece collides it is shifted
// sideways by each of the kick offsets in turn, the first free position wins.
// When none is free the piece stays as it was.
func (t *Tetris) Rotate() Result {
	next := (t.Tetromino.Rotation + 1) % t.Tetromino.rotations()
	for _, k := range kicks {
		if r := t.try(t.Tetromino.rotated(next, k)); r.Moved {
			return r
		}
	}
	return Result{}
}

// SoftDrop moves the piece one row down. If it can't, the piece locks.
func (t *Tetris) SoftDrop() Result {
	if r := t.try(t.Tetromino.moved(0, 1)); r.Moved {
		return r
	}
	return t.lock()
}

// HardDrop moves the piece down to the lowest free row and locks it.
func (t *Tetris) HardDrop() Result {
	t.Tetromino = t.landing()
	return t.lock()
}

// Reset throws away the current game and starts a new one.
func (t *Tetris) Reset() Result {
	t.reset()
	return Result{Reset: true}
}

// Tick advances the gravity clock by elapsed. Once Gravity has accumulated the
// clock restarts and the piece soft drops.
func (t *Tetris) Tick(elapsed time.Duration) Result {
	t.sinceDrop += elapsed
	if t.sinceDrop < Gravity {
		return Result{}
	}
	t.sinceDrop = 0
	return t.SoftDrop()
}

// try commits the candidate as the active piece if it fits on the board.
func (t *Tetris) try(candidate Tetromino) Result {
	if t.Board.Collides(candidate) {
		return Result{}
	}
	t.Tetromino = candidate
	return Result{Moved: true}
}

// Ghost returns where the active piece would land if hard dropped now.
func (t *Tetris) Ghost() Tetromino {
	return t.landing()
}

// landing returns the active piece moved down as far as it goes.
func (t *Tetris) landing() Tetromino {
	landed := t.Tetromino
	for !t.Board.Collides(landed.moved(0, 1)) {
		landed = landed.moved(0, 1)
	}
	return landed
}

func (t *Tetris) lock() Result {
	t.Board.Merge(t.Tetromino)
	cleared := t.Board.ClearLines()
	points := ScoreForLines(cleared, t.Level)
	t.Score += points
	t.LinesClear += cleared
	return Result{
		Locked:   true,
		Cleared:  cleared,
		Points:   points,
		GameOver: !t.spawn(),
	}
}

// spawn draws the next piece. When it doesn't fit the game is over and starts
// again from an empty board. It returns false in that case.
func (t *Tetris) spawn() bool {
	t.Tetromino = spawnTetromino(t.random.Next())
	if t.Board.Collides(t.Tetromino) {
		t.reset()
		return false
	}
	return true
}

func (t *Tetris) reset() {
	t.Board = NewBoard()
	t.Score = 0
	t.LinesClear = 0
	t.sinceDrop = 0
	t.spawn()
}

// Copy returns a deep copy of the game that's safe to read while the original changes.
func (t *Tetris) Copy() *Tetris {
	if t == nil {
		return nil
	}
	return &Tetris{
		Board:      t.Board.copy(),
		Tetromino:  t.Tetromino,
		Score:      t.Score,
		Level:      t.Level,
		LinesClear: t.LinesClear,
	}
}
