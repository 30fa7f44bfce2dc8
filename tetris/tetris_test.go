package tetris

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tetris := NewTestTetris(J)
	if !reflect.DeepEqual(tetris.Board, NewBoard()) {
		t.Errorf("wanted an empty board, got %v", tetris.Board)
	}
	want := Tetromino{Shape: J, Col: 3, Row: -1}
	if tetris.Tetromino != want {
		t.Errorf("wanted %+v, got %+v", want, tetris.Tetromino)
	}
	if tetris.Score != 0 || tetris.Level != FixedLevel || tetris.LinesClear != 0 {
		t.Errorf("wanted score, level and lines at 0, got %d, %d, %d", tetris.Score, tetris.Level, tetris.LinesClear)
	}
}

func TestMoveActions(t *testing.T) {
	// Initial state of the test:
	//
	// 	.	Spawn Location			.	Shape
	// 	.	0 1 2 3 4 5 6 7 8 9		.	0 1 2
	// 	-1	. . . . O . . . . .		0	. O .
	// 	0	. . . O O O . . . .		1	O O O
	// 	1	. . . . . . . . . .		2	. . .
	tests := []struct {
		name         string
		action       func(g *Tetris) Result
		updateBoard  func(g *Tetris)
		wantMoved    bool
		wantLocation []int // row, col
		wantRotation int
	}{
		{
			name:         "Move left unblocked",
			action:       (*Tetris).MoveLeft,
			wantMoved:    true,
			wantLocation: []int{-1, 2},
		},
		{
			name:   "Move left blocked",
			action: (*Tetris).MoveLeft,
			updateBoard: func(g *Tetris) {
				g.Board[0][2] = J
			},
			wantLocation: []int{-1, 3},
		},
		{
			name:   "Move left against the wall",
			action: (*Tetris).MoveLeft,
			updateBoard: func(g *Tetris) {
				g.Tetromino.Col = 0
			},
			wantLocation: []int{-1, 0},
		},
		{
			name:         "Move right unblocked",
			action:       (*Tetris).MoveRight,
			wantMoved:    true,
			wantLocation: []int{-1, 4},
		},
		{
			name:   "Move right blocked",
			action: (*Tetris).MoveRight,
			updateBoard: func(g *Tetris) {
				g.Board[0][6] = J
			},
			wantLocation: []int{-1, 3},
		},
		{
			name:   "Move right against the wall",
			action: (*Tetris).MoveRight,
			updateBoard: func(g *Tetris) {
				g.Tetromino.Col = 7
			},
			wantLocation: []int{-1, 7},
		},
		{
			name:         "Soft drop unblocked",
			action:       (*Tetris).SoftDrop,
			wantMoved:    true,
			wantLocation: []int{0, 3},
		},
		{
			name:         "Rotate when unblocked",
			action:       (*Tetris).Rotate,
			wantMoved:    true,
			wantLocation: []int{-1, 3},
			wantRotation: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tetris := NewTestTetris(T)
			if tt.updateBoard != nil {
				tt.updateBoard(tetris)
			}
			r := tt.action(tetris)
			if r.Moved != tt.wantMoved {
				t.Errorf("wanted moved to be %t, got %t", tt.wantMoved, r.Moved)
			}
			if tetris.Tetromino.Row != tt.wantLocation[0] {
				t.Errorf("wanted tetromino's row to be %d, got %d", tt.wantLocation[0], tetris.Tetromino.Row)
			}
			if tetris.Tetromino.Col != tt.wantLocation[1] {
				t.Errorf("wanted tetromino's col to be %d, got %d", tt.wantLocation[1], tetris.Tetromino.Col)
			}
			if tetris.Tetromino.Rotation != tt.wantRotation {
				t.Errorf("wanted rotation %d, got %d", tt.wantRotation, tetris.Tetromino.Rotation)
			}
		})
	}
}

func TestRotationCycle(t *testing.T) {
	for _, s := range Shapes {
		t.Run(string(s), func(t *testing.T) {
			tetris := NewTestTetris(s)
			tetris.Tetromino.Row = 5
			for i := range 4 {
				tetris.Rotate()
				if want := (i + 1) % 4; tetris.Tetromino.Rotation != want {
					t.Errorf("wanted rotation %d, got %d", want, tetris.Tetromino.Rotation)
				}
			}
			if tetris.Tetromino.Col != 3 || tetris.Tetromino.Row != 5 {
				t.Errorf("wanted the piece to stay at 5, 3, got %d, %d", tetris.Tetromino.Row, tetris.Tetromino.Col)
			}
		})
	}
}

func TestWallKick(t *testing.T) {
	tests := []struct {
		name         string
		shape        Shape
		setup        func(g *Tetris)
		blockBoard   [][]int // row, col
		wantCol      int
		wantRotation int
	}{
		{
			name: "I against the right wall, kick -1",
			// 	.	0 1 2 3 4 5 6 7 8 9		rotation 2 at col 7 would need cols 7 > 10,
			// 	-1	. . . . . . . . . O		+1 needs 8 > 11, -1 fits in 6 > 9.
			// 	0	. . . . . . . . . O
			// 	1	. . . . . . . . . O
			// 	2	. . . . . . . . . O
			shape: I,
			setup: func(g *Tetris) {
				g.Tetromino.Rotation = 1
				g.Tetromino.Col = 7
			},
			wantCol:      6,
			wantRotation: 2,
		},
		{
			name: "I against the left wall, kick +2",
			// 	.	0 1 2 3 4 5 6 7 8 9
			// 	-1	O . . . . . . . . .
			// 	0	O . . . . . . . . .
			// 	1	O . . . . . . . . .
			// 	2	O . . . . . . . . .
			shape: I,
			setup: func(g *Tetris) {
				g.Tetromino.Rotation = 1
				g.Tetromino.Col = -2
			},
			wantCol:      0,
			wantRotation: 2,
		},
		{
			name: "T blocked by the stack, kick +1",
			// 	.	0 1 2 3 4 5 6 7 8 9
			// 	10	. . . . . O . . . .
			// 	11	. . . . O O O . . .
			// 	12	. . . . . X . . . .
			shape:        T,
			setup:        func(g *Tetris) { g.Tetromino.Col, g.Tetromino.Row = 4, 10 },
			blockBoard:   [][]int{{12, 5}},
			wantCol:      5,
			wantRotation: 1,
		},
		{
			name: "T blocked by the stack, kick -1",
			// 	.	0 1 2 3 4 5 6 7 8 9
			// 	10	. . . . . O . . . .
			// 	11	. . . . O O O . . .
			// 	12	. . . . . X X . . .
			shape:        T,
			setup:        func(g *Tetris) { g.Tetromino.Col, g.Tetromino.Row = 4, 10 },
			blockBoard:   [][]int{{12, 5}, {12, 6}},
			wantCol:      3,
			wantRotation: 1,
		},
		{
			name: "T fully blocked doesn't rotate",
			// 	.	0 1 2 3 4 5 6 7 8 9
			// 	10	. . . . . O . . . .
			// 	11	. . . . O O O . . .
			// 	12	. . . X X X X X . .
			shape:        T,
			setup:        func(g *Tetris) { g.Tetromino.Col, g.Tetromino.Row = 4, 10 },
			blockBoard:   [][]int{{12, 3}, {12, 4}, {12, 5}, {12, 6}, {12, 7}},
			wantCol:      4,
			wantRotation: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tetris := NewTestTetris(tt.shape)
			if tt.setup != nil {
				tt.setup(tetris)
			}
			for _, v := range tt.blockBoard {
				tetris.Board[v[0]][v[1]] = J
			}
			tetris.Rotate()
			if tt.wantCol != tetris.Tetromino.Col {
				t.Errorf("wanted col to be %d, got %d", tt.wantCol, tetris.Tetromino.Col)
			}
			if tt.wantRotation != tetris.Tetromino.Rotation {
				t.Errorf("wanted rotation to be %d, got %d", tt.wantRotation, tetris.Tetromino.Rotation)
			}
		})
	}
}

func TestSoftDropLocks(t *testing.T) {
	tetris := New(NewSequenceRandomizer(J, T), FixedLevel)
	tetris.Tetromino.Row = 18
	r := tetris.SoftDrop()
	if !r.Locked || r.Moved {
		t.Errorf("wanted the piece to lock, got %+v", r)
	}
	want := NewBoard()
	want[18][3] = J
	want[19][3] = J
	want[19][4] = J
	want[19][5] = J
	if !reflect.DeepEqual(tetris.Board, want) {
		t.Errorf("wanted %v, got %v", want, tetris.Board)
	}
	if wantPiece := (Tetromino{Shape: T, Col: 3, Row: -1}); tetris.Tetromino != wantPiece {
		t.Errorf("wanted the next piece %+v, got %+v", wantPiece, tetris.Tetromino)
	}
}

func TestHardDrop(t *testing.T) {
	tetris := NewTestTetris(T)
	tetris.Board[19][4] = Z
	r := tetris.HardDrop()
	if !r.Locked || r.Cleared != 0 || r.Points != 0 {
		t.Errorf("wanted a lock with no points, got %+v", r)
	}
	// 	.	0 1 2 3 4 5 6 7 8 9
	// 	17	. . . . T . . . . .
	// 	18	. . . T T T . . . .
	// 	19	. . . . Z . . . . .
	want := NewBoard()
	want[17][4] = T
	want[18][3] = T
	want[18][4] = T
	want[18][5] = T
	want[19][4] = Z
	if !reflect.DeepEqual(tetris.Board, want) {
		t.Errorf("wanted %v, got %v", want, tetris.Board)
	}
}

func TestGhost(t *testing.T) {
	tetris := NewTestTetris(O)
	want := Tetromino{Shape: O, Col: 3, Row: 18}
	if got := tetris.Ghost(); got != want {
		t.Errorf("wanted %+v, got %+v", want, got)
	}
	if tetris.Tetromino.Row != -1 {
		t.Errorf("Ghost moved the active piece to row %d", tetris.Tetromino.Row)
	}
}

func TestSingleLineScenario(t *testing.T) {
	tetris := New(NewSequenceRandomizer(I, I, O), FixedLevel)

	// 	.	0 1 2 3 4 5 6 7 8 9
	// 	18	. . . . O O . . . .
	// 	19	I I I I O O I I I I
	for range 3 {
		tetris.MoveLeft()
	}
	tetris.HardDrop()
	for range 3 {
		tetris.MoveRight()
	}
	tetris.HardDrop()
	r := tetris.HardDrop()

	if r.Cleared != 1 || r.Points != 40 {
		t.Errorf("wanted 1 row for 40 points, got %+v", r)
	}
	if tetris.Score != 40 || tetris.LinesClear != 1 {
		t.Errorf("wanted score 40 and 1 line, got %d and %d", tetris.Score, tetris.LinesClear)
	}
	want := NewBoard()
	want[19][4] = O
	want[19][5] = O
	if !reflect.DeepEqual(tetris.Board, want) {
		t.Errorf("wanted %v, got %v", want, tetris.Board)
	}
}

func TestSingleLineWithIPieces(t *testing.T) {
	tetris := NewTestTetris(I)

	// four pieces fill the bottom row except column 9, the fifth completes it.
	// 	.	0 1 2 3 4 5 6 7 8 9
	// 	16	. . . . . . . . 3 5
	// 	17	. . . . . . . . 3 5
	// 	18	4 4 4 4 . . . . 3 5
	// 	19	1 1 1 1 2 2 2 2 3 5
	drops := []func(){
		func() {
			for range 3 {
				tetris.MoveLeft()
			}
		},
		func() { tetris.MoveRight() },
		func() {
			tetris.Rotate()
			for range 3 {
				tetris.MoveRight()
			}
		},
		func() {
			for range 3 {
				tetris.MoveLeft()
			}
		},
	}
	for i, place := range drops {
		place()
		if r := tetris.HardDrop(); r.Cleared != 0 {
			t.Fatalf("piece %d: wanted no rows cleared, got %d", i+1, r.Cleared)
		}
	}
	for c := range Cols - 1 {
		if tetris.Board[Rows-1][c] != I {
			t.Fatalf("wanted column %d of the bottom row filled, got %v", c, tetris.Board[Rows-1])
		}
	}
	if tetris.Board[Rows-1][Cols-1] != Empty {
		t.Fatalf("wanted the last cell of the bottom row empty, got %v", tetris.Board[Rows-1])
	}

	tetris.Rotate()
	for range 4 {
		tetris.MoveRight()
	}
	r := tetris.HardDrop()
	if r.Cleared != 1 || r.Points != 40 {
		t.Errorf("wanted 1 row for 40 points, got %+v", r)
	}
	if tetris.Score != 40 || tetris.LinesClear != 1 {
		t.Errorf("wanted score 40 and 1 line, got %d and %d", tetris.Score, tetris.LinesClear)
	}

	want := NewBoard()
	for c := range 4 {
		want[19][c] = I
	}
	for r := 17; r < Rows; r++ {
		want[r][8] = I
		want[r][9] = I
	}
	if !reflect.DeepEqual(tetris.Board, want) {
		t.Errorf("wanted %v, got %v", want, tetris.Board)
	}
}

func TestTetrisScenario(t *testing.T) {
	tetris := NewTestTetris(I)
	// 	.	0 1 2 3 4 5 6 7 8 9
	// 	16	J J J J J J J J J .
	// 	17	J J J J J J J J J .
	// 	18	J J J J J J J J J .
	// 	19	J J J J J J J J J .
	for r := 16; r < Rows; r++ {
		fillRow(tetris.Board, r, 9)
	}
	tetris.Rotate()
	for range 4 {
		tetris.MoveRight()
	}
	r := tetris.HardDrop()
	if r.Cleared != 4 || r.Points != 1200 {
		t.Errorf("wanted 4 rows for 1200 points, got %+v", r)
	}
	if tetris.Score != 1200 {
		t.Errorf("wanted score 1200, got %d", tetris.Score)
	}
	if !reflect.DeepEqual(tetris.Board, NewBoard()) {
		t.Errorf("wanted an empty board, got %v", tetris.Board)
	}
}

func TestGameOver(t *testing.T) {
	tetris := NewTestTetris(O)
	tetris.Score = 500
	tetris.LinesClear = 12
	// the O can't leave the spawn row, once locked the next O has no room.
	tetris.Board[1][4] = J
	r := tetris.HardDrop()
	if !r.GameOver {
		t.Fatalf("wanted game over, got %+v", r)
	}
	if !reflect.DeepEqual(tetris.Board, NewBoard()) {
		t.Errorf("wanted the board to be reset, got %v", tetris.Board)
	}
	if tetris.Score != 0 || tetris.LinesClear != 0 {
		t.Errorf("wanted score and lines to be reset, got %d and %d", tetris.Score, tetris.LinesClear)
	}
	if want := spawnTetromino(O); tetris.Tetromino != want {
		t.Errorf("wanted a fresh piece %+v, got %+v", want, tetris.Tetromino)
	}
}

func TestReset(t *testing.T) {
	tetris := NewTestTetris(L)
	tetris.HardDrop()
	tetris.Score = 300
	r := tetris.Apply(Reset)
	if !r.Reset || !r.Changed() {
		t.Errorf("wanted a reset result, got %+v", r)
	}
	if !reflect.DeepEqual(tetris.Board, NewBoard()) || tetris.Score != 0 {
		t.Errorf("wanted an empty game, got score %d and %v", tetris.Score, tetris.Board)
	}
}

func TestTick(t *testing.T) {
	tetris := NewTestTetris(T)
	ticks := []struct {
		elapsed time.Duration
		wantRow int
	}{
		{600 * time.Millisecond, -1},
		{100 * time.Millisecond, 0},
		{649 * time.Millisecond, 0},
		{time.Millisecond, 1},
		{2 * time.Second, 2},
	}
	for _, tick := range ticks {
		tetris.Tick(tick.elapsed)
		if tetris.Tetromino.Row != tick.wantRow {
			t.Errorf("after %v wanted row %d, got %d", tick.elapsed, tick.wantRow, tetris.Tetromino.Row)
		}
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		action Action
		want   Tetromino
	}{
		{MoveLeft, Tetromino{Shape: T, Col: 2, Row: -1}},
		{MoveRight, Tetromino{Shape: T, Col: 4, Row: -1}},
		{Rotate, Tetromino{Shape: T, Rotation: 1, Col: 3, Row: -1}},
		{SoftDrop, Tetromino{Shape: T, Col: 3, Row: 0}},
		{HardDrop, Tetromino{Shape: T, Col: 3, Row: -1}},
		{"jump", Tetromino{Shape: T, Col: 3, Row: -1}},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			tetris := NewTestTetris(T)
			tetris.Apply(tt.action)
			if tetris.Tetromino != tt.want {
				t.Errorf("wanted %+v, got %+v", tt.want, tetris.Tetromino)
			}
		})
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range []Action{MoveLeft, MoveRight, Rotate, SoftDrop, HardDrop, Reset} {
		got, err := ParseAction(string(a))
		if err != nil || got != a {
			t.Errorf("wanted %q, got %q, %v", a, got, err)
		}
	}
	if _, err := ParseAction("hold"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("wanted ErrUnknownAction, got %v", err)
	}
}

func TestCopy(t *testing.T) {
	tetris := NewTestTetris(S)
	c := tetris.Copy()
	c.Board[19][0] = J
	c.Tetromino.Col = 0
	if tetris.Board[19][0] != Empty || tetris.Tetromino.Col != 3 {
		t.Error("changing the copy changed the original")
	}
	var nilTetris *Tetris
	if nilTetris.Copy() != nil {
		t.Error("wanted a nil copy of a nil game")
	}
}
