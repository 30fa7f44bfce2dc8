package tetris

type Shape string

const (
	Empty Shape = ""
	I     Shape = "I"
	O     Shape = "O"
	T     Shape = "T"
	S     Shape = "S"
	Z     Shape = "Z"
	J     Shape = "J"
	L     Shape = "L"
)

// Shapes is the set of kinds a new piece is drawn from.
var Shapes = []Shape{I, O, T, S, Z, J, L}

// Matrix is a square occupancy grid. Its (0,0) cell is top-left and lines up
// with the Tetromino anchor.
type Matrix [][]bool

// catalog holds the precomputed rotation states for every shape, rotating clockwise.
// In the diagrams O is an occupied cell and . an empty one.
var catalog = map[Shape][]Matrix{
	I: {
		grid(
			"....",
			"OOOO",
			"....",
			"....",
		),
		grid(
			"..O.",
			"..O.",
			"..O.",
			"..O.",
		),
		grid(
			"....",
			"....",
			"OOOO",
			"....",
		),
		grid(
			".O..",
			".O..",
			".O..",
			".O..",
		),
	},
	// O doesn't rotate, its four states are the same.
	O: {
		grid(
			".OO.",
			".OO.",
			"....",
			"....",
		),
		grid(
			".OO.",
			".OO.",
			"....",
			"....",
		),
		grid(
			".OO.",
			".OO.",
			"....",
			"....",
		),
		grid(
			".OO.",
			".OO.",
			"....",
			"....",
		),
	},
	T: {
		grid(
			".O.",
			"OOO",
			"...",
		),
		grid(
			".O.",
			".OO",
			".O.",
		),
		grid(
			"...",
			"OOO",
			".O.",
		),
		grid(
			".O.",
			"OO.",
			".O.",
		),
	},
	S: {
		grid(
			".OO",
			"OO.",
			"...",
		),
		grid(
			".O.",
			".OO",
			"..O",
		),
		grid(
			"...",
			".OO",
			"OO.",
		),
		grid(
			"O..",
			"OO.",
			".O.",
		),
	},
	Z: {
		grid(
			"OO.",
			".OO",
			"...",
		),
		grid(
			"..O",
			".OO",
			".O.",
		),
		grid(
			"...",
			"OO.",
			".OO",
		),
		grid(
			".O.",
			"OO.",
			"O..",
		),
	},
	J: {
		grid(
			"O..",
			"OOO",
			"...",
		),
		grid(
			".OO",
			".O.",
			".O.",
		),
		grid(
			"...",
			"OOO",
			"..O",
		),
		grid(
			".O.",
			".O.",
			"OO.",
		),
	},
	L: {
		grid(
			"..O",
			"OOO",
			"...",
		),
		grid(
			".O.",
			".O.",
			".OO",
		),
		grid(
			"...",
			"OOO",
			"O..",
		),
		grid(
			"OO.",
			".O.",
			".O.",
		),
	},
}

func grid(rows ...string) Matrix {
	m := make(Matrix, len(rows))
	for i, r := range rows {
		m[i] = make([]bool, len(r))
		for j := range len(r) {
			m[i][j] = r[j] == 'O'
		}
	}
	return m
}

// RotationStates returns a copy of the rotation states of a shape, in clockwise order.
func RotationStates(s Shape) []Matrix {
	states, ok := catalog[s]
	if !ok {
		return nil
	}
	out := make([]Matrix, len(states))
	for i, m := range states {
		out[i] = m.copy()
	}
	return out
}

func (m Matrix) copy() Matrix {
	out := make(Matrix, len(m))
	for i := range m {
		out[i] = make([]bool, len(m[i]))
		copy(out[i], m[i])
	}
	return out
}

// Tetromino is the active piece. Col and Row are the board position of the
// top-left corner of its matrix; Row is negative while spawning above the board.
type Tetromino struct {
	Shape    Shape
	Rotation int
	Col      int
	Row      int
}

// Grid returns the matrix of the current rotation state.
func (t Tetromino) Grid() Matrix {
	return t.matrix().copy()
}

func (t Tetromino) matrix() Matrix {
	return catalog[t.Shape][t.Rotation]
}

func (t Tetromino) rotations() int {
	return len(catalog[t.Shape])
}

// cells calls fn with the absolute board position of every occupied cell.
func (t Tetromino) cells(fn func(row, col int)) {
	for ir, r := range t.matrix() {
		for ic, c := range r {
			if c {
				fn(t.Row+ir, t.Col+ic)
			}
		}
	}
}

func (t Tetromino) moved(dCol, dRow int) Tetromino {
	t.Col += dCol
	t.Row += dRow
	return t
}

func (t Tetromino) rotated(rotation, dCol int) Tetromino {
	t.Rotation = rotation
	t.Col += dCol
	return t
}

// spawnTetromino places a new piece of shape s horizontally centered, one row
// above the board.
func spawnTetromino(s Shape) Tetromino {
	width := len(catalog[s][0][0])
	return Tetromino{
		Shape: s,
		Col:   (Cols - width) / 2,
		Row:   -1,
	}
}
