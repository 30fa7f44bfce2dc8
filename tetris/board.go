package tetris

import "slices"

const (
	Rows = 20
	Cols = 10
)

// Board is the playfield of settled cells. 20 rows x 10 columns.
// Rows are 0 > 19 top to bottom and columns 0 > 9 left to right.
// An Empty cell is free, otherwise it holds the shape that was locked there.
type Board [][]Shape

func NewBoard() Board {
	b := make(Board, Rows)
	for i := range b {
		b[i] = make([]Shape, Cols)
	}
	return b
}

// Merge writes the piece into the board. Cells outside the board are dropped.
func (b Board) Merge(t Tetromino) {
	t.cells(func(row, col int) {
		if row >= 0 && row < len(b) && col >= 0 && col < len(b[row]) {
			b[row][col] = t.Shape
		}
	})
}

// ClearLines removes every full row and collapses the rows above it. It returns
// the number of rows removed. The board keeps its dimensions.
func (b Board) ClearLines() int {
	kept := make([][]Shape, 0, len(b))
	for _, row := range b {
		if !isFull(row) {
			kept = append(kept, row)
		}
	}
	cleared := len(b) - len(kept)
	if cleared == 0 {
		return 0
	}

	// one new empty row on top per cleared row, then the rest in their original order.
	rebuilt := make([][]Shape, 0, len(b))
	for i := range cleared {
		rebuilt = append(rebuilt, make([]Shape, len(b[i])))
	}
	rebuilt = append(rebuilt, kept...)
	copy(b, rebuilt)

	return cleared
}

func isFull(row []Shape) bool {
	return len(row) > 0 && !slices.Contains(row, Empty)
}

func (b Board) copy() Board {
	if b == nil {
		return nil
	}
	out := make(Board, len(b))
	for i := range b {
		out[i] = slices.Clone(b[i])
	}
	return out
}
