package tetris

// Collides reports whether the piece overlaps a settled cell or leaves the board
// through a side or the bottom.
//
// Cells above the board (row < 0) are never checked against the stack, so a piece
// can spawn partially hidden, but they are still bounded by the side walls.
//
//	.	0 1 2 3 4 5 6 7 8 9
//	-1	. . . O . . . . . .		<- allowed, above the board
//	0	. . . O O O . . . .
//	1	. . . . . X . . . .		<- X in the stack, moving down collides
func (b Board) Collides(t Tetromino) bool {
	width := Cols
	if len(b) > 0 {
		width = len(b[0])
	}
	hit := false
	t.cells(func(row, col int) {
		switch {
		case hit:
		case col < 0 || col >= width || row >= len(b):
			hit = true
		case row >= 0 && b[row][col] != Empty:
			hit = true
		}
	})
	return hit
}
