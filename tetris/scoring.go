package tetris

// FixedLevel is the level every game is scored at. Level progression is not
// implemented, the scoring formula still takes it into account.
const FixedLevel = 0

// NES points for the rows cleared by a single lock.
var lineScores = map[int]int{
	1: 40,
	2: 100,
	3: 300,
	4: 1200,
}

// ScoreForLines returns the points for clearing lines rows at once on level.
// Line counts without an entry in the table are worth nothing.
func ScoreForLines(lines, level int) int {
	return lineScores[lines] * (level + 1)
}
