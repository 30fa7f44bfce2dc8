package terminal

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/template"

	"nestris/tetris"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"

	resetPos   = "\033[H"           // Reset cursor position to 0,0
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[?25h"
	clearLine  = "\033[K" // Clear from the cursor to the end of the line
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[tetris.Shape]string{
	tetris.I: Cyan,
	tetris.J: Blue,
	tetris.L: Orange,
	tetris.O: Yellow,
	tetris.S: Green,
	tetris.Z: Red,
	tetris.T: Magenta,
}

// side panel lines, by board row.
var help = map[int]string{
	12: "  ←/a →/d   move",
	13: "  ↑/w       rotate",
	14: "  ↓/s       soft drop",
	15: "  space     hard drop",
	16: "  enter/r   reset",
	17: "  q         quit",
}

type templateData struct {
	Local   *tetris.Tetris
	NoGhost bool
}

// Render draws games on a terminal using ANSI escape codes.
type Render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	noGhost  bool
}

func NewRender(w io.Writer, l *slog.Logger, noGhost bool) (*Render, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &Render{
		writer:   w,
		logger:   l,
		template: tmp,
		noGhost:  noGhost,
	}, nil
}

// Start clears the screen and hides the cursor.
func (r *Render) Start() { fmt.Fprint(r.writer, hideCursor) }

// Stop moves the cursor below the game and shows it again.
func (r *Render) Stop() { fmt.Fprintf(r.writer, "\033[%d;0H\r\n%s", tetris.Rows+4, showCursor) }

// Game draws a frame of the game.
func (r *Render) Game(t *tetris.Tetris) {
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, &templateData{Local: t, NoGhost: r.noGhost}); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
	}
}

// Message draws a box with a message over the board.
func (r *Render) Message(msg string) {
	fmt.Fprint(r.writer, "\033[10;3H+--------------------+")
	fmt.Fprintf(r.writer, "\033[11;3H|%s|", center(msg, 20))
	fmt.Fprint(r.writer, "\033[12;3H+--------------------+")
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"board": board,
		"panel": panel,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	l = strings.ReplaceAll(l, "Terminal Tetris", "\033[1mTerminal Tetris\033[0m")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

func cell(s tetris.Shape) string {
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", colorMap[s])
}

func board(td *templateData) [tetris.Rows][tetris.Cols]string {
	rendered := [tetris.Rows][tetris.Cols]string{}
	for y := range rendered {
		for x := range rendered[y] {
			rendered[y][x] = "  "
		}
	}
	if td == nil || td.Local == nil {
		return rendered
	}

	// renders the stack
	for y, row := range td.Local.Board {
		for x, v := range row {
			if _, ok := colorMap[v]; ok && inside(y, x) {
				rendered[y][x] = cell(v)
			}
		}
	}

	// renders the ghost and the current tetromino, skipping the rows above the board.
	piece := td.Local.Tetromino
	grid := piece.Grid()
	if !td.NoGhost {
		ghost := td.Local.Ghost()
		for iy, y := range grid {
			for ix, x := range y {
				if x && inside(ghost.Row+iy, ghost.Col+ix) {
					rendered[ghost.Row+iy][ghost.Col+ix] = "[]"
				}
			}
		}
	}
	for iy, y := range grid {
		for ix, x := range y {
			if x && inside(piece.Row+iy, piece.Col+ix) {
				rendered[piece.Row+iy][piece.Col+ix] = cell(piece.Shape)
			}
		}
	}
	return rendered
}

func inside(row, col int) bool {
	return row >= 0 && row < tetris.Rows && col >= 0 && col < tetris.Cols
}

func panel(td *templateData, row int) string {
	if td == nil || td.Local == nil {
		return clearLine
	}
	var out string
	switch row {
	case 1:
		out = "  SCORE"
	case 2:
		out = fmt.Sprintf("  %d", td.Local.Score)
	case 4:
		out = "  LEVEL"
	case 5:
		out = fmt.Sprintf("  %d", td.Local.Level)
	case 7:
		out = "  LINES"
	case 8:
		out = fmt.Sprintf("  %d", td.Local.LinesClear)
	default:
		out = help[row]
	}
	return out + clearLine
}

func center(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
