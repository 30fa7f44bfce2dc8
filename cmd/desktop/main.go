package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"time"

	"nestris/tetris"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

const (
	cellSize     = 24
	boardX       = cellSize
	boardY       = cellSize
	panelX       = boardX + tetris.Cols*cellSize + cellSize
	screenWidth  = panelX + 8*cellSize
	screenHeight = boardY + tetris.Rows*cellSize + cellSize
)

var colors = map[tetris.Shape]color.Color{
	tetris.I: colornames.Cyan,
	tetris.J: colornames.Blue,
	tetris.L: colornames.Orange,
	tetris.O: colornames.Yellow,
	tetris.S: colornames.Limegreen,
	tetris.Z: colornames.Red,
	tetris.T: colornames.Magenta,
}

var keys = map[ebiten.Key]tetris.Action{
	ebiten.KeyArrowLeft:  tetris.MoveLeft,
	ebiten.KeyA:          tetris.MoveLeft,
	ebiten.KeyArrowRight: tetris.MoveRight,
	ebiten.KeyD:          tetris.MoveRight,
	ebiten.KeyArrowUp:    tetris.Rotate,
	ebiten.KeyW:          tetris.Rotate,
	ebiten.KeyArrowDown:  tetris.SoftDrop,
	ebiten.KeyS:          tetris.SoftDrop,
	ebiten.KeySpace:      tetris.HardDrop,
	ebiten.KeyEnter:      tetris.Reset,
	ebiten.KeyR:          tetris.Reset,
}

// game drives a Tetris from the ebiten loop, one Tick per frame.
type game struct {
	tetris *tetris.Tetris
	last   time.Time
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for k, a := range keys {
		if inpututil.IsKeyJustPressed(k) {
			g.tetris.Apply(a)
		}
	}
	now := time.Now()
	g.tetris.Tick(now.Sub(g.last))
	g.last = now
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	vector.StrokeRect(screen, boardX-1, boardY-1, tetris.Cols*cellSize+2, tetris.Rows*cellSize+2, 1, colornames.Gray, false)

	for row, cells := range g.tetris.Board {
		for col, s := range cells {
			if s != tetris.Empty {
				drawCell(screen, row, col, colors[s])
			}
		}
	}

	ghost := g.tetris.Ghost()
	piece := g.tetris.Tetromino
	for row, cells := range piece.Grid() {
		for col, filled := range cells {
			if !filled {
				continue
			}
			drawCell(screen, ghost.Row+row, ghost.Col+col, colornames.Dimgray)
		}
	}
	for row, cells := range piece.Grid() {
		for col, filled := range cells {
			if filled {
				drawCell(screen, piece.Row+row, piece.Col+col, colors[piece.Shape])
			}
		}
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE\n%d\n\nLEVEL\n%d\n\nLINES\n%d",
		g.tetris.Score, g.tetris.Level, g.tetris.LinesClear), panelX, boardY)
	ebitenutil.DebugPrintAt(screen, "arrows/wasd  move\nspace  hard drop\nenter  reset\nq  quit", panelX, boardY+12*cellSize)
}

func (g *game) Layout(int, int) (int, int) {
	return screenWidth, screenHeight
}

func drawCell(screen *ebiten.Image, row, col int, clr color.Color) {
	if row < 0 || row >= tetris.Rows || col < 0 || col >= tetris.Cols {
		return
	}
	x := float32(boardX + col*cellSize)
	y := float32(boardY + row*cellSize)
	vector.DrawFilledRect(screen, x+1, y+1, cellSize-2, cellSize-2, clr, false)
}

func main() {
	bag := flag.Bool("bag", false, "deal tetrominoes from a shuffled bag of seven")
	flag.Parse()

	var r tetris.Randomizer
	if *bag {
		r = tetris.NewBagRandomizer()
	}

	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("Tetris")
	if err := ebiten.RunGame(&game{tetris: tetris.New(r, tetris.FixedLevel), last: time.Now()}); err != nil {
		log.Fatal(err)
	}
}
