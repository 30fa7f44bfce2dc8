package terminal

import (
	"unicode/utf8"

	"nestris/tetris"

	"github.com/eiannone/keyboard"
)

// KeyAction maps a key press to a game action. quit is true for the keys that
// leave the game. Keys without a binding return an empty action.
func KeyAction(event keyboard.KeyEvent) (a tetris.Action, quit bool) {
	switch {
	case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
		return tetris.MoveLeft, false
	case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
		return tetris.MoveRight, false
	case event.Key == keyboard.KeyArrowUp || event.Rune == 'w':
		return tetris.Rotate, false
	case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
		return tetris.SoftDrop, false
	case event.Key == keyboard.KeySpace:
		return tetris.HardDrop, false
	case event.Key == keyboard.KeyEnter || event.Rune == 'r':
		return tetris.Reset, false
	case event.Key == keyboard.KeyCtrlC || event.Rune == 'q':
		return "", true
	}
	return "", false
}

// ParseInput converts raw terminal bytes into game actions, with the same
// bindings as KeyAction. It keeps no state between calls, use an InputParser
// when the bytes come from a stream.
func ParseInput(data []byte) (actions []tetris.Action, quit bool) {
	var p InputParser
	return p.Parse(data)
}

// InputParser reads game actions from a stream of raw terminal bytes.
// Arrow keys arrive as CSI (ESC [ A) or SS3 (ESC O A) sequences, and a
// sequence cut by the end of a read is completed by the next one.
type InputParser struct {
	pending []byte
}

// Parse returns the actions in data. Everything after a quit key is ignored.
func (p *InputParser) Parse(data []byte) (actions []tetris.Action, quit bool) {
	buf := append(p.pending, data...)
	p.pending = nil

	i := 0
	for i < len(buf) {
		if buf[i] == 0x1b {
			if i+1 < len(buf) && buf[i+1] != '[' && buf[i+1] != 'O' {
				// a lone escape.
				i++
				continue
			}
			if i+2 >= len(buf) {
				p.pending = append([]byte(nil), buf[i:]...)
				break
			}
			switch buf[i+2] {
			case 'A':
				actions = append(actions, tetris.Rotate)
			case 'B':
				actions = append(actions, tetris.SoftDrop)
			case 'C':
				actions = append(actions, tetris.MoveRight)
			case 'D':
				actions = append(actions, tetris.MoveLeft)
			}
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(buf[i:])
		switch r {
		case 'a', 'A':
			actions = append(actions, tetris.MoveLeft)
		case 'd', 'D':
			actions = append(actions, tetris.MoveRight)
		case 'w', 'W':
			actions = append(actions, tetris.Rotate)
		case 's', 'S':
			actions = append(actions, tetris.SoftDrop)
		case ' ':
			actions = append(actions, tetris.HardDrop)
		case '\r', '\n', 'r', 'R':
			actions = append(actions, tetris.Reset)
		case 'q', 'Q', 3: // 3 is Ctrl-C
			return actions, true
		}
		i += size
	}
	return actions, false
}
