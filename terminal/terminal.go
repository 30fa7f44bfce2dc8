package terminal

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"nestris/tetris"

	"github.com/eiannone/keyboard"
)

// Engine is a game the terminal can drive, either local or remote.
type Engine interface {
	Start()
	Stop()
	Action(tetris.Action)
	GetUpdate() <-chan *tetris.Tetris
}

type Terminal struct {
	engine Engine
	render *Render
	logger *slog.Logger
	kbCh   <-chan keyboard.KeyEvent
}

type Options struct {
	Writer  io.Writer
	Logger  *slog.Logger
	NoGhost bool
}

// New opens the keyboard and prepares the terminal to play e.
// Close must be called to give the keyboard back.
func New(e Engine, o *Options) (*Terminal, error) {
	if o == nil {
		o = &Options{}
	}
	var w io.Writer = os.Stdout
	if o.Writer != nil {
		w = o.Writer
	}
	l := o.Logger
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	r, err := NewRender(w, l, o.NoGhost)
	if err != nil {
		return nil, err
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return &Terminal{
		engine: e,
		render: r,
		logger: l,
		kbCh:   kb,
	}, nil
}

// Run plays until a quit key is pressed or the engine stops sending updates.
func (t *Terminal) Run() {
	t.render.Start()
	defer t.render.Stop()
	t.engine.Start()
	defer t.engine.Stop()

	updates := t.engine.GetUpdate()
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				t.logger.Info("game updates channel closed")
				t.render.Message("disconnected")
				return
			}
			t.render.Game(u)
		case event, ok := <-t.kbCh:
			if !ok {
				t.logger.Error("Keyboard events channel closed unexpectedly")
				return
			}
			if event.Err != nil {
				t.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
				return
			}
			a, quit := KeyAction(event)
			if quit {
				return
			}
			if a != "" {
				t.engine.Action(a)
			}
		}
	}
}

func (t *Terminal) Close() error {
	return keyboard.Close()
}
