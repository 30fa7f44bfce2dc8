package tetris

import (
	"log/slog"
	"sync"
	"time"
)

// FrameInterval is how often Game advances the gravity clock.
const FrameInterval = 16 * time.Millisecond

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	t := time.NewTicker(d)
	t.Stop()
	return &wrappedTicker{ticker: t}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

type request struct {
	action Action
	done   chan struct{}
}

// Game runs a Tetris on its own goroutine. Gravity ticks and actions are
// handled one at a time by that goroutine, so they never interleave.
type Game struct {
	logger   *slog.Logger
	actionCh chan request
	updateCh chan *Tetris
	doneCh   chan struct{}
	tetris   *Tetris
	ticker   Ticker
	last     time.Time
	mu       sync.RWMutex
	start    sync.Once
	stop     sync.Once
}

type Options struct {
	Logger     *slog.Logger
	Randomizer Randomizer
	// Ticker paces the gravity clock. Defaults to a ticker firing every FrameInterval.
	Ticker Ticker
	Level  int
}

func NewGame(o *Options) *Game {
	if o == nil {
		o = &Options{}
	}
	l := o.Logger
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	var ticker Ticker = o.Ticker
	if ticker == nil {
		ticker = newWrappedTicker(FrameInterval)
	}
	return &Game{
		logger:   l,
		actionCh: make(chan request),
		updateCh: make(chan *Tetris, 1),
		doneCh:   make(chan struct{}),
		tetris:   New(o.Randomizer, o.Level),
		ticker:   ticker,
	}
}

// Start begins the game loop. A first update with the initial state is sent right away.
// Only the first call does anything. Starting a stopped game closes the update channel.
func (g *Game) Start() {
	g.start.Do(func() {
		select {
		case <-g.doneCh:
			close(g.updateCh)
			return
		default:
		}
		g.last = time.Now()
		g.publish()
		g.ticker.Reset(FrameInterval)
		go g.listen()
	})
}

// Stop ends the game loop and closes the update channel. It is safe to call more than once.
func (g *Game) Stop() {
	g.stop.Do(func() {
		g.ticker.Stop()
		close(g.doneCh)
	})
}

// Action applies a to the game and returns once it has been applied.
// Actions sent after Stop are dropped.
func (g *Game) Action(a Action) {
	r := request{action: a, done: make(chan struct{})}
	select {
	case g.actionCh <- r:
	case <-g.doneCh:
		return
	}
	select {
	case <-r.done:
	case <-g.doneCh:
	}
}

// GetUpdate returns a channel that receives a copy of the game every time it changes.
// Only the latest state is kept if the receiver falls behind.
func (g *Game) GetUpdate() <-chan *Tetris {
	return g.updateCh
}

// Read returns a copy of the current Tetris status that's safe to read concurrently.
func (g *Game) Read() *Tetris {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tetris.Copy()
}

func (g *Game) listen() {
	defer close(g.updateCh)
	for {
		var res Result
		select {
		case now := <-g.ticker.C():
			g.mu.Lock()
			elapsed := now.Sub(g.last)
			g.last = now
			res = g.tetris.Tick(elapsed)
			g.mu.Unlock()
		case r := <-g.actionCh:
			g.mu.Lock()
			res = g.tetris.Apply(r.action)
			g.mu.Unlock()
			close(r.done)
		case <-g.doneCh:
			return
		}
		g.report(res)
		if res.Changed() {
			g.publish()
		}
	}
}

func (g *Game) report(r Result) {
	if r.Locked {
		g.logger.Debug("tetromino locked", slog.Int("cleared", r.Cleared), slog.Int("points", r.Points))
	}
	if r.GameOver {
		g.logger.Info("no room for the next tetromino, starting over")
	}
	if r.Reset {
		g.logger.Info("game reset")
	}
}

// publish sends the current state, replacing a pending update the receiver hasn't read yet.
// listen is the only sender, so the second send can't block.
func (g *Game) publish() {
	s := g.Read()
	select {
	case g.updateCh <- s:
	default:
		select {
		case <-g.updateCh:
		default:
		}
		g.updateCh <- s
	}
}
