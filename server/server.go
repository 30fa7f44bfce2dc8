package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"nestris/pb"
	"nestris/tetris"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// DefaultIdleTimeout is how long a game nobody watches survives without commands.
const DefaultIdleTimeout = 5 * time.Minute

// game is a running tetris.Game and the Watch streams following it.
type game struct {
	tetris   *tetris.Game
	subs     map[chan *tetris.Tetris]struct{}
	lastSeen time.Time
	mu       sync.Mutex
}

func newGame(g *tetris.Game) *game {
	return &game{
		tetris:   g,
		subs:     make(map[chan *tetris.Tetris]struct{}),
		lastSeen: time.Now(),
	}
}

func (g *game) touch() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastSeen = time.Now()
}

// idle reports whether nobody watches the game and no command arrived since before.
func (g *game) idle(before time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.subs) == 0 && g.lastSeen.Before(before)
}

// broadcast forwards every update of the game to the subscribers until the game stops.
func (g *game) broadcast() {
	for u := range g.tetris.GetUpdate() {
		g.mu.Lock()
		for ch := range g.subs {
			select {
			case ch <- u:
			default:
				// subscriber is behind, replace its pending update.
				select {
				case <-ch:
				default:
				}
				ch <- u
			}
		}
		g.mu.Unlock()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for ch := range g.subs {
		close(ch)
		delete(g.subs, ch)
	}
	g.subs = nil
}

func (g *game) subscribe() (chan *tetris.Tetris, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.subs == nil {
		return nil, false
	}
	ch := make(chan *tetris.Tetris, 1)
	g.subs[ch] = struct{}{}
	return ch, true
}

// unsubscribe removes ch and returns how many subscribers are left.
// ok is false when ch was already gone because the game ended.
func (g *game) unsubscribe(ch chan *tetris.Tetris) (left int, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok = g.subs[ch]; ok {
		delete(g.subs, ch)
		close(ch)
	}
	g.lastSeen = time.Now()
	return len(g.subs), ok
}

type Options struct {
	Logger *slog.Logger
	// NewGame builds the game for every new session. Defaults to tetris.NewGame with the Logger.
	NewGame func() *tetris.Game
	// IdleTimeout ends games without watchers or commands for that long. Defaults to DefaultIdleTimeout.
	IdleTimeout time.Duration
}

// Server hosts games for remote players. Every game gets its own id and runs
// on the server, gravity included; clients only send actions and watch the state.
// A game ends with EndGame, when its last Watch stream goes away, or after
// IdleTimeout without watchers or commands.
type Server struct {
	pb.UnimplementedTetrisServiceServer
	logger       *slog.Logger
	newGame      func() *tetris.Game
	idleTimeout  time.Duration
	gameInstance map[string]*game
	mu           sync.Mutex
	doneCh       chan struct{}
	stop         sync.Once
}

func New(o *Options) *Server {
	if o == nil {
		o = &Options{}
	}
	l := o.Logger
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	ng := o.NewGame
	if ng == nil {
		ng = func() *tetris.Game { return tetris.NewGame(&tetris.Options{Logger: l}) }
	}
	idle := o.IdleTimeout
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	t := &Server{
		logger:       l,
		newGame:      ng,
		idleTimeout:  idle,
		gameInstance: make(map[string]*game),
		doneCh:       make(chan struct{}),
	}
	go t.reap()
	return t
}

func (t *Server) NewGame(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	gameID := uuid.New().String()
	g := newGame(t.newGame())

	t.mu.Lock()
	t.gameInstance[gameID] = g
	t.mu.Unlock()

	g.tetris.Start()
	go g.broadcast()
	t.logger.Info("game started", slog.String("game_id", gameID))
	return wrapperspb.String(gameID), nil
}

func (t *Server) Command(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	gameID, a, err := pb.ParseCommandRequest(in)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid command: %v", err)
	}
	g, err := t.game(gameID)
	if err != nil {
		return nil, err
	}
	g.touch()
	g.tetris.Action(a)
	return encode(g.tetris.Read())
}

func (t *Server) State(_ context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	g, err := t.game(in.GetValue())
	if err != nil {
		return nil, err
	}
	g.touch()
	return encode(g.tetris.Read())
}

func (t *Server) EndGame(_ context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if !t.end(in.GetValue(), "ended by the player") {
		return nil, status.Errorf(codes.NotFound, "game %q not found", in.GetValue())
	}
	return &emptypb.Empty{}, nil
}

func (t *Server) Watch(in *wrapperspb.StringValue, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	g, err := t.game(in.GetValue())
	if err != nil {
		return err
	}
	ch, ok := g.subscribe()
	if !ok {
		return status.Errorf(codes.NotFound, "game %q has ended", in.GetValue())
	}

	err = t.watch(stream, g, ch)
	if left, ok := g.unsubscribe(ch); ok && left == 0 {
		t.end(in.GetValue(), "last watcher left")
	}
	return err
}

// watch streams the game to one subscriber until the game ends or the stream goes away.
func (t *Server) watch(stream grpc.ServerStreamingServer[structpb.Struct], g *game, ch chan *tetris.Tetris) error {
	if err := send(stream, g.tetris.Read()); err != nil {
		return err
	}
	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u, ok := <-ch:
			if !ok {
				return nil
			}
			if err := send(stream, u); err != nil {
				return err
			}
		}
	}
}

// Stop ends every running game.
func (t *Server) Stop() {
	t.stop.Do(func() { close(t.doneCh) })
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, g := range t.gameInstance {
		g.tetris.Stop()
		delete(t.gameInstance, id)
	}
}

// end stops and forgets a game. It returns false if there was no such game.
func (t *Server) end(id, reason string) bool {
	t.mu.Lock()
	g, ok := t.gameInstance[id]
	delete(t.gameInstance, id)
	t.mu.Unlock()
	if !ok {
		return false
	}
	g.tetris.Stop()
	t.logger.Info("game ended", slog.String("game_id", id), slog.String("reason", reason))
	return true
}

// reap ends the idle games until the server stops.
func (t *Server) reap() {
	ticker := time.NewTicker(t.idleTimeout / 2)
	defer ticker.Stop()
	for {
		select {
		case <-t.doneCh:
			return
		case now := <-ticker.C:
			var idle []string
			t.mu.Lock()
			for id, g := range t.gameInstance {
				if g.idle(now.Add(-t.idleTimeout)) {
					idle = append(idle, id)
				}
			}
			t.mu.Unlock()
			for _, id := range idle {
				t.end(id, "idle")
			}
		}
	}
}

func (t *Server) running() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.gameInstance)
}

func (t *Server) game(id string) (*game, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	g, ok := t.gameInstance[id]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "game %q not found", id)
	}
	return g, nil
}

func send(stream grpc.ServerStreamingServer[structpb.Struct], u *tetris.Tetris) error {
	s, err := encode(u)
	if err != nil {
		return err
	}
	return stream.Send(s)
}

func encode(u *tetris.Tetris) (*structpb.Struct, error) {
	s, err := pb.EncodeState(u)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "%v", err)
	}
	return s, nil
}
