// Package client plays a game hosted by a remote server.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"nestris/pb"
	"nestris/tetris"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const timeout = 5 * time.Second

// Remote drives a game running on a server. Gravity runs on the server,
// the state comes back through a Watch stream.
type Remote struct {
	tsc      pb.TetrisServiceClient
	conn     io.Closer
	logger   *slog.Logger
	gameID   string
	updateCh chan *tetris.Tetris
	ctx      context.Context
	cancel   context.CancelFunc
	stop     sync.Once
}

// Dial connects to the server at addr. The connection is closed by Stop.
func Dial(addr string, l *slog.Logger) (*Remote, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("unable to create gRPC client: %w", err)
	}
	r := New(conn, l)
	r.conn = conn
	return r, nil
}

func New(cc grpc.ClientConnInterface, l *slog.Logger) *Remote {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Remote{
		tsc:      pb.NewTetrisServiceClient(cc),
		logger:   l,
		updateCh: make(chan *tetris.Tetris),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start creates the game on the server and begins watching it.
// If that fails the update channel is closed.
func (r *Remote) Start() {
	ctx, cancel := context.WithTimeout(r.ctx, timeout)
	defer cancel()
	id, err := r.tsc.NewGame(ctx, &emptypb.Empty{})
	if err != nil {
		r.logger.Error("unable to create a remote game", slog.String("error", err.Error()))
		close(r.updateCh)
		return
	}
	r.gameID = id.GetValue()
	r.logger = r.logger.With(slog.String("game_id", r.gameID))

	stream, err := r.tsc.Watch(r.ctx, id)
	if err != nil {
		r.logger.Error("unable to watch the remote game", slog.String("error", err.Error()))
		close(r.updateCh)
		return
	}
	go r.watch(stream)
}

// Stop ends the game on the server and releases the connection.
func (r *Remote) Stop() {
	r.stop.Do(func() {
		if r.gameID != "" {
			ctx, cancel := context.WithTimeout(r.ctx, timeout)
			if _, err := r.tsc.EndGame(ctx, wrapperspb.String(r.gameID)); err != nil {
				r.logger.Debug("unable to end the remote game", slog.String("error", err.Error()))
			}
			cancel()
		}
		r.cancel()
		if r.conn != nil {
			if err := r.conn.Close(); err != nil {
				r.logger.Debug("unable to close the connection", slog.String("error", err.Error()))
			}
		}
	})
}

func (r *Remote) Action(a tetris.Action) {
	if r.gameID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(r.ctx, timeout)
	defer cancel()
	if _, err := r.tsc.Command(ctx, pb.NewCommandRequest(r.gameID, a)); err != nil {
		r.logger.Error("unable to send action", slog.String("action", string(a)), slog.String("error", err.Error()))
	}
}

func (r *Remote) GetUpdate() <-chan *tetris.Tetris {
	return r.updateCh
}

func (r *Remote) watch(stream grpc.ServerStreamingClient[structpb.Struct]) {
	defer close(r.updateCh)
	for {
		msg, err := stream.Recv()
		if err != nil {
			r.logRecvErr(err)
			return
		}
		u, err := pb.DecodeState(msg)
		if err != nil {
			r.logger.Error("unable to decode the game state", slog.String("error", err.Error()))
			return
		}
		select {
		case r.updateCh <- u:
		case <-r.ctx.Done():
			return
		}
	}
}

func (r *Remote) logRecvErr(err error) {
	if errors.Is(err, io.EOF) {
		r.logger.Debug("stream.Recv() closed with EOF", slog.String("msg", err.Error()))
		return
	}
	st, ok := status.FromError(err)
	switch {
	case ok && st.Code() == codes.Canceled:
		r.logger.Debug("stream.Recv() closed with Cancel", slog.String("msg", st.Message()))
	case ok && st.Code() == codes.DeadlineExceeded:
		r.logger.Debug("stream.Recv() closed with DeadlineExceeded", slog.String("msg", st.Message()))
	default:
		r.logger.Error("stream.Recv() unable to receive message", slog.String("error", err.Error()))
	}
}
