package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nestris/pb"
	"nestris/server"
	"nestris/tetris"

	"github.com/gliderlabs/ssh"
	"google.golang.org/grpc"
)

func main() {
	grpcAddr := flag.String("grpc", ":9000", "gRPC listen address, empty to disable")
	sshAddr := flag.String("ssh", ":2222", "ssh listen address, empty to disable. $PORT overrides it")
	hostKey := flag.String("hostkey", "host_key", "ssh host key, generated when missing")
	bag := flag.Bool("bag", false, "deal tetrominoes from a shuffled bag of seven")
	debug := flag.Bool("debug", false, "log debug messages")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	newGame := func() *tetris.Game {
		o := &tetris.Options{Logger: logger}
		if *bag {
			o.Randomizer = tetris.NewBagRandomizer()
		}
		return tetris.NewGame(o)
	}

	if port := os.Getenv("PORT"); port != "" {
		*sshAddr = ":" + port
	}
	if *grpcAddr == "" && *sshAddr == "" {
		logger.Error("nothing to serve, both -grpc and -ssh are empty")
		os.Exit(2)
	}

	errCh := make(chan error, 2)

	var gs *grpc.Server
	var ts *server.Server
	if *grpcAddr != "" {
		lis, err := net.Listen("tcp", *grpcAddr)
		if err != nil {
			logger.Error("failed to listen", slog.String("addr", *grpcAddr), slog.String("error", err.Error()))
			os.Exit(1)
		}
		ts = server.New(&server.Options{Logger: logger, NewGame: newGame})
		gs = grpc.NewServer()
		pb.RegisterTetrisServiceServer(gs, ts)
		go func() {
			logger.Info("grpc server listening", slog.String("addr", lis.Addr().String()))
			errCh <- gs.Serve(lis)
		}()
	}

	var ss *server.SSH
	if *sshAddr != "" {
		var err error
		ss, err = server.NewSSH(&server.SSHOptions{
			Addr:    *sshAddr,
			HostKey: *hostKey,
			Logger:  logger,
			NewGame: newGame,
		})
		if err != nil {
			logger.Error("failed to create ssh server", slog.String("error", err.Error()))
			os.Exit(1)
		}
		go func() {
			if err := ss.ListenAndServe(); !errors.Is(err, ssh.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server stopped", slog.Any("error", err))
	}

	if ss != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := ss.Shutdown(ctx); err != nil {
			logger.Debug("ssh shutdown", slog.String("error", err.Error()))
		}
		cancel()
	}
	if gs != nil {
		ts.Stop()
		gs.GracefulStop()
	}
}
