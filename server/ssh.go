package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"nestris/terminal"
	"nestris/tetris"

	"github.com/gliderlabs/ssh"
)

type SSHOptions struct {
	Addr string
	// HostKey is the path of the PEM host key. It is generated when missing.
	HostKey string
	Logger  *slog.Logger
	NewGame func() *tetris.Game
	NoGhost bool
}

// SSH serves a game to every ssh session, drawn with the same renderer as the local terminal.
type SSH struct {
	server  *ssh.Server
	logger  *slog.Logger
	newGame func() *tetris.Game
	noGhost bool
}

func NewSSH(o *SSHOptions) (*SSH, error) {
	if o == nil {
		o = &SSHOptions{}
	}
	l := o.Logger
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	ng := o.NewGame
	if ng == nil {
		ng = func() *tetris.Game { return tetris.NewGame(&tetris.Options{Logger: l}) }
	}
	s := &SSH{
		logger:  l,
		newGame: ng,
		noGhost: o.NoGhost,
	}
	s.server = &ssh.Server{
		Addr:    o.Addr,
		Handler: s.handleSession,
	}
	if o.HostKey != "" {
		if err := EnsureHostKey(o.HostKey); err != nil {
			return nil, err
		}
		if err := s.server.SetOption(ssh.HostKeyFile(o.HostKey)); err != nil {
			return nil, fmt.Errorf("unable to set host key: %w", err)
		}
	}
	return s, nil
}

func (s *SSH) ListenAndServe() error {
	s.logger.Info("ssh server listening", slog.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *SSH) Serve(l net.Listener) error {
	s.logger.Info("ssh server listening", slog.String("addr", l.Addr().String()))
	return s.server.Serve(l)
}

// Shutdown stops accepting sessions and waits for the open ones to end or ctx to expire.
func (s *SSH) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *SSH) Close() error {
	return s.server.Close()
}

func (s *SSH) handleSession(sess ssh.Session) {
	if _, _, ok := sess.Pty(); !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		_ = sess.Exit(1)
		return
	}

	l := s.logger.With(slog.String("user", sess.User()), slog.String("remote_addr", sess.RemoteAddr().String()))
	r, err := terminal.NewRender(sess, l, s.noGhost)
	if err != nil {
		l.Error("unable to create render", slog.String("error", err.Error()))
		_ = sess.Exit(1)
		return
	}

	l.Info("player connected")
	defer l.Info("player disconnected")

	g := s.newGame()
	r.Start()
	defer r.Stop()
	g.Start()
	defer g.Stop()

	quitCh := make(chan struct{})
	go func() {
		defer close(quitCh)
		var parser terminal.InputParser
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			actions, quit := parser.Parse(buf[:n])
			for _, a := range actions {
				g.Action(a)
			}
			if quit {
				return
			}
		}
	}()

	updates := g.GetUpdate()
	for {
		select {
		case <-quitCh:
			return
		case <-sess.Context().Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			r.Game(u)
		}
	}
}
