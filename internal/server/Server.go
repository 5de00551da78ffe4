package server

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/Mshel/snakepilot/internal/config"
	"github.com/Mshel/snakepilot/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

// New builds the ssh server. Every session gets its own game through handler.
func New(cfg *config.Config, logger *log.Logger, handler bubbletea.Handler) (*ssh.Server, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	limiter := NewConnectionLimiter(cfg.Server.MaxConnectionsPerIP, logger)

	return wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)),
		wish.WithHostKeyPath(cfg.Server.HostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(handler),
			logging.MiddlewareWithLogger(logger),
			activeterm.Middleware(),
			limiter.Middleware,
		),
	)
}

// GameHandler starts the menu flow for a session. The session's games stop
// when it disconnects.
func GameHandler(cfg *config.Config, logger *log.Logger) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := s.Pty()
		sessionLogger := logger.With("user", s.User(), "ip", remoteIP(s))
		model := ui.NewControllerModel(s.Context(), cfg, sessionLogger, pty.Window.Width, pty.Window.Height)
		return model, []tea.ProgramOption{tea.WithAltScreen()}
	}
}

// Serve runs srv until ctx is done, then shuts it down, waiting at most
// grace for open sessions.
func Serve(ctx context.Context, srv *ssh.Server, logger *log.Logger, grace time.Duration) error {
	errs := make(chan error, 1)
	go func() {
		logger.Info("starting ssh server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err, ok := <-errs:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("stopping ssh server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}
