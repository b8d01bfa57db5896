package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GustavoCaso/spendsort/internal/cli"
	"github.com/GustavoCaso/spendsort/internal/config"
	"github.com/GustavoCaso/spendsort/internal/handler"
	"github.com/GustavoCaso/spendsort/internal/logger"
	"github.com/GustavoCaso/spendsort/internal/session"
)

const (
	defaultTimeout  = 3
	shutdownTimeout = 10 * time.Second
)

type webCommand struct {
	port      int
	timeout   int
	uploadTTL time.Duration
}

func NewCommand() cli.Command {
	return &webCommand{}
}

func (c *webCommand) Description() string {
	return "JSON API to upload statements and correct their categories"
}

func (c *webCommand) SetFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.port, "p", 0, "port (defaults to the configured port)")
	fs.IntVar(&c.timeout, "t", defaultTimeout, "read header timeout in seconds")
}

// Configure fills the settings not given on the command line.
func (c *webCommand) Configure(conf *config.Config) {
	if c.port == 0 {
		c.port = conf.Port
	}
	c.uploadTTL = conf.UploadTTL
}

func (c *webCommand) Run(s *session.Session, logger *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", c.port))
	if err != nil {
		return fmt.Errorf("unable to listen on port %d: %w", c.port, err)
	}

	logger.Info("Open API on", "url", fmt.Sprintf("http://localhost:%d/api", c.port))

	return c.serve(ctx, listener, s, logger)
}

// serve runs the HTTP server and the upload cleanup until ctx is done, then
// shuts the server down gracefully.
func (c *webCommand) serve(ctx context.Context, listener net.Listener, s *session.Session, logger *logger.Logger) error {
	uploads := session.NewUploads(c.uploadTTL)
	h := handler.New(s, uploads, logger)

	server := &http.Server{
		ReadHeaderTimeout: time.Duration(c.timeout) * time.Second,
		Handler:           h.HTTPHandler,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		uploads.Run(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
