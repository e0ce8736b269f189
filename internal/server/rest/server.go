// Package rest exposes the photojournal services over HTTP/JSON.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/photojournal/internal/logging"
	"github.com/dmitrijs2005/photojournal/internal/server/config"
	"github.com/dmitrijs2005/photojournal/internal/server/models"
	"github.com/dmitrijs2005/photojournal/internal/server/services"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type UserService interface {
	SignUp(ctx context.Context, username, password string) (*models.User, error)
	SignIn(ctx context.Context, username, password string) (*services.SignInResult, error)
}

type EntryService interface {
	List(ctx context.Context, userID int64) ([]*models.Entry, error)
	Get(ctx context.Context, userID, entryID int64) (*models.Entry, error)
	Create(ctx context.Context, userID int64, in services.EntryInput) (*models.Entry, error)
	Update(ctx context.Context, userID, entryID int64, in services.EntryInput) (*models.Entry, error)
	Delete(ctx context.Context, userID, entryID int64) error
}

type PhotoService interface {
	NewUploadURL(ctx context.Context, userID int64) (*models.PhotoUpload, error)
}

// HTTPServer serves the REST API. photos may be nil, in which case the
// upload URL route is not registered.
type HTTPServer struct {
	address        string
	users          UserService
	entries        EntryService
	photos         PhotoService
	logger         logging.Logger
	jwtSecret      []byte
	allowedOrigins []string
	authLimiter    *ipRateLimiter
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, us UserService, es EntryService, ps PhotoService) *HTTPServer {
	s := &HTTPServer{
		address:        cfg.EndpointAddrHTTP,
		logger:         l.With("module", "http_server"),
		users:          us,
		entries:        es,
		photos:         ps,
		jwtSecret:      []byte(cfg.SecretKey),
		allowedOrigins: cfg.AllowedOrigins,
	}
	if cfg.AuthRateLimit > 0 {
		s.authLimiter = newIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	}
	return s
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
