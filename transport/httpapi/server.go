package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iguene/Bibliovirtuelle/lending/coordinator"
)

// ErrEmptyJWTSecret is returned when the server is created without a signing secret.
var ErrEmptyJWTSecret = errors.New("jwt secret must not be empty")

// Server is the REST front of a coordinator.
type Server struct {
	echo    *echo.Echo
	lending *coordinator.Coordinator
	logger  *slog.Logger
}

// NewServer registers all routes. Tokens must be signed with jwtSecret.
func NewServer(lending *coordinator.Coordinator, jwtSecret []byte, logger *slog.Logger) (*Server, error) {
	if len(jwtSecret) == 0 {
		return nil, ErrEmptyJWTSecret
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = errorHandler(logger)

	s := &Server{echo: e, lending: lending, logger: logger}

	registerMiddlewares(e, logger)
	s.registerRoutes(jwtSecret)

	return s, nil
}

func (s *Server) registerRoutes(jwtSecret []byte) {
	s.echo.GET("/health", s.health)

	v1 := s.echo.Group("/v1", jwtMiddleware(jwtSecret), actorMiddleware)

	v1.POST("/books", s.registerBook, requireAdmin)
	v1.PUT("/books/:id/quantity", s.adjustQuantity, requireAdmin)
	v1.PUT("/books/:id/status", s.setStatus, requireAdmin)
	v1.GET("/books/:id/inventory", s.inventory)
	v1.POST("/books/:id/reviews", s.reviewBook)
	v1.GET("/books/:id/reviews", s.bookReviews)

	v1.POST("/loans", s.borrow)
	v1.GET("/loans", s.listLoans)
	v1.GET("/loans/:id", s.loan)
	v1.POST("/loans/:id/return", s.returnLoan)
	v1.POST("/loans/:id/lost", s.declareLost, requireAdmin)
	v1.GET("/me/loans", s.myLoans)

	v1.POST("/reservations", s.reserve)
	v1.GET("/reservations", s.listReservations)
	v1.POST("/reservations/:id/cancel", s.cancelReservation)

	v1.GET("/reviews", s.listReviews)
}

// Handler returns the HTTP handler, for tests and custom servers.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("http server listening", "addr", addr)

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown stops accepting requests and waits for running ones until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
