// Package httpapi exposes the DRS-facing HTTP surface: object access
// requests and signed download redemption.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/drsgate/internal/logging"
	"github.com/dmitrijs2005/drsgate/internal/server/models"
	"github.com/dmitrijs2005/drsgate/internal/server/services"
)

// AccessProvider serves DRS objects with access information.
type AccessProvider interface {
	RequestAccess(ctx context.Context, drsID, publicKey string) (*models.DrsObjectWithAccess, error)
}

// TokenRedeemer validates a signed download token and resolves its envelope.
type TokenRedeemer interface {
	Redeem(ctx context.Context, tokenID, signature string) (*models.Envelope, string, error)
}

// RangeServer serves payload byte ranges, either by redirect or by
// envelope-prefixed assembly.
type RangeServer interface {
	BuildRedirect(ctx context.Context, fileID string, rng services.ByteRange) (string, string, error)
	AssembleEnvelopePrefixed(ctx context.Context, fileID string, rng services.ByteRange, envelopeHeader []byte) ([]byte, error)
}

type HTTPServer struct {
	address   string
	access    AccessProvider
	tokens    TokenRedeemer
	ranges    RangeServer
	logger    logging.Logger
	jwtSecret []byte
}

func NewHTTPServer(address string, logger logging.Logger, access AccessProvider, tokens TokenRedeemer, ranges RangeServer, secretKey string) *HTTPServer {
	return &HTTPServer{
		address:   address,
		access:    access,
		tokens:    tokens,
		ranges:    ranges,
		logger:    logger.With("module", "http_server"),
		jwtSecret: []byte(secretKey),
	}
}

// Router wires up the gin engine. Split out from Run so tests can drive
// handlers through httptest without binding a socket.
func (s *HTTPServer) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.handleHealth)
	r.GET("/objects/:id", s.accessTokenMiddleware(), s.handleGetObject)
	r.GET("/downloads/:id", s.handleDownload)
	r.GET("/downloads/:id/", s.handleDownload)

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *HTTPServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
