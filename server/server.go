// Package server - the HTTP transport in front of the transform engine.
//
// The surface is deliberately small: an upload form, a health/stats
// endpoint, and POST /process which takes a multipart image plus an
// operation name and answers with the processed JPEG. Everything pixel
// related is delegated to the codec and transforms packages; this layer only
// parses requests and maps error kinds onto status codes.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/lumenworks/imageproc/codec"
	"github.com/lumenworks/imageproc/pixel"
	"github.com/lumenworks/imageproc/profiler"
	"github.com/lumenworks/imageproc/transforms"
)

// ErrInvalidInput reports a request with a missing or empty image payload.
// It is detected here at the boundary, before any decoding or transform work
// happens.
var ErrInvalidInput = errors.New("server: invalid input")

// Config holds the tunables of the HTTP server.
type Config struct {
	// MaxDimension clamps decoded uploads so neither side exceeds it.
	// 0 disables the clamp.
	MaxDimension int
	// Quality is the JPEG quality of responses. 0 means codec.DefaultQuality.
	Quality int
	// Debug mounts the pprof endpoints. Do not enable on exposed deployments.
	Debug bool
}

// Server wires the gin engine, the operation timing tracker, and the
// processing configuration together.
type Server struct {
	cfg     Config
	tracker *profiler.Tracker
	engine  *gin.Engine
}

// New builds a fully routed server.
func New(cfg Config) *Server {
	s := &Server{
		cfg:     cfg,
		tracker: profiler.NewTracker(),
	}

	r := gin.New()

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/health"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/health", "/metrics"),
		prometheus.Instrument(),
	)

	if cfg.Debug {
		log.Println("WARNING: pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	r.GET("/", s.handleIndex)
	r.GET("/health", s.handleHealth)
	r.POST("/process", s.handleProcess)

	s.engine = r
	return s
}

// Engine exposes the underlying gin engine, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves HTTP on the given port until the listener fails.
func (s *Server) Run(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting image processing server on port %d...", port)
	if err := s.engine.Run(addr); err != nil && err != http.ErrServerClosed {
		return errors.Wrapf(err, "server failed on port %d", port)
	}
	return nil
}

// StatusFor maps an error from the processing path onto an HTTP status.
// Client mistakes (bad payload, unknown operation, undecodable bytes) are
// 400s; everything else, including a malformed buffer escaping a transform,
// is a 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, transforms.ErrUnknownOperation),
		errors.Is(err, codec.ErrDecodeFailure):
		return http.StatusBadRequest
	case errors.Is(err, pixel.ErrMalformedBuffer):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
