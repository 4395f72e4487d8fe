package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olivier-w/folio/internal/canvas"
	"github.com/olivier-w/folio/internal/contact"
	"github.com/olivier-w/folio/internal/particles"
	"github.com/olivier-w/folio/internal/portfolio"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	defaultCols = 80
	defaultRows = 24
	maxCols     = 400
	maxRows     = 200
)

// Options configures a Server.
type Options struct {
	Addr            string
	Mode            string // gin mode: debug, release or test
	ShutdownTimeout time.Duration
	Profile         portfolio.Profile
	Submitter       contact.Submitter
	ContactRate     rate.Limit
	ContactBurst    int
	Logger          *zap.Logger
}

// Server exposes a headless particle field and the portfolio content over
// HTTP.
type Server struct {
	runner  *particles.Runner
	opts    Options
	limiter *rate.Limiter
	engine  *gin.Engine
	logger  *zap.Logger
}

// New wires the routes. The runner is started by Run, not here.
func New(runner *particles.Runner, opts Options) *Server {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if opts.ContactBurst <= 0 {
		opts.ContactBurst = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		runner:  runner,
		opts:    opts,
		limiter: rate.NewLimiter(opts.ContactRate, opts.ContactBurst),
		logger:  logger,
	}

	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())
	r.GET("/healthz", s.health)

	api := r.Group("/api")
	api.GET("/field", s.field)
	api.GET("/frame", s.frame)
	api.POST("/pointer", s.pointer)
	api.POST("/resize", s.resize)
	api.GET("/projects", s.projects)
	api.POST("/contact", s.contact)

	s.engine = r
	return s
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler { return s.engine }

// Run starts the particle loop and serves until ctx ends, then shuts the
// listener down gracefully and stops the loop.
func (s *Server) Run(ctx context.Context) error {
	if err := s.runner.Start(ctx); err != nil && !errors.Is(err, particles.ErrRunning) {
		return fmt.Errorf("start particle loop: %w", err)
	}
	defer s.runner.Stop()

	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Serving particle field", zap.String("addr", s.opts.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", s.opts.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"running": s.runner.Running(),
		"frame":   s.runner.Snapshot().Number,
	})
}

func (s *Server) field(c *gin.Context) {
	c.JSON(http.StatusOK, s.runner.Snapshot())
}

// frame renders the latest snapshot as braille text sized cols x rows.
func (s *Server) frame(c *gin.Context) {
	cols, err := boundedInt(c.Query("cols"), defaultCols, maxCols)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cols: " + err.Error()})
		return
	}
	rows, err := boundedInt(c.Query("rows"), defaultRows, maxRows)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rows: " + err.Error()})
		return
	}

	profile := canvas.ProfileNone
	if c.Query("color") == "true" {
		profile = canvas.ProfileTrueColor
	}
	cv := canvas.NewBraille(canvas.WithProfile(profile))
	cv.Resize(cols, rows)

	snap := s.runner.Snapshot()
	particles.Draw(newScaled(cv, snap.Width, snap.Height), s.runner.Params(), snap.Particles)
	c.Header("X-Frame-Number", strconv.FormatUint(snap.Number, 10))
	c.String(http.StatusOK, cv.View()+"\n")
}

func boundedInt(raw string, def, limit int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("must be an integer")
	}
	if n < 1 || n > limit {
		return 0, fmt.Errorf("must be between 1 and %d", limit)
	}
	return n, nil
}

type pointerRequest struct {
	X *float64 `json:"x" binding:"required"`
	Y *float64 `json:"y" binding:"required"`
}

// resizeRequest bounds the field so one request cannot ask for an
// arbitrarily large surface.
type resizeRequest struct {
	Width  float64 `json:"width" binding:"required,gt=0,lte=8192"`
	Height float64 `json:"height" binding:"required,gt=0,lte=8192"`
}

func (s *Server) pointer(c *gin.Context) {
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.staged(c, s.runner.PointerMove(*req.X, *req.Y))
}

func (s *Server) resize(c *gin.Context) {
	var req resizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.staged(c, s.runner.Resize(req.Width, req.Height))
}

func (s *Server) staged(c *gin.Context, ok bool) {
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event buffer full, retry"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"staged": true})
}

func (s *Server) projects(c *gin.Context) {
	category := c.DefaultQuery("category", portfolio.All)
	c.JSON(http.StatusOK, gin.H{
		"category":   category,
		"categories": portfolio.Categories(s.opts.Profile.Projects),
		"projects":   portfolio.Filter(s.opts.Profile.Projects, category),
	})
}

func (s *Server) contact(c *gin.Context) {
	if !s.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many messages, try again later"})
		return
	}
	if s.opts.Submitter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "contact form unavailable"})
		return
	}

	var sub contact.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt, err := s.opts.Submitter.Submit(c.Request.Context(), sub)
	var fieldErrs contact.FieldErrors
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, receipt)
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrs})
	default:
		s.logger.Error("Contact submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
	}
}
