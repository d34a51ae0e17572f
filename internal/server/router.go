// Package server wires the HTTP engine: API routes, static front-end, metrics and lifecycle.
package server

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/celerix-dev/mergington-activities/internal/api"
	"github.com/celerix-dev/mergington-activities/internal/engine"
)

// EntryPage is the front-end document the root path redirects to.
const EntryPage = "/static/index.html"

// Options configures the router.
type Options struct {
	Store          engine.ActivityStore
	Static         fs.FS // front-end bundle, served under /static
	Logger         *zap.Logger
	CORSOrigin     string
	MetricsEnabled bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type Router struct {
	engine *gin.Engine
	opts   Options

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

func NewRouter(opts Options) *Router {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	r := &Router{opts: opts}
	r.engine = r.build()
	return r
}

// Handler returns the underlying http.Handler, mainly for tests.
func (r *Router) Handler() http.Handler {
	return r.engine
}

func (r *Router) build() *gin.Engine {
	e := gin.New()
	e.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		r.opts.Logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}))
	e.Use(requestID(), accessLog(r.opts.Logger), cors(r.opts.CORSOrigin))
	if r.opts.MetricsEnabled {
		e.Use(instrument())
		e.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	e.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := &api.Handler{Store: r.opts.Store, Logger: r.opts.Logger}
	h.Register(e)

	if r.opts.Static != nil {
		e.StaticFS("/static", http.FS(r.opts.Static))
	}
	e.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, EntryPage)
	})

	e.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})
	return e
}

// Listen serves HTTP on addr until Stop is called.
// It returns nil after a graceful stop.
func (r *Router) Listen(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      r.engine,
		ReadTimeout:  r.opts.ReadTimeout,
		WriteTimeout: r.opts.WriteTimeout,
		IdleTimeout:  r.opts.IdleTimeout,
	}

	r.mu.Lock()
	r.listener = listener
	r.server = srv
	r.mu.Unlock()

	r.opts.Logger.Info("http server listening", zap.String("addr", listener.Addr().String()))
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the bound address, or nil before Listen has bound.
func (r *Router) Addr() net.Addr {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listener == nil {
		return nil
	}
	return r.listener.Addr()
}

// Stop gracefully shuts the server down, waiting for in-flight requests until ctx expires.
func (r *Router) Stop(ctx context.Context) error {
	r.mu.Lock()
	srv := r.server
	r.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
