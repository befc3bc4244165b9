// Package server exposes the marketing site and yield directory over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/apylist/apylist/internal/blog"
	"github.com/apylist/apylist/internal/config"
	"github.com/apylist/apylist/internal/model"
	"github.com/apylist/apylist/internal/viewstate"
	"github.com/apylist/apylist/internal/waitlist"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PoolSource provides one immutable snapshot of the directory per request.
type PoolSource interface {
	Fetch(ctx context.Context) model.Snapshot
}

type Server struct {
	settings config.Settings
	log      *zap.Logger
	source   PoolSource
	state    *viewstate.Store
	signups  *waitlist.Store
	posts    []blog.Post
	engine   *gin.Engine
}

func New(settings config.Settings, log *zap.Logger, source PoolSource, state *viewstate.Store, signups *waitlist.Store, posts []blog.Post) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		settings: settings,
		log:      log,
		source:   source,
		state:    state,
		signups:  signups,
		posts:    posts,
	}
	s.engine = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(requestLogger(s.log))

	corsConfig := cors.DefaultConfig()
	if len(s.settings.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = s.settings.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api")
	{
		api.GET("/pools", s.handleListPools)
		api.GET("/pools/export", s.handleExportPools)
		api.GET("/filters", s.handleFilterOptions)
		api.GET("/view", s.handleGetView)
		api.PUT("/view", s.handleSetView)
		api.GET("/consent", s.handleGetConsent)
		api.PUT("/consent", s.handleSetConsent)
		api.GET("/blog", s.handleListPosts)
		api.GET("/blog/:slug", s.handleGetPost)
		api.POST("/waitlist", s.handleJoinWaitlist)
		api.GET("/content/landing", s.handleLandingContent)
		api.GET("/content/legal/:page", s.handleLegalContent)
	}

	return r
}

// Handler returns the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.settings.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", s.settings.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
