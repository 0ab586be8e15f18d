// Package web assembles the CareerConnect HTTP server: the gin engine with
// its middleware and controllers, the rate limiter store and the scheduled
// maintenance jobs.
package web

import (
	"context"
	"embed"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/careerconnect/careerconnect/caching"
	"github.com/careerconnect/careerconnect/config"
	"github.com/careerconnect/careerconnect/logger"
	"github.com/careerconnect/careerconnect/util/common"
	"github.com/careerconnect/careerconnect/web/cache"
	"github.com/careerconnect/careerconnect/web/controller"
	"github.com/careerconnect/careerconnect/web/entity"
	"github.com/careerconnect/careerconnect/web/job"
	"github.com/careerconnect/careerconnect/web/locale"
	"github.com/careerconnect/careerconnect/web/middleware"
	"github.com/careerconnect/careerconnect/web/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed translation/*
var i18nFS embed.FS

// EngineOptions are the dependencies NewEngine wires into the router.
type EngineOptions struct {
	Auth *service.AuthService
	// RateStore counts requests on the credential routes. Nil disables the
	// limiter.
	RateStore   middleware.Counter
	RateLimit   int
	CORSOrigins []string
}

// NewEngine builds the gin engine serving the API.
func NewEngine(opts EngineOptions) (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}
	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}

	engine := gin.New()
	if config.IsDebug() {
		engine.Use(gin.Logger())
	}
	engine.Use(middleware.Recovery())
	corsCfg := corsConfig(opts.CORSOrigins)
	if err := corsCfg.Validate(); err != nil {
		return nil, err
	}
	engine.Use(cors.New(corsCfg))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(locale.LocalizerMiddleware())

	var limiter gin.HandlerFunc
	if opts.RateStore != nil && opts.RateLimit > 0 {
		limiter = middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(opts.RateStore, opts.RateLimit))
	}
	controller.NewAPIController(&engine.RouterGroup, opts.Auth, limiter)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, entity.Msg{
			Message: locale.Localize(c, "errors.routeNotFound", "Route not found", nil),
		})
	})
	return engine, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept-Language"}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	cfg.MaxAge = 12 * time.Hour
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// Server represents the CareerConnect web server with its scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	memoryCache *caching.Cache
	usesRedis   bool

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// rateStore picks the Redis counter when CC_REDIS_ADDR is set and the
// in-process cache otherwise.
func (s *Server) rateStore() (middleware.Counter, error) {
	if addr := config.GetRedisAddr(); addr != "" {
		if addr == config.RedisEmbedded {
			addr = ""
		}
		if err := cache.InitRedis(addr); err != nil {
			return nil, err
		}
		s.usesRedis = true
		return cache.NewCounter(cache.GetClient()), nil
	}
	s.memoryCache = caching.NewCache()
	if err := s.memoryCache.Init(); err != nil {
		return nil, err
	}
	return s.memoryCache, nil
}

func (s *Server) startTask() {
	if _, err := s.cron.AddJob("@hourly", job.NewResetRedemptionCleanupJob()); err != nil {
		logger.Warning("add reset redemption job:", err)
	}
	if _, err := s.cron.AddJob("@daily", job.NewAuditCleanupJob()); err != nil {
		logger.Warning("add audit cleanup job:", err)
	}
	if _, err := s.cron.AddJob("@daily", job.NewClearLogsJob()); err != nil {
		logger.Warning("add clear logs job:", err)
	}
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	auth, err := service.NewAuthService()
	if err != nil {
		return err
	}
	store, err := s.rateStore()
	if err != nil {
		return err
	}

	s.cron = cron.New(cron.WithSeconds())
	s.cron.Start()

	engine, err := NewEngine(EngineOptions{
		Auth:        auth,
		RateStore:   store,
		RateLimit:   config.GetRateLimit(),
		CORSOrigins: config.GetCORSOrigins(),
	})
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped:", err)
		}
	}()

	s.startTask()
	return nil
}

// Stop shuts down the HTTP server, the cron jobs and the limiter store.
func (s *Server) Stop() error {
	defer s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2, err3 error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
		err1 = s.httpServer.Shutdown(ctx)
		cancel()
	} else if s.listener != nil {
		err2 = s.listener.Close()
	}
	if s.memoryCache != nil {
		s.memoryCache.Flush()
	}
	if s.usesRedis {
		err3 = cache.Close()
	}
	return common.Combine(err1, err2, err3)
}

// Addr is the address the server listens on, once started.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}
