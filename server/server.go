// Package server exposes the ledger over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rustyeddy/ledger/service"
	"github.com/rustyeddy/ledger/tracing"
)

type Server struct {
	ledger *service.Ledger
	log    *zap.SugaredLogger
}

// New returns the gin engine serving l. mode is a gin mode; empty means
// release.
func New(l *service.Ledger, log *zap.Logger, mode string) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	s := &Server{ledger: l, log: log.Sugar()}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))
	engine.Use(corsMiddleware())

	s.Register(engine)
	return engine
}

func (s *Server) Register(r *gin.Engine) {
	r.GET("/healthz", s.health)

	api := r.Group("/api")
	api.GET("/instruments", s.instruments)
	api.POST("/risk/position-size", s.positionSize)

	trades := api.Group("/trades")
	trades.POST("", s.createTrade)
	trades.GET("", s.listTrades)
	trades.GET("/dashboard", s.dashboard)
	trades.GET("/equity", s.equity)
	trades.GET("/day", s.day)
	trades.GET("/export", s.export)
	trades.GET("/:id", s.getTrade)

	refl := api.Group("/reflections")
	refl.GET("", s.listReflections)
	refl.POST("", s.createReflection)
	refl.GET("/prompt", s.currentPrompt)
	refl.POST("/prompt/skip", s.skipPrompt)
	refl.GET("/prompt-state", s.getPromptState)
	refl.PUT("/prompt-state", s.putPromptState)
	refl.PUT("/:id", s.updateReflection)
	refl.DELETE("/:id", s.deleteReflection)
}

// Run serves handler on addr until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err, ok := <-errCh:
		if ok {
			log.Error("server error", zap.Error(err))
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(c *gin.Context) {
	if err := s.ledger.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestLogger opens a span per request and logs it once handled.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx, span := tracing.Start(c.Request.Context(), c.Request.Method+" "+c.FullPath())
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		span.End()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		if traceID, _, ok := tracing.IDs(ctx); ok {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		log.Debug("http request", fields...)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}
