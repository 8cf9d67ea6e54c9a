// Package server exposes a small local HTTP control surface mirroring the
// tray menu: status, metric/speed/theme mutation, and a live snapshot
// stream over websocket.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"runcat/internal/engine"
	"runcat/internal/metrics"
	"runcat/internal/schedule"
	"runcat/internal/utils"
	"runcat/internal/version"
)

// Server wires the control API around the engine.
type Server struct {
	engine  *engine.Engine
	hub     *Hub
	limiter *RateLimiter
	log     *utils.Logger
	httpSrv *http.Server
}

// New constructs the control API server and registers its snapshot stream
// with the engine.
func New(eng *engine.Engine, logger *utils.Logger) *Server {
	s := &Server{
		engine:  eng,
		hub:     NewHub(logger),
		limiter: NewRateLimiter(rate.Every(time.Second/10), 20),
		log:     logger,
	}
	eng.SetSampleListener(func(st engine.Status) {
		if payload, err := json.Marshal(st); err == nil {
			s.hub.Broadcast(payload)
		}
	})
	return s
}

type metricRequest struct {
	Metric string `json:"metric" binding:"required,oneof=cpu memory network"`
}

type speedRequest struct {
	Speed string `json:"speed" binding:"required,oneof=slow medium fast"`
}

type themeRequest struct {
	DarkMode *bool `json:"dark_mode" binding:"required"`
}

// Router builds the gin engine with all control routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.limiter.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": version.String()})
	})

	api := r.Group("/api")
	{
		api.GET("/status", func(c *gin.Context) {
			c.JSON(http.StatusOK, s.engine.Status())
		})
		api.POST("/metric", func(c *gin.Context) {
			var req metricRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := s.engine.ChangeMetric(metrics.Kind(req.Metric)); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, s.engine.Status())
		})
		api.POST("/speed", func(c *gin.Context) {
			var req speedRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := s.engine.ChangeSpeed(schedule.Speed(req.Speed)); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, s.engine.Status())
		})
		api.POST("/theme", func(c *gin.Context) {
			var req themeRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := s.engine.ChangeTheme(*req.DarkMode); err != nil {
				// Theme switch aborts are recoverable: prior set stays active.
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, s.engine.Status())
		})
	}

	r.GET("/ws", s.hub.HandleWebSocket())

	return r
}

// Start launches the hub and the HTTP listener in the background.
func (s *Server) Start(host string, port int) {
	go s.hub.Run()

	s.httpSrv = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", host, port),
		Handler:        s.Router(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	go func() {
		s.log.Writef("Control API listening on %s", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Writef("Control API failed: %v", err)
		}
	}()
}

// Shutdown stops the listener, the hub, and the rate limiter.
func (s *Server) Shutdown(ctx context.Context) {
	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			s.log.Writef("Control API shutdown: %v", err)
		}
	}
	s.hub.Stop()
	s.limiter.Stop()
}
