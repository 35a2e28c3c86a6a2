package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stockquote/internal/config"
	"stockquote/internal/hybrid"
	"stockquote/internal/provider"
)

const apiVersion = "v1"

// Server is the HTTP API over a resolver.
type Server struct {
	engine   *gin.Engine
	resolver *hybrid.Resolver
	cfg      config.Server
	logger   *zap.Logger
}

func NewServer(resolver *hybrid.Resolver, cfg config.Server, logger *zap.Logger) *Server {
	s := &Server{
		engine:   gin.New(),
		resolver: resolver,
		cfg:      cfg,
		logger:   logger,
	}
	s.engine.HandleMethodNotAllowed = true
	s.engine.Use(s.requestID(), s.accessLog(), s.recovery(), s.timeout(time.Duration(cfg.RequestTimeoutSec)*time.Second))

	if cfg.Pprof {
		pprof.Register(s.engine, "/debug/pprof")
	}
	s.registerRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, envelope{Error: "Not found", Sources: []attribution{}})
	})
	s.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, envelope{
			Error:   "Method not allowed",
			Message: "Only GET requests are supported",
			Sources: []attribution{},
		})
	})

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := s.engine.Group("/api")
	api.GET("/stock", s.getStock)
	api.GET("/quotes", s.getQuotes)
	api.GET("/status", s.getStatus)
}

type attribution struct {
	Source     string    `json:"source"`
	Timestamp  time.Time `json:"timestamp"`
	APIVersion string    `json:"apiVersion"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    *provider.Quote `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
	Sources []attribution   `json:"sources"`
}

func attribute(q provider.Quote) attribution {
	return attribution{Source: hybrid.DescribeSource(q), Timestamp: q.LastUpdated, APIVersion: apiVersion}
}

func (s *Server) getStock(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("symbol"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, envelope{
			Error:   "Missing required parameter: symbol",
			Message: "Please provide a stock symbol as a query parameter",
			Sources: []attribution{},
		})
		return
	}

	q, err := s.resolver.Resolve(c.Request.Context(), raw)
	if err != nil {
		c.JSON(statusFor(err), envelope{
			Error:   err.Error(),
			Message: "Failed to fetch stock data from all sources",
			Sources: []attribution{},
		})
		return
	}
	c.JSON(http.StatusOK, envelope{Success: true, Data: &q, Sources: []attribution{attribute(q)}})
}

type batchItem struct {
	Input   string          `json:"input"`
	Success bool            `json:"success"`
	Data    *provider.Quote `json:"data,omitempty"`
	Source  *attribution    `json:"source,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type batchResponse struct {
	Success bool        `json:"success"`
	Results []batchItem `json:"results"`
	Error   string      `json:"error,omitempty"`
}

func (s *Server) getQuotes(c *gin.Context) {
	symbols := splitCSV(c.Query("symbols"))
	switch {
	case len(symbols) == 0:
		c.JSON(http.StatusBadRequest, batchResponse{Error: "Missing required parameter: symbols", Results: []batchItem{}})
		return
	case len(symbols) > s.cfg.MaxSymbols:
		c.JSON(http.StatusBadRequest, batchResponse{Error: "too many symbols", Results: []batchItem{}})
		return
	}

	results := s.resolver.ResolveMany(c.Request.Context(), symbols, s.cfg.BatchConcurrency)
	out := batchResponse{Success: true, Results: make([]batchItem, 0, len(results))}
	for _, r := range results {
		item := batchItem{Input: r.Input}
		if r.Err != nil {
			item.Error = r.Err.Error()
		} else {
			q, a := r.Quote, attribute(r.Quote)
			item.Success, item.Data, item.Source = true, &q, &a
		}
		out.Results = append(out.Results, item)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.resolver.Status(c.Request.Context()))
}

// statusFor maps resolver errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, provider.ErrInvalidSymbol):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, hybrid.ErrExhausted):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
