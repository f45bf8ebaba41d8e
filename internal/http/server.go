// README: API surface; registers HTTP routes and delegates to the engine.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"zonefare/internal/engine"
	"zonefare/internal/http/middleware"
	"zonefare/internal/maps"
)

type ServerDeps struct {
	Engine *engine.Engine
	Routes *maps.RouteService // optional; nil disables metric estimation
	Log    *logrus.Logger
}

type Server struct {
	engine *engine.Engine
	routes *maps.RouteService
	log    *logrus.Logger
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		engine: deps.Engine,
		routes: deps.Routes,
		log:    deps.Log,
	}
}

func (s *Server) Routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logging(s.log), middleware.Recovery(s.log))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	api.POST("/quotes", s.handleQuote)
	api.POST("/zones/resolve", s.handleResolveZone)
	api.GET("/snapshot", s.handleSnapshot)
	api.POST("/admin/refresh", s.handleRefresh)

	return r
}
