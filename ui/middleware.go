package ui

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5/middleware"
)

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(s.requestContext())

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		s.logger.Error("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.logger.Debug("[Static] Serving static files from embedded FS at /static")
	s.router.StaticFS("/static", http.FS(staticFS))
}

// requestContext echoes the chi request id and logs failed requests
func (s *Server) requestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := middleware.GetReqID(c.Request.Context())
		if reqID != "" {
			c.Header("X-Request-Id", reqID)
		}

		c.Next()

		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			s.logger.Debug("[%s] %s %s -> %d", reqID, c.Request.Method, c.Request.URL.Path, status)
		}
	}
}
