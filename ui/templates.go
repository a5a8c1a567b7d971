package ui

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"limaprices/domain/core"

	"github.com/gin-gonic/gin"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatMonth": func(t time.Time) string { return core.FormatMonth(t) },
		"formatDate":  func(t time.Time) string { return core.FormatDate(t) },
	}
}

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	// Render to a buffer first so a template error never leaves a half-written page
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("Template error for %s: %v (data %T)", templateName, err, data)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Template rendering failed"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Warn("Error writing template response: %v", err)
	}
}

// HTMX helpers
func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}
