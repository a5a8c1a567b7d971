package ui

import (
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"limaprices/domain/core"
	"limaprices/domain/prices"
	"limaprices/internal/errors"
	"limaprices/ui/templates/fragments"

	"github.com/gin-gonic/gin"
)

// appError classifies domain errors so the edge can pick a status code
func appError(err error) error {
	switch {
	case errors.IsAppError(err):
		return err
	case core.IsNotFoundError(err):
		return errors.WithCode(errors.CodeNotFound, err)
	case stderrors.Is(err, core.ErrEmptySeries):
		return errors.WithCode(errors.CodeDatasetInvalid, err)
	default:
		return errors.WithCode(errors.CodeInternalError, err)
	}
}

// respondError writes err as {"error": message}, or as the error fragment for HTMX
func (s *Server) respondError(c *gin.Context, err error) {
	err = appError(err)
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		s.logger.Debug("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	if isHTMX(c) {
		s.renderTemplate(c, status, fragments.ErrorNotice, err.Error())
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// selectionFrom reads the control values of a trigger. The district defaults
// to All Districts and the range to the full table span.
func (s *Server) selectionFrom(district, start, end string) (prices.Selection, error) {
	sel := s.view.DefaultSelection()

	if district = strings.TrimSpace(district); district != "" {
		sel.District = district
	}
	if !sel.IsAll() && !s.table.HasDistrict(sel.District) {
		return sel, core.NewDistrictNotFoundError(sel.District)
	}

	var err error
	if sel.Range.Start, err = parseBound(start, sel.Range.Start); err != nil {
		return sel, errors.InvalidInput("start_date: " + err.Error())
	}
	if sel.Range.End, err = parseBound(end, sel.Range.End); err != nil {
		return sel, errors.InvalidInput("end_date: " + err.Error())
	}
	if sel.Range.End.Before(sel.Range.Start) {
		return sel, errors.InvalidInput("end_date is before start_date")
	}
	return sel, nil
}

func parseBound(value string, fallback time.Time) (time.Time, error) {
	if value = strings.TrimSpace(value); value == "" {
		return fallback, nil
	}
	return core.ParseMonth(value)
}
