package ui

import (
	"bytes"
	"html/template"
	"net/http"

	"limaprices/domain/core"
	"limaprices/domain/prices"
	"limaprices/internal/analysis"
	"limaprices/internal/errors"
	"limaprices/ui/templates/fragments"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// indexView is the data behind the full page layout
type indexView struct {
	Title     string
	Heading   string
	About     template.HTML
	ViewModel prices.ViewModel
	Selection prices.Selection
	Results   resultsView
}

// resultsView is the data behind the fragment swapped in on every search
type resultsView struct {
	Trigger prices.Trigger
	Info    prices.ReturnSummary
}

const pageHeading = "Apartment Prices in Lima by Districts"

// updateChart builds the chart for a selection: every column for All
// Districts, otherwise the selected column alone.
func (s *Server) updateChart(sel prices.Selection) (ChartSpec, error) {
	series, err := s.table.Select(sel.District)
	if err != nil {
		return ChartSpec{}, err
	}
	return NewChartSpec(series), nil
}

// updateDistrictInfo builds the district panel text for a selection
func (s *Server) updateDistrictInfo(sel prices.Selection) (prices.ReturnSummary, error) {
	return prices.DistrictInfo(s.table, sel.District)
}

// search runs both outputs of a trigger against the same selection
func (s *Server) search(c *gin.Context, sel prices.Selection) (prices.Trigger, ChartSpec, prices.ReturnSummary, error) {
	trigger := prices.NewTrigger(sel)

	var spec ChartSpec
	var info prices.ReturnSummary
	g, _ := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		spec, err = s.updateChart(sel)
		return err
	})
	g.Go(func() error {
		var err error
		info, err = s.updateDistrictInfo(sel)
		return err
	})
	if err := g.Wait(); err != nil {
		return trigger, ChartSpec{}, prices.ReturnSummary{}, err
	}

	s.logger.Debug("[Search] trigger=%s district=%q lines=%d", trigger.ID, sel.District, len(spec.Series))
	return trigger, spec, info, nil
}

// handleIndex renders the dashboard with the default selection already applied
func (s *Server) handleIndex(c *gin.Context) {
	sel := s.view.DefaultSelection()
	trigger, _, info, err := s.search(c, sel)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.renderTemplate(c, http.StatusOK, fragments.Index, indexView{
		Title:     s.cfg.UI.Title,
		Heading:   pageHeading,
		About:     s.about,
		ViewModel: s.view,
		Selection: sel,
		Results:   resultsView{Trigger: trigger, Info: info},
	})
}

func (s *Server) handleSearch(c *gin.Context) {
	sel, err := s.selectionFrom(c.PostForm("district"), c.PostForm("start_date"), c.PostForm("end_date"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	trigger, spec, info, err := s.search(c, sel)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if isHTMX(c) {
		s.renderTemplate(c, http.StatusOK, fragments.Results, resultsView{Trigger: trigger, Info: info})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trigger": trigger,
		"chart":   spec,
		"info":    info,
	})
}

func (s *Server) handleChart(c *gin.Context) {
	sel, err := s.selectionFrom(c.Query("district"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	spec, err := s.updateChart(sel)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, spec)
}

// handleChartSVG draws the chart. The table never changes while the server
// runs, so the ETag only depends on the dataset and the district.
func (s *Server) handleChartSVG(c *gin.Context) {
	sel, err := s.selectionFrom(c.Query("district"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	// the results fragment stamps the image URL with its trigger id
	if raw := c.Query("trigger"); raw != "" {
		trigger, err := core.ParseTriggerID(raw)
		if err != nil {
			s.respondError(c, errors.InvalidInput(err.Error()))
			return
		}
		s.logger.Trace("[Chart] trigger=%s district=%q", trigger, sel.District)
	}

	etag := `"` + core.NewHash([]byte(s.table.Fingerprint().String()+"|"+sel.District)).Short() + `"`
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}

	spec, err := s.updateChart(sel)
	if err != nil {
		s.respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderSVG(&buf, spec); err != nil {
		s.respondError(c, err)
		return
	}

	c.Header("ETag", etag)
	c.Header("Cache-Control", "public, max-age=300")
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

func (s *Server) handleDistricts(c *gin.Context) {
	c.JSON(http.StatusOK, s.view)
}

func (s *Server) handleDistrictInfo(c *gin.Context) {
	info, err := s.updateDistrictInfo(prices.Selection{District: c.Param("name")})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) handleDistrictStats(c *gin.Context) {
	series, err := s.table.Column(c.Param("name"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	summary, err := analysis.Summarize(series)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"dataset":   s.table.Fingerprint().Short(),
		"districts": len(s.view.Options) - 1,
	})
}
