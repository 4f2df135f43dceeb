// Package server exposes the scrape pipeline over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"jobscraper/internal/browser"
	"jobscraper/internal/errors"
	"jobscraper/internal/logger"
	"jobscraper/internal/models"
	"jobscraper/internal/pipeline"
)

const Version = "1.0.0"

// Defaults applied to fields a scrape request leaves out.
var (
	DefaultKeywords = []string{"python developer"}
	DefaultLocation = "United States"
	DefaultPages    = 1
)

// Server holds the HTTP handlers.
type Server struct {
	runner       *Runner
	board        *StatusBoard
	browserCheck func() browser.InstallStatus
	port         string
	now          func() time.Time
	log          zerolog.Logger
}

func New(runner *Runner, board *StatusBoard, port string) *Server {
	return &Server{
		runner:       runner,
		board:        board,
		browserCheck: browser.CheckInstallation,
		port:         port,
		now:          time.Now,
		log:          logger.For("server"),
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), cors())

	r.GET("/", s.root)
	r.GET("/health", s.health)
	r.GET("/api/status", s.status)
	r.POST("/api/scrape-jobs", s.scrapeJobs)
	return r
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Job Scraper API",
		"version": Version,
		"endpoints": gin.H{
			"POST /api/scrape-jobs": "Scrape jobs from job boards",
			"GET /health":           "Health check",
			"GET /api/status":       "Get scraping status",
		},
		"status": "running",
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"timestamp":       models.FormatTimestamp(s.now()),
		"scraping_status": s.board.Status(),
		"browser":         s.browserCheck(),
		"environment": gin.H{
			"playwright_path": browser.BrowsersPath(),
			"go_version":      runtime.Version(),
			"port":            s.port,
		},
	})
}

func (s *Server) status(c *gin.Context) {
	c.JSON(http.StatusOK, s.board.Snapshot())
}

// scrapeRequest distinguishes absent fields (defaults apply) from present but
// invalid ones (rejected).
type scrapeRequest struct {
	Platform *string  `json:"platform"`
	Keywords []string `json:"keywords"`
	Pages    *int     `json:"pages"`
	Location *string  `json:"location"`
}

func (r scrapeRequest) toRequest() (pipeline.Request, error) {
	req := pipeline.Request{
		Keywords: DefaultKeywords,
		Pages:    DefaultPages,
		Location: DefaultLocation,
	}
	if r.Platform != nil {
		req.Platform = *r.Platform
	}
	if r.Keywords != nil {
		if len(r.Keywords) == 0 {
			return pipeline.Request{}, errors.Validation("keywords must be a non-empty list")
		}
		req.Keywords = r.Keywords
	}
	if r.Pages != nil {
		req.Pages = *r.Pages
	}
	if r.Location != nil && *r.Location != "" {
		req.Location = *r.Location
	}
	return req, nil
}

func decodeScrapeRequest(body io.Reader) (pipeline.Request, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return pipeline.Request{}, errors.WithKind(err, errors.KindValidation)
	}
	var raw scrapeRequest
	if len(bytes.TrimSpace(data)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			return pipeline.Request{}, errors.Validationf("invalid request body: %v", err)
		}
	}
	return raw.toRequest()
}

func (s *Server) scrapeJobs(c *gin.Context) {
	s.log.Info().Msg("📨 Received scrape request")

	req, err := decodeScrapeRequest(c.Request.Body)
	if err != nil {
		s.fail(c, err)
		return
	}

	// The run outlives a dropped client connection; the store write must not
	// be abandoned halfway through.
	rc, err := s.runner.Run(context.WithoutCancel(c.Request.Context()), req)
	if err != nil {
		s.fail(c, err)
		return
	}

	res := rc.Result
	scrapedAt := models.FormatTimestamp(rc.FinishedAt)
	if res.Store != nil && res.Store.ScrapedAt != "" {
		scrapedAt = res.Store.ScrapedAt
	}
	s.log.Info().Str("run_id", rc.ID).Msgf("✅ Returning %d jobs to client", len(res.Admitted))
	c.JSON(http.StatusOK, successResponse(rc.ID, scrapedAt, res.Admitted))
}

func (s *Server) fail(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	msg := "Internal server error: " + err.Error()
	switch errors.KindOf(err) {
	case errors.KindValidation:
		code = http.StatusBadRequest
		msg = err.Error()
		s.log.Warn().Err(err).Msg("❌ Validation error")
	case errors.KindConflict:
		code = http.StatusConflict
		msg = err.Error()
		s.log.Warn().Err(err).Msg("⚠️ Scrape rejected")
	default:
		s.log.Error().Err(err).Msg("❌ Server error")
	}
	c.JSON(code, failureResponse(msg))
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
