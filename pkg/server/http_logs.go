package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sysward/selaudit/pkg/service"
)

// appendRequest is the JSON body of a log ingestion call. Lines are stored
// verbatim; the server never rewrites or normalizes them.
type appendRequest struct {
	Lines []string `json:"lines"`
}

// appendHandler handles POST /v1/logs/:source
func (s *HTTP) appendHandler(c *gin.Context) {
	source := c.Param("source")

	var req appendRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	if len(req.Lines) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "empty batch"})
		return
	}
	if len(req.Lines) > s.config.Bounds.MaxBatch {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "batch too large"})
		return
	}
	for _, line := range req.Lines {
		if len(line) > s.config.Bounds.MaxLineBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "line too large"})
			return
		}
	}

	total := s.service.AppendLines(source, req.Lines)

	c.JSON(http.StatusOK, gin.H{
		"source":      source,
		"appended":    len(req.Lines),
		"total_lines": total,
	})
}

// sourcesHandler handles GET /v1/logs
func (s *HTTP) sourcesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sources": s.service.Sources()})
}

// searchHandler handles GET /v1/logs/:source/records?q=
// An absent or empty q returns every record of the view.
func (s *HTTP) searchHandler(c *gin.Context) {
	records, err := s.service.SearchView(c.Param("source"), c.Query("q"))
	if err != nil {
		s.abortSourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"count":   len(records),
	})
}

// containsHandler handles GET /v1/logs/:source/contains?q=
func (s *HTTP) containsHandler(c *gin.Context) {
	found, err := s.service.ContainsView(c.Param("source"), c.Query("q"))
	if err != nil {
		s.abortSourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contains": found})
}

// lastHandler handles GET /v1/logs/:source/last. The returned record may
// carry only raw_log when the trailing lines of the view did not parse.
func (s *HTTP) lastHandler(c *gin.Context) {
	record, err := s.service.LastRecord(c.Param("source"))
	if err != nil {
		s.abortSourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// abortSourceError converts service lookup errors to HTTP responses
func (s *HTTP) abortSourceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUnknownSource) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown source"})
		return
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
}
