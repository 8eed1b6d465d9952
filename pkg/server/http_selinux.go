package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sysward/selaudit/pkg/selinux"
)

// evaluateRequest carries the three already-parsed configuration snapshots.
// The field names follow the collectors that produce them: sestatus command
// output, the persisted SELinux config file, and the bootloader config.
type evaluateRequest struct {
	Status selinux.Status     `json:"sestatus"`
	Boot   selinux.BootConfig `json:"config"`
	Grub   selinux.GrubConfig `json:"grub"`
}

// evaluateHandler handles POST /v1/selinux/evaluate
func (s *HTTP) evaluateHandler(c *gin.Context) {
	var req evaluateRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	report := s.service.Evaluate(req.Status, req.Boot, req.Grub)

	c.JSON(http.StatusOK, report)
}

// reportHandler handles GET /v1/selinux/reports/:id
func (s *HTTP) reportHandler(c *gin.Context) {
	report, ok := s.service.GetReport(c.Param("id"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
