package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libraryhub/libraryhub/internal/database"
)

// HealthController reports service liveness and database connectivity.
type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status returns service health including a database ping.
// GET /health
func (hc *HealthController) Status(c *gin.Context) {
	dbStatus := "ok"
	if sqlDB, err := hc.db.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unavailable"
	}

	status := http.StatusOK
	if dbStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   dbStatus,
		"version":  hc.version,
		"database": dbStatus,
	})
}
