package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Web3 Voting API running"})
}

// GET /test
// Connectivity diagnostics; not part of the voting protocol.
func (h *HealthHandler) TestDatabase(c *gin.Context) {
	resp := gin.H{
		"backend":           "running",
		"database":          "not available",
		"connection_status": "not connected",
		"tables":            []string{},
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		resp["database"] = "error: " + truncate(err.Error(), errTextLimit)
		c.JSON(http.StatusOK, resp)
		return
	}
	if err := sqlDB.Ping(); err != nil {
		resp["database"] = "error: " + truncate(err.Error(), errTextLimit)
		c.JSON(http.StatusOK, resp)
		return
	}

	resp["database"] = "connected"
	resp["connection_status"] = "connected"
	if tables, err := h.db.Migrator().GetTables(); err == nil {
		resp["tables"] = tables
	}
	c.JSON(http.StatusOK, resp)
}
