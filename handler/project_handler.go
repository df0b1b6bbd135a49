package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/web3_voting/service"
)

type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Website     string `json:"website"`
		Image       string `json:"image"`
		Chain       string `json:"chain"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": truncate(err.Error(), errTextLimit)})
		return
	}

	project, err := h.svc.Create(req.Name, req.Description, req.Website, req.Image, req.Chain)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": truncate(err.Error(), errTextLimit)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": project.ID, "message": "Project created"})
}

// GET /api/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	list, err := h.svc.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": truncate(err.Error(), errTextLimit)})
		return
	}
	c.JSON(http.StatusOK, list)
}
