package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/web3_voting/service"
)

// errTextLimit caps how much of an underlying error is echoed to callers.
const errTextLimit = 60

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// POST /api/vote
func (h *VoteHandler) CastVote(c *gin.Context) {
	var req struct {
		ProjectID string `json:"project_id" binding:"required"`
		Address   string `json:"address" binding:"required"`
		Signature string `json:"signature" binding:"required"`
		Nonce     string `json:"nonce" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": truncate(err.Error(), errTextLimit)})
		return
	}

	result, err := h.svc.CastVote(req.ProjectID, req.Address, req.Signature, req.Nonce)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrUsedNonce):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or used nonce"})
		case errors.Is(err, service.ErrMalformedSignature):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature: " + truncate(err.Error(), errTextLimit)})
		case errors.Is(err, service.ErrSignatureMismatch):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Signature verification failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": truncate(err.Error(), errTextLimit)})
		}
		return
	}

	message := "Vote recorded"
	if result.Already {
		message = "Vote already recorded"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": message})
}

// GET /api/projects/:id/votes
func (h *VoteHandler) ProjectVotes(c *gin.Context) {
	projectID := c.Param("id")
	total, err := h.svc.CountForProject(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": truncate(err.Error(), errTextLimit)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project_id": projectID, "votes": total})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
