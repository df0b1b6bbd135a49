package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/web3_voting/service"
)

type NonceHandler struct {
	svc *service.NonceService
}

func NewNonceHandler(svc *service.NonceService) *NonceHandler {
	return &NonceHandler{svc: svc}
}

// POST /api/nonce
// The address comes from the query string, with a JSON body fallback.
func (h *NonceHandler) IssueNonce(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		var req struct {
			Address string `json:"address"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			address = req.Address
		}
	}

	nonce, err := h.svc.Issue(address)
	if err != nil {
		if errors.Is(err, service.ErrAddressRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Address required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": truncate(err.Error(), errTextLimit)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": nonce.Address, "nonce": nonce.Value})
}
