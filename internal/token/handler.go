package token

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gymgate/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Issue an entry token
// @Description  Issues a fresh single-use entry token for a member, revoking any outstanding one
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body token.IssueTokenRequest true "Token request"
// @Success      201 {object} api.TokenResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /tokens [post]
func (h *Handler) Issue(c *gin.Context) {
	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindErrorMessage(err)})
		return
	}

	t, err := h.service.Issue(c.Request.Context(), req.MemberID, req.GymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, api.TokenResponse{
		TokenValue: t.Value,
		ExpiresAt:  t.ExpiresAt.Format(time.RFC3339),
	})
}
