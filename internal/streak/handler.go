package streak

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gymgate/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetMemberStreak godoc
// @Summary      Member visit streak
// @Description  Returns the member's current streak, longest streak and freeze-day budget.
// @Tags         streaks
// @Security     BearerAuth
// @Produce      json
// @Param        memberID  path      int  true  "Member ID"
// @Success      200       {object}  VisitStreak
// @Failure      400       {object}  api.ErrorResponse
// @Failure      404       {object}  api.ErrorResponse
// @Failure      500       {object}  api.ErrorResponse
// @Router       /members/{memberID}/streak [get]
func (h *Handler) GetMemberStreak(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	st, err := h.service.GetByMember(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, ErrStreakNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "No streak recorded for this member"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch streak"})
		return
	}

	c.JSON(http.StatusOK, st)
}
