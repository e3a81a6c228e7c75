package attendance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gymgate/internal/api"
	"gymgate/internal/auth"
	"gymgate/internal/token"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Check a member in
// @Description  Admits a member into a gym. Identity comes from a single-use entry token or, for staff-operated check-ins, an explicit member ID.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body attendance.CheckInRequest true "Check-in payload"
// @Success      201 {object} attendance.Record
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /checkin [post]
func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindErrorMessage(err)})
		return
	}

	rec, err := h.service.CheckIn(c.Request.Context(), req)
	if err != nil {
		h.writeCheckInError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) writeCheckInError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, token.ErrTokenNotFound):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Entry token not found"})
	case errors.Is(err, token.ErrTokenAlreadyUsed):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Entry token already used"})
	case errors.Is(err, token.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Entry token expired"})
	case errors.Is(err, ErrMemberRequired):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Member ID or token value required"})
	case errors.Is(err, ErrMembershipInvalid):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrAlreadyCheckedIn):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Member already checked in"})
	case errors.Is(err, ErrGymCapacityExceeded):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Gym is at capacity"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Check-in failed"})
	}
}

// @Summary      Check a member out
// @Description  Closes the member's open session and frees their occupancy slot
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body attendance.CheckOutRequest true "Check-out payload"
// @Success      200 {object} attendance.Record
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /checkout [post]
func (h *Handler) CheckOut(c *gin.Context) {
	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindErrorMessage(err)})
		return
	}

	rec, err := h.service.CheckOut(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNotCheckedIn) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Member has no open session"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Check-out failed"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// @Summary      Member attendance history
// @Description  Lists a member's attendance records, newest first
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Param        limit query int false "Page size (default 20, max 100)"
// @Param        offset query int false "Page offset"
// @Success      200 {array} attendance.Record
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{memberID}/attendance [get]
func (h *Handler) History(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	records, err := h.service.History(c.Request.Context(), memberID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch attendance"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// @Summary      Void an attendance record
// @Description  Admin-only correction; the record is retained with an audit trail, never deleted
// @Tags         admin,attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        recordID path int true "Record ID"
// @Param        request body attendance.VoidRequest true "Void payload"
// @Success      200 {object} attendance.Record
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/attendance/{recordID}/void [post]
func (h *Handler) Void(c *gin.Context) {
	recordID, err := strconv.Atoi(c.Param("recordID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid record ID"})
		return
	}

	var req VoidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.BindErrorMessage(err)})
		return
	}

	actorID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	rec, err := h.service.Void(c.Request.Context(), recordID, req.Reason, actorID)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Attendance record not found"})
		case errors.Is(err, ErrAlreadyVoid):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Attendance record already void"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to void record"})
		}
		return
	}

	c.JSON(http.StatusOK, rec)
}
