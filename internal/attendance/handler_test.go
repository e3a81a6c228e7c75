package attendance

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gymgate/internal/token"
)

// MockAttendanceService is a mock implementation of Service
type MockAttendanceService struct {
	mock.Mock
}

func (m *MockAttendanceService) CheckIn(ctx context.Context, req CheckInRequest) (*Record, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Record), args.Error(1)
}

func (m *MockAttendanceService) CheckOut(ctx context.Context, req CheckOutRequest) (*Record, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Record), args.Error(1)
}

func (m *MockAttendanceService) History(ctx context.Context, memberID, limit, offset int) ([]Record, error) {
	args := m.Called(ctx, memberID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Record), args.Error(1)
}

func (m *MockAttendanceService) Void(ctx context.Context, recordID int, reason string, actorID int) (*Record, error) {
	args := m.Called(ctx, recordID, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Record), args.Error(1)
}

func setupAttendanceRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	router := gin.New()
	router.POST("/checkin", h.CheckIn)
	router.POST("/checkout", h.CheckOut)
	router.GET("/members/:memberID/attendance", h.History)
	router.POST("/admin/attendance/:recordID/void", func(c *gin.Context) {
		// Stands in for the auth middleware.
		c.Set("user_id", 3)
		c.Set("user_role", "admin")
	}, h.Void)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCheckInHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockAttendanceService)
		router := setupAttendanceRouter(svc)

		svc.On("CheckIn", mock.Anything, CheckInRequest{TokenValue: "tok-abc", GymID: 1, Method: "qr"}).
			Return(&Record{ID: 10, MemberID: 7, GymID: 1, Status: StatusOpen}, nil)

		w := postJSON(t, router, "/checkin", `{"token_value":"tok-abc","gym_id":1,"method":"qr"}`)

		assert.Equal(t, http.StatusCreated, w.Code)

		var rec Record
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
		assert.Equal(t, 7, rec.MemberID)
	})

	t.Run("error mapping", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
		}{
			{name: "token not found", err: token.ErrTokenNotFound, wantStatus: http.StatusUnauthorized},
			{name: "token already used", err: token.ErrTokenAlreadyUsed, wantStatus: http.StatusUnauthorized},
			{name: "token expired", err: token.ErrTokenExpired, wantStatus: http.StatusUnauthorized},
			{name: "missing identity", err: ErrMemberRequired, wantStatus: http.StatusBadRequest},
			{name: "membership denied", err: &MembershipInvalidError{Reason: "membership expired"}, wantStatus: http.StatusForbidden},
			{name: "already checked in", err: ErrAlreadyCheckedIn, wantStatus: http.StatusConflict},
			{name: "at capacity", err: ErrGymCapacityExceeded, wantStatus: http.StatusConflict},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc := new(MockAttendanceService)
				router := setupAttendanceRouter(svc)

				svc.On("CheckIn", mock.Anything, mock.Anything).Return(nil, tt.err)

				w := postJSON(t, router, "/checkin", `{"token_value":"tok-abc","gym_id":1,"method":"qr"}`)

				assert.Equal(t, tt.wantStatus, w.Code)
			})
		}
	})

	t.Run("denial carries the oracle reason", func(t *testing.T) {
		svc := new(MockAttendanceService)
		router := setupAttendanceRouter(svc)

		svc.On("CheckIn", mock.Anything, mock.Anything).
			Return(nil, &MembershipInvalidError{Reason: "membership expired"})

		w := postJSON(t, router, "/checkin", `{"token_value":"tok-abc","gym_id":1,"method":"qr"}`)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "membership expired")
	})

	t.Run("invalid method rejected", func(t *testing.T) {
		svc := new(MockAttendanceService)
		router := setupAttendanceRouter(svc)

		w := postJSON(t, router, "/checkin", `{"member_id":7,"gym_id":1,"method":"carrier_pigeon"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CheckIn", mock.Anything, mock.Anything)
	})
}

func TestCheckOutHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockAttendanceService)
		router := setupAttendanceRouter(svc)

		svc.On("CheckOut", mock.Anything, CheckOutRequest{MemberID: 7, GymID: 1, Method: "qr"}).
			Return(&Record{ID: 10, MemberID: 7, GymID: 1, Status: StatusClosed}, nil)

		w := postJSON(t, router, "/checkout", `{"member_id":7,"gym_id":1,"method":"qr"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not checked in", func(t *testing.T) {
		svc := new(MockAttendanceService)
		router := setupAttendanceRouter(svc)

		svc.On("CheckOut", mock.Anything, mock.Anything).Return(nil, ErrNotCheckedIn)

		w := postJSON(t, router, "/checkout", `{"member_id":7,"gym_id":1,"method":"qr"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestHistoryHandler(t *testing.T) {
	t.Run("success with default paging", func(t *testing.T) {
		svc := new(MockAttendanceService)
		router := setupAttendanceRouter(svc)

		svc.On("History", mock.Anything, 7, 20, 0).Return([]Record{{ID: 1, MemberID: 7}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/members/7/attendance", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("oversized limit clamped", func(t *testing.T) {
		svc := new(MockAttendanceService)
		router := setupAttendanceRouter(svc)

		svc.On("History", mock.Anything, 7, 20, 0).Return([]Record{}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/members/7/attendance?limit=5000", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertCalled(t, "History", mock.Anything, 7, 20, 0)
	})

	t.Run("invalid member id", func(t *testing.T) {
		svc := new(MockAttendanceService)
		router := setupAttendanceRouter(svc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/members/abc/attendance", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVoidHandler(t *testing.T) {
	t.Run("success uses the authenticated actor", func(t *testing.T) {
		svc := new(MockAttendanceService)
		router := setupAttendanceRouter(svc)

		svc.On("Void", mock.Anything, 10, "duplicate scan", 3).
			Return(&Record{ID: 10, Status: StatusVoid}, nil)

		w := postJSON(t, router, "/admin/attendance/10/void", `{"reason":"duplicate scan"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing reason rejected", func(t *testing.T) {
		svc := new(MockAttendanceService)
		router := setupAttendanceRouter(svc)

		w := postJSON(t, router, "/admin/attendance/10/void", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Void", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("record not found", func(t *testing.T) {
		svc := new(MockAttendanceService)
		router := setupAttendanceRouter(svc)

		svc.On("Void", mock.Anything, 99, "typo", 3).Return(nil, ErrRecordNotFound)

		w := postJSON(t, router, "/admin/attendance/99/void", `{"reason":"typo"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("already void", func(t *testing.T) {
		svc := new(MockAttendanceService)
		router := setupAttendanceRouter(svc)

		svc.On("Void", mock.Anything, 10, "duplicate scan", 3).Return(nil, ErrAlreadyVoid)

		w := postJSON(t, router, "/admin/attendance/10/void", `{"reason":"duplicate scan"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
