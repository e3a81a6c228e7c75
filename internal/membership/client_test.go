package membership

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAccess_Valid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/access/validate", r.URL.Path)

		var req validateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 7, req.MemberID)
		assert.Equal(t, 3, req.GymID)

		json.NewEncoder(w).Encode(Result{Valid: true, MembershipID: "mem-42"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	result, err := client.ValidateAccess(context.Background(), 7, 3)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "mem-42", result.MembershipID)
}

func TestValidateAccess_InvalidWithReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Result{Valid: false, Reason: "membership expired"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	result, err := client.ValidateAccess(context.Background(), 7, 3)

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "membership expired", result.Reason)
}

func TestValidateAccess_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.ValidateAccess(context.Background(), 7, 3)

	assert.Error(t, err)
}

func TestValidateAccess_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(Result{Valid: true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 20*time.Millisecond)
	_, err := client.ValidateAccess(context.Background(), 7, 3)

	assert.Error(t, err)
}

func TestValidateAccess_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL, time.Second)
	_, err := client.ValidateAccess(ctx, 7, 3)

	assert.Error(t, err)
}
