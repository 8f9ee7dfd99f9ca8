package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wocademy/utility-backend/internal/apperrors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, retries int) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Timeout: 2 * time.Second, MaxRetries: retries})
}

func TestAssignCredit_ReturnsOracleBalance(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/corp-1/assign-credit", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"statusCode":201,"message":"ok","data":600.50}`))
	}, 0)

	balance, err := client.AssignCredit(context.Background(), "corp-1", decimal.RequireFromString("100.50"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("600.50").Equal(balance))
}

func TestDeductCredit_ReturnsOracleBalance(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/corp-1/deduct-credit", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"statusCode":201,"message":"ok","data":399.50}`))
	}, 0)

	balance, err := client.DeductCredit(context.Background(), "corp-1", decimal.RequireFromString("100.50"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("399.50").Equal(balance))
}

func TestGetCreditBalance_ParsesRawNumber(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/corp-1/credit-balance", r.URL.Path)
		_, _ = w.Write([]byte(`500.00`))
	}, 0)

	balance, err := client.GetCreditBalance(context.Background(), "corp-1")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("500").Equal(balance))
}

func TestGetUserByID_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, 0)

	user, err := client.GetUserByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDo_RetriesTransientServerErrors(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","name":"Corp","email":"corp@acme.com"}`))
	}, 2)

	user, err := client.GetUserByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, "u1", user.ID)
}

func TestDo_ExhaustedRetriesMapToUpstream(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}, 1)

	_, err := client.GetCreditBalance(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, 2, attempts)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestDo_ClientErrorsAreNotRetried(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnprocessableEntity)
	}, 3)

	_, err := client.AssignCredit(context.Background(), "u1", decimal.NewFromInt(10))
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDo_AttachesConfiguredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer svc-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`0`))
	}))
	t.Cleanup(srv.Close)

	client := New(Config{BaseURL: srv.URL, Token: "svc-token", Timeout: time.Second})
	_, err := client.GetCreditBalance(context.Background(), "u1")
	require.NoError(t, err)
}
