package userservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wocademy/utility-backend/internal/apperrors"
	portssvc "github.com/wocademy/utility-backend/internal/core/ports/services"
	"github.com/wocademy/utility-backend/internal/middleware"
)

// Config holds the user service client settings.
type Config struct {
	BaseURL    string
	Token      string // optional; attached as a Bearer header when set
	Timeout    time.Duration
	MaxRetries int
}

// Client talks to the external user service, the sole authority for live
// credit balances. Transient failures (network errors and 5xx responses) are
// retried up to MaxRetries with a short backoff; 4xx responses are mapped to
// app errors immediately and never retried.
type Client struct {
	baseURL    string
	token      string
	maxRetries int
	httpClient *http.Client
}

// New creates a user service client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		maxRetries: retries,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ portssvc.UserSvcFacade = (*Client)(nil)

// creditEnvelope is the user service's response shape for balance mutations.
type creditEnvelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       decimal.Decimal `json:"data"`
}

// GetUserByID fetches a user record, mapping 404 to ErrNotFound.
func (c *Client) GetUserByID(ctx context.Context, userID string) (*portssvc.User, error) {
	var user portssvc.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%s", url.PathEscape(userID)), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetCreditBalance fetches the user's current credit balance.
func (c *Client) GetCreditBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%s/credit-balance", url.PathEscape(userID)), nil, &balance); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// AssignCredit adds amount to the user's balance and returns the new balance.
func (c *Client) AssignCredit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	var envelope creditEnvelope
	body := map[string]decimal.Decimal{"credit": amount}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%s/assign-credit", url.PathEscape(userID)), body, &envelope); err != nil {
		return decimal.Zero, err
	}
	return envelope.Data, nil
}

// DeductCredit removes amount from the user's balance and returns the new balance.
func (c *Client) DeductCredit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	var envelope creditEnvelope
	body := map[string]decimal.Decimal{"credit": amount}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%s/deduct-credit", url.PathEscape(userID)), body, &envelope); err != nil {
		return decimal.Zero, err
	}
	return envelope.Data, nil
}

// do performs one logical call with retries and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return apperrors.NewAppError(http.StatusInternalServerError, apperrors.CodeInternal, "failed to encode user service request", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return apperrors.NewAppError(http.StatusServiceUnavailable, apperrors.CodeUpstreamUnavailable, "user service request cancelled", ctx.Err())
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
			logger.Warn("Retrying user service call", slog.String("path", path), slog.Int("attempt", attempt))
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return apperrors.NewAppError(http.StatusInternalServerError, apperrors.CodeInternal, "failed to build user service request", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue // network failure, retry
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if out == nil {
				return nil
			}
			if err := json.Unmarshal(respBody, out); err != nil {
				return apperrors.NewAppError(http.StatusInternalServerError, apperrors.CodeInternal, "failed to decode user service response", err)
			}
			return nil
		case resp.StatusCode == http.StatusNotFound:
			return apperrors.NewAppError(http.StatusNotFound, apperrors.CodeUserNotFound, "user not found", apperrors.ErrNotFound)
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return apperrors.NewAppError(http.StatusBadRequest, apperrors.CodeValidation,
				fmt.Sprintf("user service rejected the request (status %d)", resp.StatusCode), apperrors.ErrValidation)
		default:
			lastErr = fmt.Errorf("user service returned status %d", resp.StatusCode)
			continue // 5xx, retry
		}
	}

	logger.Error("User service call failed after retries", slog.String("path", path), slog.String("error", lastErr.Error()))
	return apperrors.NewAppError(http.StatusServiceUnavailable, apperrors.CodeUpstreamUnavailable, "user service unavailable", apperrors.ErrUpstream)
}
