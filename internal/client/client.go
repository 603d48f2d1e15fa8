package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/denmor86/cloudpay-bot/internal/config"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

var (
	// ErrRemoteRejected - CloudPayments ответил Success=false
	ErrRemoteRejected = errors.New("request rejected by payment processor")
	// ErrRemoteUnavailable - сеть/таймаут/5xx, можно пробовать снова
	ErrRemoteUnavailable = errors.New("payment processor unavailable")
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client - обертка над HTTP API CloudPayments: POST + Basic Auth, тела в JSON.
// Денежные поля сериализуются через decimal, float не используется.
type Client struct {
	baseURL     string
	publicID    string
	apiSecret   string
	httpClient  HTTPClient
	limiter     *RateLimiter
	callTimeout time.Duration
	retryWait   time.Duration
	maxRetries  uint64
}

func NewClient(cfg config.ProcessorConfig, httpClient HTTPClient) *Client {
	return &Client{
		baseURL:     cfg.Addr,
		publicID:    cfg.PublicID,
		apiSecret:   cfg.APISecret,
		httpClient:  httpClient,
		limiter:     NewRateLimiter(),
		callTimeout: 10 * time.Second,
		retryWait:   500 * time.Millisecond,
		maxRetries:  2,
	}
}

// send - универсальный метод запроса к API. Сетевые ошибки и 5xx повторяются
// с тем же X-Request-ID (идемпотентность на стороне CloudPayments), остальные
// коды сразу превращаются в ErrRemoteUnavailable.
func (c *Client) send(ctx context.Context, endpoint string, params any, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	requestID := uuid.NewString()
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewConstant(c.retryWait))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.SetBasicAuth(c.publicID, c.apiSecret)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-ID", requestID)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("%w: %s", ErrRemoteUnavailable, err))
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	})
	return err
}
