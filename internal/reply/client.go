// Package reply delivers reply batches to the LINE reply endpoint.
//
// A reply pairs one single-use reply token with 1..5 outbound messages.
// The dispatcher validates the batch bound before any network I/O and
// performs no retry: the whole batch either is sent or is not.
package reply

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/linehub/line-adapter-go/internal/config"
	"github.com/linehub/line-adapter-go/internal/errors"
	"github.com/linehub/line-adapter-go/internal/logger"
	"github.com/linehub/line-adapter-go/internal/message"
	"github.com/linehub/line-adapter-go/internal/metrics"
	"github.com/linehub/line-adapter-go/internal/ratelimit"
)

const (
	replyPath = "/v2/bot/message/reply"

	// maxErrorBodyBytes bounds how much of an error response is kept.
	maxErrorBodyBytes = 2048
)

// Client posts reply batches to the platform.
type Client struct {
	baseURL      string
	channelToken string
	httpClient   *http.Client
	limiter      *ratelimit.Limiter
	metrics      *metrics.Metrics
	logger       *logger.Logger
}

// ClientConfig holds configuration for creating a new Client.
type ClientConfig struct {
	// BaseURL of the reply API, e.g. "https://api.line.me".
	BaseURL string

	// ChannelToken is the channel access token sent as a bearer token.
	ChannelToken string

	// HTTPClient overrides the transport. Optional; a 10s-timeout client
	// is used when nil.
	HTTPClient *http.Client

	// Limiter gates calls against the platform's rate budget. Optional.
	Limiter *ratelimit.Limiter

	Metrics *metrics.Metrics
	Logger  *logger.Logger
}

// NewClient creates a reply client.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		baseURL:      cfg.BaseURL,
		channelToken: cfg.ChannelToken,
		httpClient:   httpClient,
		limiter:      cfg.Limiter,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger,
	}
}

// replyRequest is the wire shape of the reply call.
type replyRequest struct {
	ReplyToken string            `json:"replyToken"`
	Messages   []message.Message `json:"messages"`
}

// Reply sends msgs, in order, keyed by replyToken.
//
// Batches outside 1..config.MaxMessagesPerReply fail with a
// *errors.BatchSizeError before any delivery attempt. Delivery failures
// surface as *errors.DeliveryError; callers own any retry policy.
func (c *Client) Reply(ctx context.Context, replyToken string, msgs []message.Message) error {
	if len(msgs) == 0 || len(msgs) > config.MaxMessagesPerReply {
		return errors.NewBatchSizeError(len(msgs))
	}

	if c.limiter != nil && !c.limiter.Allow() {
		if c.metrics != nil {
			c.metrics.RecordRateLimiterDrop("reply")
		}
		if c.logger != nil {
			c.logger.Warn("Reply rate limit exceeded; waiting")
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %w", errors.ErrRateLimitExceeded, err)
		}
	}

	body, err := json.Marshal(replyRequest{
		ReplyToken: replyToken,
		Messages:   msgs,
	})
	if err != nil {
		return fmt.Errorf("marshal reply batch: %w", err)
	}

	start := time.Now()
	err = c.post(ctx, body)
	if c.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		c.metrics.RecordReply(status, time.Since(start).Seconds())
	}
	return err
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+replyPath, bytes.NewReader(body))
	if err != nil {
		return errors.WrapDeliveryError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.channelToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WrapDeliveryError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return errors.NewDeliveryError(resp.StatusCode, string(excerpt))
	}

	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
