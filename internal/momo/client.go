package momo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the MTN MoMo disbursement API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type PayoutRequest struct {
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	Recipient      string  `json:"recipient"`
	IdempotencyKey string  `json:"idempotency_key"`
	Note           string  `json:"note,omitempty"`
}

type PayoutResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// SubmitPayout issues a single disbursement. The idempotency key is passed
// both in the body and the X-Idempotency-Key header so a retried call cannot
// double-pay. A non-nil error means the outcome is unknown (transport
// failure); a response with Success=false is a definite decline.
func (c *Client) SubmitPayout(ctx context.Context, req PayoutRequest) (*PayoutResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/disbursements", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Idempotency-Key", req.IdempotencyKey)
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("momo request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("momo response read failed: %w", err)
	}

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("momo gateway error: status %d", resp.StatusCode)
	}

	var payout PayoutResponse
	if err := json.Unmarshal(data, &payout); err != nil {
		return nil, fmt.Errorf("momo response parse failed: %w", err)
	}

	if resp.StatusCode >= 400 && payout.Message == "" {
		payout.Message = fmt.Sprintf("gateway rejected request: status %d", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		payout.Success = false
	}

	return &payout, nil
}
