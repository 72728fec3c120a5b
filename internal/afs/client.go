// Package afs is the client for the remote Advanced Flights System,
// the independently-owned side of a combined cancellation.
package afs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Domenick1991/tripbooking/config"
)

// ErrUpstream marks transport or server failures: the remote state is
// unknown, so the caller must not mutate local records.
var ErrUpstream = errors.New("afs request failed")

// BusinessRejection is an explicit refusal from AFS (e.g. the booking is
// already cancelled). The message is surfaced to the caller verbatim.
type BusinessRejection struct {
	Message string
}

func (e *BusinessRejection) Error() string {
	return e.Message
}

func IsBusinessRejection(err error) *BusinessRejection {
	if err == nil {
		return nil
	}

	var rejection *BusinessRejection
	if errors.As(err, &rejection) {
		return rejection
	}

	return nil
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg config.AFSConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type cancelRequest struct {
	BookingReference string `json:"bookingReference"`
	LastName         string `json:"lastName"`
}

type rejectionBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CancelFlight asks AFS to cancel a booking. On success the raw
// confirmation body is returned. A 400-class response with a parseable
// body becomes a BusinessRejection; anything else non-2xx wraps
// ErrUpstream.
func (c *Client) CancelFlight(ctx context.Context, bookingReference, lastName string) (json.RawMessage, error) {
	payload, err := json.Marshal(cancelRequest{BookingReference: bookingReference, LastName: lastName})
	if err != nil {
		return nil, fmt.Errorf("encode cancel request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/bookings/cancel", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build cancel request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return body, nil
	}

	if res.StatusCode >= 400 && res.StatusCode < 500 {
		var rejection rejectionBody
		if err := json.Unmarshal(body, &rejection); err == nil {
			msg := rejection.Error
			if msg == "" {
				msg = rejection.Message
			}
			if msg != "" {
				return nil, &BusinessRejection{Message: msg}
			}
		}
	}

	return nil, fmt.Errorf("%w: status %d", ErrUpstream, res.StatusCode)
}
