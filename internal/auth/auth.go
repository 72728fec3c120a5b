// Package auth delegates token verification to the external identity
// service; this repo never inspects tokens itself.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Domenick1991/tripbooking/config"
)

var ErrUnauthorized = errors.New("token verification failed")

const (
	RoleUser  = "USER"
	RoleOwner = "OWNER"
	RoleAdmin = "ADMIN"
)

type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

type HTTPVerifier struct {
	verifyURL string
	http      *http.Client
}

func NewHTTPVerifier(cfg config.AuthConfig) *HTTPVerifier {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &HTTPVerifier{
		verifyURL: cfg.VerifyURL,
		http:      &http.Client{Timeout: timeout},
	}
}

func (v *HTTPVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.verifyURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := v.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, res.StatusCode)
	}

	var claims Claims
	if err := json.NewDecoder(res.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("%w: decode claims: %v", ErrUnauthorized, err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrUnauthorized)
	}
	return &claims, nil
}

var _ Verifier = (*HTTPVerifier)(nil)
