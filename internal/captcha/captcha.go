// Package captcha gates request acceptance on an external human-verification
// service (hCaptcha siteverify protocol).
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Verifier checks a challenge token before a request may mutate anything.
type Verifier interface {
	Verify(ctx context.Context, token string) error
}

// Error is a verification rejection carrying the provider's error codes.
type Error struct {
	Codes []string
}

func (e *Error) Error() string {
	return "Captcha verification failed: " + strings.Join(e.Codes, ", ")
}

// HCaptcha verifies tokens against the hCaptcha siteverify endpoint.
// The transport keeps default TLS settings: the certificate chain is
// always validated.
type HCaptcha struct {
	secret    string
	verifyURL string
	client    *http.Client
}

// NewHCaptcha builds a verifier with an explicit request timeout. A timed
// out or unreachable provider counts as a rejection, never as a hang.
func NewHCaptcha(secret, verifyURL string, timeout time.Duration) *HCaptcha {
	return &HCaptcha{
		secret:    secret,
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: timeout},
	}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify posts the token to the provider and interprets the structured
// response. Both a non-success transport outcome and an explicit failure
// flag in the body are rejections.
func (h *HCaptcha) Verify(ctx context.Context, token string) error {
	form := url.Values{
		"secret":   {h.secret},
		"response": {token},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.client.Do(req)
	if err != nil {
		return &Error{Codes: []string{"verification-unreachable"}}
	}
	defer resp.Body.Close()

	var body siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return &Error{Codes: []string{"malformed-response"}}
	}

	if resp.StatusCode != http.StatusOK || !body.Success {
		codes := body.ErrorCodes
		if len(codes) == 0 {
			codes = []string{"unknown-error"}
		}
		return &Error{Codes: codes}
	}

	return nil
}

// Disabled skips verification. Used when CAPTCHA_ENABLED is off for local
// development; never wire it in production.
type Disabled struct{}

// Verify always accepts.
func (Disabled) Verify(context.Context, string) error { return nil }
