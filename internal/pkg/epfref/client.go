package epfref

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anush47/salaryapp-backend-go/internal/domain/payment"
	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
)

// Client resolves statutory EPF reference numbers from the EPF portal.
// The portal has no SDK; this is a thin form-post wrapper.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

var _ payment.ReferenceResolver = (*Client)(nil)

// APIError represents a portal-side failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("epf portal error [%d]: %s", e.StatusCode, e.Message)
}

type referenceResponse struct {
	ReferenceNo string `json:"reference_no"`
	Message     string `json:"message"`
}

// ResolveReference asks the portal for the reference number of one
// employer and contribution period. Employer numbers are "ZONE/NUMBER",
// e.g. "A/12345"; the portal takes the parts separately.
func (c *Client) ResolveReference(ctx context.Context, employerNo string, p period.Period) (string, error) {
	zone, number, ok := strings.Cut(employerNo, "/")
	if !ok {
		return "", fmt.Errorf("malformed employer number %q", employerNo)
	}

	form := url.Values{}
	form.Set("employer_zone", zone)
	form.Set("employer_number", number)
	form.Set("period", p.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reference", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build reference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call epf portal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", payment.ErrReferenceNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	var body referenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode reference response: %w", err)
	}
	if body.ReferenceNo == "" {
		return "", payment.ErrReferenceNotFound
	}

	return body.ReferenceNo, nil
}
