package membership

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Result is the oracle's verdict on whether a member may enter a gym right
// now. When Valid is false, Reason carries the oracle's explanation.
type Result struct {
	Valid        bool   `json:"valid"`
	MembershipID string `json:"membership_id,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// Validator is the membership oracle contract. It is authoritative: the
// admission path consults it synchronously before admitting anyone.
type Validator interface {
	ValidateAccess(ctx context.Context, memberID, gymID int) (*Result, error)
}

type validateRequest struct {
	MemberID int `json:"member_id"`
	GymID    int `json:"gym_id"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds an oracle client. The timeout bounds the one external
// network hop on the admission critical path; callers treat any error as a
// denial.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) ValidateAccess(ctx context.Context, memberID, gymID int) (*Result, error) {
	payload, err := json.Marshal(validateRequest{MemberID: memberID, GymID: gymID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/access/validate", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("membership oracle unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("membership oracle returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("membership oracle bad response: %w", err)
	}

	return &result, nil
}
