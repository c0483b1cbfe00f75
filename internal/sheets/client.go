package sheets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/wellform/wellform/internal/models"
)

// Client posts finished submissions to the Apps Script webhook that appends
// them to the spreadsheet. No timeout is set: a slow webhook stalls only the
// one request waiting on it, and every error is a soft failure to the caller.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient returns a client bound to the webhook URL.
func NewClient(url string) *Client {
	return &Client{url: url, httpClient: http.DefaultClient}
}

// Append sends the payload and confirms the webhook acknowledged it. A
// transport failure, non-2xx status, undecodable body, or a reply without
// success=true is an error.
func (c *Client) Append(p *models.SubmissionPayload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	resp, err := c.httpClient.Post(c.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post to webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	var reply struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return fmt.Errorf("decode webhook reply: %w", err)
	}
	if !reply.Success {
		return errors.New("webhook reported failure")
	}
	return nil
}
