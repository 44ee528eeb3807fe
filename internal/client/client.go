// Package client is the HTTP client the chat frontend uses to talk to the
// intake API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"compass.app/intake/internal/http/dto"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SubmitError carries the field errors from a rejected submission.
type SubmitError struct {
	StatusCode int
	Fields     []dto.FieldErrorResponse
}

func (e *SubmitError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("submission rejected: %s: %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("submission rejected with status %d", e.StatusCode)
}

func (c *Client) Submit(ctx context.Context, req dto.SubmitIntakeRequest) (*dto.SubmitIntakeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding submit request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/intake/submit", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("creating submit request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("submit request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		var errResp dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			return nil, &SubmitError{StatusCode: resp.StatusCode, Fields: errResp.Errors}
		}
		return nil, &SubmitError{StatusCode: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("submit returned status %d: %s", resp.StatusCode, string(raw))
	}

	var result dto.SubmitIntakeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding submit response: %w", err)
	}
	return &result, nil
}

func (c *Client) Services(ctx context.Context) ([]dto.ServiceEntry, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/intake/services", nil)
	if err != nil {
		return nil, fmt.Errorf("creating services request: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("services request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("services returned status %d", resp.StatusCode)
	}

	var result dto.ListServicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding services response: %w", err)
	}
	return result.Services, nil
}

func (c *Client) SaveDraft(ctx context.Context, sessionID string, state json.RawMessage) error {
	body, err := json.Marshal(dto.SaveDraftRequest{SessionID: sessionID, State: state})
	if err != nil {
		return fmt.Errorf("encoding draft request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/intake/draft", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("creating draft request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("draft request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("draft save returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) GetDraft(ctx context.Context, sessionID string) (*dto.GetDraftResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/intake/draft/"+sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("creating draft request: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("draft request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("draft fetch returned status %d", resp.StatusCode)
	}

	var result dto.GetDraftResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding draft response: %w", err)
	}
	return &result, nil
}

func (c *Client) DeleteDraft(ctx context.Context, sessionID string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/v1/intake/draft/"+sessionID, nil)
	if err != nil {
		return fmt.Errorf("creating draft delete request: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("draft delete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("draft delete returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) Health(ctx context.Context) (*dto.HealthResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return nil, fmt.Errorf("creating health request: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("health returned status %d", resp.StatusCode)
	}

	var result dto.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding health response: %w", err)
	}
	return &result, nil
}
