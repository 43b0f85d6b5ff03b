package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/jwebster45206/itemshuffle/internal/handlers"
	"github.com/jwebster45206/itemshuffle/internal/session"
)

// APIError is a non-success answer of the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.Status, e.Message)
}

// DoJSON sends body to the API and decodes a response with status want
// into out. Other statuses are returned as *APIError.
func DoJSON(ctx context.Context, client *http.Client, method, url string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != want {
		var errorResp handlers.ErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err != nil || errorResp.Error == "" {
			return &APIError{Status: resp.StatusCode, Message: string(respBody)}
		}
		return &APIError{Status: resp.StatusCode, Message: errorResp.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// CreateSession starts a session via POST /v1/sessions
func CreateSession(ctx context.Context, client *http.Client, baseURL string, req session.CreateRequest) (*session.Snapshot, error) {
	var snap session.Snapshot
	if err := DoJSON(ctx, client, http.MethodPost, baseURL+"/v1/sessions", req, http.StatusCreated, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// GetSession retrieves a session snapshot
func GetSession(ctx context.Context, client *http.Client, baseURL string, id uuid.UUID) (*session.Snapshot, error) {
	var snap session.Snapshot
	url := fmt.Sprintf("%s/v1/sessions/%s", baseURL, id)
	if err := DoJSON(ctx, client, http.MethodGet, url, nil, http.StatusOK, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// DeleteSession removes a session
func DeleteSession(ctx context.Context, client *http.Client, baseURL string, id uuid.UUID) error {
	url := fmt.Sprintf("%s/v1/sessions/%s", baseURL, id)
	return DoJSON(ctx, client, http.MethodDelete, url, nil, http.StatusNoContent, nil)
}

// PostAction posts body to one of the session's action endpoints.
func PostAction(ctx context.Context, client *http.Client, baseURL string, id uuid.UUID, action string, body any, want int, out any) error {
	url := fmt.Sprintf("%s/v1/sessions/%s/%s", baseURL, id, action)
	return DoJSON(ctx, client, http.MethodPost, url, body, want, out)
}
