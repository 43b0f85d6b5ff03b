package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/google/uuid"
	"github.com/jwebster45206/itemshuffle/internal/handlers"
	"github.com/jwebster45206/itemshuffle/internal/multiworld"
	"github.com/jwebster45206/itemshuffle/internal/session"
	"github.com/jwebster45206/itemshuffle/pkg/delivery"
	"github.com/jwebster45206/itemshuffle/pkg/engine"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// call sends body as JSON and decodes the response into out when the API
// answers with want. A nil out discards the response body.
func call(client *http.Client, method, url string, body any, want int, out any, what string) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != want {
		var errorResp handlers.ErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err != nil || errorResp.Error == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
		}
		return fmt.Errorf("failed to %s: %s", what, errorResp.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", what, err)
	}
	return nil
}

// listSeeds returns the seed names in order and a map of name to file.
func listSeeds(client *http.Client, baseURL string) ([]string, map[string]string, error) {
	var seedMap map[string]string
	if err := call(client, http.MethodGet, baseURL+"/v1/seeds", nil, http.StatusOK, &seedMap, "list seeds"); err != nil {
		return nil, nil, err
	}

	names := make([]string, 0, len(seedMap))
	for name := range seedMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, seedMap, nil
}

func createSession(client *http.Client, baseURL string, req session.CreateRequest) (*session.Snapshot, error) {
	var snap session.Snapshot
	if err := call(client, http.MethodPost, baseURL+"/v1/sessions", req, http.StatusCreated, &snap, "create session"); err != nil {
		return nil, err
	}
	return &snap, nil
}

func getSession(client *http.Client, baseURL string, id uuid.UUID) (*session.Snapshot, error) {
	var snap session.Snapshot
	url := fmt.Sprintf("%s/v1/sessions/%s", baseURL, id)
	if err := call(client, http.MethodGet, url, nil, http.StatusOK, &snap, "get session"); err != nil {
		return nil, err
	}
	return &snap, nil
}

func collect(client *http.Client, baseURL string, id uuid.UUID, req handlers.CollectRequest) (*engine.CollectResult, error) {
	var res engine.CollectResult
	url := fmt.Sprintf("%s/v1/sessions/%s/collect", baseURL, id)
	if err := call(client, http.MethodPost, url, req, http.StatusOK, &res, "collect"); err != nil {
		return nil, err
	}
	return &res, nil
}

func pushDelayed(client *http.Client, baseURL string, id uuid.UUID, flag uint32) (bool, error) {
	var res handlers.DelayedResponse
	url := fmt.Sprintf("%s/v1/sessions/%s/collect", baseURL, id)
	if err := call(client, http.MethodPost, url, handlers.CollectRequest{Delayed: &flag}, http.StatusOK, &res, "queue delayed item"); err != nil {
		return false, err
	}
	return res.Queued, nil
}

func advanceFrames(client *http.Client, baseURL string, id uuid.UUID, statuses []delivery.Status) ([]engine.FrameResult, error) {
	var res handlers.FramesResponse
	url := fmt.Sprintf("%s/v1/sessions/%s/frames", baseURL, id)
	if err := call(client, http.MethodPost, url, handlers.FramesRequest{Frames: statuses}, http.StatusOK, &res, "advance frames"); err != nil {
		return nil, err
	}
	return res.Results, nil
}

func chestType(client *http.Client, baseURL string, id uuid.UUID, req handlers.ChestRequest) (*handlers.ChestResponse, error) {
	var res handlers.ChestResponse
	url := fmt.Sprintf("%s/v1/sessions/%s/chest", baseURL, id)
	if err := call(client, http.MethodPost, url, req, http.StatusOK, &res, "resolve chest"); err != nil {
		return nil, err
	}
	return &res, nil
}

func saveSession(client *http.Client, baseURL string, id uuid.UUID) error {
	url := fmt.Sprintf("%s/v1/sessions/%s/save", baseURL, id)
	return call(client, http.MethodPost, url, nil, http.StatusNoContent, nil, "save session")
}

func syncSession(client *http.Client, baseURL string, id uuid.UUID) (*multiworld.SyncResult, error) {
	var res multiworld.SyncResult
	url := fmt.Sprintf("%s/v1/sessions/%s/sync", baseURL, id)
	if err := call(client, http.MethodPost, url, nil, http.StatusOK, &res, "sync session"); err != nil {
		return nil, err
	}
	return &res, nil
}
