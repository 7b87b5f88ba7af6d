//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

type sessionInfo struct {
	Token   string
	Session sessionView
}

type tally struct {
	Attempts   int `json:"attempts"`
	Correct    int `json:"correct"`
	Streak     int `json:"streak"`
	BestStreak int `json:"best_streak"`
	Score      int `json:"score"`
}

type sessionView struct {
	SessionID string          `json:"session_id"`
	Kind      string          `json:"kind"`
	Index     int             `json:"index"`
	Total     int             `json:"total"`
	Question  json.RawMessage `json:"question"`
	Tally     tally           `json:"tally"`
}

type outcome struct {
	Result struct {
		QuestionID string `json:"question_id"`
		Correct    bool   `json:"correct"`
	} `json:"result"`
	Feedback string `json:"feedback"`
	Points   int    `json:"points"`
	Tally    tally  `json:"tally"`
}

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

var client = &http.Client{Timeout: 10 * time.Second}

func startSession(t *testing.T, baseURL, kind string) sessionInfo {
	t.Helper()

	var body interface{}
	if kind != "" {
		body = map[string]string{"kind": kind}
	}
	resp := makeAuthenticatedRequest(t, http.MethodPost, fmt.Sprintf("%s/v1/sessions", baseURL), "", body)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected start session status: %d, body: %s", resp.StatusCode, raw)
	}

	var out struct {
		Token   string      `json:"token"`
		Session sessionView `json:"session"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode start session response failed: %v", err)
	}
	if out.Token == "" {
		t.Fatalf("empty session token in response")
	}
	return sessionInfo{Token: out.Token, Session: out.Session}
}

func makeAuthenticatedRequest(t *testing.T, method, url, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, wantStatus int, out interface{}) {
	t.Helper()
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d, body: %s", wantStatus, resp.StatusCode, raw)
	}
	if out == nil {
		return
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
}

func expectErrorCode(t *testing.T, resp *http.Response, wantStatus int, wantCode string) {
	t.Helper()

	var errResp map[string]interface{}
	decodeJSON(t, resp, wantStatus, &errResp)
	if errResp["error"] != wantCode {
		t.Fatalf("expected error code %q, got %v", wantCode, errResp["error"])
	}
}
