//go:build integration
// +build integration

package integration

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	wsmsg "github.com/gokatarajesh/quiz-widget/pkg/http/ws"
)

func TestWebSocketSessionFlow(t *testing.T) {
	baseHTTP := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
	baseWS := envOrDefault("INTEGRATION_WS_URL", "ws://localhost:8080/ws/session")

	sess := startSession(t, baseHTTP, "hotspot")

	connA := dialSessionWS(t, baseWS, sess.Token)
	defer connA.Close()
	connB := dialSessionWS(t, baseWS, sess.Token)
	defer connB.Close()

	// Each connection receives the current question on connect.
	waitForType(t, connA, wsmsg.TypeQuestion, 5*time.Second)
	waitForType(t, connB, wsmsg.TypeQuestion, 5*time.Second)

	sendMessage(t, connA, wsmsg.TypeSubmitAnswer, wsmsg.SubmitAnswerPayload{RegionID: "h1"})

	for _, conn := range []*websocket.Conn{connA, connB} {
		msg := waitForType(t, conn, wsmsg.TypeGradeResult, 5*time.Second)
		var out outcome
		if err := json.Unmarshal(msg.Payload, &out); err != nil {
			t.Fatalf("decode grade_result payload: %v", err)
		}
		if !out.Result.Correct {
			t.Fatalf("expected region h1 to be correct: %+v", out)
		}
	}

	sendMessage(t, connB, wsmsg.TypeSubmitAnswer, wsmsg.SubmitAnswerPayload{})
	errMsg := waitForType(t, connB, wsmsg.TypeError, 5*time.Second)
	var payload wsmsg.ErrorPayload
	if err := json.Unmarshal(errMsg.Payload, &payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if payload.Code != "no_selection" {
		t.Fatalf("expected no_selection, got %q", payload.Code)
	}
}

func dialSessionWS(t *testing.T, wsBase, token string) *websocket.Conn {
	t.Helper()

	u, err := url.Parse(wsBase)
	if err != nil {
		t.Fatalf("invalid WS url: %v", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	return conn
}

func sendMessage(t *testing.T, conn *websocket.Conn, msgType string, payload interface{}) {
	t.Helper()

	msg, err := wsmsg.NewMessage(msgType, payload, "")
	if err != nil {
		t.Fatalf("build %s message: %v", msgType, err)
	}
	conn.SetWriteDeadline(time.Now().Add(3 * time.Second))
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("failed to send %s: %v", msgType, err)
	}
}

func waitForType(t *testing.T, conn *websocket.Conn, msgType string, timeout time.Duration) wsmsg.Message {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(time.Now().Add(timeout))
		var msg wsmsg.Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read ws message failed: %v", err)
		}
		if msg.Type == msgType {
			return msg
		}
	}
	t.Fatalf("timeout waiting for %s", msgType)
	return wsmsg.Message{}
}
