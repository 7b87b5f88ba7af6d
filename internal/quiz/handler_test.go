package quiz

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httperrors "github.com/gokatarajesh/quiz-widget/pkg/http/errors"
	ws "github.com/gokatarajesh/quiz-widget/pkg/http/ws"
)

func newWSServer(t *testing.T, f *fixture) *httptest.Server {
	t.Helper()
	handler := NewHandler(f.svc, ws.NewHub(zerolog.Nop()), f.tokens, zerolog.Nop())
	srv := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) ws.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg ws.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func write(t *testing.T, conn *websocket.Conn, msgType string, payload interface{}) {
	t.Helper()
	msg, err := ws.NewMessage(msgType, payload, "req-1")
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(msg))
}

func TestWebSocketFlow(t *testing.T) {
	f := newFixture(t)
	srv := newWSServer(t, f)
	_, token, err := f.svc.Start(t.Context(), "")
	require.NoError(t, err)

	conn := dial(t, srv, token)
	first := read(t, conn)
	require.Equal(t, ws.TypeQuestion, first.Type)
	var view View
	require.NoError(t, first.Decode(&view))
	assert.Equal(t, "mc1", view.Question.ID)

	write(t, conn, ws.TypeSubmitAnswer, ws.SubmitAnswerPayload{Selected: intPtr(0)})
	graded := read(t, conn)
	require.Equal(t, ws.TypeGradeResult, graded.Type)
	assert.Equal(t, "req-1", graded.RequestID)
	var outcome Outcome
	require.NoError(t, graded.Decode(&outcome))
	assert.False(t, outcome.Result.Correct)

	write(t, conn, ws.TypeRevealAnswer, nil)
	revealed := read(t, conn)
	require.Equal(t, ws.TypeAnswerKey, revealed.Type)
	assert.Contains(t, string(revealed.Payload), "Paris")

	write(t, conn, ws.TypeSelectKind, ws.SelectKindPayload{Kind: "drag-drop"})
	switched := read(t, conn)
	require.NoError(t, switched.Decode(&view))
	assert.Equal(t, "dd1", view.Question.ID)
}

func TestWebSocketBroadcastsToSessionConnections(t *testing.T) {
	f := newFixture(t)
	srv := newWSServer(t, f)
	_, token, err := f.svc.Start(t.Context(), "")
	require.NoError(t, err)

	a := dial(t, srv, token)
	read(t, a)
	b := dial(t, srv, token)
	read(t, b)

	write(t, a, ws.TypeNextQuestion, nil)
	for _, conn := range []*websocket.Conn{a, b} {
		msg := read(t, conn)
		require.Equal(t, ws.TypeQuestion, msg.Type)
		var view View
		require.NoError(t, msg.Decode(&view))
		assert.Equal(t, "mc2", view.Question.ID)
	}
}

func TestWebSocketErrorsGoToSenderOnly(t *testing.T) {
	f := newFixture(t)
	srv := newWSServer(t, f)
	_, token, err := f.svc.Start(t.Context(), "hotspot")
	require.NoError(t, err)

	conn := dial(t, srv, token)
	read(t, conn)

	write(t, conn, ws.TypeSubmitAnswer, ws.SubmitAnswerPayload{})
	msg := read(t, conn)
	require.Equal(t, ws.TypeError, msg.Type)
	var payload ws.ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, httperrors.ErrCodeNoSelection, payload.Code)

	write(t, conn, "dance", nil)
	msg = read(t, conn)
	require.NoError(t, msg.Decode(&payload))
	assert.Equal(t, httperrors.ErrCodeUnknownMessageType, payload.Code)
}

func TestWebSocketRejectsBadToken(t *testing.T) {
	f := newFixture(t)
	srv := newWSServer(t, f)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?token=nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
