package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ingresure/ingresure-api/internal/config"
	"github.com/ingresure/ingresure-api/internal/models"
	"github.com/ingresure/ingresure-api/internal/service"
	"github.com/ingresure/ingresure-api/internal/testutil"
)

func newChatSessionServer(t *testing.T, repo *testutil.MockProfileRepo) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	go hub.Run()

	chatService := service.NewChatService(&config.Config{}, repo, testutil.NewTestEngine(t), nil)
	handler := NewChatSessionHandler(hub, chatService)

	r := gin.New()
	r.GET("/v1/ws/chat", handler.HandleChatSession)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dialChat(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws/chat"
	if userID != "" {
		url += "?user_id=" + userID
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("invalid message envelope: %v", err)
	}
	return msg
}

func TestChatSessionConnected(t *testing.T) {
	srv := newChatSessionServer(t, testutil.NewMockProfileRepo())
	conn := dialChat(t, srv, "ws-user")

	msg := readMessage(t, conn)
	if msg.Type != MsgTypeConnected {
		t.Fatalf("expected connected message, got %q", msg.Type)
	}
	var payload ConnectedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.UserID != "ws-user" {
		t.Errorf("expected user id echoed back, got %q", payload.UserID)
	}
}

func TestChatSessionAnonymousUserID(t *testing.T) {
	srv := newChatSessionServer(t, testutil.NewMockProfileRepo())
	conn := dialChat(t, srv, "")

	msg := readMessage(t, conn)
	var payload ConnectedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(payload.UserID, "anon-") {
		t.Errorf("expected generated anon id, got %q", payload.UserID)
	}
}

func TestChatSessionTurn(t *testing.T) {
	repo := testutil.NewMockProfileRepo()
	repo.Profiles["ws-vegan"] = &models.UserProfile{UserID: "ws-vegan", DietaryPreference: "Vegan"}
	srv := newChatSessionServer(t, repo)
	conn := dialChat(t, srv, "ws-vegan")

	if msg := readMessage(t, conn); msg.Type != MsgTypeConnected {
		t.Fatalf("expected connected message, got %q", msg.Type)
	}

	payload, _ := json.Marshal(ChatMessagePayload{Message: "Can I eat milk?"})
	out, _ := json.Marshal(WSMessage{Type: MsgTypeChatMessage, Payload: payload})
	if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
		t.Fatal(err)
	}

	resp := readMessage(t, conn)
	if resp.Type != MsgTypeChatResponse {
		t.Fatalf("expected chat response, got %q", resp.Type)
	}
	var chatResp ChatResponsePayload
	if err := json.Unmarshal(resp.Payload, &chatResp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(chatResp.Message, "**Milk**") {
		t.Errorf("expected verdict to flag milk, got %q", chatResp.Message)
	}

	state := readMessage(t, conn)
	if state.Type != MsgTypeProfileState {
		t.Fatalf("expected profile state, got %q", state.Type)
	}
	var statePayload ProfileStatePayload
	if err := json.Unmarshal(state.Payload, &statePayload); err != nil {
		t.Fatal(err)
	}
	var profile models.UserProfile
	if err := json.Unmarshal(statePayload.Profile, &profile); err != nil {
		t.Fatalf("profile state is not valid JSON: %v", err)
	}
	if profile.DietaryPreference != "Vegan" {
		t.Errorf("expected vegan profile state, got %q", profile.DietaryPreference)
	}
}

func TestChatSessionUnknownMessageType(t *testing.T) {
	srv := newChatSessionServer(t, testutil.NewMockProfileRepo())
	conn := dialChat(t, srv, "ws-user")

	readMessage(t, conn) // connected

	out, _ := json.Marshal(WSMessage{Type: "bogus", Payload: json.RawMessage(`{}`)})
	if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
		t.Fatal(err)
	}

	msg := readMessage(t, conn)
	if msg.Type != MsgTypeError {
		t.Fatalf("expected error message, got %q", msg.Type)
	}
}
