package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/logger"
	"github.com/ingresure/ingresure-api/internal/service"
)

// WebSocket message types for the chat protocol.
const (
	MsgTypeChatMessage  = "chat_message"  // User asks about ingredients
	MsgTypeChatResponse = "chat_response" // Composed verdict text
	MsgTypeProfileState = "profile_state" // Out-of-band profile sync
	MsgTypeError        = "error"         // Error message
	MsgTypeConnected    = "connected"     // Connection confirmed
)

// WSMessage is the envelope for all messages sent over the chat WebSocket.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ChatMessagePayload is sent by the client with one query.
type ChatMessagePayload struct {
	Message string `json:"message"`
}

// ChatResponsePayload carries the composed answer.
type ChatResponsePayload struct {
	Message string `json:"message"`
}

// ProfileStatePayload carries the profile after the turn so clients can
// sync local state without parsing text markers.
type ProfileStatePayload struct {
	Profile json.RawMessage `json:"profile"`
}

// ErrorPayload carries an error message to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

// ConnectedPayload confirms a successful connection.
type ConnectedPayload struct {
	UserID string `json:"user_id"`
}

// ChatSessionHandler manages WebSocket connections for conversational
// grocery chat.
type ChatSessionHandler struct {
	Hub         *Hub
	ChatService *service.ChatService
}

// NewChatSessionHandler returns a new ChatSessionHandler.
func NewChatSessionHandler(hub *Hub, chatService *service.ChatService) *ChatSessionHandler {
	return &ChatSessionHandler{
		Hub:         hub,
		ChatService: chatService,
	}
}

// upgrader is configured for chat WebSocket upgrades.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		// Allow localhost for development
		return strings.HasPrefix(origin, "http://localhost:") || origin == "http://localhost"
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HandleChatSession upgrades an HTTP request to a WebSocket connection
// for the grocery chat. The user is identified by the user_id query
// parameter; anonymous sessions get a generated id.
func (ch *ChatSessionHandler) HandleChatSession(c *gin.Context) {
	log := logger.Get()

	userID := c.Query("user_id")
	if userID == "" {
		userID = "anon-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return
	}

	// One room per user session.
	client := &Client{
		Hub:    ch.Hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		RoomID: userID,
		UserID: userID,
	}
	ch.Hub.Register <- client

	connectedPayload, _ := json.Marshal(ConnectedPayload{UserID: userID})
	connectedMsg, _ := json.Marshal(WSMessage{
		Type:    MsgTypeConnected,
		Payload: connectedPayload,
	})
	client.Send <- connectedMsg

	log.Info("chat session started", zap.String("user_id", userID))

	go client.WritePump()
	go client.ReadPump(func(cl *Client, data []byte) {
		ch.handleMessage(cl, data)
	})
}

// handleMessage parses an incoming WebSocket message and routes it.
func (ch *ChatSessionHandler) handleMessage(client *Client, data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		ch.sendError(client, "invalid message format")
		return
	}

	switch msg.Type {
	case MsgTypeChatMessage:
		ch.handleChatMessage(client, msg.Payload)
	default:
		ch.sendError(client, "unknown message type: "+msg.Type)
	}
}

// handleChatMessage runs one chat turn and emits the composed answer
// followed by the profile state.
func (ch *ChatSessionHandler) handleChatMessage(client *Client, payload json.RawMessage) {
	log := logger.Get()

	var chatMsg ChatMessagePayload
	if err := json.Unmarshal(payload, &chatMsg); err != nil {
		ch.sendError(client, "invalid chat message payload")
		return
	}
	if chatMsg.Message == "" {
		ch.sendError(client, "message cannot be empty")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := ch.ChatService.Chat(ctx, client.UserID, chatMsg.Message)
	if err != nil {
		log.Error("chat turn failed",
			zap.String("user_id", client.UserID),
			zap.Error(err),
		)
		ch.sendError(client, "failed to process message")
		return
	}

	responsePayload, _ := json.Marshal(ChatResponsePayload{Message: result.Message})
	responseMsg, _ := json.Marshal(WSMessage{
		Type:    MsgTypeChatResponse,
		Payload: responsePayload,
	})
	client.Send <- responseMsg

	profileJSON, err := json.Marshal(result.Profile)
	if err != nil {
		return
	}
	statePayload, _ := json.Marshal(ProfileStatePayload{Profile: profileJSON})
	stateMsg, _ := json.Marshal(WSMessage{
		Type:    MsgTypeProfileState,
		Payload: statePayload,
	})
	client.Send <- stateMsg
}

// sendError sends an error message to a single client.
func (ch *ChatSessionHandler) sendError(client *Client, message string) {
	errPayload, _ := json.Marshal(ErrorPayload{Message: message})
	errMsg, _ := json.Marshal(WSMessage{
		Type:    MsgTypeError,
		Payload: errPayload,
	})
	client.Send <- errMsg
}
