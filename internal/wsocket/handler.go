package wsocket

import (
	"context"
	"net/http"

	"papas_go_backend/internal/ai"
	"papas_go_backend/internal/broker"
	"papas_go_backend/internal/models"
	"papas_go_backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Message is the wire format on the chat socket, both directions.
type Message struct {
	Type      string `json:"type"`
	Content   string `json:"content,omitempty"`
	Language  string `json:"language,omitempty"`
	MessageID uint   `json:"messageId,omitempty"`
}

type Handler struct {
	assistant *services.AssistantService
	msgBroker *broker.Broker
	upgrader  websocket.Upgrader
	logger    zerolog.Logger
}

func NewHandler(assistant *services.AssistantService, msgBroker *broker.Broker, upgrader websocket.Upgrader, logger zerolog.Logger) *Handler {
	return &Handler{
		assistant: assistant,
		msgBroker: msgBroker,
		upgrader:  upgrader,
		logger:    logger.With().Str("component", "wsocket").Logger(),
	}
}

// HandleChat upgrades the connection and serves a live chat session.
// Assistant replies reach the client through the broker, so every socket
// the same user has open receives them, not just the one that asked.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "No userId provided", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to upgrade connection")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	replies := h.msgBroker.Subscribe(services.ChatReplyTopic(userID))
	defer h.msgBroker.Unsubscribe(services.ChatReplyTopic(userID), replies)

	// Single writer: the read loop pushes errors here and the broker
	// delivers replies here, so the connection is never written from two
	// goroutines at once.
	outbound := make(chan Message, 8)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-replies:
				if !ok {
					return
				}
				reply, ok := msg.(*models.ChatMessage)
				if !ok {
					continue
				}
				if !send(ctx, outbound, Message{
					Type:      "assistant_reply",
					Content:   reply.Message,
					Language:  reply.Language,
					MessageID: reply.ID,
				}) {
					return
				}
			}
		}
	}()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-outbound:
				if err := conn.WriteJSON(msg); err != nil {
					h.logger.Warn().Err(err).Msg("failed to write to socket")
					cancel()
					return
				}
			}
		}
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn().Err(err).Str("userID", userID).Msg("socket read error")
			}
			return
		}

		if msg.Type != "chat" || msg.Content == "" {
			send(ctx, outbound, Message{Type: "error", Content: "expected a chat message with content"})
			continue
		}

		if _, err := h.assistant.ProcessMessage(ctx, userID, msg.Content, ai.NormalizeLanguage(msg.Language)); err != nil {
			h.logger.Warn().Err(err).Str("userID", userID).Msg("assistant failed over socket")
			send(ctx, outbound, Message{Type: "error", Content: "Error processing message"})
		}
	}
}

// send delivers to the single-writer channel without blocking past the
// session context. Once the writer goroutine has exited, a full buffer
// would otherwise park the sender forever.
func send(ctx context.Context, outbound chan<- Message, msg Message) bool {
	select {
	case outbound <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}
