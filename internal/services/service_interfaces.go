package services

import (
	"papas_go_backend/internal/models"
)

// ChatStore persists and retrieves conversation turns.
type ChatStore interface {
	SaveChatMessage(userID, message string, isUser bool, language string) (*models.ChatMessage, error)
	GetRecentMessages(userID string, limit int) ([]models.ChatMessage, error)
}

// DocumentFetcher is the narrow read-only view of document storage that the
// assistant needs for the analysis operation.
type DocumentFetcher interface {
	GetDocumentByID(id uint) (*models.Document, error)
}

// ReplyPublisher fans assistant replies out to connected websocket clients.
type ReplyPublisher interface {
	Publish(topic string, msg interface{})
}
