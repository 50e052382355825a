package services

import (
	"papas_go_backend/internal/models"

	"gorm.io/gorm"
)

// GormChatStore implements ChatStore on Postgres.
type GormChatStore struct {
	db *gorm.DB
}

func NewGormChatStore(db *gorm.DB) *GormChatStore {
	return &GormChatStore{db: db}
}

func (s *GormChatStore) SaveChatMessage(userID, message string, isUser bool, language string) (*models.ChatMessage, error) {
	msg := &models.ChatMessage{
		UserID:   userID,
		Message:  message,
		IsUser:   isUser,
		Language: language,
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// GetRecentMessages returns the last `limit` turns for a user in
// chronological order (oldest first), ready for context assembly.
func (s *GormChatStore) GetRecentMessages(userID string, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Query is newest-first for the LIMIT; callers want oldest-first.
	return oldestFirst(messages), nil
}

func oldestFirst(messages []models.ChatMessage) []models.ChatMessage {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages
}
