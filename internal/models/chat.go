package models

import "time"

// ChatMessage is one turn of a user's conversation with the assistant.
// Turns are append-only and ordered by CreatedAt; IsUser distinguishes the
// parent's messages from assistant replies.
type ChatMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    string    `gorm:"type:varchar(64);index;not null" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsUser    bool      `gorm:"not null" json:"is_user"`
	Language  string    `gorm:"type:varchar(10);default:english" json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_history"
}
