package services

import (
	"testing"

	"papas_go_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestOldestFirst(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, oldestFirst([]models.ChatMessage{}))
	})

	t.Run("single message", func(t *testing.T) {
		got := oldestFirst([]models.ChatMessage{{ID: 1, Message: "q1"}})
		assert.Equal(t, uint(1), got[0].ID)
	})

	t.Run("newest-first query order is reversed", func(t *testing.T) {
		got := oldestFirst([]models.ChatMessage{
			{ID: 3, Message: "a2", IsUser: false},
			{ID: 2, Message: "q2", IsUser: true},
			{ID: 1, Message: "a1", IsUser: false},
		})
		assert.Equal(t, []uint{1, 2, 3}, []uint{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("even length", func(t *testing.T) {
		got := oldestFirst([]models.ChatMessage{{ID: 4}, {ID: 3}, {ID: 2}, {ID: 1}})
		assert.Equal(t, []uint{1, 2, 3, 4}, []uint{got[0].ID, got[1].ID, got[2].ID, got[3].ID})
	})
}
