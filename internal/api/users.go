package api

import (
	apperrors "papas_go_backend/internal/errors"
	"papas_go_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type subscribeRequest struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

func subscribeHandler(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Token == "" {
			apperrors.HandleError(c, apperrors.New400Error("User ID and notification token are required"))
			return
		}

		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Invalid user ID"))
			return
		}

		if err := users.SaveNotificationToken(userID, req.Token); err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respondOK(c, gin.H{"subscribed": true})
	}
}
