package api

import (
	"strconv"

	"papas_go_backend/internal/ai"
	apperrors "papas_go_backend/internal/errors"
	"papas_go_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	UserID   string `json:"userId"`
	Message  string `json:"message"`
	Language string `json:"language"`
}

func processMessageHandler(assistant *services.AssistantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Message == "" {
			apperrors.HandleError(c, apperrors.New400Error("User ID and message are required"))
			return
		}

		reply, err := assistant.ProcessMessage(c.Request.Context(), req.UserID, req.Message, ai.NormalizeLanguage(req.Language))
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respondOK(c, reply)
	}
}

type voiceRequest struct {
	UserID   string `json:"userId"`
	Audio    string `json:"audio"`
	Language string `json:"language"`
}

func processAudioHandler(assistant *services.AssistantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req voiceRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Audio == "" {
			apperrors.HandleError(c, apperrors.New400Error("User ID and audio data are required"))
			return
		}

		reply, err := assistant.ProcessAudio(c.Request.Context(), req.UserID, req.Audio, ai.NormalizeLanguage(req.Language))
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respondOK(c, reply)
	}
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}

func translateHandler(assistant *services.AssistantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req translateRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
			apperrors.HandleError(c, apperrors.New400Error("Text to translate is required"))
			return
		}

		result, err := assistant.Translate(c.Request.Context(), req.Text, ai.NormalizeLanguage(req.TargetLanguage))
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respondOK(c, result)
	}
}

func analyzeDocumentHandler(assistant *services.AssistantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		documentID, err := strconv.ParseUint(c.Param("documentId"), 10, 32)
		if err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Invalid document ID"))
			return
		}

		result, err := assistant.AnalyzeDocument(c.Request.Context(), uint(documentID))
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respondOK(c, result)
	}
}

func chatHistoryHandler(assistant *services.AssistantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		if userID == "" {
			apperrors.HandleError(c, apperrors.New400Error("User ID is required"))
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

		messages, err := assistant.GetChatHistory(userID, limit)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respondOK(c, messages)
	}
}
