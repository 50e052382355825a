package api

import (
	"net/http"

	"papas_go_backend/internal/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	assistant *services.AssistantService,
	schools *services.SchoolService,
	documents *services.DocumentService,
	users *services.UserService,
) {
	api := r.Group("/api")
	{
		// AI assistant
		api.POST("/chat", processMessageHandler(assistant))
		api.POST("/voice", processAudioHandler(assistant))
		api.POST("/translate", translateHandler(assistant))
		api.GET("/analyze/document/:documentId", analyzeDocumentHandler(assistant))
		api.GET("/chat/history/:userId", chatHistoryHandler(assistant))

		// School directory
		api.GET("/schools", listSchoolsHandler(schools))
		api.GET("/schools/search", searchSchoolsHandler(schools))
		api.GET("/schools/:id", getSchoolHandler(schools))
		api.GET("/schools/:id/fees/pdf", feeSchedulePDFHandler(schools))

		// Regulatory documents
		api.GET("/documents", listDocumentsHandler(documents))
		api.GET("/documents/search", searchDocumentsHandler(documents))
		api.GET("/documents/category/:category", documentsByCategoryHandler(documents))
		api.GET("/documents/:id", getDocumentHandler(documents))
		api.POST("/documents/ingest", ingestDocumentHandler(documents))

		// Push notification registration
		api.POST("/subscribe", subscribeHandler(users))
	}
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}
