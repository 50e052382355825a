package api

import (
	"net/http"
	"strconv"

	apperrors "papas_go_backend/internal/errors"
	"papas_go_backend/internal/services"

	"github.com/gin-gonic/gin"
)

func listDocumentsHandler(documents *services.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		category := c.Query("category")

		result, err := documents.ListDocuments(page, limit, category)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respondOK(c, result)
	}
}

func getDocumentHandler(documents *services.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Invalid document ID"))
			return
		}

		doc, err := documents.GetDocumentByID(uint(id))
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		if doc == nil {
			apperrors.HandleError(c, apperrors.New404Error("Document not found"))
			return
		}
		respondOK(c, doc)
	}
}

func searchDocumentsHandler(documents *services.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			apperrors.HandleError(c, apperrors.New400Error("Search query is required"))
			return
		}

		result, err := documents.SearchDocuments(query)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respondOK(c, result)
	}
}

func documentsByCategoryHandler(documents *services.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := documents.GetDocumentsByCategory(c.Param("category"))
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respondOK(c, result)
	}
}

// ingestDocumentHandler accepts a multipart PDF upload, extracts its text
// and stores it as a searchable, analyzable document.
func ingestDocumentHandler(documents *services.DocumentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		title := c.PostForm("title")
		category := c.PostForm("category")
		if title == "" || category == "" {
			apperrors.HandleError(c, apperrors.New400Error("Title and category are required"))
			return
		}
		issuedBy := c.PostForm("issuedBy")

		fileHeader, err := c.FormFile("file")
		if err != nil {
			apperrors.HandleError(c, apperrors.New400Error("A PDF file is required"))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		defer file.Close()

		doc, err := documents.IngestPDF(title, category, issuedBy, file)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    doc,
		})
	}
}
