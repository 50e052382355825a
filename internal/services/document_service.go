package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"papas_go_backend/internal/models"

	"github.com/ledongthuc/pdf"
	"gorm.io/gorm"
)

type DocumentService struct {
	db *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{db: db}
}

func (s *DocumentService) ListDocuments(page, limit int, category string) ([]models.Document, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&models.Document{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var documents []models.Document
	err := query.Offset((page - 1) * limit).Limit(limit).Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

func (s *DocumentService) GetDocumentByID(id uint) (*models.Document, error) {
	var doc models.Document
	err := s.db.First(&doc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *DocumentService) SearchDocuments(query string) ([]models.Document, error) {
	pattern := "%" + query + "%"

	var documents []models.Document
	err := s.db.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern).
		Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

func (s *DocumentService) GetDocumentsByCategory(category string) ([]models.Document, error) {
	var documents []models.Document
	err := s.db.Where("category = ?", category).Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

// IngestPDF extracts the text of an uploaded regulatory circular and stores
// it as a Document so the search and analysis endpoints can serve it.
func (s *DocumentService) IngestPDF(title, category, issuedBy string, pdfReader io.Reader) (*models.Document, error) {
	tempFile, err := os.CreateTemp("", "circular-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	if _, err := io.Copy(tempFile, pdfReader); err != nil {
		return nil, fmt.Errorf("failed to save PDF content: %w", err)
	}

	content, err := extractTextFromPDF(tempFile.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from PDF: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("PDF contained no extractable text")
	}

	doc := &models.Document{
		Title:    title,
		Category: category,
		IssuedBy: issuedBy,
		Content:  content,
	}
	if err := s.db.Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

func extractTextFromPDF(pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var content strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", pageIndex, err)
		}
		content.WriteString(text)
	}

	return content.String(), nil
}
