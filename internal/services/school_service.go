package services

import (
	"bytes"
	"errors"
	"fmt"

	"papas_go_backend/internal/models"

	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

type SchoolService struct {
	db *gorm.DB
}

func NewSchoolService(db *gorm.DB) *SchoolService {
	return &SchoolService{db: db}
}

// ListSchools returns a page of schools, each with its fee structure.
func (s *SchoolService) ListSchools(page, limit int) ([]models.School, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var schools []models.School
	err := s.db.Preload("FeeStructure").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&schools).Error
	if err != nil {
		return nil, err
	}
	return schools, nil
}

func (s *SchoolService) GetSchoolByID(id uint) (*models.School, error) {
	var school models.School
	err := s.db.Preload("FeeStructure").First(&school, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &school, nil
}

// SearchSchools matches name or location by substring, case-insensitive.
func (s *SchoolService) SearchSchools(query string) ([]models.School, error) {
	pattern := "%" + query + "%"

	var schools []models.School
	err := s.db.Preload("FeeStructure").
		Where("name ILIKE ? OR location ILIKE ?", pattern, pattern).
		Find(&schools).Error
	if err != nil {
		return nil, err
	}
	return schools, nil
}

// FeeSchedulePDF renders a school's approved fee schedule as a printable
// PDF for parents to keep.
func (s *SchoolService) FeeSchedulePDF(school *models.School) ([]byte, error) {
	if school.FeeStructure == nil {
		return nil, fmt.Errorf("school %d has no fee structure on record", school.ID)
	}
	fees := school.FeeStructure

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Approved Fee Schedule")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, school.Name)
	pdf.Ln(6)
	pdf.Cell(0, 8, school.Location)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(60, 8, "Stage", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "Annual", "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 8, "Monthly", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	rows := []struct {
		stage   string
		annual  float64
		monthly float64
	}{
		{"Nursery", fees.NurseryAnnual, fees.NurseryMonthly},
		{"Primary", fees.PrimaryAnnual, fees.PrimaryMonthly},
		{"Middle", fees.MiddleAnnual, fees.MiddleMonthly},
		{"Secondary", fees.SecondaryAnnual, fees.SecondaryMonthly},
	}
	for _, row := range rows {
		pdf.CellFormat(60, 8, row.stage, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, fmt.Sprintf("%.2f", row.annual), "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 8, fmt.Sprintf("%.2f", row.monthly), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	status := "Pending committee approval"
	if fees.Approved {
		status = "Approved by the Fee Fixation Committee"
	}
	pdf.Cell(0, 6, status)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render fee schedule PDF: %w", err)
	}
	return buf.Bytes(), nil
}
