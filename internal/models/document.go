package models

import (
	"time"

	"gorm.io/gorm"
)

// Document is a regulatory circular or policy text published by the
// education authorities. Content holds the full extracted text used by the
// AI analysis endpoint.
type Document struct {
	gorm.Model
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Category    string     `gorm:"type:varchar(100);not null;index" json:"category"`
	IssueDate   *time.Time `json:"issue_date,omitempty"`
	IssuedBy    string     `gorm:"type:varchar(255)" json:"issued_by"`
	Summary     string     `gorm:"type:text" json:"summary"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	DownloadURL string     `gorm:"type:varchar(255)" json:"download_url"`
}
