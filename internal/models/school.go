package models

import (
	"time"

	"gorm.io/gorm"
)

type School struct {
	gorm.Model
	Name               string     `gorm:"type:varchar(255);not null;index" json:"name"`
	Location           string     `gorm:"type:varchar(255);not null" json:"location"`
	Type               string     `gorm:"type:varchar(50);not null" json:"type"`
	Affiliation        string     `gorm:"type:varchar(100)" json:"affiliation"`
	ContactPhone       string     `gorm:"type:varchar(20)" json:"contact_phone"`
	ContactEmail       string     `gorm:"type:varchar(100)" json:"contact_email"`
	ContactWebsite     string     `gorm:"type:varchar(255)" json:"contact_website"`
	ApprovalStatus     bool       `gorm:"default:false" json:"approval_status"`
	RegistrationNumber string     `gorm:"type:varchar(100)" json:"registration_number"`
	ApprovalDate       *time.Time `json:"approval_date,omitempty"`
	Facilities         []string   `gorm:"serializer:json" json:"facilities"`

	FeeStructure *FeeStructure `gorm:"foreignKey:SchoolID" json:"fee_structure,omitempty"`
}

// FeeStructure holds the committee-approved fee schedule for one school,
// per stage, as annual and monthly amounts.
type FeeStructure struct {
	gorm.Model
	SchoolID         uint    `gorm:"index;not null" json:"school_id"`
	NurseryAnnual    float64 `json:"nursery_annual"`
	NurseryMonthly   float64 `json:"nursery_monthly"`
	PrimaryAnnual    float64 `json:"primary_annual"`
	PrimaryMonthly   float64 `json:"primary_monthly"`
	MiddleAnnual     float64 `json:"middle_annual"`
	MiddleMonthly    float64 `json:"middle_monthly"`
	SecondaryAnnual  float64 `json:"secondary_annual"`
	SecondaryMonthly float64 `json:"secondary_monthly"`
	Approved         bool    `gorm:"default:false" json:"approved"`
}
