package models

import (
	"time"

	"github.com/google/uuid"
)

// Scheme is one government welfare scheme row. Rows are maintained by an
// external administrative process; this service only reads them.
type Scheme struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SchemeName        string    `json:"scheme_name" gorm:"type:varchar(255);not null"`
	SchemeNameHindi   string    `json:"scheme_name_hindi,omitempty" gorm:"type:varchar(255)"`
	SchemeNameKannada string    `json:"scheme_name_kannada,omitempty" gorm:"type:varchar(255)"`

	Sector string `json:"sector" gorm:"type:varchar(100);not null"`
	// Level is "Central" or "State".
	Level    string   `json:"level" gorm:"type:varchar(50);not null"`
	State    string   `json:"state,omitempty" gorm:"type:varchar(100)"`
	Category []string `json:"category,omitempty" gorm:"serializer:json"`

	MinAge                 *int     `json:"min_age,omitempty"`
	MaxAge                 *int     `json:"max_age,omitempty"`
	MaxIncome              *int64   `json:"max_income,omitempty"`
	MaxLandholdingHectares *float64 `json:"max_landholding_hectares,omitempty"`
	Occupation             []string `json:"occupation,omitempty" gorm:"serializer:json"`
	Gender                 string   `json:"gender,omitempty" gorm:"type:varchar(20)"`
	DisabilityRequired     *bool    `json:"disability_required,omitempty"`

	Benefits          string   `json:"benefits" gorm:"type:text;not null"`
	BenefitsHindi     string   `json:"benefits_hindi,omitempty" gorm:"type:text"`
	DocumentsRequired []string `json:"documents_required" gorm:"serializer:json"`
	ApplicationSteps  []string `json:"application_steps" gorm:"serializer:json"`
	OfficialPortal    string   `json:"official_portal,omitempty" gorm:"type:varchar(500)"`

	// PriorityScore only orders context emission, highest first.
	PriorityScore int  `json:"priority_score" gorm:"not null;default:0"`
	IsActive      bool `json:"is_active" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}
