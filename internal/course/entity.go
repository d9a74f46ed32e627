package course

import (
	"time"

	"github.com/google/uuid"

	"github.com/saulo-duarte/gradetrack-lambda/internal/grading"
)

type Course struct {
	ID           uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string        `gorm:"type:text;not null" json:"name"`
	Code         string        `gorm:"type:text" json:"code,omitempty"`
	Instructor   string        `gorm:"type:text" json:"instructor,omitempty"`
	Semester     string        `gorm:"type:text;index" json:"semester,omitempty"`
	Credits      float64       `gorm:"not null;default:1" json:"credits"`
	GradingScale grading.Scale `gorm:"type:text;not null;default:'percentage'" json:"grading_scale"`
	MaxPoints    float64       `gorm:"not null;default:0" json:"max_points"`
	GPAScale     float64       `gorm:"column:gpa_scale;not null;default:4" json:"gpa_scale"`
	TermSystem   TermSystem    `gorm:"type:text;not null;default:'semester'" json:"term_system"`
	Color        string        `gorm:"type:text" json:"color,omitempty"`
	IsActive     bool          `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
