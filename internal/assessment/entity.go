package assessment

import (
	"time"

	"github.com/google/uuid"

	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

type Assessment struct {
	ID                    uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID              uuid.UUID  `gorm:"type:uuid;not null;index" json:"course_id"`
	CategoryID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"category_id"`
	Name                  string     `gorm:"type:text;not null" json:"name"`
	Description           string     `gorm:"type:text" json:"description,omitempty"`
	MaxPoints             float64    `gorm:"not null" json:"max_points"`
	DueDate               *util.Date `gorm:"type:date" json:"due_date,omitempty"`
	Status                Status     `gorm:"type:text;not null;default:'UPCOMING';index" json:"status"`
	GoogleCalendarEventID string     `gorm:"type:text" json:"google_calendar_event_id,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}
