package recommendation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Recommendation struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CourseID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	Summary   string         `gorm:"type:text;not null" json:"summary"`
	Items     datatypes.JSON `gorm:"type:jsonb;not null" json:"items"`
	Model     string         `gorm:"type:text" json:"model"`
	CreatedAt time.Time      `json:"created_at"`
}

type Item struct {
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Priority string `json:"priority"`
}

// Advice is what the model is asked to return.
type Advice struct {
	Summary string `json:"summary"`
	Items   []Item `json:"items"`
}
