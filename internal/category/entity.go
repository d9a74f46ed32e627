package category

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID         uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Name             string    `gorm:"type:text;not null" json:"name"`
	Description      string    `gorm:"type:text" json:"description,omitempty"`
	WeightPercentage float64   `gorm:"not null" json:"weight_percentage"`
	OrderSequence    int       `gorm:"not null;default:0" json:"order_sequence"`
	DropLowest       int       `gorm:"not null;default:0" json:"drop_lowest"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
