package category

import "github.com/google/uuid"

type CreateCategoryDTO struct {
	CourseID         uuid.UUID `json:"course_id" validate:"required"`
	Name             string    `json:"name" validate:"required,max=120"`
	Description      string    `json:"description" validate:"max=1000"`
	WeightPercentage float64   `json:"weight_percentage" validate:"gte=0,lte=100"`
	OrderSequence    *int      `json:"order_sequence" validate:"omitempty,gte=0"`
	DropLowest       int       `json:"drop_lowest" validate:"gte=0"`
}

type UpdateCategoryDTO struct {
	Name             *string  `json:"name" validate:"omitempty,max=120"`
	Description      *string  `json:"description" validate:"omitempty,max=1000"`
	WeightPercentage *float64 `json:"weight_percentage" validate:"omitempty,gte=0,lte=100"`
	OrderSequence    *int     `json:"order_sequence" validate:"omitempty,gte=0"`
	DropLowest       *int     `json:"drop_lowest" validate:"omitempty,gte=0"`
}

type WeightReport struct {
	CourseID   uuid.UUID     `json:"course_id"`
	Total      float64       `json:"total"`
	Consistent bool          `json:"consistent"`
	Message    string        `json:"message,omitempty"`
	Categories []WeightEntry `json:"categories"`
}

type WeightEntry struct {
	CategoryID       uuid.UUID `json:"category_id"`
	Name             string    `json:"name"`
	WeightPercentage float64   `json:"weight_percentage"`
}
