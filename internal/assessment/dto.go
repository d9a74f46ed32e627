package assessment

import (
	"github.com/google/uuid"

	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

type CreateAssessmentDTO struct {
	CategoryID  uuid.UUID  `json:"category_id" validate:"required"`
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	MaxPoints   float64    `json:"max_points" validate:"gt=0"`
	DueDate     *util.Date `json:"due_date"`
}

type UpdateAssessmentDTO struct {
	CategoryID   *uuid.UUID `json:"category_id"`
	Name         *string    `json:"name" validate:"omitempty,max=200"`
	Description  *string    `json:"description" validate:"omitempty,max=2000"`
	MaxPoints    *float64   `json:"max_points" validate:"omitempty,gt=0"`
	DueDate      *util.Date `json:"due_date"`
	ClearDueDate bool       `json:"clear_due_date"`
	Status       *Status    `json:"status"`
}

type StatusCounts struct {
	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	Cancelled int `json:"cancelled"`
}

func CountStatuses(items []*Assessment) StatusCounts {
	var c StatusCounts
	for _, a := range items {
		c.Total++
		switch a.Status {
		case StatusUpcoming:
			c.Upcoming++
		case StatusCompleted:
			c.Completed++
		case StatusOverdue:
			c.Overdue++
		case StatusCancelled:
			c.Cancelled++
		}
	}
	return c
}
