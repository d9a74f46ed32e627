package academic_goal

import (
	"github.com/google/uuid"

	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

type CreateAcademicGoalDTO struct {
	CourseID    *uuid.UUID `json:"course_id"`
	GoalType    GoalType   `json:"goal_type" validate:"required"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	TargetValue float64    `json:"target_value" validate:"gte=0"`
	Semester    string     `json:"semester" validate:"max=40"`
	TargetDate  *util.Date `json:"target_date"`
	Priority    Priority   `json:"priority"`
}

type UpdateAcademicGoalDTO struct {
	Title           *string    `json:"title" validate:"omitempty,max=200"`
	Description     *string    `json:"description" validate:"omitempty,max=2000"`
	TargetValue     *float64   `json:"target_value" validate:"omitempty,gte=0"`
	Semester        *string    `json:"semester" validate:"omitempty,max=40"`
	TargetDate      *util.Date `json:"target_date"`
	ClearTargetDate bool       `json:"clear_target_date"`
	Priority        *Priority  `json:"priority"`
}

type ListFilter struct {
	GoalType *GoalType
	CourseID *uuid.UUID
	Achieved *bool
}

// GoalEvaluation reports the achievement state of one goal before and after an evaluation.
type GoalEvaluation struct {
	GoalID           uuid.UUID `json:"goal_id"`
	PreviousAchieved bool      `json:"previous_achieved"`
	NewAchieved      bool      `json:"new_achieved"`
	CurrentValue     *float64  `json:"current_value"`
}

// Scope narrows an evaluation to the goals a course change can affect.
type Scope struct {
	CourseID *uuid.UUID
	Semester string
}
