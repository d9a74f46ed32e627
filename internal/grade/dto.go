package grade

import (
	"time"

	"github.com/google/uuid"

	"github.com/saulo-duarte/gradetrack-lambda/internal/grading"
)

type CreateGradeDTO struct {
	AssessmentID    uuid.UUID         `json:"assessment_id" validate:"required"`
	ScoreType       grading.ScoreType `json:"score_type"`
	PointsEarned    *float64          `json:"points_earned"`
	PointsPossible  *float64          `json:"points_possible"`
	PercentageScore *float64          `json:"percentage_score"`
	IsExtraCredit   bool              `json:"is_extra_credit"`
	Notes           string            `json:"notes" validate:"max=2000"`
	GradedAt        *time.Time        `json:"graded_at"`
}

type UpdateGradeDTO struct {
	ScoreType       *grading.ScoreType `json:"score_type"`
	PointsEarned    *float64           `json:"points_earned"`
	PointsPossible  *float64           `json:"points_possible"`
	PercentageScore *float64           `json:"percentage_score"`
	IsExtraCredit   *bool              `json:"is_extra_credit"`
	Notes           *string            `json:"notes" validate:"omitempty,max=2000"`
	GradedAt        *time.Time         `json:"graded_at"`
}
