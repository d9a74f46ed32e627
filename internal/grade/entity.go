package grade

import (
	"time"

	"github.com/google/uuid"

	"github.com/saulo-duarte/gradetrack-lambda/internal/grading"
)

type Grade struct {
	ID              uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssessmentID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"assessment_id"`
	ScoreType       grading.ScoreType `gorm:"type:text;not null;default:'POINTS'" json:"score_type"`
	PointsEarned    float64           `gorm:"not null;default:0" json:"points_earned"`
	PointsPossible  float64           `gorm:"not null;default:0" json:"points_possible"`
	PercentageScore float64           `gorm:"not null;default:0" json:"percentage_score"`
	IsExtraCredit   bool              `gorm:"not null;default:false" json:"is_extra_credit"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	GradedAt        time.Time         `json:"graded_at"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (g *Grade) Input() grading.GradeInput {
	return grading.GradeInput{
		ScoreType:       g.ScoreType,
		PointsEarned:    g.PointsEarned,
		PointsPossible:  g.PointsPossible,
		PercentageScore: g.PercentageScore,
		IsExtraCredit:   g.IsExtraCredit,
	}
}
