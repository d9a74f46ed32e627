package academic_goal

import (
	"time"

	"github.com/google/uuid"

	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

type AcademicGoal struct {
	ID                    uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID                uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CourseID              *uuid.UUID `gorm:"type:uuid;index" json:"course_id,omitempty"`
	GoalType              GoalType   `gorm:"type:text;not null" json:"goal_type"`
	Title                 string     `gorm:"type:text;not null" json:"title"`
	Description           string     `gorm:"type:text" json:"description,omitempty"`
	TargetValue           float64    `gorm:"not null" json:"target_value"`
	CurrentValue          *float64   `json:"current_value"`
	Semester              string     `gorm:"type:text" json:"semester,omitempty"`
	TargetDate            *util.Date `gorm:"type:date;index" json:"target_date,omitempty"`
	Priority              Priority   `gorm:"type:text;not null;default:'MEDIUM'" json:"priority"`
	IsAchieved            bool       `gorm:"not null;default:false" json:"is_achieved"`
	AchievedDate          *util.Date `gorm:"type:date" json:"achieved_date,omitempty"`
	OverdueNotifiedAt     *time.Time `json:"-"`
	GoogleCalendarEventID string     `gorm:"type:text" json:"google_calendar_event_id,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// IsOverdue: the target date has passed and the goal was not achieved.
func (g *AcademicGoal) IsOverdue(today util.Date) bool {
	return !g.IsAchieved && g.TargetDate != nil && g.TargetDate.Before(today)
}

// IsUpcoming: not achieved and due within [from, to].
func (g *AcademicGoal) IsUpcoming(from, to util.Date) bool {
	return !g.IsAchieved && g.TargetDate != nil && g.TargetDate.Between(from, to)
}
