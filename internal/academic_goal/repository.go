package academic_goal

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	Create(goal *AcademicGoal) error
	FindByIDAndUserID(id, userID uuid.UUID) (*AcademicGoal, error)
	ListByUser(userID uuid.UUID, filter ListFilter) ([]*AcademicGoal, error)
	Update(goal *AcademicGoal) error
	Delete(id, userID uuid.UUID) error
	ListInScope(userID uuid.UUID, scope Scope) ([]*AcademicGoal, error)
	Evaluate(userID uuid.UUID, scope Scope, apply func(goals []*AcademicGoal) error) error
	ListOverdue(asOf util.Date, userID *uuid.UUID) ([]*AcademicGoal, error)
	ListUpcoming(from, to util.Date, userID uuid.UUID) ([]*AcademicGoal, error)
	ListUserIDs() ([]uuid.UUID, error)
	MarkOverdueNotified(id uuid.UUID, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(goal *AcademicGoal) error {
	return r.db.Create(goal).Error
}

func (r *repository) FindByIDAndUserID(id, userID uuid.UUID) (*AcademicGoal, error) {
	var goal AcademicGoal
	if err := r.db.First(&goal, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *repository) ListByUser(userID uuid.UUID, filter ListFilter) ([]*AcademicGoal, error) {
	q := r.db.Where("user_id = ?", userID)
	if filter.GoalType != nil {
		q = q.Where("goal_type = ?", *filter.GoalType)
	}
	if filter.CourseID != nil {
		q = q.Where("course_id = ?", *filter.CourseID)
	}
	if filter.Achieved != nil {
		q = q.Where("is_achieved = ?", *filter.Achieved)
	}

	var goals []*AcademicGoal
	if err := q.Order("target_date ASC NULLS LAST, created_at ASC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *repository) Update(goal *AcademicGoal) error {
	return r.db.Save(goal).Error
}

func (r *repository) Delete(id, userID uuid.UUID) error {
	res := r.db.Delete(&AcademicGoal{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func inScope(db *gorm.DB, userID uuid.UUID, scope Scope) *gorm.DB {
	q := db.Where("user_id = ?", userID)
	if scope.CourseID != nil {
		group := db.Session(&gorm.Session{NewDB: true})
		q = q.Where(
			group.Where("goal_type = ? AND course_id = ?", GoalTypeCourseGrade, *scope.CourseID).
				Or("goal_type = ? AND semester = ?", GoalTypeSemesterGPA, scope.Semester).
				Or("goal_type = ?", GoalTypeCumulativeGPA),
		)
	}
	return q.Order("created_at ASC")
}

// ListInScope reads the goals Evaluate would lock, without locking them.
func (r *repository) ListInScope(userID uuid.UUID, scope Scope) ([]*AcademicGoal, error) {
	var goals []*AcademicGoal
	err := inScope(r.db, userID, scope).Find(&goals).Error
	return goals, err
}

// Evaluate row-locks the goals in scope, hands them to apply and saves them in
// the same transaction, so concurrent evaluations of one user serialize. apply
// must not query other data; the locks are held until it returns.
func (r *repository) Evaluate(userID uuid.UUID, scope Scope, apply func(goals []*AcademicGoal) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var goals []*AcademicGoal
		if err := inScope(tx.Clauses(clause.Locking{Strength: "UPDATE"}), userID, scope).Find(&goals).Error; err != nil {
			return err
		}
		if len(goals) == 0 {
			return nil
		}

		if err := apply(goals); err != nil {
			return err
		}

		for _, g := range goals {
			if err := tx.Save(g).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) ListOverdue(asOf util.Date, userID *uuid.UUID) ([]*AcademicGoal, error) {
	q := r.db.Where("is_achieved = ? AND target_date IS NOT NULL AND target_date < ?", false, asOf)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var goals []*AcademicGoal
	if err := q.Order("target_date ASC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *repository) ListUpcoming(from, to util.Date, userID uuid.UUID) ([]*AcademicGoal, error) {
	var goals []*AcademicGoal
	err := r.db.
		Where("user_id = ? AND is_achieved = ?", userID, false).
		Where("target_date >= ? AND target_date <= ?", from, to).
		Order("target_date ASC").
		Find(&goals).Error
	return goals, err
}

func (r *repository) ListUserIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&AcademicGoal{}).Distinct("user_id").Pluck("user_id", &ids).Error
	return ids, err
}

func (r *repository) MarkOverdueNotified(id uuid.UUID, at time.Time) error {
	return r.db.Model(&AcademicGoal{}).
		Where("id = ?", id).
		Update("overdue_notified_at", at).Error
}
