package assessment

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

var ErrNotFound = errors.New("record not found")

type AssessmentRepository interface {
	Create(a *Assessment) error
	FindByID(id uuid.UUID) (*Assessment, error)
	ListByCategory(categoryID uuid.UUID) ([]*Assessment, error)
	ListByCourse(courseID uuid.UUID) ([]*Assessment, error)
	Update(a *Assessment) error
	DeleteCascade(id uuid.UUID) error
	MarkOverdue(asOf util.Date) (int64, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(a *Assessment) error {
	return r.db.Create(a).Error
}

func (r *assessmentRepository) FindByID(id uuid.UUID) (*Assessment, error) {
	var a Assessment
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *assessmentRepository) ListByCategory(categoryID uuid.UUID) ([]*Assessment, error) {
	var items []*Assessment
	err := r.db.
		Where("category_id = ?", categoryID).
		Order("due_date ASC NULLS LAST, created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *assessmentRepository) ListByCourse(courseID uuid.UUID) ([]*Assessment, error) {
	var items []*Assessment
	err := r.db.
		Where("course_id = ?", courseID).
		Order("due_date ASC NULLS LAST, created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *assessmentRepository) Update(a *Assessment) error {
	return r.db.Save(a).Error
}

func (r *assessmentRepository) DeleteCascade(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM grades WHERE assessment_id = ?`, id).Error; err != nil {
			return err
		}

		res := tx.Delete(&Assessment{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// markOverdue matches the grade write path: only regular grades make an assessment graded.
func markOverdue(tx *gorm.DB, asOf util.Date, now time.Time) *gorm.DB {
	return tx.Model(&Assessment{}).
		Where("status = ? AND due_date < ?", StatusUpcoming, asOf).
		Where("NOT EXISTS (SELECT 1 FROM grades g WHERE g.assessment_id = assessments.id AND g.is_extra_credit = false)").
		Updates(map[string]interface{}{
			"status":     StatusOverdue,
			"updated_at": now,
		})
}

// MarkOverdue flips ungraded UPCOMING assessments due before asOf to OVERDUE.
func (r *assessmentRepository) MarkOverdue(asOf util.Date) (int64, error) {
	res := markOverdue(r.db, asOf, time.Now())
	return res.RowsAffected, res.Error
}
