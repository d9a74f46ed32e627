package grade

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type GradeRepository interface {
	Create(g *Grade) error
	FindByID(id uuid.UUID) (*Grade, error)
	ListByAssessment(assessmentID uuid.UUID) ([]*Grade, error)
	ListByAssessmentIDs(ids []uuid.UUID) ([]*Grade, error)
	CountByAssessment(assessmentID uuid.UUID) (int64, error)
	Update(g *Grade) error
	Delete(id uuid.UUID) error
}

type gradeRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) Create(g *Grade) error {
	return r.db.Create(g).Error
}

func (r *gradeRepository) FindByID(id uuid.UUID) (*Grade, error) {
	var g Grade
	if err := r.db.First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *gradeRepository) ListByAssessment(assessmentID uuid.UUID) ([]*Grade, error) {
	var grades []*Grade
	err := r.db.
		Where("assessment_id = ?", assessmentID).
		Order("graded_at ASC").
		Find(&grades).Error
	return grades, err
}

func (r *gradeRepository) ListByAssessmentIDs(ids []uuid.UUID) ([]*Grade, error) {
	var grades []*Grade
	if len(ids) == 0 {
		return grades, nil
	}
	err := r.db.Where("assessment_id IN ?", ids).Find(&grades).Error
	return grades, err
}

// CountByAssessment counts regular grades only; extra credit alone does not grade an assessment.
func (r *gradeRepository) CountByAssessment(assessmentID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.Model(&Grade{}).
		Where("assessment_id = ? AND is_extra_credit = ?", assessmentID, false).
		Count(&n).Error
	return n, err
}

func (r *gradeRepository) Update(g *Grade) error {
	return r.db.Save(g).Error
}

func (r *gradeRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&Grade{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
