package course

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type CourseRepository interface {
	Create(c *Course) error
	FindByID(id uuid.UUID) (*Course, error)
	FindByIDAndUserID(id, userID uuid.UUID) (*Course, error)
	ListByUser(userID uuid.UUID, semester string, activeOnly bool) ([]*Course, error)
	Update(c *Course) error
	ListCalendarEventIDs(courseID uuid.UUID) ([]string, error)
	DeleteCascade(id, userID uuid.UUID) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(c *Course) error {
	return r.db.Create(c).Error
}

func (r *courseRepository) FindByID(id uuid.UUID) (*Course, error) {
	var c Course
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *courseRepository) FindByIDAndUserID(id, userID uuid.UUID) (*Course, error) {
	var c Course
	if err := r.db.First(&c, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *courseRepository) ListByUser(userID uuid.UUID, semester string, activeOnly bool) ([]*Course, error) {
	q := r.db.Where("user_id = ?", userID)
	if semester != "" {
		q = q.Where("semester = ?", semester)
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var courses []*Course
	if err := q.Order("created_at ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Update(c *Course) error {
	return r.db.Save(c).Error
}

func (r *courseRepository) ListCalendarEventIDs(courseID uuid.UUID) ([]string, error) {
	var ids []string
	err := r.db.Table("assessments").
		Where("course_id = ? AND google_calendar_event_id <> ''", courseID).
		Pluck("google_calendar_event_id", &ids).Error
	return ids, err
}

// DeleteCascade removes grades, assessments and categories of the course, then the course, in one transaction.
func (r *courseRepository) DeleteCascade(id, userID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM grades WHERE assessment_id IN (SELECT id FROM assessments WHERE course_id = ?)`, id,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM assessments WHERE course_id = ?`, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM categories WHERE course_id = ?`, id).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&Course{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
