package category

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type CategoryRepository interface {
	Create(c *Category) error
	FindByID(id uuid.UUID) (*Category, error)
	ListByCourse(courseID uuid.UUID) ([]*Category, error)
	NextOrderSequence(courseID uuid.UUID) (int, error)
	Update(c *Category) error
	ListCalendarEventIDs(categoryID uuid.UUID) ([]string, error)
	DeleteCascade(id uuid.UUID) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(c *Category) error {
	return r.db.Create(c).Error
}

func (r *categoryRepository) FindByID(id uuid.UUID) (*Category, error) {
	var c Category
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) ListByCourse(courseID uuid.UUID) ([]*Category, error) {
	var categories []*Category
	if err := r.db.
		Where("course_id = ?", courseID).
		Order("order_sequence ASC, created_at ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) NextOrderSequence(courseID uuid.UUID) (int, error) {
	var max *int
	if err := r.db.Model(&Category{}).
		Where("course_id = ?", courseID).
		Select("MAX(order_sequence)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

func (r *categoryRepository) Update(c *Category) error {
	return r.db.Save(c).Error
}

func (r *categoryRepository) ListCalendarEventIDs(categoryID uuid.UUID) ([]string, error) {
	var ids []string
	err := r.db.Table("assessments").
		Where("category_id = ? AND google_calendar_event_id <> ''", categoryID).
		Pluck("google_calendar_event_id", &ids).Error
	return ids, err
}

func (r *categoryRepository) DeleteCascade(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM grades WHERE assessment_id IN (SELECT id FROM assessments WHERE category_id = ?)`, id,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM assessments WHERE category_id = ?`, id).Error; err != nil {
			return err
		}

		res := tx.Delete(&Category{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
