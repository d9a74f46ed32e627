package recommendation

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecommendationRepository interface {
	Create(r *Recommendation) error
	ListByUser(userID uuid.UUID, courseID *uuid.UUID, limit int) ([]*Recommendation, error)
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) Create(rec *Recommendation) error {
	return r.db.Create(rec).Error
}

func (r *recommendationRepository) ListByUser(userID uuid.UUID, courseID *uuid.UUID, limit int) ([]*Recommendation, error) {
	q := r.db.Where("user_id = ?", userID)
	if courseID != nil {
		q = q.Where("course_id = ?", *courseID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var recs []*Recommendation
	if err := q.Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
