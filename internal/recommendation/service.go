package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/saulo-duarte/gradetrack-lambda/internal/aggregate"
	"github.com/saulo-duarte/gradetrack-lambda/internal/auth"
	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
)

type dashboardSource interface {
	Dashboard(ctx context.Context, courseID string) (*aggregate.Dashboard, error)
}

type Service interface {
	Generate(ctx context.Context, courseID string) (*Recommendation, error)
	List(ctx context.Context, courseID *uuid.UUID) ([]*Recommendation, error)
}

type service struct {
	repo       RecommendationRepository
	dashboards dashboardSource
	provider   Provider
}

func NewService(repo RecommendationRepository, dashboards dashboardSource, provider Provider) Service {
	return &service{repo: repo, dashboards: dashboards, provider: provider}
}

func (s *service) Generate(ctx context.Context, courseID string) (*Recommendation, error) {
	log := config.WithContext(ctx)
	if s.provider == nil {
		return nil, fmt.Errorf("recommendations: %w", errs.ErrUnavailable)
	}

	d, err := s.dashboards.Dashboard(ctx, courseID)
	if err != nil {
		return nil, err
	}

	advice, err := s.provider.SendPrompt(ctx, systemPrompt, BuildUserPrompt(d))
	if err != nil {
		log.WithError(err).Error("Failed to generate recommendation")
		return nil, err
	}

	items, err := json.Marshal(advice.Items)
	if err != nil {
		return nil, err
	}

	rec := &Recommendation{
		ID:        uuid.New(),
		UserID:    d.Course.UserID,
		CourseID:  d.Course.ID,
		Summary:   advice.Summary,
		Items:     datatypes.JSON(items),
		Model:     s.provider.Model(),
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(rec); err != nil {
		log.WithError(err).Error("Failed to save recommendation")
		return nil, err
	}

	log.WithField("course_id", d.Course.ID).Infof("Generated %d recommendation items", len(advice.Items))
	return rec, nil
}

func (s *service) List(ctx context.Context, courseID *uuid.UUID) ([]*Recommendation, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(userID, courseID, 20)
}
