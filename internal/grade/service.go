package grade

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/gradetrack-lambda/internal/assessment"
	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/course"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
	"github.com/saulo-duarte/gradetrack-lambda/internal/grading"
)

type GradeService interface {
	CreateGrade(ctx context.Context, dto CreateGradeDTO) (*Grade, error)
	GetGradeByID(ctx context.Context, id string) (*Grade, error)
	ListByAssessment(ctx context.Context, assessmentID string) ([]*Grade, error)
	UpdateGrade(ctx context.Context, id string, dto UpdateGradeDTO) (*Grade, error)
	DeleteGrade(ctx context.Context, id string) error
}

type gradeService struct {
	repo              GradeRepository
	assessmentService assessment.AssessmentService
	notifier          course.ChangeNotifier
}

func NewService(repo GradeRepository, assessmentService assessment.AssessmentService, notifier course.ChangeNotifier) GradeService {
	if notifier == nil {
		notifier = course.NopNotifier{}
	}
	return &gradeService{
		repo:              repo,
		assessmentService: assessmentService,
		notifier:          notifier,
	}
}

// normalizeScore fills the derived fields of g. For POINTS the percentage is
// recomputed; for PERCENTAGE the points are expressed against maxPoints.
func normalizeScore(g *Grade, maxPoints float64) error {
	if g.ScoreType == "" {
		g.ScoreType = grading.ScoreTypePoints
	}
	if err := grading.ValidateGrade(g.Input()); err != nil {
		return err
	}

	switch g.ScoreType {
	case grading.ScoreTypePoints:
		pct, err := grading.GradePercentage(g.PointsEarned, g.PointsPossible)
		if err != nil {
			return err
		}
		g.PercentageScore = pct
	case grading.ScoreTypePercentage:
		g.PercentageScore = grading.Round2(g.PercentageScore)
		g.PointsPossible = maxPoints
		g.PointsEarned = grading.Round2(g.PercentageScore * maxPoints / 100)
	}
	return nil
}

func (s *gradeService) afterWrite(ctx context.Context, log logrus.FieldLogger, a *assessment.Assessment, c *course.Course) {
	n, err := s.repo.CountByAssessment(a.ID)
	if err != nil {
		log.WithError(err).Error("Failed to count grades for assessment")
	} else if err := s.assessmentService.SyncStatus(ctx, a, n > 0); err != nil {
		log.WithError(err).Error("Failed to update assessment status")
	}

	s.notifier.CourseChanged(ctx, c.UserID, c.ID)
}

func (s *gradeService) CreateGrade(ctx context.Context, dto CreateGradeDTO) (*Grade, error) {
	log := config.WithContext(ctx)
	if err := config.Validate(dto); err != nil {
		return nil, err
	}
	if dto.ScoreType != "" && !dto.ScoreType.IsValid() {
		return nil, errs.NewValidation("score_type", "must be one of [POINTS PERCENTAGE]")
	}

	a, c, err := s.assessmentService.GetAssessmentByID(ctx, dto.AssessmentID.String())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	g := &Grade{
		ID:            uuid.New(),
		AssessmentID:  a.ID,
		ScoreType:     dto.ScoreType,
		IsExtraCredit: dto.IsExtraCredit,
		Notes:         dto.Notes,
		GradedAt:      now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if dto.PointsEarned != nil {
		g.PointsEarned = *dto.PointsEarned
	}
	if dto.PointsPossible != nil {
		g.PointsPossible = *dto.PointsPossible
	} else {
		g.PointsPossible = a.MaxPoints
	}
	if dto.PercentageScore != nil {
		g.PercentageScore = *dto.PercentageScore
	}
	if dto.GradedAt != nil {
		g.GradedAt = *dto.GradedAt
	}

	if err := normalizeScore(g, a.MaxPoints); err != nil {
		return nil, err
	}

	if err := s.repo.Create(g); err != nil {
		log.WithError(err).Error("Failed to create grade")
		return nil, err
	}

	s.afterWrite(ctx, log, a, c)
	log.WithFields(logrus.Fields{
		"grade_id":      g.ID,
		"assessment_id": a.ID,
		"percentage":    g.PercentageScore,
	}).Info("Grade recorded successfully")
	return g, nil
}

func (s *gradeService) find(ctx context.Context, id string) (*Grade, *assessment.Assessment, *course.Course, error) {
	log := config.WithContext(ctx)
	gradeID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warn("Invalid grade ID")
		return nil, nil, nil, errs.NewValidation("id", "invalid grade id")
	}

	g, err := s.repo.FindByID(gradeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, nil, errs.NewNotFound("grade", gradeID)
		}
		log.WithError(err).Error("Error finding grade by ID")
		return nil, nil, nil, err
	}

	a, c, err := s.assessmentService.GetAssessmentByID(ctx, g.AssessmentID.String())
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, nil, nil, errs.NewNotFound("grade", gradeID)
		}
		return nil, nil, nil, err
	}
	return g, a, c, nil
}

func (s *gradeService) GetGradeByID(ctx context.Context, id string) (*Grade, error) {
	g, _, _, err := s.find(ctx, id)
	return g, err
}

func (s *gradeService) ListByAssessment(ctx context.Context, assessmentID string) ([]*Grade, error) {
	a, _, err := s.assessmentService.GetAssessmentByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	grades, err := s.repo.ListByAssessment(a.ID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list grades")
		return nil, err
	}
	return grades, nil
}

func (s *gradeService) UpdateGrade(ctx context.Context, id string, dto UpdateGradeDTO) (*Grade, error) {
	log := config.WithContext(ctx)
	if err := config.Validate(dto); err != nil {
		return nil, err
	}

	g, a, c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.ScoreType != nil {
		if !dto.ScoreType.IsValid() {
			return nil, errs.NewValidation("score_type", "must be one of [POINTS PERCENTAGE]")
		}
		g.ScoreType = *dto.ScoreType
	}
	if dto.PointsEarned != nil {
		g.PointsEarned = *dto.PointsEarned
	}
	if dto.PointsPossible != nil {
		g.PointsPossible = *dto.PointsPossible
	}
	if dto.PercentageScore != nil {
		g.PercentageScore = *dto.PercentageScore
	}
	if dto.IsExtraCredit != nil {
		g.IsExtraCredit = *dto.IsExtraCredit
	}
	if dto.Notes != nil {
		g.Notes = *dto.Notes
	}
	if dto.GradedAt != nil {
		g.GradedAt = *dto.GradedAt
	}

	if err := normalizeScore(g, a.MaxPoints); err != nil {
		return nil, err
	}
	g.UpdatedAt = time.Now()

	if err := s.repo.Update(g); err != nil {
		log.WithError(err).Error("Failed to update grade")
		return nil, err
	}

	s.afterWrite(ctx, log, a, c)
	log.WithField("grade_id", g.ID).Info("Grade updated successfully")
	return g, nil
}

func (s *gradeService) DeleteGrade(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	g, a, c, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(g.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return errs.NewNotFound("grade", g.ID)
		}
		log.WithError(err).Error("Failed to delete grade")
		return err
	}

	s.afterWrite(ctx, log, a, c)
	log.WithField("grade_id", g.ID).Info("Grade deleted successfully")
	return nil
}
