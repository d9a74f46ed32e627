package category

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/course"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
	googlecalendar "github.com/saulo-duarte/gradetrack-lambda/internal/google_calendar"
	"github.com/saulo-duarte/gradetrack-lambda/internal/grading"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, dto CreateCategoryDTO) (*Category, error)
	ListByCourse(ctx context.Context, courseID string) ([]*Category, error)
	GetCategoryByID(ctx context.Context, id string) (*Category, *course.Course, error)
	UpdateCategory(ctx context.Context, id string, dto UpdateCategoryDTO) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ValidateWeights(ctx context.Context, courseID string) (*WeightReport, error)
}

type categoryService struct {
	repo          CategoryRepository
	courseService course.CourseService
	calendar      googlecalendar.CalendarManager
	notifier      course.ChangeNotifier
}

func NewService(repo CategoryRepository, courseService course.CourseService, calendar googlecalendar.CalendarManager, notifier course.ChangeNotifier) CategoryService {
	if notifier == nil {
		notifier = course.NopNotifier{}
	}
	return &categoryService{
		repo:          repo,
		courseService: courseService,
		calendar:      calendar,
		notifier:      notifier,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, dto CreateCategoryDTO) (*Category, error) {
	log := config.WithContext(ctx)
	if err := config.Validate(dto); err != nil {
		return nil, err
	}

	c, err := s.courseService.GetCourseByID(ctx, dto.CourseID.String())
	if err != nil {
		return nil, err
	}

	order := 0
	if dto.OrderSequence != nil {
		order = *dto.OrderSequence
	} else if order, err = s.repo.NextOrderSequence(c.ID); err != nil {
		log.WithError(err).Error("Failed to compute next order sequence")
		return nil, err
	}

	now := time.Now()
	cat := &Category{
		ID:               uuid.New(),
		CourseID:         c.ID,
		Name:             strings.TrimSpace(dto.Name),
		Description:      dto.Description,
		WeightPercentage: dto.WeightPercentage,
		OrderSequence:    order,
		DropLowest:       dto.DropLowest,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(cat); err != nil {
		log.WithError(err).Error("Failed to create category")
		return nil, err
	}

	s.notifier.CourseChanged(ctx, c.UserID, c.ID)
	log.WithFields(logrus.Fields{
		"category_id": cat.ID,
		"course_id":   c.ID,
	}).Info("Category created successfully")
	return cat, nil
}

func (s *categoryService) ListByCourse(ctx context.Context, courseID string) ([]*Category, error) {
	c, err := s.courseService.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.ListByCourse(c.ID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list categories")
		return nil, err
	}
	return categories, nil
}

// GetCategoryByID also returns the owning course; ownership is checked through it.
func (s *categoryService) GetCategoryByID(ctx context.Context, id string) (*Category, *course.Course, error) {
	log := config.WithContext(ctx)
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil, errs.NewValidation("id", "invalid category id")
	}

	cat, err := s.repo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, errs.NewNotFound("category", categoryID)
		}
		log.WithError(err).Error("Error finding category by ID")
		return nil, nil, err
	}

	c, err := s.courseService.GetCourseByID(ctx, cat.CourseID.String())
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, nil, errs.NewNotFound("category", categoryID)
		}
		return nil, nil, err
	}
	return cat, c, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id string, dto UpdateCategoryDTO) (*Category, error) {
	log := config.WithContext(ctx)
	if err := config.Validate(dto); err != nil {
		return nil, err
	}

	cat, c, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		cat.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Description != nil {
		cat.Description = *dto.Description
	}
	if dto.WeightPercentage != nil {
		if err := grading.ValidateWeight(*dto.WeightPercentage); err != nil {
			return nil, err
		}
		cat.WeightPercentage = *dto.WeightPercentage
	}
	if dto.OrderSequence != nil {
		cat.OrderSequence = *dto.OrderSequence
	}
	if dto.DropLowest != nil {
		cat.DropLowest = *dto.DropLowest
	}
	cat.UpdatedAt = time.Now()

	if err := s.repo.Update(cat); err != nil {
		log.WithError(err).Error("Failed to update category")
		return nil, err
	}

	s.notifier.CourseChanged(ctx, c.UserID, c.ID)
	log.WithField("category_id", cat.ID).Info("Category updated successfully")
	return cat, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	cat, c, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return err
	}

	eventIDs, err := s.repo.ListCalendarEventIDs(cat.ID)
	if err != nil {
		log.WithError(err).Warn("Failed to list calendar events before category deletion")
	}

	if err := s.repo.DeleteCascade(cat.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return errs.NewNotFound("category", cat.ID)
		}
		log.WithError(err).Error("Failed to delete category")
		return err
	}

	for _, eventID := range eventIDs {
		if err := s.calendar.RemoveEvent(ctx, c.UserID, eventID); err != nil {
			log.WithError(err).Warnf("Failed to delete Google Calendar event %s", eventID)
		}
	}

	s.notifier.CourseChanged(ctx, c.UserID, c.ID)
	log.WithField("category_id", cat.ID).Info("Category deleted successfully")
	return nil
}

// ValidateWeights checks on demand whether the course's category weights sum to 100.
func (s *categoryService) ValidateWeights(ctx context.Context, courseID string) (*WeightReport, error) {
	c, err := s.courseService.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.ListByCourse(c.ID)
	if err != nil {
		return nil, err
	}

	report := &WeightReport{CourseID: c.ID, Categories: make([]WeightEntry, 0, len(categories))}
	weights := make([]float64, 0, len(categories))
	for _, cat := range categories {
		weights = append(weights, cat.WeightPercentage)
		report.Categories = append(report.Categories, WeightEntry{
			CategoryID:       cat.ID,
			Name:             cat.Name,
			WeightPercentage: cat.WeightPercentage,
		})
	}

	total, warning := grading.CheckWeights(c.ID, weights)
	report.Total = total
	report.Consistent = warning == nil
	if warning != nil {
		report.Message = warning.Error()
	}
	return report, nil
}
