package course

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/gradetrack-lambda/internal/auth"
	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
	googlecalendar "github.com/saulo-duarte/gradetrack-lambda/internal/google_calendar"
	"github.com/saulo-duarte/gradetrack-lambda/internal/grading"
)

type CourseService interface {
	CreateCourse(ctx context.Context, dto CreateCourseDTO) (*Course, error)
	ListCourses(ctx context.Context, semester string, activeOnly bool) ([]*Course, error)
	GetCourseByID(ctx context.Context, id string) (*Course, error)
	UpdateCourse(ctx context.Context, id string, dto UpdateCourseDTO) (*Course, error)
	DeleteCourse(ctx context.Context, id string) error
}

type courseService struct {
	repo     CourseRepository
	calendar googlecalendar.CalendarManager
	notifier ChangeNotifier
}

func NewService(repo CourseRepository, calendar googlecalendar.CalendarManager, notifier ChangeNotifier) CourseService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &courseService{repo: repo, calendar: calendar, notifier: notifier}
}

func parseID(log logrus.FieldLogger, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warn("Invalid course ID")
		return uuid.Nil, errs.NewValidation("id", "invalid course id")
	}
	return parsed, nil
}

func validateScale(scale grading.Scale, gpaScale float64) error {
	if !scale.IsValid() {
		return errs.NewValidation("grading_scale", "must be one of [percentage gpa points]")
	}
	return grading.ValidateGPAScale(gpaScale)
}

func (s *courseService) CreateCourse(ctx context.Context, dto CreateCourseDTO) (*Course, error) {
	log := config.WithContext(ctx)
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(dto); err != nil {
		return nil, err
	}
	if dto.GradingScale == "" {
		dto.GradingScale = grading.ScalePercentage
	}
	if dto.GPAScale == 0 {
		dto.GPAScale = grading.GPAScale4
	}
	if dto.TermSystem == "" {
		dto.TermSystem = TermSemester
	}
	if dto.Credits == 0 {
		dto.Credits = 1
	}
	if err := validateScale(dto.GradingScale, dto.GPAScale); err != nil {
		return nil, err
	}
	if !dto.TermSystem.IsValid() {
		return nil, errs.NewValidation("term_system", "must be one of [semester quarter trimester]")
	}

	now := time.Now()
	c := &Course{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         strings.TrimSpace(dto.Name),
		Code:         dto.Code,
		Instructor:   dto.Instructor,
		Semester:     dto.Semester,
		Credits:      dto.Credits,
		GradingScale: dto.GradingScale,
		MaxPoints:    dto.MaxPoints,
		GPAScale:     dto.GPAScale,
		TermSystem:   dto.TermSystem,
		Color:        dto.Color,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(c); err != nil {
		log.WithError(err).Error("Failed to create course")
		return nil, err
	}

	log.WithField("course_id", c.ID).Info("Course created successfully")
	return c, nil
}

func (s *courseService) ListCourses(ctx context.Context, semester string, activeOnly bool) ([]*Course, error) {
	log := config.WithContext(ctx)
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	courses, err := s.repo.ListByUser(userID, semester, activeOnly)
	if err != nil {
		log.WithError(err).Error("Failed to list courses")
		return nil, err
	}
	return courses, nil
}

// GetCourseByID only returns courses owned by the caller; others are reported as not found.
func (s *courseService) GetCourseByID(ctx context.Context, id string) (*Course, error) {
	log := config.WithContext(ctx)
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	courseID, err := parseID(log, id)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.FindByIDAndUserID(courseID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WithFields(logrus.Fields{
				"course_id": courseID,
				"user_id":   userID,
			}).Warn("Course not found or does not belong to user")
			return nil, errs.NewNotFound("course", courseID)
		}
		log.WithError(err).Error("Error finding course by ID")
		return nil, err
	}
	return c, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, id string, dto UpdateCourseDTO) (*Course, error) {
	log := config.WithContext(ctx)
	if err := config.Validate(dto); err != nil {
		return nil, err
	}

	c, err := s.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		c.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Code != nil {
		c.Code = *dto.Code
	}
	if dto.Instructor != nil {
		c.Instructor = *dto.Instructor
	}
	if dto.Semester != nil {
		c.Semester = *dto.Semester
	}
	if dto.Credits != nil {
		c.Credits = *dto.Credits
	}
	if dto.GradingScale != nil {
		c.GradingScale = *dto.GradingScale
	}
	if dto.MaxPoints != nil {
		c.MaxPoints = *dto.MaxPoints
	}
	if dto.GPAScale != nil {
		c.GPAScale = *dto.GPAScale
	}
	if dto.TermSystem != nil {
		if !dto.TermSystem.IsValid() {
			return nil, errs.NewValidation("term_system", "must be one of [semester quarter trimester]")
		}
		c.TermSystem = *dto.TermSystem
	}
	if dto.Color != nil {
		c.Color = *dto.Color
	}
	if dto.IsActive != nil {
		c.IsActive = *dto.IsActive
	}
	if err := validateScale(c.GradingScale, c.GPAScale); err != nil {
		return nil, err
	}

	c.UpdatedAt = time.Now()
	if err := s.repo.Update(c); err != nil {
		log.WithError(err).Error("Failed to update course")
		return nil, err
	}

	s.notifier.CourseChanged(ctx, c.UserID, c.ID)
	log.WithField("course_id", c.ID).Info("Course updated successfully")
	return c, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	c, err := s.GetCourseByID(ctx, id)
	if err != nil {
		return err
	}

	eventIDs, err := s.repo.ListCalendarEventIDs(c.ID)
	if err != nil {
		log.WithError(err).Warn("Failed to list calendar events before course deletion")
	}

	if err := s.repo.DeleteCascade(c.ID, c.UserID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return errs.NewNotFound("course", c.ID)
		}
		log.WithError(err).Error("Failed to delete course")
		return err
	}

	for _, eventID := range eventIDs {
		if err := s.calendar.RemoveEvent(ctx, c.UserID, eventID); err != nil {
			log.WithError(err).Warnf("Failed to delete Google Calendar event %s for course %s", eventID, c.ID)
		}
	}

	s.notifier.CourseChanged(ctx, c.UserID, c.ID)
	log.WithField("course_id", c.ID).Info("Course deleted successfully")
	return nil
}
