package assessment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/gradetrack-lambda/internal/category"
	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/course"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
	googlecalendar "github.com/saulo-duarte/gradetrack-lambda/internal/google_calendar"
	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

type AssessmentService interface {
	CreateAssessment(ctx context.Context, dto CreateAssessmentDTO) (*Assessment, error)
	GetAssessmentByID(ctx context.Context, id string) (*Assessment, *course.Course, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*Assessment, error)
	ListByCourse(ctx context.Context, courseID string) ([]*Assessment, error)
	UpdateAssessment(ctx context.Context, id string, dto UpdateAssessmentDTO) (*Assessment, error)
	CancelAssessment(ctx context.Context, id string) (*Assessment, error)
	DeleteAssessment(ctx context.Context, id string) error
	SyncStatus(ctx context.Context, a *Assessment, graded bool) error
	MarkOverdue(ctx context.Context, asOf util.Date) (int64, error)
}

type assessmentService struct {
	repo            AssessmentRepository
	courseService   course.CourseService
	categoryService category.CategoryService
	calendar        googlecalendar.CalendarManager
	notifier        course.ChangeNotifier
	today           func() util.Date
}

func NewService(
	repo AssessmentRepository,
	courseService course.CourseService,
	categoryService category.CategoryService,
	calendar googlecalendar.CalendarManager,
	notifier course.ChangeNotifier,
) AssessmentService {
	if notifier == nil {
		notifier = course.NopNotifier{}
	}
	return &assessmentService{
		repo:            repo,
		courseService:   courseService,
		categoryService: categoryService,
		calendar:        calendar,
		notifier:        notifier,
		today:           func() util.Date { return util.Today(config.Location()) },
	}
}

func parseID(log logrus.FieldLogger, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warn("Invalid assessment ID")
		return uuid.Nil, errs.NewValidation("id", "invalid assessment id")
	}
	return parsed, nil
}

func calendarEvent(a *Assessment, c *course.Course) *googlecalendar.CalendarEvent {
	ev := &googlecalendar.CalendarEvent{
		SourceID:    a.ID,
		Title:       fmt.Sprintf("%s: %s", c.Name, a.Name),
		Description: a.Description,
		Date:        a.DueDate,
	}
	if a.GoogleCalendarEventID != "" {
		ev.GoogleCalendarEventID = &a.GoogleCalendarEventID
	}
	return ev
}

// syncCalendar keeps the due-date event in line with a; failures are only logged.
func (s *assessmentService) syncCalendar(ctx context.Context, log logrus.FieldLogger, a *Assessment, c *course.Course) {
	if a.Status == StatusCancelled {
		if a.GoogleCalendarEventID != "" {
			if err := s.calendar.RemoveEvent(ctx, c.UserID, a.GoogleCalendarEventID); err == nil {
				a.GoogleCalendarEventID = ""
			}
		}
		return
	}

	eventID, err := s.calendar.SyncEvent(ctx, c.UserID, calendarEvent(a, c))
	if err != nil {
		log.WithError(err).Warnf("Failed to sync assessment %s with Google Calendar", a.ID)
		return
	}
	a.GoogleCalendarEventID = eventID
}

func (s *assessmentService) CreateAssessment(ctx context.Context, dto CreateAssessmentDTO) (*Assessment, error) {
	log := config.WithContext(ctx)
	if err := config.Validate(dto); err != nil {
		return nil, err
	}

	cat, c, err := s.categoryService.GetCategoryByID(ctx, dto.CategoryID.String())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	a := &Assessment{
		ID:          uuid.New(),
		CourseID:    c.ID,
		CategoryID:  cat.ID,
		Name:        strings.TrimSpace(dto.Name),
		Description: dto.Description,
		MaxPoints:   dto.MaxPoints,
		DueDate:     dto.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	a.Status = NextStatus(StatusUpcoming, a.DueDate, false, s.today())

	if err := s.repo.Create(a); err != nil {
		log.WithError(err).Error("Failed to create assessment")
		return nil, err
	}

	if a.DueDate != nil {
		s.syncCalendar(ctx, log, a, c)
		if a.GoogleCalendarEventID != "" {
			if err := s.repo.Update(a); err != nil {
				log.WithError(err).Error("Failed to update assessment with Google Calendar Event ID")
			}
		}
	}

	s.notifier.CourseChanged(ctx, c.UserID, c.ID)
	log.WithFields(logrus.Fields{
		"assessment_id": a.ID,
		"category_id":   cat.ID,
	}).Info("Assessment created successfully")
	return a, nil
}

// GetAssessmentByID also returns the owning course; assessments of other users are not found.
func (s *assessmentService) GetAssessmentByID(ctx context.Context, id string) (*Assessment, *course.Course, error) {
	log := config.WithContext(ctx)
	assessmentID, err := parseID(log, id)
	if err != nil {
		return nil, nil, err
	}

	a, err := s.repo.FindByID(assessmentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, errs.NewNotFound("assessment", assessmentID)
		}
		log.WithError(err).Error("Error finding assessment by ID")
		return nil, nil, err
	}

	c, err := s.courseService.GetCourseByID(ctx, a.CourseID.String())
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, nil, errs.NewNotFound("assessment", assessmentID)
		}
		return nil, nil, err
	}
	return a, c, nil
}

func (s *assessmentService) ListByCategory(ctx context.Context, categoryID string) ([]*Assessment, error) {
	cat, _, err := s.categoryService.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByCategory(cat.ID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list assessments by category")
		return nil, err
	}
	return items, nil
}

func (s *assessmentService) ListByCourse(ctx context.Context, courseID string) ([]*Assessment, error) {
	c, err := s.courseService.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByCourse(c.ID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list assessments by course")
		return nil, err
	}
	return items, nil
}

func (s *assessmentService) UpdateAssessment(ctx context.Context, id string, dto UpdateAssessmentDTO) (*Assessment, error) {
	log := config.WithContext(ctx)
	if err := config.Validate(dto); err != nil {
		return nil, err
	}

	a, c, err := s.GetAssessmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updateCalendar := false

	if dto.CategoryID != nil && *dto.CategoryID != a.CategoryID {
		cat, catCourse, err := s.categoryService.GetCategoryByID(ctx, dto.CategoryID.String())
		if err != nil {
			return nil, err
		}
		if catCourse.ID != a.CourseID {
			return nil, errs.NewValidation("category_id", "category belongs to another course")
		}
		a.CategoryID = cat.ID
	}
	if dto.Name != nil && strings.TrimSpace(*dto.Name) != a.Name {
		a.Name = strings.TrimSpace(*dto.Name)
		updateCalendar = true
	}
	if dto.Description != nil && *dto.Description != a.Description {
		a.Description = *dto.Description
		updateCalendar = true
	}
	if dto.MaxPoints != nil {
		a.MaxPoints = *dto.MaxPoints
	}
	if dto.ClearDueDate {
		if a.DueDate != nil {
			a.DueDate = nil
			updateCalendar = true
		}
	} else if dto.DueDate != nil && (a.DueDate == nil || !dto.DueDate.Equal(*a.DueDate)) {
		a.DueDate = dto.DueDate
		updateCalendar = true
	}

	previousStatus := a.Status
	if dto.Status != nil {
		if !dto.Status.IsValid() {
			return nil, errs.NewValidation("status", "must be one of %v", AllStatuses)
		}
		a.Status = *dto.Status
	} else if a.Status == StatusUpcoming || a.Status == StatusOverdue {
		a.Status = NextStatus(a.Status, a.DueDate, false, s.today())
	}
	if (previousStatus == StatusCancelled) != (a.Status == StatusCancelled) {
		updateCalendar = true
	}

	a.UpdatedAt = time.Now()
	if updateCalendar {
		s.syncCalendar(ctx, log, a, c)
	}

	if err := s.repo.Update(a); err != nil {
		log.WithError(err).Error("Failed to update assessment")
		return nil, err
	}

	s.notifier.CourseChanged(ctx, c.UserID, c.ID)
	log.WithField("assessment_id", a.ID).Info("Assessment updated successfully")
	return a, nil
}

func (s *assessmentService) CancelAssessment(ctx context.Context, id string) (*Assessment, error) {
	cancelled := StatusCancelled
	return s.UpdateAssessment(ctx, id, UpdateAssessmentDTO{Status: &cancelled})
}

func (s *assessmentService) DeleteAssessment(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	a, c, err := s.GetAssessmentByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteCascade(a.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return errs.NewNotFound("assessment", a.ID)
		}
		log.WithError(err).Error("Failed to delete assessment")
		return err
	}

	if a.GoogleCalendarEventID != "" {
		if err := s.calendar.RemoveEvent(ctx, c.UserID, a.GoogleCalendarEventID); err != nil {
			log.WithError(err).Warnf("Failed to delete Google Calendar event %s for assessment %s", a.GoogleCalendarEventID, a.ID)
		}
	}

	s.notifier.CourseChanged(ctx, c.UserID, c.ID)
	log.WithField("assessment_id", a.ID).Info("Assessment deleted successfully")
	return nil
}

// SyncStatus persists the status implied by whether a now has grades.
func (s *assessmentService) SyncStatus(ctx context.Context, a *Assessment, graded bool) error {
	next := NextStatus(a.Status, a.DueDate, graded, s.today())
	if next == a.Status {
		return nil
	}

	config.WithContext(ctx).WithFields(logrus.Fields{
		"assessment_id": a.ID,
		"from":          a.Status,
		"to":            next,
	}).Info("Assessment status changed")

	a.Status = next
	a.UpdatedAt = time.Now()
	return s.repo.Update(a)
}

func (s *assessmentService) MarkOverdue(ctx context.Context, asOf util.Date) (int64, error) {
	n, err := s.repo.MarkOverdue(asOf)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to mark overdue assessments")
		return 0, err
	}
	return n, nil
}
