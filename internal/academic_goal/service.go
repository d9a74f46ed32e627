package academic_goal

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/gradetrack-lambda/internal/aggregate"
	"github.com/saulo-duarte/gradetrack-lambda/internal/auth"
	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/course"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
	googlecalendar "github.com/saulo-duarte/gradetrack-lambda/internal/google_calendar"
	"github.com/saulo-duarte/gradetrack-lambda/internal/grading"
	"github.com/saulo-duarte/gradetrack-lambda/internal/notification"
	"github.com/saulo-duarte/gradetrack-lambda/internal/user"
	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

type aggregateSource interface {
	CourseAggregate(ctx context.Context, userID, courseID uuid.UUID) (*course.Course, grading.Aggregate, error)
	UserGPA(ctx context.Context, userID uuid.UUID, semester string) (*aggregate.GPAReport, error)
}

type courseLookup interface {
	GetCourseByID(ctx context.Context, id string) (*course.Course, error)
}

type userLookup interface {
	GetByID(id string) (*user.User, error)
}

type Service interface {
	Create(ctx context.Context, dto CreateAcademicGoalDTO) (*AcademicGoal, error)
	List(ctx context.Context, filter ListFilter) ([]*AcademicGoal, error)
	Get(ctx context.Context, id string) (*AcademicGoal, error)
	Update(ctx context.Context, id string, dto UpdateAcademicGoalDTO) (*AcademicGoal, error)
	Delete(ctx context.Context, id string) error

	EvaluateGoals(ctx context.Context, userID uuid.UUID, courseID *uuid.UUID) ([]GoalEvaluation, error)
	EvaluateAll(ctx context.Context) (int, error)
	RevertAchievement(ctx context.Context, id string) (*AcademicGoal, error)
	ListOverdue(ctx context.Context, asOf util.Date) ([]*AcademicGoal, error)
	ListUpcoming(ctx context.Context, asOf util.Date, days int) ([]*AcademicGoal, error)
	ListOverdueAll(ctx context.Context, asOf util.Date) ([]*AcademicGoal, error)
	NotifyOverdue(ctx context.Context, asOf util.Date) (int, error)
	Today() util.Date

	course.ChangeNotifier
}

type service struct {
	repo       Repository
	aggregates aggregateSource
	courses    courseLookup
	users      userLookup
	calendar   googlecalendar.CalendarManager
	notifier   notification.Notifier
	now        func() time.Time
}

func NewService(
	repo Repository,
	aggregates aggregateSource,
	courses courseLookup,
	users userLookup,
	calendar googlecalendar.CalendarManager,
	notifier notification.Notifier,
) Service {
	return &service{
		repo:       repo,
		aggregates: aggregates,
		courses:    courses,
		users:      users,
		calendar:   calendar,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (s *service) Today() util.Date {
	return util.DateOf(s.now(), config.Location())
}

func parseID(log logrus.FieldLogger, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warn("Invalid academic goal ID")
		return uuid.Nil, errs.NewValidation("id", "invalid academic goal id")
	}
	return parsed, nil
}

func validateTarget(t GoalType, target float64) error {
	if target < 0 || target > t.MaxTarget() {
		return errs.NewValidation("target_value", "must be between 0 and %.0f for %s goals", t.MaxTarget(), t)
	}
	return nil
}

func (s *service) Create(ctx context.Context, dto CreateAcademicGoalDTO) (*AcademicGoal, error) {
	log := config.WithContext(ctx)
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(dto); err != nil {
		return nil, err
	}
	if !dto.GoalType.IsValid() {
		return nil, errs.NewValidation("goal_type", "must be one of %v", AllGoalTypes)
	}
	if dto.Priority == "" {
		dto.Priority = PriorityMedium
	}
	if !dto.Priority.IsValid() {
		return nil, errs.NewValidation("priority", "must be one of %v", AllPriorities)
	}
	if err := validateTarget(dto.GoalType, dto.TargetValue); err != nil {
		return nil, err
	}

	switch dto.GoalType {
	case GoalTypeCourseGrade:
		if dto.CourseID == nil {
			return nil, errs.NewValidation("course_id", "is required for %s goals", dto.GoalType)
		}
	case GoalTypeSemesterGPA:
		if strings.TrimSpace(dto.Semester) == "" {
			return nil, errs.NewValidation("semester", "is required for %s goals", dto.GoalType)
		}
	}
	if dto.CourseID != nil {
		if _, err := s.courses.GetCourseByID(ctx, dto.CourseID.String()); err != nil {
			return nil, err
		}
	}

	now := s.now()
	goal := &AcademicGoal{
		ID:          uuid.New(),
		UserID:      userID,
		CourseID:    dto.CourseID,
		GoalType:    dto.GoalType,
		Title:       strings.TrimSpace(dto.Title),
		Description: dto.Description,
		TargetValue: dto.TargetValue,
		Semester:    strings.TrimSpace(dto.Semester),
		TargetDate:  dto.TargetDate,
		Priority:    dto.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(goal); err != nil {
		log.WithError(err).Error("Failed to create academic goal")
		return nil, err
	}

	if goal.TargetDate != nil {
		s.syncCalendar(ctx, log, goal)
		if goal.GoogleCalendarEventID != "" {
			if err := s.repo.Update(goal); err != nil {
				log.WithError(err).Error("Failed to update academic goal with Google Calendar Event ID")
			}
		}
	}

	log.WithFields(logrus.Fields{
		"goal_id":   goal.ID,
		"goal_type": goal.GoalType,
	}).Info("Academic goal created successfully")

	return s.reevaluate(ctx, log, goal)
}

// reevaluate runs the evaluator for goal's scope and returns the stored goal.
func (s *service) reevaluate(ctx context.Context, log logrus.FieldLogger, goal *AcademicGoal) (*AcademicGoal, error) {
	if _, err := s.EvaluateGoals(ctx, goal.UserID, goal.CourseID); err != nil {
		log.WithError(err).Warn("Failed to evaluate academic goal")
		return goal, nil
	}

	refreshed, err := s.repo.FindByIDAndUserID(goal.ID, goal.UserID)
	if err != nil {
		return goal, nil
	}
	return refreshed, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*AcademicGoal, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if filter.GoalType != nil && !filter.GoalType.IsValid() {
		return nil, errs.NewValidation("type", "must be one of %v", AllGoalTypes)
	}

	goals, err := s.repo.ListByUser(userID, filter)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list academic goals")
		return nil, err
	}
	return goals, nil
}

func (s *service) Get(ctx context.Context, id string) (*AcademicGoal, error) {
	log := config.WithContext(ctx)
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	goalID, err := parseID(log, id)
	if err != nil {
		return nil, err
	}

	goal, err := s.repo.FindByIDAndUserID(goalID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errs.NewNotFound("academic goal", goalID)
		}
		log.WithError(err).Error("Error finding academic goal by ID")
		return nil, err
	}
	return goal, nil
}

func (s *service) Update(ctx context.Context, id string, dto UpdateAcademicGoalDTO) (*AcademicGoal, error) {
	log := config.WithContext(ctx)
	if err := config.Validate(dto); err != nil {
		return nil, err
	}

	goal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updateCalendar := false
	if dto.Title != nil && strings.TrimSpace(*dto.Title) != goal.Title {
		goal.Title = strings.TrimSpace(*dto.Title)
		updateCalendar = true
	}
	if dto.Description != nil {
		goal.Description = *dto.Description
	}
	if dto.TargetValue != nil {
		if err := validateTarget(goal.GoalType, *dto.TargetValue); err != nil {
			return nil, err
		}
		goal.TargetValue = *dto.TargetValue
	}
	if dto.Semester != nil {
		if goal.GoalType == GoalTypeSemesterGPA && strings.TrimSpace(*dto.Semester) == "" {
			return nil, errs.NewValidation("semester", "is required for %s goals", goal.GoalType)
		}
		goal.Semester = strings.TrimSpace(*dto.Semester)
	}
	if dto.ClearTargetDate {
		if goal.TargetDate != nil {
			goal.TargetDate = nil
			updateCalendar = true
		}
	} else if dto.TargetDate != nil && (goal.TargetDate == nil || !dto.TargetDate.Equal(*goal.TargetDate)) {
		goal.TargetDate = dto.TargetDate
		goal.OverdueNotifiedAt = nil
		updateCalendar = true
	}
	if dto.Priority != nil {
		if !dto.Priority.IsValid() {
			return nil, errs.NewValidation("priority", "must be one of %v", AllPriorities)
		}
		goal.Priority = *dto.Priority
	}
	goal.UpdatedAt = s.now()

	if updateCalendar {
		s.syncCalendar(ctx, log, goal)
	}

	if err := s.repo.Update(goal); err != nil {
		log.WithError(err).Error("Failed to update academic goal")
		return nil, err
	}

	log.WithField("goal_id", goal.ID).Info("Academic goal updated successfully")
	return s.reevaluate(ctx, log, goal)
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	goal, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(goal.ID, goal.UserID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return errs.NewNotFound("academic goal", goal.ID)
		}
		log.WithError(err).Error("Failed to delete academic goal")
		return err
	}

	if goal.GoogleCalendarEventID != "" {
		if err := s.calendar.RemoveEvent(ctx, goal.UserID, goal.GoogleCalendarEventID); err != nil {
			log.WithError(err).Warnf("Failed to delete Google Calendar event for goal %s", goal.ID)
		}
	}

	log.WithField("goal_id", goal.ID).Info("Academic goal deleted successfully")
	return nil
}

func (s *service) syncCalendar(ctx context.Context, log logrus.FieldLogger, goal *AcademicGoal) {
	ev := &googlecalendar.CalendarEvent{
		SourceID:    goal.ID,
		Title:       "Goal: " + goal.Title,
		Description: goal.Description,
		Date:        goal.TargetDate,
	}
	if goal.GoogleCalendarEventID != "" {
		ev.GoogleCalendarEventID = &goal.GoogleCalendarEventID
	}

	eventID, err := s.calendar.SyncEvent(ctx, goal.UserID, ev)
	if err != nil {
		log.WithError(err).Warnf("Failed to sync goal %s with Google Calendar", goal.ID)
		return
	}
	goal.GoogleCalendarEventID = eventID
}

// valueCache memoizes aggregates during a single evaluation.
type valueCache struct {
	courses    map[uuid.UUID]*float64
	semesters  map[string]*float64
	cumulative *float64
	cumLoaded  bool
}

// lookup returns the memoized value for goal; ok is false when it was never loaded.
func (c *valueCache) lookup(goal *AcademicGoal) (value *float64, ok bool) {
	switch goal.GoalType {
	case GoalTypeCourseGrade:
		if goal.CourseID == nil {
			return nil, true
		}
		value, ok = c.courses[*goal.CourseID]
	case GoalTypeSemesterGPA:
		value, ok = c.semesters[goal.Semester]
	case GoalTypeCumulativeGPA:
		value, ok = c.cumulative, c.cumLoaded
	}
	return value, ok
}

func (s *service) currentValue(ctx context.Context, userID uuid.UUID, goal *AcademicGoal, cache *valueCache) (*float64, error) {
	switch goal.GoalType {
	case GoalTypeCourseGrade:
		if goal.CourseID == nil {
			return nil, nil
		}
		if v, ok := cache.courses[*goal.CourseID]; ok {
			return v, nil
		}
		_, agg, err := s.aggregates.CourseAggregate(ctx, userID, *goal.CourseID)
		if err != nil && !errs.IsNotFound(err) {
			return nil, err
		}
		cache.courses[*goal.CourseID] = agg.Percentage
		return agg.Percentage, nil

	case GoalTypeSemesterGPA:
		if v, ok := cache.semesters[goal.Semester]; ok {
			return v, nil
		}
		report, err := s.aggregates.UserGPA(ctx, userID, goal.Semester)
		if err != nil {
			return nil, err
		}
		cache.semesters[goal.Semester] = report.GPA
		return report.GPA, nil

	case GoalTypeCumulativeGPA:
		if cache.cumLoaded {
			return cache.cumulative, nil
		}
		report, err := s.aggregates.UserGPA(ctx, userID, "")
		if err != nil {
			return nil, err
		}
		cache.cumulative, cache.cumLoaded = report.GPA, true
		return report.GPA, nil
	}
	return nil, nil
}

// EvaluateGoals recomputes the goals a change to courseID can affect, or every
// goal of the user when courseID is nil. Achievement only ever flips false to
// true here; RevertAchievement is the only way back.
func (s *service) EvaluateGoals(ctx context.Context, userID uuid.UUID, courseID *uuid.UUID) ([]GoalEvaluation, error) {
	log := config.WithContext(ctx).WithField("user_id", userID)

	scope := Scope{}
	cache := &valueCache{
		courses:   map[uuid.UUID]*float64{},
		semesters: map[string]*float64{},
	}

	if courseID != nil {
		c, agg, err := s.aggregates.CourseAggregate(ctx, userID, *courseID)
		if err != nil {
			return nil, err
		}
		scope = Scope{CourseID: courseID, Semester: c.Semester}
		cache.courses[c.ID] = agg.Percentage
	}

	// Aggregates are loaded before the goal rows are locked.
	pending, err := s.repo.ListInScope(userID, scope)
	if err != nil {
		log.WithError(err).Error("Failed to list academic goals for evaluation")
		return nil, err
	}
	for _, g := range pending {
		if _, err := s.currentValue(ctx, userID, g, cache); err != nil {
			log.WithError(err).Error("Failed to compute goal value")
			return nil, err
		}
	}

	today := s.Today()
	now := s.now()
	var evaluations []GoalEvaluation
	var achieved []*AcademicGoal

	err = s.repo.Evaluate(userID, scope, func(goals []*AcademicGoal) error {
		evaluations = make([]GoalEvaluation, 0, len(goals))
		achieved = nil
		for _, g := range goals {
			value, ok := cache.lookup(g)
			if !ok {
				// created after the values were loaded; its own create evaluates it
				continue
			}

			previous := g.IsAchieved
			g.CurrentValue = value
			if !g.IsAchieved && value != nil && *value >= g.TargetValue {
				g.IsAchieved = true
				g.AchievedDate = util.DatePtr(today)
				achieved = append(achieved, g)
			}
			g.UpdatedAt = now

			evaluations = append(evaluations, GoalEvaluation{
				GoalID:           g.ID,
				PreviousAchieved: previous,
				NewAchieved:      g.IsAchieved,
				CurrentValue:     value,
			})
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to evaluate academic goals")
		return nil, err
	}

	for _, g := range achieved {
		log.WithFields(logrus.Fields{
			"goal_id": g.ID,
			"target":  g.TargetValue,
		}).Info("Academic goal achieved")
		s.notify(ctx, g, notification.GoalAchievedMessage)
	}

	if evaluations == nil {
		evaluations = []GoalEvaluation{}
	}
	return evaluations, nil
}

// CourseChanged runs after writes beneath a course. Failures are logged only
// so that the write itself still succeeds.
func (s *service) CourseChanged(ctx context.Context, userID, courseID uuid.UUID) {
	log := config.WithContext(ctx).WithField("course_id", courseID)

	_, err := s.EvaluateGoals(ctx, userID, &courseID)
	if errs.IsNotFound(err) {
		// the course itself was deleted; GPA goals still depend on what is left
		_, err = s.EvaluateGoals(ctx, userID, nil)
	}
	if err != nil {
		log.WithError(err).Warn("Failed to re-evaluate goals after course change")
	}
}

func (s *service) EvaluateAll(ctx context.Context) (int, error) {
	log := config.WithContext(ctx)
	userIDs, err := s.repo.ListUserIDs()
	if err != nil {
		log.WithError(err).Error("Failed to list users with goals")
		return 0, err
	}

	flipped := 0
	for _, userID := range userIDs {
		evals, err := s.EvaluateGoals(ctx, userID, nil)
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to evaluate goals for user")
			continue
		}
		for _, e := range evals {
			if !e.PreviousAchieved && e.NewAchieved {
				flipped++
			}
		}
	}
	return flipped, nil
}

func (s *service) RevertAchievement(ctx context.Context, id string) (*AcademicGoal, error) {
	log := config.WithContext(ctx)
	goal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !goal.IsAchieved {
		return goal, nil
	}

	goal.IsAchieved = false
	goal.AchievedDate = nil
	goal.UpdatedAt = s.now()
	if err := s.repo.Update(goal); err != nil {
		log.WithError(err).Error("Failed to revert academic goal achievement")
		return nil, err
	}

	log.WithField("goal_id", goal.ID).Info("Academic goal marked as not achieved")
	return goal, nil
}

func (s *service) ListOverdue(ctx context.Context, asOf util.Date) ([]*AcademicGoal, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	goals, err := s.repo.ListOverdue(asOf, &userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list overdue goals")
		return nil, err
	}
	return goals, nil
}

func (s *service) ListUpcoming(ctx context.Context, asOf util.Date, days int) ([]*AcademicGoal, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if days < 0 {
		return nil, errs.NewValidation("days", "must not be negative")
	}

	goals, err := s.repo.ListUpcoming(asOf, asOf.AddDays(days), userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list upcoming goals")
		return nil, err
	}
	return goals, nil
}

func (s *service) ListOverdueAll(ctx context.Context, asOf util.Date) ([]*AcademicGoal, error) {
	goals, err := s.repo.ListOverdue(asOf, nil)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list overdue goals")
		return nil, err
	}
	return goals, nil
}

// NotifyOverdue sends one overdue notification per goal and returns how many were sent.
func (s *service) NotifyOverdue(ctx context.Context, asOf util.Date) (int, error) {
	goals, err := s.ListOverdueAll(ctx, asOf)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, g := range goals {
		if g.OverdueNotifiedAt != nil {
			continue
		}
		if !s.notify(ctx, g, notification.GoalOverdueMessage) {
			continue
		}
		if err := s.repo.MarkOverdueNotified(g.ID, s.now()); err != nil {
			config.WithContext(ctx).WithError(err).Warnf("Failed to mark goal %s as notified", g.ID)
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *service) notify(ctx context.Context, g *AcademicGoal, build func(mail.Address, notification.GoalNotice) notification.Message) bool {
	log := config.WithContext(ctx).WithField("goal_id", g.ID)

	u, err := s.users.GetByID(g.UserID.String())
	if err != nil || u == nil {
		log.WithError(err).Warn("Could not load goal owner for notification")
		return false
	}

	msg := build(mail.Address{Name: u.Name, Address: u.Email}, notification.GoalNotice{
		Title:        g.Title,
		TargetValue:  g.TargetValue,
		CurrentValue: g.CurrentValue,
		TargetDate:   g.TargetDate,
	})
	if err := s.notifier.Send(ctx, msg); err != nil {
		log.WithError(err).Warn("Failed to send goal notification")
		return false
	}
	return true
}
