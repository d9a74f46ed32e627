package aggregate

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/gradetrack-lambda/internal/assessment"
	"github.com/saulo-duarte/gradetrack-lambda/internal/auth"
	"github.com/saulo-duarte/gradetrack-lambda/internal/category"
	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/course"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
	"github.com/saulo-duarte/gradetrack-lambda/internal/grade"
	"github.com/saulo-duarte/gradetrack-lambda/internal/grading"
	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

type courseReader interface {
	FindByIDAndUserID(id, userID uuid.UUID) (*course.Course, error)
	ListByUser(userID uuid.UUID, semester string, activeOnly bool) ([]*course.Course, error)
}

type categoryReader interface {
	ListByCourse(courseID uuid.UUID) ([]*category.Category, error)
}

type assessmentReader interface {
	ListByCourse(courseID uuid.UUID) ([]*assessment.Assessment, error)
}

type gradeReader interface {
	ListByAssessmentIDs(ids []uuid.UUID) ([]*grade.Grade, error)
}

// Aggregator reads the current rows of a course and hands them to the grading
// package. Nothing is cached, so every call reflects the latest writes.
type Aggregator interface {
	ComputeCourseAggregate(ctx context.Context, courseID string) (*grading.Aggregate, error)
	CourseAggregate(ctx context.Context, userID, courseID uuid.UUID) (*course.Course, grading.Aggregate, error)
	SemesterGPA(ctx context.Context, semester string) (*GPAReport, error)
	CumulativeGPA(ctx context.Context) (*GPAReport, error)
	UserGPA(ctx context.Context, userID uuid.UUID, semester string) (*GPAReport, error)
	Dashboard(ctx context.Context, courseID string) (*Dashboard, error)
}

type aggregator struct {
	courses     courseReader
	categories  categoryReader
	assessments assessmentReader
	grades      gradeReader
	today       func() util.Date
}

func NewAggregator(courses courseReader, categories categoryReader, assessments assessmentReader, grades gradeReader) Aggregator {
	return &aggregator{
		courses:     courses,
		categories:  categories,
		assessments: assessments,
		grades:      grades,
		today:       func() util.Date { return util.Today(config.Location()) },
	}
}

func (a *aggregator) ownedCourse(ctx context.Context, id string) (*course.Course, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	courseID, err := uuid.Parse(id)
	if err != nil {
		return nil, errs.NewValidation("id", "invalid course id")
	}

	c, err := a.courses.FindByIDAndUserID(courseID, userID)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return nil, errs.NewNotFound("course", courseID)
		}
		return nil, err
	}
	return c, nil
}

func (a *aggregator) load(c *course.Course) (grading.CourseInput, []*assessment.Assessment, error) {
	in := grading.CourseInput{
		ID:           c.ID,
		GradingScale: c.GradingScale,
		GPAScale:     c.GPAScale,
		MaxPoints:    c.MaxPoints,
	}

	categories, err := a.categories.ListByCourse(c.ID)
	if err != nil {
		return in, nil, err
	}
	if len(categories) == 0 {
		return in, nil, nil
	}

	items, err := a.assessments.ListByCourse(c.ID)
	if err != nil {
		return in, nil, err
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	grades, err := a.grades.ListByAssessmentIDs(ids)
	if err != nil {
		return in, nil, err
	}

	gradesByAssessment := make(map[uuid.UUID][]grading.GradeInput, len(items))
	for _, g := range grades {
		gradesByAssessment[g.AssessmentID] = append(gradesByAssessment[g.AssessmentID], g.Input())
	}

	byCategory := make(map[uuid.UUID][]grading.AssessmentInput, len(categories))
	for _, it := range items {
		byCategory[it.CategoryID] = append(byCategory[it.CategoryID], grading.AssessmentInput{
			ID:        it.ID,
			Cancelled: it.Status == assessment.StatusCancelled,
			Grades:    gradesByAssessment[it.ID],
		})
	}

	in.Categories = make([]grading.CategoryInput, 0, len(categories))
	for _, cat := range categories {
		in.Categories = append(in.Categories, grading.CategoryInput{
			ID:          cat.ID,
			Name:        cat.Name,
			Weight:      cat.WeightPercentage,
			DropLowest:  cat.DropLowest,
			Assessments: byCategory[cat.ID],
		})
	}
	return in, items, nil
}

func (a *aggregator) compute(ctx context.Context, c *course.Course) (grading.Aggregate, []*assessment.Assessment, error) {
	log := config.WithContext(ctx).WithField("course_id", c.ID)

	in, items, err := a.load(c)
	if err != nil {
		log.WithError(err).Error("Failed to load course rows for aggregation")
		return grading.Aggregate{}, nil, err
	}

	agg, err := grading.ComputeCourse(in)
	if err != nil {
		log.WithError(err).Warn("Course aggregation rejected a grade row")
		return grading.Aggregate{}, nil, err
	}
	if agg.WeightWarning != nil {
		log.WithField("weight_total", agg.WeightTotal).Warn("Category weights do not sum to 100")
	}
	return agg, items, nil
}

func (a *aggregator) ComputeCourseAggregate(ctx context.Context, courseID string) (*grading.Aggregate, error) {
	c, err := a.ownedCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	agg, _, err := a.compute(ctx, c)
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// CourseAggregate skips the request user lookup; goal evaluation and scheduled jobs use it.
func (a *aggregator) CourseAggregate(ctx context.Context, userID, courseID uuid.UUID) (*course.Course, grading.Aggregate, error) {
	c, err := a.courses.FindByIDAndUserID(courseID, userID)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return nil, grading.Aggregate{}, errs.NewNotFound("course", courseID)
		}
		return nil, grading.Aggregate{}, err
	}

	agg, _, err := a.compute(ctx, c)
	if err != nil {
		return nil, grading.Aggregate{}, err
	}
	return c, agg, nil
}

func (a *aggregator) UserGPA(ctx context.Context, userID uuid.UUID, semester string) (*GPAReport, error) {
	courses, err := a.courses.ListByUser(userID, semester, false)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list courses for GPA")
		return nil, err
	}

	report := &GPAReport{Semester: semester, Courses: make([]CourseGPA, 0, len(courses))}
	inputs := make([]grading.CourseGPAInput, 0, len(courses))
	for _, c := range courses {
		agg, _, err := a.compute(ctx, c)
		if err != nil {
			return nil, err
		}

		entry := CourseGPA{
			CourseID:   c.ID,
			Name:       c.Name,
			Semester:   c.Semester,
			Credits:    c.Credits,
			Percentage: agg.Percentage,
			Letter:     agg.Letter,
		}
		if agg.Percentage != nil {
			gpa, _ := grading.GPAFor(*agg.Percentage, grading.GPAScale4)
			entry.GPA = &gpa
		}
		report.Courses = append(report.Courses, entry)
		inputs = append(inputs, grading.CourseGPAInput{
			CourseID:   c.ID,
			Credits:    c.Credits,
			Percentage: agg.Percentage,
		})
	}

	report.GPASummary = grading.WeightedGPA(inputs)
	config.WithContext(ctx).WithFields(logrus.Fields{
		"user_id":  userID,
		"semester": semester,
		"courses":  report.CoursesCount,
	}).Debug("GPA computed")
	return report, nil
}

func (a *aggregator) SemesterGPA(ctx context.Context, semester string) (*GPAReport, error) {
	if semester == "" {
		return nil, errs.NewValidation("semester", "is required")
	}
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return a.UserGPA(ctx, userID, semester)
}

func (a *aggregator) CumulativeGPA(ctx context.Context) (*GPAReport, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return a.UserGPA(ctx, userID, "")
}

func (a *aggregator) Dashboard(ctx context.Context, courseID string) (*Dashboard, error) {
	c, err := a.ownedCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	agg, items, err := a.compute(ctx, c)
	if err != nil {
		return nil, err
	}

	today := a.today()
	horizon := today.AddDays(config.App.UpcomingHorizonDays)
	d := &Dashboard{
		Course:    c,
		Aggregate: agg,
		Stats:     assessment.CountStatuses(items),
		Upcoming:  []*assessment.Assessment{},
		Overdue:   []*assessment.Assessment{},
	}
	for _, it := range items {
		switch {
		case it.Status == assessment.StatusOverdue:
			d.Overdue = append(d.Overdue, it)
		case it.Status == assessment.StatusUpcoming && it.DueDate != nil && it.DueDate.Between(today, horizon):
			d.Upcoming = append(d.Upcoming, it)
		}
	}
	return d, nil
}
