package aggregate

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

type store struct {
	courses     []*course.Course
	categories  []*category.Category
	assessments []*assessment.Assessment
	grades      []*grade.Grade
}

func (s *store) FindByIDAndUserID(id, userID uuid.UUID) (*course.Course, error) {
	for _, c := range s.courses {
		if c.ID == id && c.UserID == userID {
			return c, nil
		}
	}
	return nil, course.ErrNotFound
}

func (s *store) ListByUser(userID uuid.UUID, semester string, activeOnly bool) ([]*course.Course, error) {
	var out []*course.Course
	for _, c := range s.courses {
		if c.UserID != userID || (semester != "" && c.Semester != semester) || (activeOnly && !c.IsActive) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type categoryStore struct{ *store }

func (s categoryStore) ListByCourse(courseID uuid.UUID) ([]*category.Category, error) {
	var out []*category.Category
	for _, c := range s.categories {
		if c.CourseID == courseID {
			out = append(out, c)
		}
	}
	return out, nil
}

type assessmentStore struct{ *store }

func (s assessmentStore) ListByCourse(courseID uuid.UUID) ([]*assessment.Assessment, error) {
	var out []*assessment.Assessment
	for _, a := range s.assessments {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *store) ListByAssessmentIDs(ids []uuid.UUID) ([]*grade.Grade, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*grade.Grade
	for _, g := range s.grades {
		if wanted[g.AssessmentID] {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *store) addCourse(userID uuid.UUID, name, semester string, credits float64) *course.Course {
	c := &course.Course{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		Semester:     semester,
		Credits:      credits,
		GradingScale: grading.ScalePercentage,
		GPAScale:     grading.GPAScale4,
		IsActive:     true,
	}
	s.courses = append(s.courses, c)
	return c
}

func (s *store) addCategory(c *course.Course, name string, weight float64) *category.Category {
	cat := &category.Category{ID: uuid.New(), CourseID: c.ID, Name: name, WeightPercentage: weight}
	s.categories = append(s.categories, cat)
	return cat
}

func (s *store) addAssessment(cat *category.Category, status assessment.Status, due *util.Date) *assessment.Assessment {
	a := &assessment.Assessment{
		ID:         uuid.New(),
		CourseID:   cat.CourseID,
		CategoryID: cat.ID,
		Name:       "item",
		MaxPoints:  100,
		DueDate:    due,
		Status:     status,
	}
	s.assessments = append(s.assessments, a)
	return a
}

func (s *store) addGrade(a *assessment.Assessment, earned float64) {
	s.grades = append(s.grades, &grade.Grade{
		ID:             uuid.New(),
		AssessmentID:   a.ID,
		ScoreType:      grading.ScoreTypePoints,
		PointsEarned:   earned,
		PointsPossible: 100,
	})
	a.Status = assessment.StatusCompleted
}

func (s *store) graded(cat *category.Category, earned float64) {
	s.addGrade(s.addAssessment(cat, assessment.StatusUpcoming, nil), earned)
}

func newTestAggregator(s *store, today util.Date) *aggregator {
	a := NewAggregator(s, categoryStore{s}, assessmentStore{s}, s).(*aggregator)
	a.today = func() util.Date { return today }
	return a
}

func TestComputeCourseAggregateWeightedAverage(t *testing.T) {
	userID := uuid.New()
	s := &store{}
	c := s.addCourse(userID, "Calculus", "2025-1", 4)
	hw := s.addCategory(c, "Homework", 40)
	exams := s.addCategory(c, "Exams", 60)
	s.graded(hw, 70)
	s.graded(hw, 90)
	s.graded(exams, 90)

	agg, err := newTestAggregator(s, util.NewDate(2025, 3, 1)).
		ComputeCourseAggregate(auth.ContextWithUser(context.Background(), userID), c.ID.String())

	require.NoError(t, err)
	require.NotNil(t, agg.Percentage)
	assert.Equal(t, 86.00, *agg.Percentage)
	assert.Equal(t, "B", agg.Letter)
	assert.Len(t, agg.Categories, 2)
}

func TestComputeCourseAggregateWithoutGradesIsUndefined(t *testing.T) {
	userID := uuid.New()
	s := &store{}
	c := s.addCourse(userID, "History", "2025-1", 3)
	cat := s.addCategory(c, "Essays", 100)
	s.addAssessment(cat, assessment.StatusUpcoming, nil)

	agg, err := newTestAggregator(s, util.NewDate(2025, 3, 1)).
		ComputeCourseAggregate(auth.ContextWithUser(context.Background(), userID), c.ID.String())

	require.NoError(t, err)
	assert.Nil(t, agg.Percentage)
	assert.False(t, agg.HasData())
}

func TestComputeCourseAggregateOtherUsersCourse(t *testing.T) {
	s := &store{}
	c := s.addCourse(uuid.New(), "Physics", "2025-1", 3)

	_, err := newTestAggregator(s, util.NewDate(2025, 3, 1)).
		ComputeCourseAggregate(auth.ContextWithUser(context.Background(), uuid.New()), c.ID.String())

	assert.True(t, errs.IsNotFound(err))
}

func TestComputeCourseAggregateInvalidID(t *testing.T) {
	_, err := newTestAggregator(&store{}, util.NewDate(2025, 3, 1)).
		ComputeCourseAggregate(auth.ContextWithUser(context.Background(), uuid.New()), "not-a-uuid")

	assert.True(t, errs.IsValidation(err))
}

func TestComputeCourseAggregateReportsWeightWarning(t *testing.T) {
	userID := uuid.New()
	s := &store{}
	c := s.addCourse(userID, "Biology", "2025-1", 3)
	labs := s.addCategory(c, "Labs", 30)
	s.addCategory(c, "Final", 50)
	s.graded(labs, 80)

	agg, err := newTestAggregator(s, util.NewDate(2025, 3, 1)).
		ComputeCourseAggregate(auth.ContextWithUser(context.Background(), userID), c.ID.String())

	require.NoError(t, err)
	require.NotNil(t, agg.WeightWarning)
	assert.Equal(t, 80.0, agg.WeightTotal)
	require.NotNil(t, agg.Percentage)
	assert.Equal(t, 80.0, *agg.Percentage)
}

func TestUserGPAIsCreditWeighted(t *testing.T) {
	userID := uuid.New()
	s := &store{}

	calc := s.addCourse(userID, "Calculus", "2025-1", 3)
	hw := s.addCategory(calc, "Homework", 40)
	exams := s.addCategory(calc, "Exams", 60)
	s.graded(hw, 70)
	s.graded(hw, 90)
	s.graded(exams, 90)

	art := s.addCourse(userID, "Art", "2025-1", 1)
	s.graded(s.addCategory(art, "Projects", 100), 95)

	empty := s.addCourse(userID, "Seminar", "2025-1", 2)
	s.addCategory(empty, "Talks", 100)

	s.graded(s.addCategory(s.addCourse(userID, "Old", "2024-2", 3), "All", 100), 50)

	report, err := newTestAggregator(s, util.NewDate(2025, 3, 1)).
		SemesterGPA(auth.ContextWithUser(context.Background(), userID), "2025-1")

	require.NoError(t, err)
	require.NotNil(t, report.GPA)
	assert.Equal(t, 2.95, *report.GPA)
	assert.Equal(t, 4.0, report.Credits)
	assert.Equal(t, 2, report.CoursesCount)
	assert.Len(t, report.Courses, 3)
	assert.Nil(t, report.Courses[2].GPA)
}

func TestCumulativeGPAIncludesEverySemester(t *testing.T) {
	userID := uuid.New()
	s := &store{}
	s.graded(s.addCategory(s.addCourse(userID, "A", "2024-2", 1), "All", 100), 95)
	s.graded(s.addCategory(s.addCourse(userID, "B", "2025-1", 1), "All", 100), 85)

	report, err := newTestAggregator(s, util.NewDate(2025, 3, 1)).
		CumulativeGPA(auth.ContextWithUser(context.Background(), userID))

	require.NoError(t, err)
	require.NotNil(t, report.GPA)
	assert.Equal(t, 3.2, *report.GPA)
	assert.Equal(t, 2, report.CoursesCount)
}

func TestSemesterGPARequiresSemester(t *testing.T) {
	_, err := newTestAggregator(&store{}, util.NewDate(2025, 3, 1)).
		SemesterGPA(auth.ContextWithUser(context.Background(), uuid.New()), "")

	assert.True(t, errs.IsValidation(err))
}

func TestUserGPAWithoutCourses(t *testing.T) {
	report, err := newTestAggregator(&store{}, util.NewDate(2025, 3, 1)).
		UserGPA(context.Background(), uuid.New(), "")

	require.NoError(t, err)
	assert.Nil(t, report.GPA)
	assert.Empty(t, report.Courses)
}

func TestDashboardSplitsUpcomingAndOverdue(t *testing.T) {
	config.App.UpcomingHorizonDays = 7
	today := util.NewDate(2025, time.March, 10)

	userID := uuid.New()
	s := &store{}
	c := s.addCourse(userID, "Chemistry", "2025-1", 3)
	cat := s.addCategory(c, "Quizzes", 100)
	s.graded(cat, 88)
	soon := s.addAssessment(cat, assessment.StatusUpcoming, util.DatePtr(today.AddDays(3)))
	s.addAssessment(cat, assessment.StatusUpcoming, util.DatePtr(today.AddDays(30)))
	late := s.addAssessment(cat, assessment.StatusOverdue, util.DatePtr(today.AddDays(-2)))
	s.addAssessment(cat, assessment.StatusCancelled, util.DatePtr(today.AddDays(1)))

	d, err := newTestAggregator(s, today).
		Dashboard(auth.ContextWithUser(context.Background(), userID), c.ID.String())

	require.NoError(t, err)
	assert.Equal(t, c.ID, d.Course.ID)
	require.NotNil(t, d.Aggregate.Percentage)
	assert.Equal(t, 88.0, *d.Aggregate.Percentage)

	require.Len(t, d.Upcoming, 1)
	assert.Equal(t, soon.ID, d.Upcoming[0].ID)
	require.Len(t, d.Overdue, 1)
	assert.Equal(t, late.ID, d.Overdue[0].ID)

	assert.Equal(t, assessment.StatusCounts{Total: 5, Upcoming: 2, Completed: 1, Overdue: 1, Cancelled: 1}, d.Stats)
}

func TestCourseAggregateForScheduledJobs(t *testing.T) {
	userID := uuid.New()
	s := &store{}
	c := s.addCourse(userID, "Music", "2025-1", 2)
	s.graded(s.addCategory(c, "Recitals", 100), 72)

	got, agg, err := newTestAggregator(s, util.NewDate(2025, 3, 1)).
		CourseAggregate(context.Background(), userID, c.ID)

	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	require.NotNil(t, agg.Percentage)
	assert.Equal(t, 72.0, *agg.Percentage)

	_, _, err = newTestAggregator(s, util.NewDate(2025, 3, 1)).
		CourseAggregate(context.Background(), uuid.New(), c.ID)
	assert.True(t, errs.IsNotFound(err))
}
