package grade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/gradetrack-lambda/internal/assessment"
	"github.com/saulo-duarte/gradetrack-lambda/internal/course"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
	"github.com/saulo-duarte/gradetrack-lambda/internal/grading"
)

type fakeRepo struct {
	grades []*Grade
}

func (f *fakeRepo) Create(g *Grade) error {
	f.grades = append(f.grades, g)
	return nil
}

func (f *fakeRepo) FindByID(id uuid.UUID) (*Grade, error) {
	for _, g := range f.grades {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) ListByAssessment(assessmentID uuid.UUID) ([]*Grade, error) {
	return f.ListByAssessmentIDs([]uuid.UUID{assessmentID})
}

func (f *fakeRepo) ListByAssessmentIDs(ids []uuid.UUID) ([]*Grade, error) {
	var out []*Grade
	for _, g := range f.grades {
		for _, id := range ids {
			if g.AssessmentID == id {
				out = append(out, g)
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) CountByAssessment(assessmentID uuid.UUID) (int64, error) {
	var n int64
	for _, g := range f.grades {
		if g.AssessmentID == assessmentID && !g.IsExtraCredit {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) Update(g *Grade) error { return nil }

func (f *fakeRepo) Delete(id uuid.UUID) error {
	for i, g := range f.grades {
		if g.ID == id {
			f.grades = append(f.grades[:i], f.grades[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type fakeAssessments struct {
	assessment.AssessmentService
	item   *assessment.Assessment
	course *course.Course
	synced []bool
}

func (f *fakeAssessments) GetAssessmentByID(ctx context.Context, id string) (*assessment.Assessment, *course.Course, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil, errs.NewValidation("id", "invalid assessment id")
	}
	if parsed != f.item.ID {
		return nil, nil, errs.NewNotFound("assessment", parsed)
	}
	return f.item, f.course, nil
}

func (f *fakeAssessments) SyncStatus(ctx context.Context, a *assessment.Assessment, graded bool) error {
	f.synced = append(f.synced, graded)
	if graded {
		a.Status = assessment.StatusCompleted
	} else {
		a.Status = assessment.StatusUpcoming
	}
	return nil
}

type countingNotifier struct {
	count int
}

func (n *countingNotifier) CourseChanged(ctx context.Context, userID, courseID uuid.UUID) {
	n.count++
}

func newFixture() (GradeService, *fakeRepo, *fakeAssessments, *countingNotifier) {
	c := &course.Course{ID: uuid.New(), UserID: uuid.New()}
	a := &assessment.Assessment{ID: uuid.New(), CourseID: c.ID, MaxPoints: 50, Status: assessment.StatusUpcoming}
	repo := &fakeRepo{}
	assessments := &fakeAssessments{item: a, course: c}
	notifier := &countingNotifier{}
	return NewService(repo, assessments, notifier), repo, assessments, notifier
}

func ptr(v float64) *float64 { return &v }

func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		name      string
		grade     Grade
		maxPoints float64
		wantPct   float64
		wantPts   float64
		wantErr   bool
	}{
		{"points", Grade{ScoreType: grading.ScoreTypePoints, PointsEarned: 45, PointsPossible: 50}, 50, 90, 45, false},
		{"default type is points", Grade{PointsEarned: 2, PointsPossible: 3}, 3, 66.67, 2, false},
		{"percentage expressed in points", Grade{ScoreType: grading.ScoreTypePercentage, PercentageScore: 80}, 50, 80, 40, false},
		{"above full marks", Grade{ScoreType: grading.ScoreTypePoints, PointsEarned: 55, PointsPossible: 50}, 50, 110, 55, false},
		{"zero possible", Grade{ScoreType: grading.ScoreTypePoints, PointsEarned: 1}, 0, 0, 0, true},
		{"negative points", Grade{ScoreType: grading.ScoreTypePoints, PointsEarned: -1, PointsPossible: 10}, 10, 0, 0, true},
		{"negative percentage", Grade{ScoreType: grading.ScoreTypePercentage, PercentageScore: -5}, 10, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.grade
			err := normalizeScore(&g, tt.maxPoints)
			if tt.wantErr {
				assert.True(t, errs.IsValidation(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPct, g.PercentageScore)
			assert.Equal(t, tt.wantPts, g.PointsEarned)
		})
	}
}

func TestCreateGradeDefaultsToAssessmentMaxPoints(t *testing.T) {
	svc, repo, assessments, notifier := newFixture()

	g, err := svc.CreateGrade(context.Background(), CreateGradeDTO{
		AssessmentID: assessments.item.ID,
		PointsEarned: ptr(40),
	})
	require.NoError(t, err)

	assert.Equal(t, 50.0, g.PointsPossible)
	assert.Equal(t, 80.0, g.PercentageScore)
	assert.Len(t, repo.grades, 1)
	assert.Equal(t, []bool{true}, assessments.synced)
	assert.Equal(t, assessment.StatusCompleted, assessments.item.Status)
	assert.Equal(t, 1, notifier.count)
}

func TestCreateGradeRejectsUnknownAssessment(t *testing.T) {
	svc, repo, _, notifier := newFixture()

	_, err := svc.CreateGrade(context.Background(), CreateGradeDTO{AssessmentID: uuid.New(), PointsEarned: ptr(1)})
	assert.True(t, errs.IsNotFound(err))
	assert.Empty(t, repo.grades)
	assert.Zero(t, notifier.count)
}

func TestCreateGradeRejectsUnknownScoreType(t *testing.T) {
	svc, _, assessments, _ := newFixture()

	_, err := svc.CreateGrade(context.Background(), CreateGradeDTO{AssessmentID: assessments.item.ID, ScoreType: "LETTER"})
	assert.True(t, errs.IsValidation(err))
}

func TestExtraCreditAloneDoesNotCompleteAssessment(t *testing.T) {
	svc, _, assessments, _ := newFixture()

	_, err := svc.CreateGrade(context.Background(), CreateGradeDTO{
		AssessmentID:  assessments.item.ID,
		PointsEarned:  ptr(5),
		IsExtraCredit: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, assessments.synced)
}

func TestUpdateGradeRecomputesPercentage(t *testing.T) {
	svc, _, assessments, notifier := newFixture()
	g, err := svc.CreateGrade(context.Background(), CreateGradeDTO{AssessmentID: assessments.item.ID, PointsEarned: ptr(25)})
	require.NoError(t, err)

	updated, err := svc.UpdateGrade(context.Background(), g.ID.String(), UpdateGradeDTO{PointsEarned: ptr(45)})
	require.NoError(t, err)
	assert.Equal(t, 90.0, updated.PercentageScore)
	assert.Equal(t, 2, notifier.count)
}

func TestDeleteLastGradeRevertsStatus(t *testing.T) {
	svc, repo, assessments, notifier := newFixture()
	g, err := svc.CreateGrade(context.Background(), CreateGradeDTO{AssessmentID: assessments.item.ID, PointsEarned: ptr(30)})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGrade(context.Background(), g.ID.String()))

	assert.Empty(t, repo.grades)
	assert.Equal(t, []bool{true, false}, assessments.synced)
	assert.Equal(t, assessment.StatusUpcoming, assessments.item.Status)
	assert.Equal(t, 2, notifier.count)

	_, err = svc.GetGradeByID(context.Background(), g.ID.String())
	assert.True(t, errs.IsNotFound(err))
}
