package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/gradetrack-lambda/internal/aggregate"
	"github.com/saulo-duarte/gradetrack-lambda/internal/assessment"
	"github.com/saulo-duarte/gradetrack-lambda/internal/auth"
	"github.com/saulo-duarte/gradetrack-lambda/internal/course"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
	"github.com/saulo-duarte/gradetrack-lambda/internal/grading"
	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

type fakeProvider struct {
	advice     *Advice
	err        error
	lastUser   string
	lastSystem string
}

func (f *fakeProvider) SendPrompt(ctx context.Context, system, user string) (*Advice, error) {
	f.lastSystem, f.lastUser = system, user
	return f.advice, f.err
}

func (f *fakeProvider) Model() string { return "test-model" }

type fakeDashboards struct {
	d *aggregate.Dashboard
}

func (f fakeDashboards) Dashboard(ctx context.Context, courseID string) (*aggregate.Dashboard, error) {
	if f.d == nil || f.d.Course.ID.String() != courseID {
		return nil, errs.NewNotFound("course", uuid.Nil)
	}
	return f.d, nil
}

type fakeRepo struct {
	saved []*Recommendation
}

func (f *fakeRepo) Create(r *Recommendation) error {
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeRepo) ListByUser(userID uuid.UUID, courseID *uuid.UUID, limit int) ([]*Recommendation, error) {
	var out []*Recommendation
	for _, r := range f.saved {
		if r.UserID == userID && (courseID == nil || r.CourseID == *courseID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func sampleDashboard() *aggregate.Dashboard {
	pct, hw, exams := 86.0, 80.0, 90.0
	due := util.NewDate(2026, time.October, 20)
	c := &course.Course{ID: uuid.New(), UserID: uuid.New(), Name: "Physics", Code: "PHY101"}
	return &aggregate.Dashboard{
		Course: c,
		Aggregate: grading.Aggregate{
			CourseID:   c.ID,
			Percentage: &pct,
			Letter:     "B",
			Categories: []grading.CategoryResult{
				{Name: "Homework", Weight: 40, Average: &hw, GradedAssessments: 3},
				{Name: "Exams", Weight: 60, Average: &exams, GradedAssessments: 1},
				{Name: "Labs", Weight: 0},
			},
		},
		Stats:    assessment.StatusCounts{Total: 5, Completed: 4, Upcoming: 1},
		Upcoming: []*assessment.Assessment{{Name: "Final exam", DueDate: &due, MaxPoints: 100}},
	}
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := BuildUserPrompt(sampleDashboard())

	assert.Contains(t, prompt, "Course: Physics (PHY101)")
	assert.Contains(t, prompt, "Current grade: 86.00% (B)")
	assert.Contains(t, prompt, "- Homework: weight 40.00%, average 80.00%, 3 graded")
	assert.Contains(t, prompt, "- Labs: weight 0.00%, average not graded, 0 graded")
	assert.Contains(t, prompt, "Upcoming: Final exam (due 2026-10-20, 100 points)")
}

func TestParseAdvice(t *testing.T) {
	advice, err := parseAdvice("```json\n{\"summary\":\"ok\",\"items\":[{\"title\":\"Review\",\"detail\":\"d\",\"priority\":\"HIGH\"}]}\n```")
	require.NoError(t, err)
	assert.Equal(t, "ok", advice.Summary)
	require.Len(t, advice.Items, 1)
	assert.Equal(t, "HIGH", advice.Items[0].Priority)

	_, err = parseAdvice("  ")
	assert.Error(t, err)

	_, err = parseAdvice("not json")
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	d := sampleDashboard()
	provider := &fakeProvider{advice: &Advice{
		Summary: "Solid standing",
		Items:   []Item{{Title: "Prepare for the final", Priority: "HIGH"}},
	}}
	repo := &fakeRepo{}
	svc := NewService(repo, fakeDashboards{d: d}, provider)

	rec, err := svc.Generate(context.Background(), d.Course.ID.String())
	require.NoError(t, err)

	assert.Equal(t, d.Course.ID, rec.CourseID)
	assert.Equal(t, d.Course.UserID, rec.UserID)
	assert.Equal(t, "test-model", rec.Model)
	assert.Equal(t, systemPrompt, provider.lastSystem)
	assert.Contains(t, provider.lastUser, "Physics")

	var items []Item
	require.NoError(t, json.Unmarshal(rec.Items, &items))
	assert.Equal(t, "Prepare for the final", items[0].Title)
	assert.Len(t, repo.saved, 1)

	listed, err := svc.List(auth.ContextWithUser(context.Background(), d.Course.UserID), nil)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestGenerateErrors(t *testing.T) {
	d := sampleDashboard()

	_, err := NewService(&fakeRepo{}, fakeDashboards{d: d}, nil).Generate(context.Background(), d.Course.ID.String())
	assert.ErrorIs(t, err, errs.ErrUnavailable)

	svc := NewService(&fakeRepo{}, fakeDashboards{d: d}, &fakeProvider{err: errors.New("quota")})
	_, err = svc.Generate(context.Background(), d.Course.ID.String())
	assert.EqualError(t, err, "quota")

	_, err = svc.Generate(context.Background(), uuid.NewString())
	assert.True(t, errs.IsNotFound(err))
}
