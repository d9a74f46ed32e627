package scheduler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

type fakeAssessments struct {
	asOf util.Date
	err  error
}

func (f *fakeAssessments) MarkOverdue(ctx context.Context, asOf util.Date) (int64, error) {
	f.asOf = asOf
	if f.err != nil {
		return 0, f.err
	}
	return 3, nil
}

type fakeGoals struct {
	evaluated, notified int
}

func (f *fakeGoals) EvaluateAll(ctx context.Context) (int, error) {
	f.evaluated++
	return 2, nil
}

func (f *fakeGoals) NotifyOverdue(ctx context.Context, asOf util.Date) (int, error) {
	f.notified++
	return 1, nil
}

func (f *fakeGoals) Today() util.Date {
	return util.NewDate(2026, time.October, 17)
}

func TestRunOnce(t *testing.T) {
	assessments := &fakeAssessments{}
	goals := &fakeGoals{}

	res := New(assessments, goals).RunOnce(context.Background())

	assert.Equal(t, Result{AssessmentsOverdue: 3, GoalsAchieved: 2, OverdueNotified: 1}, res)
	assert.Equal(t, "2026-10-17", assessments.asOf.String())
}

func TestRunOnceContinuesAfterFailure(t *testing.T) {
	goals := &fakeGoals{}

	res := New(&fakeAssessments{err: errors.New("db down")}, goals).RunOnce(context.Background())

	assert.Zero(t, res.AssessmentsOverdue)
	assert.Equal(t, 1, goals.evaluated)
	assert.Equal(t, 1, goals.notified)
}

func TestStartRejectsBadSpec(t *testing.T) {
	s := New(&fakeAssessments{}, &fakeGoals{})
	require.Error(t, s.Start("not a cron spec"))
}

func TestCronMessagesGoThroughLogrus(t *testing.T) {
	var buf bytes.Buffer
	config.Logger.SetOutput(&buf)
	t.Cleanup(func() { config.Logger.SetOutput(os.Stdout) })

	cronLogger().Info("skip")

	assert.Contains(t, buf.String(), "skip")
	assert.Contains(t, buf.String(), "scheduler")
}
