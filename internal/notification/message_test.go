package notification

import (
	"context"
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

func TestGoalAchievedMessage(t *testing.T) {
	current := 92.0
	msg := GoalAchievedMessage(mail.Address{Name: "Ana Souza", Address: "ana@example.com"}, GoalNotice{
		Title:        "A in Calculus",
		TargetValue:  90,
		CurrentValue: &current,
	})

	assert.Equal(t, "Goal achieved: A in Calculus", msg.Subject)
	assert.Contains(t, msg.Text, "Ana")
	assert.Contains(t, msg.Text, "92.00")
	assert.Contains(t, msg.Text, "90.00")
	assert.Equal(t, "ana@example.com", msg.To.Address)
}

func TestGoalOverdueMessage(t *testing.T) {
	due := util.NewDate(2026, 5, 1)
	msg := GoalOverdueMessage(mail.Address{Address: "x@example.com"}, GoalNotice{
		Title:       "3.5 GPA",
		TargetValue: 3.5,
		TargetDate:  &due,
	})

	assert.Equal(t, "Goal overdue: 3.5 GPA", msg.Subject)
	assert.Contains(t, msg.Text, "2026-05-01")
	assert.Contains(t, msg.Text, "Hi there")
}

func TestSendgridPrepare(t *testing.T) {
	n := NewSendgridNotifier("key", "GradeTrack", "no-reply@gradetrack.app").(*sendgridNotifier)
	m := n.prepare(Message{
		To:      mail.Address{Name: "Ana", Address: "ana@example.com"},
		Subject: "Hello",
		Text:    "plain",
		HTML:    "<p>plain</p>",
	})

	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "[GradeTrack] Hello", m.Personalizations[0].Subject)
	require.Len(t, m.Personalizations[0].To, 1)
	assert.Equal(t, "ana@example.com", m.Personalizations[0].To[0].Address)
	assert.Len(t, m.Content, 2)
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, NewLogNotifier().Send(context.Background(), Message{Subject: "s", Text: "t"}))
}
