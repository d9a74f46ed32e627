package notification

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

type Message struct {
	To      mail.Address
	Subject string
	Text    string
	HTML    string
}

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

type GoalNotice struct {
	Title        string
	TargetValue  float64
	CurrentValue *float64
	TargetDate   *util.Date
}

func GoalAchievedMessage(to mail.Address, n GoalNotice) Message {
	current := "n/a"
	if n.CurrentValue != nil {
		current = fmt.Sprintf("%.2f", *n.CurrentValue)
	}

	text := fmt.Sprintf("Congratulations %s! You reached your goal %q: current value %s, target %.2f.",
		firstName(to.Name), n.Title, current, n.TargetValue)
	return Message{
		To:      to,
		Subject: "Goal achieved: " + n.Title,
		Text:    text,
		HTML:    "<p>" + text + "</p>",
	}
}

func GoalOverdueMessage(to mail.Address, n GoalNotice) Message {
	due := "its target date"
	if n.TargetDate != nil {
		due = n.TargetDate.String()
	}

	text := fmt.Sprintf("Hi %s, your goal %q (target %.2f) passed %s without being achieved.",
		firstName(to.Name), n.Title, n.TargetValue, due)
	return Message{
		To:      to,
		Subject: "Goal overdue: " + n.Title,
		Text:    text,
		HTML:    "<p>" + text + "</p>",
	}
}

func firstName(name string) string {
	if f := strings.Fields(name); len(f) > 0 {
		return f[0]
	}
	return "there"
}
