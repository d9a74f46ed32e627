package assessment

import (
	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

type Status string

const (
	StatusUpcoming  Status = "UPCOMING"
	StatusCompleted Status = "COMPLETED"
	StatusOverdue   Status = "OVERDUE"
	StatusCancelled Status = "CANCELLED"
)

var AllStatuses = []Status{
	StatusUpcoming,
	StatusCompleted,
	StatusOverdue,
	StatusCancelled,
}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// NextStatus derives the status after grades changed. Cancelled assessments stay cancelled.
func NextStatus(current Status, due *util.Date, graded bool, today util.Date) Status {
	if current == StatusCancelled {
		return current
	}
	if graded {
		return StatusCompleted
	}
	if due != nil && due.Before(today) {
		return StatusOverdue
	}
	return StatusUpcoming
}
