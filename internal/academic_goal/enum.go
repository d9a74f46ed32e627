package academic_goal

import "github.com/saulo-duarte/gradetrack-lambda/internal/grading"

type GoalType string

const (
	GoalTypeCourseGrade   GoalType = "COURSE_GRADE"
	GoalTypeSemesterGPA   GoalType = "SEMESTER_GPA"
	GoalTypeCumulativeGPA GoalType = "CUMULATIVE_GPA"
)

var AllGoalTypes = []GoalType{
	GoalTypeCourseGrade,
	GoalTypeSemesterGPA,
	GoalTypeCumulativeGPA,
}

func (t GoalType) IsValid() bool {
	for _, v := range AllGoalTypes {
		if t == v {
			return true
		}
	}
	return false
}

// MaxTarget bounds TargetValue: percentages for course goals. GPA goals are
// evaluated on the 4.0 table, so their targets cannot exceed it.
func (t GoalType) MaxTarget() float64 {
	if t == GoalTypeCourseGrade {
		return 100
	}
	return grading.GPAScale4
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

var AllPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) IsValid() bool {
	for _, v := range AllPriorities {
		if p == v {
			return true
		}
	}
	return false
}
