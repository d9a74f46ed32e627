package aggregate

import (
	"github.com/google/uuid"

	"github.com/saulo-duarte/gradetrack-lambda/internal/assessment"
	"github.com/saulo-duarte/gradetrack-lambda/internal/course"
	"github.com/saulo-duarte/gradetrack-lambda/internal/grading"
)

type CourseGPA struct {
	CourseID   uuid.UUID `json:"course_id"`
	Name       string    `json:"name"`
	Semester   string    `json:"semester,omitempty"`
	Credits    float64   `json:"credits"`
	Percentage *float64  `json:"percentage"`
	GPA        *float64  `json:"gpa"`
	Letter     string    `json:"letter,omitempty"`
}

type GPAReport struct {
	Semester string `json:"semester,omitempty"`
	grading.GPASummary
	Courses []CourseGPA `json:"courses"`
}

type Dashboard struct {
	Course    *course.Course           `json:"course"`
	Aggregate grading.Aggregate        `json:"aggregate"`
	Stats     assessment.StatusCounts  `json:"stats"`
	Upcoming  []*assessment.Assessment `json:"upcoming"`
	Overdue   []*assessment.Assessment `json:"overdue"`
}
