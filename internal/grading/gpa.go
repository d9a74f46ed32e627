package grading

import "github.com/google/uuid"

type CourseGPAInput struct {
	CourseID   uuid.UUID
	Credits    float64
	Percentage *float64
}

type GPASummary struct {
	GPA          *float64 `json:"gpa"`
	Credits      float64  `json:"credits"`
	CoursesCount int      `json:"courses_count"`
}

// WeightedGPA is the credit-weighted mean of course GPAs on the 4.0 table.
// Courses without an aggregate are skipped; credits <= 0 count as 1.
func WeightedGPA(courses []CourseGPAInput) GPASummary {
	var points, credits float64
	var count int
	for _, c := range courses {
		if c.Percentage == nil {
			continue
		}
		cr := c.Credits
		if cr <= 0 {
			cr = 1
		}
		gpa, _ := GPAFor(*c.Percentage, GPAScale4)
		points += gpa * cr
		credits += cr
		count++
	}

	summary := GPASummary{Credits: credits, CoursesCount: count}
	if credits > 0 {
		gpa := Round2(points / credits)
		summary.GPA = &gpa
	}
	return summary
}
