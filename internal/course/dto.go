package course

import "github.com/saulo-duarte/gradetrack-lambda/internal/grading"

type CreateCourseDTO struct {
	Name         string        `json:"name" validate:"required,max=200"`
	Code         string        `json:"code" validate:"max=50"`
	Instructor   string        `json:"instructor" validate:"max=200"`
	Semester     string        `json:"semester" validate:"max=50"`
	Credits      float64       `json:"credits" validate:"gte=0,lte=30"`
	GradingScale grading.Scale `json:"grading_scale"`
	MaxPoints    float64       `json:"max_points" validate:"gte=0"`
	GPAScale     float64       `json:"gpa_scale"`
	TermSystem   TermSystem    `json:"term_system"`
	Color        string        `json:"color" validate:"max=20"`
}

type UpdateCourseDTO struct {
	Name         *string        `json:"name" validate:"omitempty,max=200"`
	Code         *string        `json:"code" validate:"omitempty,max=50"`
	Instructor   *string        `json:"instructor" validate:"omitempty,max=200"`
	Semester     *string        `json:"semester" validate:"omitempty,max=50"`
	Credits      *float64       `json:"credits" validate:"omitempty,gte=0,lte=30"`
	GradingScale *grading.Scale `json:"grading_scale"`
	MaxPoints    *float64       `json:"max_points" validate:"omitempty,gte=0"`
	GPAScale     *float64       `json:"gpa_scale"`
	TermSystem   *TermSystem    `json:"term_system"`
	Color        *string        `json:"color" validate:"omitempty,max=20"`
	IsActive     *bool          `json:"is_active"`
}
