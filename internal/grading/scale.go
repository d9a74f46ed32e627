package grading

import "github.com/saulo-duarte/gradetrack-lambda/internal/errs"

type Scale string

const (
	ScalePercentage Scale = "percentage"
	ScaleGPA        Scale = "gpa"
	ScalePoints     Scale = "points"
)

func (s Scale) IsValid() bool {
	return s == ScalePercentage || s == ScaleGPA || s == ScalePoints
}

const (
	GPAScale4 = 4.0
	GPAScale5 = 5.0
)

type GradeBucket struct {
	MinPercentage float64 `json:"min_percentage"`
	Letter        string  `json:"letter"`
	Points        float64 `json:"points"`
}

// gradeTable is ordered by descending MinPercentage; points are on the 4.0 scale.
var gradeTable = []GradeBucket{
	{97, "A+", 4.0},
	{93, "A", 3.7},
	{90, "A-", 3.3},
	{87, "B+", 3.0},
	{83, "B", 2.7},
	{80, "B-", 2.3},
	{77, "C+", 2.0},
	{73, "C", 1.7},
	{70, "C-", 1.3},
	{67, "D+", 1.0},
	{60, "D", 0.7},
	{0, "F", 0.0},
}

func GradeTable() []GradeBucket {
	out := make([]GradeBucket, len(gradeTable))
	copy(out, gradeTable)
	return out
}

func bucketFor(percentage float64) GradeBucket {
	for _, b := range gradeTable {
		if percentage >= b.MinPercentage {
			return b
		}
	}
	return gradeTable[len(gradeTable)-1]
}

func LetterGrade(percentage float64) string {
	return bucketFor(percentage).Letter
}

func ValidateGPAScale(scale float64) error {
	if scale != GPAScale4 && scale != GPAScale5 {
		return errs.NewValidation("gpa_scale", "must be 4.0 or 5.0")
	}
	return nil
}

// GPAFor maps a percentage onto a 4.0 or 5.0 scale through the fixed bucket table.
func GPAFor(percentage, scale float64) (float64, error) {
	if err := ValidateGPAScale(scale); err != nil {
		return 0, err
	}
	return Round2(bucketFor(percentage).Points * scale / GPAScale4), nil
}
