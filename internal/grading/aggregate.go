package grading

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
)

// weightTolerance absorbs float noise such as 33.33+33.33+33.34.
const weightTolerance = 0.01

type AssessmentInput struct {
	ID        uuid.UUID
	Cancelled bool
	Grades    []GradeInput
}

type CategoryInput struct {
	ID          uuid.UUID
	Name        string
	Weight      float64
	DropLowest  int
	Assessments []AssessmentInput
}

type CourseInput struct {
	ID           uuid.UUID
	GradingScale Scale
	GPAScale     float64
	MaxPoints    float64
	Categories   []CategoryInput
}

type CategoryResult struct {
	CategoryID        uuid.UUID `json:"category_id"`
	Name              string    `json:"name"`
	Weight            float64   `json:"weight_percentage"`
	EffectiveWeight   float64   `json:"effective_weight"`
	Average           *float64  `json:"average"`
	GradedAssessments int       `json:"graded_assessments"`
}

type Aggregate struct {
	CourseID    uuid.UUID        `json:"course_id"`
	Percentage  *float64         `json:"percentage"`
	GPA         *float64         `json:"gpa"`
	Letter      string           `json:"letter,omitempty"`
	Points      *float64         `json:"points,omitempty"`
	WeightTotal float64          `json:"weight_total"`
	Categories  []CategoryResult `json:"categories"`
	Warnings    []string         `json:"warnings,omitempty"`

	WeightWarning *errs.InconsistentWeightError `json:"-"`
}

// HasData is false when the course has nothing graded yet.
func (a Aggregate) HasData() bool {
	return a.Percentage != nil
}

// CategoryAverage is the mean of the category's graded assessment percentages
// after dropping the DropLowest lowest ones. It is nil when nothing is graded.
func CategoryAverage(c CategoryInput) (*float64, int, error) {
	var percentages []float64
	for _, a := range c.Assessments {
		if a.Cancelled {
			continue
		}
		pct, err := AssessmentPercentage(a.Grades)
		if err != nil {
			return nil, 0, err
		}
		if pct != nil {
			percentages = append(percentages, *pct)
		}
	}

	graded := len(percentages)
	if graded == 0 {
		return nil, 0, nil
	}

	// Sorting first keeps the float sum independent of assessment order.
	sort.Float64s(percentages)
	if c.DropLowest > 0 && graded > c.DropLowest {
		percentages = percentages[c.DropLowest:]
	}

	var sum float64
	for _, p := range percentages {
		sum += p
	}
	avg := sum / float64(len(percentages))
	return &avg, graded, nil
}

func ValidateWeight(weight float64) error {
	if weight < 0 || weight > 100 || math.IsNaN(weight) {
		return errs.NewValidation("weight_percentage", "must be between 0 and 100")
	}
	return nil
}

// CheckWeights returns an InconsistentWeightError when the weights do not sum to 100.
func CheckWeights(courseID uuid.UUID, weights []float64) (float64, *errs.InconsistentWeightError) {
	var total float64
	for _, w := range weights {
		total += w
	}
	total = Round2(total)
	if math.Abs(total-100) > weightTolerance {
		return total, &errs.InconsistentWeightError{CourseID: courseID, Total: total}
	}
	return total, nil
}

// ComputeCourse builds the course aggregate. Only invalid grade rows make it fail;
// an inconsistent weight total is reported on the result instead.
func ComputeCourse(c CourseInput) (Aggregate, error) {
	agg := Aggregate{CourseID: c.ID, Categories: make([]CategoryResult, 0, len(c.Categories))}
	if len(c.Categories) == 0 {
		return agg, nil
	}

	weights := make([]float64, 0, len(c.Categories))
	var weightedSum, gradedWeight float64

	for _, cat := range c.Categories {
		if err := ValidateWeight(cat.Weight); err != nil {
			return Aggregate{}, err
		}
		weights = append(weights, cat.Weight)

		avg, graded, err := CategoryAverage(cat)
		if err != nil {
			return Aggregate{}, err
		}

		res := CategoryResult{
			CategoryID:        cat.ID,
			Name:              cat.Name,
			Weight:            cat.Weight,
			GradedAssessments: graded,
		}
		if avg != nil {
			rounded := Round2(*avg)
			res.Average = &rounded
			weightedSum += *avg * cat.Weight
			gradedWeight += cat.Weight
		}
		agg.Categories = append(agg.Categories, res)
	}

	total, warning := CheckWeights(c.ID, weights)
	agg.WeightTotal = total
	if warning != nil {
		agg.WeightWarning = warning
		agg.Warnings = append(agg.Warnings, warning.Error())
	}

	if gradedWeight == 0 {
		return agg, nil
	}

	for i := range agg.Categories {
		if agg.Categories[i].Average != nil {
			agg.Categories[i].EffectiveWeight = Round2(agg.Categories[i].Weight / gradedWeight * 100)
		}
	}

	pct := Round2(weightedSum / gradedWeight)
	agg.Percentage = &pct
	agg.Letter = LetterGrade(pct)

	switch c.GradingScale {
	case ScaleGPA:
		scale := c.GPAScale
		if scale == 0 {
			scale = GPAScale4
		}
		gpa, err := GPAFor(pct, scale)
		if err != nil {
			return Aggregate{}, err
		}
		agg.GPA = &gpa
	case ScalePoints:
		if c.MaxPoints > 0 {
			points := Round2(pct * c.MaxPoints / 100)
			agg.Points = &points
		}
	}

	return agg, nil
}
