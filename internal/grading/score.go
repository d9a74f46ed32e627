package grading

import (
	"math"

	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
)

type ScoreType string

const (
	ScoreTypePoints     ScoreType = "POINTS"
	ScoreTypePercentage ScoreType = "PERCENTAGE"
)

func (s ScoreType) IsValid() bool {
	return s == ScoreTypePoints || s == ScoreTypePercentage
}

type GradeInput struct {
	ScoreType       ScoreType
	PointsEarned    float64
	PointsPossible  float64
	PercentageScore float64
	IsExtraCredit   bool
}

// Round2 rounds half away from zero to 2 decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// GradePercentage is earned/possible*100 rounded to 2 decimals.
func GradePercentage(earned, possible float64) (float64, error) {
	if possible <= 0 || math.IsNaN(possible) {
		return 0, errs.NewValidation("points_possible", "must be greater than 0")
	}
	if earned < 0 || math.IsNaN(earned) {
		return 0, errs.NewValidation("points_earned", "must not be negative")
	}
	return Round2(earned / possible * 100), nil
}

func ValidateGrade(g GradeInput) error {
	switch g.ScoreType {
	case ScoreTypePoints, "":
		_, err := GradePercentage(g.PointsEarned, g.PointsPossible)
		return err
	case ScoreTypePercentage:
		if g.PercentageScore < 0 || math.IsNaN(g.PercentageScore) {
			return errs.NewValidation("percentage_score", "must not be negative")
		}
		return nil
	default:
		return errs.NewValidation("score_type", "must be one of [POINTS PERCENTAGE]")
	}
}

// scoreBase is the points a PERCENTAGE grade is expressed against: its own
// PointsPossible when set, otherwise fallback.
func scoreBase(g GradeInput, fallback float64) float64 {
	if g.PointsPossible > 0 {
		return g.PointsPossible
	}
	return fallback
}

// normalize returns the points earned and possible of a regular grade.
func normalize(g GradeInput) (earned, possible float64) {
	if g.ScoreType == ScoreTypePercentage {
		possible = scoreBase(g, 100)
		return g.PercentageScore * possible / 100, possible
	}
	return g.PointsEarned, g.PointsPossible
}

// extraPoints returns the points an extra-credit grade adds to the numerator.
// A PERCENTAGE bonus is scaled against the assessment's regular points.
func extraPoints(g GradeInput, regularPossible float64) float64 {
	if g.ScoreType == ScoreTypePercentage {
		return g.PercentageScore * scoreBase(g, regularPossible) / 100
	}
	return g.PointsEarned
}

// AssessmentPercentage returns nil when the assessment has no regular (non extra-credit) grade.
// Extra credit only ever adds to the numerator.
func AssessmentPercentage(grades []GradeInput) (*float64, error) {
	var earned, possible float64
	for _, g := range grades {
		if err := ValidateGrade(g); err != nil {
			return nil, err
		}
		if g.IsExtraCredit {
			continue
		}
		e, p := normalize(g)
		earned += e
		possible += p
	}
	if possible == 0 {
		return nil, nil
	}

	for _, g := range grades {
		if g.IsExtraCredit {
			earned += extraPoints(g, possible)
		}
	}
	pct := earned / possible * 100
	return &pct, nil
}
