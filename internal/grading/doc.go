// Package grading computes course aggregates from raw grade rows.
//
// Data flows bottom-up: each grade is normalized to earned/possible points,
// an assessment's percentage is the sum of earned points over the sum of
// non extra-credit possible points, a category average is the mean of its
// graded assessments' percentages and the course percentage is the weighted
// mean of the graded categories.
//
// Categories with no graded assessment are left out and their weight is
// redistributed proportionally over the graded ones. A course with no
// categories, or with nothing graded yet, has no aggregate (nil percentage).
//
// Everything here is a pure function of its input: no I/O, no clock.
package grading
