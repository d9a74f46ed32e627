package aggregate

import (
	"gorm.io/gorm"

	"github.com/saulo-duarte/gradetrack-lambda/internal/assessment"
	"github.com/saulo-duarte/gradetrack-lambda/internal/category"
	"github.com/saulo-duarte/gradetrack-lambda/internal/course"
	"github.com/saulo-duarte/gradetrack-lambda/internal/grade"
)

type AggregateContainer struct {
	Handler    *Handler
	Aggregator Aggregator
}

func NewAggregateContainer(db *gorm.DB) *AggregateContainer {
	aggregator := NewAggregator(
		course.NewRepository(db),
		category.NewRepository(db),
		assessment.NewRepository(db),
		grade.NewRepository(db),
	)

	return &AggregateContainer{
		Handler:    NewHandler(aggregator),
		Aggregator: aggregator,
	}
}
