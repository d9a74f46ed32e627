package grade

import (
	"gorm.io/gorm"

	"github.com/saulo-duarte/gradetrack-lambda/internal/assessment"
	"github.com/saulo-duarte/gradetrack-lambda/internal/course"
)

type GradeContainer struct {
	Handler *Handler
	Service GradeService
	Repo    GradeRepository
}

func NewGradeContainer(db *gorm.DB, assessmentService assessment.AssessmentService, notifier course.ChangeNotifier) *GradeContainer {
	repo := NewRepository(db)
	service := NewService(repo, assessmentService, notifier)

	return &GradeContainer{
		Handler: NewHandler(service),
		Service: service,
		Repo:    repo,
	}
}
