package assessment

import (
	"gorm.io/gorm"

	"github.com/saulo-duarte/gradetrack-lambda/internal/category"
	"github.com/saulo-duarte/gradetrack-lambda/internal/course"
	googlecalendar "github.com/saulo-duarte/gradetrack-lambda/internal/google_calendar"
)

type AssessmentContainer struct {
	Handler *Handler
	Service AssessmentService
	Repo    AssessmentRepository
}

func NewAssessmentContainer(
	db *gorm.DB,
	courseService course.CourseService,
	categoryService category.CategoryService,
	calendar googlecalendar.CalendarManager,
	notifier course.ChangeNotifier,
) *AssessmentContainer {
	repo := NewRepository(db)
	service := NewService(repo, courseService, categoryService, calendar, notifier)

	return &AssessmentContainer{
		Handler: NewHandler(service),
		Service: service,
		Repo:    repo,
	}
}
