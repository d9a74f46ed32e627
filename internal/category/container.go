package category

import (
	"gorm.io/gorm"

	"github.com/saulo-duarte/gradetrack-lambda/internal/course"
	googlecalendar "github.com/saulo-duarte/gradetrack-lambda/internal/google_calendar"
)

type CategoryContainer struct {
	Handler *Handler
	Service CategoryService
	Repo    CategoryRepository
}

func NewCategoryContainer(db *gorm.DB, courseService course.CourseService, calendar googlecalendar.CalendarManager, notifier course.ChangeNotifier) *CategoryContainer {
	repo := NewRepository(db)
	service := NewService(repo, courseService, calendar, notifier)

	return &CategoryContainer{
		Handler: NewHandler(service),
		Service: service,
		Repo:    repo,
	}
}
