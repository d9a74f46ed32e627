package course

import (
	"gorm.io/gorm"

	googlecalendar "github.com/saulo-duarte/gradetrack-lambda/internal/google_calendar"
)

type CourseContainer struct {
	Handler *Handler
	Service CourseService
	Repo    CourseRepository
}

func NewCourseContainer(db *gorm.DB, calendar googlecalendar.CalendarManager, notifier ChangeNotifier) *CourseContainer {
	repo := NewRepository(db)
	service := NewService(repo, calendar, notifier)

	return &CourseContainer{
		Handler: NewHandler(service),
		Service: service,
		Repo:    repo,
	}
}
