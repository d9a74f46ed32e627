package academic_goal

import (
	"gorm.io/gorm"

	"github.com/saulo-duarte/gradetrack-lambda/internal/aggregate"
	"github.com/saulo-duarte/gradetrack-lambda/internal/course"
	googlecalendar "github.com/saulo-duarte/gradetrack-lambda/internal/google_calendar"
	"github.com/saulo-duarte/gradetrack-lambda/internal/notification"
	"github.com/saulo-duarte/gradetrack-lambda/internal/user"
)

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(
	db *gorm.DB,
	aggregator aggregate.Aggregator,
	courses course.CourseService,
	userRepo user.UserRepository,
	calendar googlecalendar.CalendarManager,
	notifier notification.Notifier,
) *Container {
	repo := NewRepository(db)
	service := NewService(repo, aggregator, courses, userRepo, calendar, notifier)

	return &Container{
		Handler: NewHandler(service),
		Service: service,
	}
}
