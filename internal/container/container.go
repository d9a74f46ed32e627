package container

import (
	"context"
	"log"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"gorm.io/gorm"

	academicgoal "github.com/saulo-duarte/gradetrack-lambda/internal/academic_goal"
	"github.com/saulo-duarte/gradetrack-lambda/internal/aggregate"
	"github.com/saulo-duarte/gradetrack-lambda/internal/assessment"
	"github.com/saulo-duarte/gradetrack-lambda/internal/auth"
	"github.com/saulo-duarte/gradetrack-lambda/internal/category"
	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/course"
	googlecalendar "github.com/saulo-duarte/gradetrack-lambda/internal/google_calendar"
	"github.com/saulo-duarte/gradetrack-lambda/internal/grade"
	"github.com/saulo-duarte/gradetrack-lambda/internal/notification"
	"github.com/saulo-duarte/gradetrack-lambda/internal/recommendation"
	"github.com/saulo-duarte/gradetrack-lambda/internal/router"
	"github.com/saulo-duarte/gradetrack-lambda/internal/scheduler"
	"github.com/saulo-duarte/gradetrack-lambda/internal/user"
)

type Container struct {
	UserContainer           *user.UserContainer
	GoogleCalendarContainer *googlecalendar.GoogleCalendarContainer
	CourseContainer         *course.CourseContainer
	CategoryContainer       *category.CategoryContainer
	AssessmentContainer     *assessment.AssessmentContainer
	GradeContainer          *grade.GradeContainer
	AggregateContainer      *aggregate.AggregateContainer
	AcademicGoalContainer   *academicgoal.Container
	RecommendationContainer *recommendation.RecommendationContainer
	Scheduler               *scheduler.Scheduler
}

func New() *Container {
	config.Init()
	auth.Init()
	config.InitCrypto()

	if err := config.Connect(context.Background(), config.App.DatabaseDSN); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	if config.App.AutoMigrate {
		if err := Migrate(config.DB); err != nil {
			log.Fatalf("failed to migrate DB: %v", err)
		}
	}

	return Build(config.DB, newOAuthConfig(), notification.New())
}

// Build wires every feature container on top of an open database.
func Build(db *gorm.DB, oauthConfig *oauth2.Config, notifier notification.Notifier) *Container {
	ttl := user.TokenTTL{
		Access:  config.GetDurationEnv("JWT_ACCESS_TTL", 15*time.Minute),
		Refresh: config.GetDurationEnv("JWT_REFRESH_TTL", 7*24*time.Hour),
	}

	userContainer := user.NewUserContainer(db, oauthConfig, ttl)
	calendarContainer := googlecalendar.NewGoogleCalendarContainer(userContainer.Repo, oauthConfig)
	calendarManager := calendarContainer.CalendarManager
	aggregateContainer := aggregate.NewAggregateContainer(db)

	// Goals are recomputed by course writes, so the goal service is built first
	// with a course lookup that does not notify.
	courseLookup := course.NewService(course.NewRepository(db), calendarManager, nil)
	goalContainer := academicgoal.NewContainer(
		db,
		aggregateContainer.Aggregator,
		courseLookup,
		userContainer.Repo,
		calendarManager,
		notifier,
	)
	goals := goalContainer.Service

	courseContainer := course.NewCourseContainer(db, calendarManager, goals)
	categoryContainer := category.NewCategoryContainer(db, courseContainer.Service, calendarManager, goals)
	assessmentContainer := assessment.NewAssessmentContainer(
		db,
		courseContainer.Service,
		categoryContainer.Service,
		calendarManager,
		goals,
	)
	gradeContainer := grade.NewGradeContainer(db, assessmentContainer.Service, goals)
	recommendationContainer := recommendation.NewRecommendationContainer(db, aggregateContainer.Aggregator)

	return &Container{
		UserContainer:           userContainer,
		GoogleCalendarContainer: calendarContainer,
		CourseContainer:         courseContainer,
		CategoryContainer:       categoryContainer,
		AssessmentContainer:     assessmentContainer,
		GradeContainer:          gradeContainer,
		AggregateContainer:      aggregateContainer,
		AcademicGoalContainer:   goalContainer,
		RecommendationContainer: recommendationContainer,
		Scheduler:               scheduler.New(assessmentContainer.Service, goals),
	}
}

func (c *Container) Handler() http.Handler {
	return router.New(router.RouterConfig{
		UserHandler:           c.UserContainer.Handler,
		CourseHandler:         c.CourseContainer.Handler,
		CategoryHandler:       c.CategoryContainer.Handler,
		AssessmentHandler:     c.AssessmentContainer.Handler,
		GradeHandler:          c.GradeContainer.Handler,
		AggregateHandler:      c.AggregateContainer.Handler,
		AcademicGoalHandler:   c.AcademicGoalContainer.Handler,
		RecommendationHandler: c.RecommendationContainer.Handler,
	})
}

func newOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.GetEnv("GOOGLE_CLIENT_ID", ""),
		ClientSecret: config.GetEnv("GOOGLE_CLIENT_SECRET", ""),
		RedirectURL:  config.GetEnv("GOOGLE_REDIRECT_URL", "postmessage"),
		Scopes:       []string{calendar.CalendarEventsScope},
		Endpoint:     google.Endpoint,
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&course.Course{},
		&category.Category{},
		&assessment.Assessment{},
		&grade.Grade{},
		&academicgoal.AcademicGoal{},
		&recommendation.Recommendation{},
	)
}
