package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	academicgoal "github.com/saulo-duarte/gradetrack-lambda/internal/academic_goal"
	"github.com/saulo-duarte/gradetrack-lambda/internal/aggregate"
	"github.com/saulo-duarte/gradetrack-lambda/internal/assessment"
	"github.com/saulo-duarte/gradetrack-lambda/internal/auth"
	"github.com/saulo-duarte/gradetrack-lambda/internal/category"
	"github.com/saulo-duarte/gradetrack-lambda/internal/course"
	"github.com/saulo-duarte/gradetrack-lambda/internal/grade"
	"github.com/saulo-duarte/gradetrack-lambda/internal/middlewares"
	"github.com/saulo-duarte/gradetrack-lambda/internal/recommendation"
	"github.com/saulo-duarte/gradetrack-lambda/internal/user"
)

type RouterConfig struct {
	UserHandler           *user.Handler
	CourseHandler         *course.Handler
	CategoryHandler       *category.Handler
	AssessmentHandler     *assessment.Handler
	GradeHandler          *grade.Handler
	AggregateHandler      *aggregate.Handler
	AcademicGoalHandler   *academicgoal.Handler
	RecommendationHandler *recommendation.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.UserHandler.Register)
		r.Post("/login", cfg.UserHandler.Login)
		r.Post("/refresh", cfg.UserHandler.RefreshToken)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/courses", course.Routes(cfg.CourseHandler))
		r.Mount("/categories", category.Routes(cfg.CategoryHandler))
		r.Mount("/assessments", assessment.Routes(cfg.AssessmentHandler))
		r.Mount("/grades", grade.Routes(cfg.GradeHandler))
		r.Mount("/gpa", aggregate.GPARoutes(cfg.AggregateHandler))
		r.Mount("/academic-goals", academicgoal.Routes(cfg.AcademicGoalHandler))
		r.Mount("/recommendations", recommendation.Routes(cfg.RecommendationHandler))

		r.Get("/courses/{courseId}/aggregate", cfg.AggregateHandler.CourseAggregate)
		r.Get("/courses/{courseId}/dashboard", cfg.AggregateHandler.CourseDashboard)
		r.Get("/courses/{courseId}/weights", cfg.CategoryHandler.ValidateWeights)
		r.Get("/courses/{courseId}/categories", cfg.CategoryHandler.ListByCourse)
		r.Get("/courses/{courseId}/assessments", cfg.AssessmentHandler.ListByCourse)
		r.Get("/categories/{categoryId}/assessments", cfg.AssessmentHandler.ListByCategory)
		r.Get("/assessments/{assessmentId}/grades", cfg.GradeHandler.ListByAssessment)
	})
	return r
}
