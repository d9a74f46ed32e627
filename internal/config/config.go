package config

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Settings struct {
	Environment         string
	HTTPPort            string
	DatabaseDSN         string
	AutoMigrate         bool
	Timezone            string
	CorsAllowedOrigins  []string
	SendgridAPIKey      string
	MailFromAddress     string
	MailFromName        string
	GeminiModel         string
	SchedulerEnabled    bool
	SchedulerSpec       string
	UpcomingHorizonDays int
}

var (
	Logger = logrus.New()
	App    Settings

	location = time.UTC
)

// Init loads .env (when present), configures the logger and reads Settings.
func Init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		Logger.WithError(err).Warn("Failed to load .env file")
	}

	Logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	Logger.SetOutput(os.Stdout)
	level, err := logrus.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	App = Settings{
		Environment:         GetEnv("ENVIRONMENT", "development"),
		HTTPPort:            GetEnv("HTTP_PORT", "8080"),
		DatabaseDSN:         GetEnv("DATABASE_DSN", ""),
		AutoMigrate:         GetBoolEnv("DB_AUTO_MIGRATE", false),
		Timezone:            GetEnv("APP_TIMEZONE", "UTC"),
		CorsAllowedOrigins:  splitList(GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		SendgridAPIKey:      GetEnv("SENDGRID_API_KEY", ""),
		MailFromAddress:     GetEnv("MAIL_FROM_ADDRESS", "no-reply@gradetrack.app"),
		MailFromName:        GetEnv("MAIL_FROM_NAME", "GradeTrack"),
		GeminiModel:         GetEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		SchedulerEnabled:    GetBoolEnv("SCHEDULER_ENABLED", false),
		SchedulerSpec:       GetEnv("SCHEDULER_SPEC", "@daily"),
		UpcomingHorizonDays: GetIntEnv("UPCOMING_HORIZON_DAYS", 7),
	}

	loc, err := time.LoadLocation(App.Timezone)
	if err != nil {
		Logger.WithError(err).Warnf("Unknown APP_TIMEZONE %q, falling back to UTC", App.Timezone)
		loc = time.UTC
	}
	location = loc
}

// Location is the timezone used to decide what "today" is.
func Location() *time.Location {
	return location
}

func WithContext(ctx context.Context) logrus.FieldLogger {
	entry := logrus.NewEntry(Logger)
	if ctx == nil {
		return entry
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	return entry
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		Logger.WithError(err).Error("Failed to encode JSON response")
	}
}

func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func GetIntEnv(key string, fallback int) int {
	v, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func GetBoolEnv(key string, fallback bool) bool {
	v, err := strconv.ParseBool(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func GetDurationEnv(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
