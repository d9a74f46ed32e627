package googlecalendar

import (
	"golang.org/x/oauth2"

	"github.com/saulo-duarte/gradetrack-lambda/internal/user"
)

type GoogleCalendarContainer struct {
	CalendarService CalendarService
	CalendarManager CalendarManager
}

func NewGoogleCalendarContainer(userRepo user.UserRepository, oauthConfig *oauth2.Config) *GoogleCalendarContainer {
	calendarService := NewCalendarService(userRepo, oauthConfig)

	return &GoogleCalendarContainer{
		CalendarService: calendarService,
		CalendarManager: NewCalendarManager(calendarService),
	}
}
