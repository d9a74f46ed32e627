package googlecalendar

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/user"
	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

var (
	ErrUserNotFound          = errors.New("user not found for calendar integration")
	ErrDecryptionFailed      = errors.New("failed to decrypt user's google token")
	ErrMissingCalendarTokens = errors.New("user has no google access token")
)

type CalendarService interface {
	AddEventToCalendar(ctx context.Context, userID uuid.UUID, ev *CalendarEvent) (string, error)
	UpdateEventInCalendar(ctx context.Context, userID uuid.UUID, ev *CalendarEvent) error
	DeleteEventFromCalendar(ctx context.Context, userID uuid.UUID, googleEventID string) error
}

type calendarService struct {
	userRepo    user.UserRepository
	oauthConfig *oauth2.Config
}

func NewCalendarService(userRepo user.UserRepository, oauthConfig *oauth2.Config) CalendarService {
	return &calendarService{
		userRepo:    userRepo,
		oauthConfig: oauthConfig,
	}
}

func (s *calendarService) getCalendarClient(ctx context.Context, userID uuid.UUID) (*gcal.Service, error) {
	log := config.WithContext(ctx)

	u, err := s.userRepo.GetByID(userID.String())
	if err != nil {
		log.WithError(err).Error("Failed to retrieve user for calendar client")
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if !u.HasGoogleCalendar() {
		return nil, ErrMissingCalendarTokens
	}

	accessToken, err := config.Decrypt(u.EncryptedGoogleAccessToken)
	if err != nil {
		log.WithError(err).Error("Failed to decrypt access token")
		return nil, ErrDecryptionFailed
	}
	var refreshToken string
	if u.EncryptedGoogleRefreshToken != "" {
		refreshToken, err = config.Decrypt(u.EncryptedGoogleRefreshToken)
		if err != nil {
			log.WithError(err).Error("Failed to decrypt refresh token")
			return nil, ErrDecryptionFailed
		}
	}

	token := &oauth2.Token{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour),
	}

	tokenSource := s.oauthConfig.TokenSource(ctx, token)
	newToken, err := tokenSource.Token()
	if err != nil {
		log.WithError(err).Error("Failed to refresh Google token")
		return nil, err
	}

	if newToken.AccessToken != accessToken {
		if enc, err := config.Encrypt(newToken.AccessToken); err == nil {
			u.EncryptedGoogleAccessToken = enc
			u.UpdatedAt = time.Now()
			if err := s.userRepo.Update(u); err != nil {
				log.WithError(err).Warn("Failed to persist refreshed Google token")
			}
		}
	}

	client := oauth2.NewClient(ctx, tokenSource)
	srv, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		log.WithError(err).Error("Failed to create Calendar service client")
		return nil, err
	}

	return srv, nil
}

// buildCalendarEvent returns nil when ev has no date.
func buildCalendarEvent(ev *CalendarEvent) *gcal.Event {
	if ev.Date == nil || ev.Date.IsZero() {
		return nil
	}

	return &gcal.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		Start:       &gcal.EventDateTime{Date: ev.Date.Format(util.DateLayout)},
		End:         &gcal.EventDateTime{Date: ev.Date.AddDays(1).Format(util.DateLayout)},
		Reminders: &gcal.EventReminders{
			UseDefault: true,
		},
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: map[string]string{"gradetrack_source_id": ev.SourceID.String()},
		},
	}
}

func (s *calendarService) AddEventToCalendar(ctx context.Context, userID uuid.UUID, ev *CalendarEvent) (string, error) {
	log := config.WithContext(ctx)

	event := buildCalendarEvent(ev)
	if event == nil {
		log.Warnf("%s has no date to create a calendar event", ev.SourceID)
		return "", nil
	}

	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrMissingCalendarTokens) {
			return "", nil
		}
		return "", err
	}

	calEvent, err := srv.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		log.WithError(err).Error("Failed to insert calendar event")
		return "", err
	}

	return calEvent.Id, nil
}

func (s *calendarService) UpdateEventInCalendar(ctx context.Context, userID uuid.UUID, ev *CalendarEvent) error {
	log := config.WithContext(ctx)
	if ev.GoogleCalendarEventID == nil || *ev.GoogleCalendarEventID == "" {
		return errors.New("cannot update event: missing Google Calendar Event ID")
	}

	event := buildCalendarEvent(ev)
	if event == nil {
		log.Warnf("%s no longer has a date, deleting calendar event", ev.SourceID)
		return s.DeleteEventFromCalendar(ctx, userID, *ev.GoogleCalendarEventID)
	}

	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrMissingCalendarTokens) {
			return nil
		}
		return err
	}

	if _, err := srv.Events.Update("primary", *ev.GoogleCalendarEventID, event).Context(ctx).Do(); err != nil {
		log.WithError(err).Error("Failed to update calendar event")
		return err
	}

	return nil
}

func (s *calendarService) DeleteEventFromCalendar(ctx context.Context, userID uuid.UUID, googleEventID string) error {
	log := config.WithContext(ctx)
	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrMissingCalendarTokens) || errors.Is(err, ErrDecryptionFailed) {
			log.Warnf("Skipping Google Calendar deletion for event %s due to missing/invalid token", googleEventID)
			return nil
		}
		return err
	}

	err = srv.Events.Delete("primary", googleEventID).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
			log.Warnf("Calendar event %s not found on Google, considering deleted.", googleEventID)
			return nil
		}
		log.WithError(err).Error("Failed to delete calendar event")
		return err
	}

	return nil
}
