package googlecalendar

import (
	"context"

	"github.com/google/uuid"

	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
)

type CalendarManager interface {
	SyncEvent(ctx context.Context, userID uuid.UUID, ev *CalendarEvent) (eventID string, err error)
	RemoveEvent(ctx context.Context, userID uuid.UUID, eventID string) error
}

type calendarManager struct {
	calendarService CalendarService
}

func NewCalendarManager(calendarService CalendarService) CalendarManager {
	return &calendarManager{
		calendarService: calendarService,
	}
}

// SyncEvent creates, updates or deletes the Google event so it matches ev.
// It returns the event id to persist ("" when there is no event any more).
func (m *calendarManager) SyncEvent(ctx context.Context, userID uuid.UUID, ev *CalendarEvent) (string, error) {
	log := config.WithContext(ctx)

	hasDate := ev.Date != nil && !ev.Date.IsZero()
	hasEventID := ev.GoogleCalendarEventID != nil && *ev.GoogleCalendarEventID != ""

	if hasEventID && !hasDate {
		log.Infof("%s no longer has a date, deleting calendar event", ev.SourceID)
		if err := m.calendarService.DeleteEventFromCalendar(ctx, userID, *ev.GoogleCalendarEventID); err != nil {
			log.WithError(err).Warnf("Failed to delete calendar event for %s", ev.SourceID)
			return *ev.GoogleCalendarEventID, err
		}
		return "", nil
	}

	if !hasDate {
		return "", nil
	}

	if hasEventID {
		if err := m.calendarService.UpdateEventInCalendar(ctx, userID, ev); err != nil {
			log.WithError(err).Warnf("Failed to update calendar event for %s", ev.SourceID)
			return *ev.GoogleCalendarEventID, err
		}
		return *ev.GoogleCalendarEventID, nil
	}

	eventID, err := m.calendarService.AddEventToCalendar(ctx, userID, ev)
	if err != nil {
		log.WithError(err).Warnf("Failed to create calendar event for %s", ev.SourceID)
		return "", err
	}

	if eventID != "" {
		log.Infof("Created calendar event %s for %s", eventID, ev.SourceID)
	}
	return eventID, nil
}

func (m *calendarManager) RemoveEvent(ctx context.Context, userID uuid.UUID, eventID string) error {
	if eventID == "" {
		return nil
	}

	if err := m.calendarService.DeleteEventFromCalendar(ctx, userID, eventID); err != nil {
		config.WithContext(ctx).WithError(err).Warnf("Failed to delete calendar event %s", eventID)
		return err
	}
	return nil
}
