package googlecalendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

type fakeCalendarService struct {
	added, updated, deleted int
	addErr                  error
}

func (f *fakeCalendarService) AddEventToCalendar(ctx context.Context, userID uuid.UUID, ev *CalendarEvent) (string, error) {
	f.added++
	if f.addErr != nil {
		return "", f.addErr
	}
	return "evt-1", nil
}

func (f *fakeCalendarService) UpdateEventInCalendar(ctx context.Context, userID uuid.UUID, ev *CalendarEvent) error {
	f.updated++
	return nil
}

func (f *fakeCalendarService) DeleteEventFromCalendar(ctx context.Context, userID uuid.UUID, googleEventID string) error {
	f.deleted++
	return nil
}

func TestSyncEvent(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	due := util.NewDate(2026, time.November, 3)
	existing := "evt-existing"

	t.Run("CreatesWhenDatedWithoutEvent", func(t *testing.T) {
		svc := &fakeCalendarService{}
		id, err := NewCalendarManager(svc).SyncEvent(ctx, userID, &CalendarEvent{SourceID: uuid.New(), Date: &due})
		require.NoError(t, err)
		assert.Equal(t, "evt-1", id)
		assert.Equal(t, 1, svc.added)
	})

	t.Run("UpdatesExistingEvent", func(t *testing.T) {
		svc := &fakeCalendarService{}
		id, err := NewCalendarManager(svc).SyncEvent(ctx, userID, &CalendarEvent{Date: &due, GoogleCalendarEventID: &existing})
		require.NoError(t, err)
		assert.Equal(t, existing, id)
		assert.Equal(t, 1, svc.updated)
	})

	t.Run("DeletesWhenDateRemoved", func(t *testing.T) {
		svc := &fakeCalendarService{}
		id, err := NewCalendarManager(svc).SyncEvent(ctx, userID, &CalendarEvent{GoogleCalendarEventID: &existing})
		require.NoError(t, err)
		assert.Empty(t, id)
		assert.Equal(t, 1, svc.deleted)
	})

	t.Run("NoopWithoutDate", func(t *testing.T) {
		svc := &fakeCalendarService{}
		id, err := NewCalendarManager(svc).SyncEvent(ctx, userID, &CalendarEvent{})
		require.NoError(t, err)
		assert.Empty(t, id)
		assert.Zero(t, svc.added+svc.updated+svc.deleted)
	})

	t.Run("PropagatesCreateFailure", func(t *testing.T) {
		svc := &fakeCalendarService{addErr: errors.New("quota")}
		_, err := NewCalendarManager(svc).SyncEvent(ctx, userID, &CalendarEvent{Date: &due})
		assert.Error(t, err)
	})
}

func TestBuildCalendarEventIsAllDay(t *testing.T) {
	due := util.NewDate(2026, time.December, 31)
	ev := buildCalendarEvent(&CalendarEvent{SourceID: uuid.New(), Title: "Final exam", Date: &due})
	require.NotNil(t, ev)
	assert.Equal(t, "2026-12-31", ev.Start.Date)
	assert.Equal(t, "2027-01-01", ev.End.Date)

	assert.Nil(t, buildCalendarEvent(&CalendarEvent{}))
}
