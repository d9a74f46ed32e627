package googlecalendar

import (
	"github.com/google/uuid"

	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

// CalendarEvent is an all-day event: an assessment due date or a goal target date.
type CalendarEvent struct {
	SourceID              uuid.UUID
	Title                 string
	Description           string
	Date                  *util.Date
	GoogleCalendarEventID *string
}
