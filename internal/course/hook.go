package course

import (
	"context"

	"github.com/google/uuid"
)

// ChangeNotifier is told whenever something beneath a course changed so that
// aggregate-dependent state (goals) can be recomputed synchronously.
type ChangeNotifier interface {
	CourseChanged(ctx context.Context, userID, courseID uuid.UUID)
}

type NopNotifier struct{}

func (NopNotifier) CourseChanged(context.Context, uuid.UUID, uuid.UUID) {}
