package quiz

import (
	"context"
	"time"
)

// Store is the persistence the core depends on. Implementations report
// absent rows with ErrNotFound and keep (question_id, nickname) and the
// data point nickname unique.
type Store interface {
	UpsertQuestion(ctx context.Context, q Question) error
	GetQuestion(ctx context.Context, id string) (Question, error)

	GetResponse(ctx context.Context, questionID, nickname string) (Response, error)
	// GetOrCreateResponseWindow returns the existing row unchanged, or
	// inserts one spanning [now, now+duration). created is false when the
	// row already existed, including when a concurrent insert won.
	GetOrCreateResponseWindow(ctx context.Context, questionID, nickname string, now time.Time, duration time.Duration) (resp Response, created bool, err error)
	// RecordAnswer sets the answer only if none is stored yet. It returns
	// ErrAlreadyAnswered when the row was answered first.
	RecordAnswer(ctx context.Context, questionID, nickname, answer string, now time.Time) error
	ListResponses(ctx context.Context, questionID string) ([]Response, error)

	// SaveDataPoint inserts a point and returns ErrDuplicateNickname if
	// the nickname already submitted.
	SaveDataPoint(ctx context.Context, p DataPoint) error
	GetDataPoint(ctx context.Context, nickname string) (DataPoint, error)
	ListDataPoints(ctx context.Context) ([]DataPoint, error)
}
