package store

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"quizitup/internal/db"
)

const (
	EventQuestionSaved      = "question_saved"
	EventParticipantJoined  = "participant_joined"
	EventAnswerSubmitted    = "answer_submitted"
	EventDataPointSubmitted = "datapoint_submitted"
)

type EventPayload struct {
	Text            string   `json:"text,omitempty"`
	DurationSeconds int      `json:"duration_seconds,omitempty"`
	Answer          string   `json:"answer,omitempty"`
	ExpiryTime      string   `json:"expiry_time,omitempty"`
	ElapsedSeconds  *int     `json:"elapsed_seconds,omitempty"`
	X               *float64 `json:"x,omitempty"`
	Y               *float64 `json:"y,omitempty"`
}

type Event struct {
	ID         uint            `json:"id"`
	QuestionID string          `json:"question_id,omitempty"`
	Nickname   string          `json:"nickname,omitempty"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (s *Store) AppendEvent(ctx context.Context, questionID, nickname, eventType string, payload EventPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := db.Event{
		QuestionID: questionID,
		Nickname:   nickname,
		Type:       eventType,
		Payload:    datatypes.JSON(data),
	}
	return s.db.WithContext(ctx).Create(&event).Error
}

// ListEvents returns a question's events oldest first, at most limit of
// them when limit is positive.
func (s *Store) ListEvents(ctx context.Context, questionID string, limit int) ([]Event, error) {
	query := s.db.WithContext(ctx).Where("question_id = ?", questionID).Order("id asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var records []db.Event
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(records))
	for _, record := range records {
		events = append(events, Event{
			ID:         record.ID,
			QuestionID: record.QuestionID,
			Nickname:   record.Nickname,
			Type:       record.Type,
			Payload:    json.RawMessage(record.Payload),
			CreatedAt:  record.CreatedAt.UTC(),
		})
	}
	return events, nil
}
