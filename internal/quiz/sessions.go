package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sessions owns the per-participant answer windows and the single-shot
// submission rule.
type Sessions struct {
	store       Store
	maxDuration int
}

func NewSessions(store Store, maxDurationSeconds int) *Sessions {
	return &Sessions{store: store, maxDuration: maxDurationSeconds}
}

// SaveQuestion creates or overwrites a question. Windows that are already
// open keep the duration they were created with.
func (s *Sessions) SaveQuestion(ctx context.Context, q Question) (Question, error) {
	id, err := ValidateQuestionID(q.ID)
	if err != nil {
		return Question{}, err
	}
	text, err := ValidateQuestionText(q.Text)
	if err != nil {
		return Question{}, err
	}
	if q.DurationSeconds <= 0 {
		return Question{}, Errorf(KindInvalidInput, "duration must be a positive number of seconds")
	}
	if s.maxDuration > 0 && q.DurationSeconds > s.maxDuration {
		return Question{}, Errorf(KindInvalidInput, "duration must be %d seconds or fewer", s.maxDuration)
	}
	saved := Question{ID: id, Text: text, DurationSeconds: q.DurationSeconds}
	if err := s.store.UpsertQuestion(ctx, saved); err != nil {
		return Question{}, fmt.Errorf("save question: %w", err)
	}
	return saved, nil
}

func (s *Sessions) Question(ctx context.Context, id string) (Question, error) {
	q, err := s.store.GetQuestion(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Question{}, Errorf(KindNotFound, "question %q not found", id)
	}
	if err != nil {
		return Question{}, fmt.Errorf("load question: %w", err)
	}
	return q, nil
}

// Join opens the participant's window on first contact. Rejoining returns
// the stored window untouched, so the timer never resets.
func (s *Sessions) Join(ctx context.Context, questionID, nickname string, now time.Time) (SessionState, error) {
	name, err := ValidateNickname(nickname)
	if err != nil {
		return SessionState{}, err
	}
	q, err := s.Question(ctx, questionID)
	if err != nil {
		return SessionState{}, err
	}
	resp, created, err := s.store.GetOrCreateResponseWindow(ctx, q.ID, name, now, q.Duration())
	if err != nil {
		return SessionState{}, fmt.Errorf("open window: %w", err)
	}
	return newSessionState(q, resp, now, created), nil
}

// State reports the participant's window with expiry evaluated at now.
func (s *Sessions) State(ctx context.Context, questionID, nickname string, now time.Time) (SessionState, error) {
	name, err := ValidateNickname(nickname)
	if err != nil {
		return SessionState{}, err
	}
	q, err := s.Question(ctx, questionID)
	if err != nil {
		return SessionState{}, err
	}
	resp, err := s.response(ctx, q.ID, name)
	if err != nil {
		return SessionState{}, err
	}
	return newSessionState(q, resp, now, false), nil
}

// Submit records the answer when the window is pending and now is not
// past the expiry time. An answered window rejects every later attempt
// without modification.
func (s *Sessions) Submit(ctx context.Context, questionID, nickname, answer string, now time.Time) (SessionState, error) {
	name, err := ValidateNickname(nickname)
	if err != nil {
		return SessionState{}, err
	}
	text, err := ValidateAnswer(answer)
	if err != nil {
		return SessionState{}, err
	}
	q, err := s.Question(ctx, questionID)
	if err != nil {
		return SessionState{}, err
	}
	resp, err := s.response(ctx, q.ID, name)
	if err != nil {
		return SessionState{}, err
	}
	if resp.Answered() {
		return SessionState{}, ErrAlreadyAnswered
	}
	if now.After(resp.ExpiryTime) {
		return SessionState{}, ErrExpired
	}
	if err := s.store.RecordAnswer(ctx, q.ID, name, text, now); err != nil {
		if _, ok := KindOf(err); ok {
			return SessionState{}, err
		}
		return SessionState{}, fmt.Errorf("record answer: %w", err)
	}
	resp, err = s.response(ctx, q.ID, name)
	if err != nil {
		return SessionState{}, err
	}
	return newSessionState(q, resp, now, false), nil
}

// Responses returns every stored window for a question, answered or not.
func (s *Sessions) Responses(ctx context.Context, questionID string) ([]Response, error) {
	rows, err := s.store.ListResponses(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	return rows, nil
}

func (s *Sessions) response(ctx context.Context, questionID, nickname string) (Response, error) {
	resp, err := s.store.GetResponse(ctx, questionID, nickname)
	if errors.Is(err, ErrNotFound) {
		return Response{}, Errorf(KindNotFound, "%s has not joined question %q", nickname, questionID)
	}
	if err != nil {
		return Response{}, fmt.Errorf("load response: %w", err)
	}
	return resp, nil
}
