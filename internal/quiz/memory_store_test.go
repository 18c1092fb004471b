package quiz

import (
	"context"
	"sort"
	"sync"
	"time"
)

type responseKey struct {
	questionID string
	nickname   string
}

// memoryStore is a map-backed Store for exercising the core without a
// database.
type memoryStore struct {
	mu        sync.Mutex
	questions map[string]Question
	responses map[responseKey]Response
	points    map[string]DataPoint
	failWith  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		questions: map[string]Question{},
		responses: map[responseKey]Response{},
		points:    map[string]DataPoint{},
	}
}

func (m *memoryStore) UpsertQuestion(_ context.Context, q Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.questions[q.ID] = q
	return nil
}

func (m *memoryStore) GetQuestion(_ context.Context, id string) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return Question{}, m.failWith
	}
	q, ok := m.questions[id]
	if !ok {
		return Question{}, ErrNotFound
	}
	return q, nil
}

func (m *memoryStore) GetResponse(_ context.Context, questionID, nickname string) (Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.responses[responseKey{questionID, nickname}]
	if !ok {
		return Response{}, ErrNotFound
	}
	return r, nil
}

func (m *memoryStore) GetOrCreateResponseWindow(_ context.Context, questionID, nickname string, now time.Time, duration time.Duration) (Response, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := responseKey{questionID, nickname}
	if r, ok := m.responses[key]; ok {
		return r, false, nil
	}
	r := Response{QuestionID: questionID, Nickname: nickname, StartTime: now, ExpiryTime: now.Add(duration)}
	m.responses[key] = r
	return r, true, nil
}

func (m *memoryStore) RecordAnswer(_ context.Context, questionID, nickname, answer string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := responseKey{questionID, nickname}
	r, ok := m.responses[key]
	if !ok {
		return ErrNotFound
	}
	if r.Answer != nil {
		return ErrAlreadyAnswered
	}
	submitted := now
	r.Answer = &answer
	r.SubmittedTime = &submitted
	m.responses[key] = r
	return nil
}

func (m *memoryStore) ListResponses(_ context.Context, questionID string) ([]Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Response
	for key, r := range m.responses {
		if key.questionID == questionID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nickname < out[j].Nickname })
	return out, nil
}

func (m *memoryStore) SaveDataPoint(_ context.Context, p DataPoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.points[p.Nickname]; ok {
		return ErrDuplicateNickname
	}
	m.points[p.Nickname] = p
	return nil
}

func (m *memoryStore) GetDataPoint(_ context.Context, nickname string) (DataPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.points[nickname]
	if !ok {
		return DataPoint{}, ErrNotFound
	}
	return p, nil
}

func (m *memoryStore) ListDataPoints(_ context.Context) ([]DataPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]DataPoint, 0, len(m.points))
	for _, p := range m.points {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nickname < out[j].Nickname })
	return out, nil
}
