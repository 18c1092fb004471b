package store

import (
	"context"
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quizitup/internal/db"
	"quizitup/internal/quiz"
)

// Store persists questions, response windows and data points with GORM.
type Store struct {
	db *gorm.DB
}

var _ quiz.Store = (*Store)(nil)

func New(conn *gorm.DB) *Store {
	return &Store{db: conn}
}

func (s *Store) UpsertQuestion(ctx context.Context, q quiz.Question) error {
	record := db.Question{ID: q.ID, Text: q.Text, DurationSeconds: q.DurationSeconds}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"text", "duration_seconds", "updated_at"}),
	}).Create(&record).Error
}

func (s *Store) GetQuestion(ctx context.Context, id string) (quiz.Question, error) {
	var record db.Question
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&record).Error; err != nil {
		return quiz.Question{}, notFound(err)
	}
	var q quiz.Question
	if err := copier.Copy(&q, &record); err != nil {
		return quiz.Question{}, err
	}
	return q, nil
}

func (s *Store) GetResponse(ctx context.Context, questionID, nickname string) (quiz.Response, error) {
	var record db.Response
	err := s.db.WithContext(ctx).
		Where("question_id = ? AND nickname = ?", questionID, nickname).
		Take(&record).Error
	if err != nil {
		return quiz.Response{}, notFound(err)
	}
	return toResponse(record)
}

func (s *Store) GetOrCreateResponseWindow(ctx context.Context, questionID, nickname string, now time.Time, duration time.Duration) (quiz.Response, bool, error) {
	existing, err := s.GetResponse(ctx, questionID, nickname)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, quiz.ErrNotFound) {
		return quiz.Response{}, false, err
	}
	start := normalizeTime(now)
	return s.insertResponse(ctx, db.Response{
		QuestionID: questionID,
		Nickname:   nickname,
		StartTime:  start,
		ExpiryTime: start.Add(duration),
	})
}

// insertResponse creates the window row. Losing a concurrent insert for
// the same key returns the winner's row instead of an error.
func (s *Store) insertResponse(ctx context.Context, record db.Response) (quiz.Response, bool, error) {
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if db.IsUniqueViolation(err) {
			existing, lookupErr := s.GetResponse(ctx, record.QuestionID, record.Nickname)
			if lookupErr != nil {
				return quiz.Response{}, false, lookupErr
			}
			return existing, false, nil
		}
		return quiz.Response{}, false, err
	}
	resp, err := toResponse(record)
	return resp, true, err
}

// RecordAnswer writes the answer in one conditional update so two racing
// submissions cannot both succeed.
func (s *Store) RecordAnswer(ctx context.Context, questionID, nickname, answer string, now time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&db.Response{}).
		Where("question_id = ? AND nickname = ? AND answer IS NULL", questionID, nickname).
		Updates(map[string]any{
			"answer":         answer,
			"submitted_time": normalizeTime(now),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	if _, err := s.GetResponse(ctx, questionID, nickname); err != nil {
		return err
	}
	return quiz.ErrAlreadyAnswered
}

func (s *Store) ListResponses(ctx context.Context, questionID string) ([]quiz.Response, error) {
	var records []db.Response
	err := s.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("start_time asc").
		Order("nickname asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	responses := make([]quiz.Response, 0, len(records))
	for _, record := range records {
		resp, err := toResponse(record)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *Store) SaveDataPoint(ctx context.Context, p quiz.DataPoint) error {
	record := db.DataPoint{
		Nickname:      p.Nickname,
		XValue:        p.XValue,
		YValue:        p.YValue,
		SubmittedTime: normalizeTime(p.SubmittedTime),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return quiz.ErrDuplicateNickname
		}
		return err
	}
	return nil
}

func (s *Store) GetDataPoint(ctx context.Context, nickname string) (quiz.DataPoint, error) {
	var record db.DataPoint
	if err := s.db.WithContext(ctx).Where("nickname = ?", nickname).Take(&record).Error; err != nil {
		return quiz.DataPoint{}, notFound(err)
	}
	return toDataPoint(record)
}

func (s *Store) ListDataPoints(ctx context.Context) ([]quiz.DataPoint, error) {
	var records []db.DataPoint
	err := s.db.WithContext(ctx).
		Order("submitted_time asc").
		Order("nickname asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	points := make([]quiz.DataPoint, 0, len(records))
	for _, record := range records {
		p, err := toDataPoint(record)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func toResponse(record db.Response) (quiz.Response, error) {
	var resp quiz.Response
	if err := copier.Copy(&resp, &record); err != nil {
		return quiz.Response{}, err
	}
	resp.StartTime = resp.StartTime.UTC()
	resp.ExpiryTime = resp.ExpiryTime.UTC()
	if resp.SubmittedTime != nil {
		submitted := resp.SubmittedTime.UTC()
		resp.SubmittedTime = &submitted
	}
	return resp, nil
}

func toDataPoint(record db.DataPoint) (quiz.DataPoint, error) {
	var p quiz.DataPoint
	if err := copier.Copy(&p, &record); err != nil {
		return quiz.DataPoint{}, err
	}
	p.SubmittedTime = p.SubmittedTime.UTC()
	return p, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return quiz.ErrNotFound
	}
	return err
}

// normalizeTime drops the monotonic reading and anything finer than the
// microsecond precision Postgres keeps.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
