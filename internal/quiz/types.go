package quiz

import "time"

// DefaultQuestionID is used when an audience link does not name a question.
const DefaultQuestionID = "Q1"

type Question struct {
	ID              string `json:"question_id"`
	Text            string `json:"text"`
	DurationSeconds int    `json:"duration_seconds"`
}

func (q Question) Duration() time.Duration {
	return time.Duration(q.DurationSeconds) * time.Second
}

// Response is one participant's answer window for one question.
// Answer and SubmittedTime stay nil until the single accepted submission.
type Response struct {
	QuestionID    string     `json:"question_id"`
	Nickname      string     `json:"nickname"`
	Answer        *string    `json:"answer,omitempty"`
	StartTime     time.Time  `json:"start_time"`
	ExpiryTime    time.Time  `json:"expiry_time"`
	SubmittedTime *time.Time `json:"submitted_time,omitempty"`
}

func (r Response) Answered() bool {
	return r.Answer != nil
}

func (r Response) Window() Window {
	return Window{Start: r.StartTime, Expiry: r.ExpiryTime}
}

type DataPoint struct {
	Nickname      string    `json:"nickname"`
	XValue        float64   `json:"x"`
	YValue        float64   `json:"y"`
	SubmittedTime time.Time `json:"submitted_time"`
}

// Window is the fixed period in which a participant may answer.
type Window struct {
	Start  time.Time
	Expiry time.Time
}

// Remaining returns whole seconds left in the window, never negative.
func (w Window) Remaining(now time.Time) int {
	left := w.Expiry.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(left / time.Second)
}

// Closed reports whether the deadline has been reached.
func (w Window) Closed(now time.Time) bool {
	return !now.Before(w.Expiry)
}

type State string

const (
	StateNotJoined State = "not_joined"
	StatePending   State = "pending"
	StateExpired   State = "expired"
	StateAnswered  State = "answered"
)

func (s State) Terminal() bool {
	return s == StateExpired || s == StateAnswered
}

// StateOf derives the submission state of a response at now. A nil
// response means the participant has not joined.
func StateOf(r *Response, now time.Time) State {
	switch {
	case r == nil:
		return StateNotJoined
	case r.Answered():
		return StateAnswered
	case r.Window().Closed(now):
		return StateExpired
	default:
		return StatePending
	}
}

// SessionState is what a participant sees about their window.
type SessionState struct {
	QuestionID    string     `json:"question_id"`
	QuestionText  string     `json:"question_text"`
	Nickname      string     `json:"nickname"`
	State         State      `json:"state"`
	StartTime     time.Time  `json:"start_time"`
	ExpiryTime    time.Time  `json:"expiry_time"`
	Remaining     int        `json:"remaining_seconds"`
	Answer        string     `json:"answer,omitempty"`
	SubmittedTime *time.Time `json:"submitted_time,omitempty"`
	Created       bool       `json:"created"`
}

func newSessionState(q Question, r Response, now time.Time, created bool) SessionState {
	state := SessionState{
		QuestionID:    q.ID,
		QuestionText:  q.Text,
		Nickname:      r.Nickname,
		State:         StateOf(&r, now),
		StartTime:     r.StartTime,
		ExpiryTime:    r.ExpiryTime,
		Remaining:     r.Window().Remaining(now),
		SubmittedTime: r.SubmittedTime,
		Created:       created,
	}
	if r.Answer != nil {
		state.Answer = *r.Answer
	}
	if state.State.Terminal() {
		state.Remaining = 0
	}
	return state
}
