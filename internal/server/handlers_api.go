package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quizitup/internal/quiz"
	"quizitup/internal/stats"
	"quizitup/internal/store"
)

type saveQuestionRequest struct {
	QuestionID      string `json:"question_id" binding:"required,question_id"`
	Text            string `json:"text" binding:"required,question_text"`
	DurationSeconds int    `json:"duration_seconds" binding:"omitempty,min=1"`
}

type joinRequest struct {
	Nickname string `json:"nickname" binding:"required,nickname"`
}

type answerRequest struct {
	Nickname string `json:"nickname" binding:"required,nickname"`
	Answer   string `json:"answer" binding:"required,answer"`
}

type eventsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

var questionMessages = bindMessages{
	"QuestionID": {
		"required":    "question id is required",
		"question_id": "question id may only contain letters, digits, '-' and '_'",
	},
	"Text": {
		"required":      "question is required",
		"question_text": "question must be 280 printable characters or fewer",
	},
	"DurationSeconds": {
		"min": "duration must be a positive number of seconds",
	},
}

var participantMessages = bindMessages{
	"Nickname": {
		"required": "nickname is required",
		"nickname": "nickname must be 20 printable characters or fewer",
	},
	"Answer": {
		"required": "answer is required",
		"answer":   "answer must be 140 printable characters or fewer",
	},
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSaveQuestion(c *gin.Context) {
	var req saveQuestionRequest
	if !bindJSON(c, &req, questionMessages, "invalid question") {
		return
	}
	if req.DurationSeconds == 0 {
		req.DurationSeconds = s.cfg.DefaultQuestionSeconds
	}
	q, err := s.sessions.SaveQuestion(c.Request.Context(), quiz.Question{
		ID:              req.QuestionID,
		Text:            req.Text,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	log.Info().Str("question_id", q.ID).Int("duration_seconds", q.DurationSeconds).Msg("question saved")
	s.recordEvent(c, q.ID, "", store.EventQuestionSaved, store.EventPayload{
		Text:            q.Text,
		DurationSeconds: q.DurationSeconds,
	})
	c.JSON(http.StatusOK, gin.H{
		"question": q,
		"join_url": s.joinURL(q.ID),
	})
}

func (s *Server) handleGetQuestion(c *gin.Context) {
	q, err := s.sessions.Question(c.Request.Context(), c.Param("question_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"question": q,
		"join_url": s.joinURL(q.ID),
	})
}

func (s *Server) handleJoin(c *gin.Context) {
	var req joinRequest
	if !bindJSON(c, &req, participantMessages, "invalid nickname") {
		return
	}
	questionID := c.Param("question_id")
	state, err := s.sessions.Join(c.Request.Context(), questionID, req.Nickname, s.now())
	if err != nil {
		writeError(c, err)
		return
	}
	status := http.StatusOK
	if state.Created {
		status = http.StatusCreated
		log.Info().Str("question_id", state.QuestionID).Str("nickname", state.Nickname).Msg("participant joined")
		s.recordEvent(c, state.QuestionID, state.Nickname, store.EventParticipantJoined, store.EventPayload{
			ExpiryTime: state.ExpiryTime.Format(time.RFC3339),
		})
	}
	c.JSON(status, state)
}

func (s *Server) handleSessionState(c *gin.Context) {
	state, err := s.sessions.State(c.Request.Context(), c.Param("question_id"), c.Param("nickname"), s.now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleSubmitAnswer(c *gin.Context) {
	var req answerRequest
	if !bindJSON(c, &req, participantMessages, "invalid answer") {
		return
	}
	state, err := s.sessions.Submit(c.Request.Context(), c.Param("question_id"), req.Nickname, req.Answer, s.now())
	if err != nil {
		if errors.Is(err, quiz.ErrExpired) || errors.Is(err, quiz.ErrAlreadyAnswered) {
			log.Info().Str("question_id", c.Param("question_id")).Str("nickname", req.Nickname).Err(err).Msg("answer rejected")
		}
		writeError(c, err)
		return
	}
	elapsed := 0
	if state.SubmittedTime != nil {
		elapsed = int(state.SubmittedTime.Sub(state.StartTime).Round(time.Second) / time.Second)
	}
	log.Info().Str("question_id", state.QuestionID).Str("nickname", state.Nickname).Msg("answer submitted")
	s.recordEvent(c, state.QuestionID, state.Nickname, store.EventAnswerSubmitted, store.EventPayload{
		Answer:         state.Answer,
		ElapsedSeconds: &elapsed,
	})
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleResults(c *gin.Context) {
	q, tally, err := s.loadTally(c)
	if err != nil {
		writeError(c, err)
		return
	}
	body := gin.H{
		"question": q,
		"tally":    tally,
		"empty":    tally.Empty(),
	}
	if tally.Empty() {
		body["message"] = "no responses yet"
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) handleResultsChart(c *gin.Context) {
	q, tally, err := s.loadTally(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if tally.Empty() {
		c.Status(http.StatusNoContent)
		return
	}
	png, err := renderTallyChart(q, tally)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

func (s *Server) handleEvents(c *gin.Context) {
	var query eventsQuery
	if !bindQuery(c, &query) {
		return
	}
	q, err := s.sessions.Question(c.Request.Context(), c.Param("question_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	events, err := s.events.ListEvents(c.Request.Context(), q.ID, query.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (s *Server) loadTally(c *gin.Context) (quiz.Question, stats.Tally, error) {
	ctx := c.Request.Context()
	q, err := s.sessions.Question(ctx, c.Param("question_id"))
	if err != nil {
		return quiz.Question{}, stats.Tally{}, err
	}
	responses, err := s.sessions.Responses(ctx, q.ID)
	if err != nil {
		return quiz.Question{}, stats.Tally{}, err
	}
	return q, stats.BuildTally(q.ID, responses), nil
}

// recordEvent appends to the audit log. A failed write is logged and does
// not fail the request.
func (s *Server) recordEvent(c *gin.Context, questionID, nickname, eventType string, payload store.EventPayload) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendEvent(c.Request.Context(), questionID, nickname, eventType, payload); err != nil {
		log.Warn().Err(err).
			Str("request_id", c.GetString(requestIDKey)).
			Str("event", eventType).
			Msg("failed to record event")
	}
}
