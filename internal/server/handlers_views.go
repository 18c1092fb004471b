package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quizitup/internal/quiz"
	"quizitup/internal/web"
)

type viewQuery struct {
	Mode       string `form:"mode"`
	QuestionID string `form:"question_id"`
}

func (q viewQuery) mode() string {
	mode := strings.ToLower(strings.TrimSpace(q.Mode))
	if mode == "" {
		return "host"
	}
	return mode
}

func (q viewQuery) questionID() string {
	id := strings.TrimSpace(q.QuestionID)
	if id == "" {
		return quiz.DefaultQuestionID
	}
	return id
}

func (s *Server) handleHome(c *gin.Context) {
	var query viewQuery
	_ = c.ShouldBindQuery(&query)

	questionID := query.questionID()
	switch query.mode() {
	case "host":
		q, ok := s.lookupQuestion(c, questionID)
		if !ok {
			return
		}
		templ.Handler(web.HostView(web.HostData{
			QuestionID:     questionID,
			Question:       q,
			JoinURL:        s.joinURL(questionID),
			DefaultSeconds: s.cfg.DefaultQuestionSeconds,
			MaxSeconds:     s.cfg.MaxQuestionSeconds,
		})).ServeHTTP(c.Writer, c.Request)
	case "audience":
		q, ok := s.lookupQuestion(c, questionID)
		if !ok {
			return
		}
		if q == nil {
			log.Info().Str("question_id", questionID).Msg("audience view missing question")
		}
		templ.Handler(web.AudienceView(web.AudienceData{
			QuestionID: questionID,
			Question:   q,
		})).ServeHTTP(c.Writer, c.Request)
	default:
		templ.Handler(web.ModePicker()).ServeHTTP(c.Writer, c.Request)
	}
}

func (s *Server) handleCollect(c *gin.Context) {
	var query viewQuery
	_ = c.ShouldBindQuery(&query)

	x, y := s.collector.Axes()
	data := web.CollectData{XAxis: x, YAxis: y}
	switch query.mode() {
	case "host":
		templ.Handler(web.CollectHostView(data)).ServeHTTP(c.Writer, c.Request)
	case "audience":
		templ.Handler(web.CollectAudienceView(data)).ServeHTTP(c.Writer, c.Request)
	default:
		templ.Handler(web.ModePicker()).ServeHTTP(c.Writer, c.Request)
	}
}

// lookupQuestion returns nil without error when the question does not
// exist yet. Storage failures are written to the response.
func (s *Server) lookupQuestion(c *gin.Context, id string) (*quiz.Question, bool) {
	q, err := s.sessions.Question(c.Request.Context(), id)
	if errors.Is(err, quiz.ErrNotFound) {
		return nil, true
	}
	if err != nil {
		log.Error().Err(err).Str("question_id", id).Msg("load question for view")
		c.String(http.StatusInternalServerError, "failed to load question")
		return nil, false
	}
	return &q, true
}
