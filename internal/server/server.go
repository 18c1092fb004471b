package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"quizitup/internal/config"
	"quizitup/internal/quiz"
	"quizitup/internal/store"
)

// EventLog records what happened to a question for the host's audit view.
type EventLog interface {
	AppendEvent(ctx context.Context, questionID, nickname, eventType string, payload store.EventPayload) error
	ListEvents(ctx context.Context, questionID string, limit int) ([]store.Event, error)
}

type Server struct {
	cfg       config.Config
	sessions  *quiz.Sessions
	collector *quiz.Collector
	events    EventLog
	now       func() time.Time
}

func New(st *store.Store, cfg config.Config) *Server {
	return &Server{
		cfg:       cfg,
		sessions:  quiz.NewSessions(st, cfg.MaxQuestionSeconds),
		collector: quiz.NewCollector(st, cfg.XAxis, cfg.YAxis),
		events:    st,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Server) Handler() http.Handler {
	registerValidators()
	gin.SetMode(ginMode(s.cfg.GinMode))

	r := gin.New()
	r.Use(requestID(), requestLogger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders:   []string{"Content-Length", requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/health", s.handleHealth)
	r.GET("/", s.handleHome)
	r.GET("/collect", s.handleCollect)

	api := r.Group("/api")
	questions := api.Group("/questions")
	{
		questions.POST("", s.handleSaveQuestion)
		questions.GET("/:question_id", s.handleGetQuestion)
		questions.POST("/:question_id/join", s.handleJoin)
		questions.GET("/:question_id/sessions/:nickname", s.handleSessionState)
		questions.POST("/:question_id/answers", s.handleSubmitAnswer)
		questions.GET("/:question_id/results", s.handleResults)
		questions.GET("/:question_id/results.png", s.handleResultsChart)
		questions.GET("/:question_id/events", s.handleEvents)
	}
	datapoints := api.Group("/datapoints")
	{
		datapoints.POST("", s.handleSubmitDataPoint)
		datapoints.GET("", s.handleListDataPoints)
		datapoints.GET("/regression", s.handleRegression)
		datapoints.GET("/regression.png", s.handleRegressionChart)
		datapoints.GET("/:nickname", s.handleGetDataPoint)
	}
	return r
}

func ginMode(mode string) string {
	switch mode {
	case gin.DebugMode, gin.TestMode:
		return mode
	default:
		return gin.ReleaseMode
	}
}

func (s *Server) joinURL(questionID string) string {
	return s.cfg.BaseURL + "/?mode=audience&question_id=" + questionID
}
