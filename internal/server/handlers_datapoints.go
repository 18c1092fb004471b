package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quizitup/internal/quiz"
	"quizitup/internal/stats"
	"quizitup/internal/store"
)

type dataPointRequest struct {
	Nickname string   `json:"nickname" binding:"required,nickname"`
	X        *float64 `json:"x" binding:"required"`
	Y        *float64 `json:"y" binding:"required"`
}

var dataPointMessages = bindMessages{
	"Nickname": {
		"required": "nickname is required",
		"nickname": "nickname must be 20 printable characters or fewer",
	},
	"X": {"required": "both values are required"},
	"Y": {"required": "both values are required"},
}

func (s *Server) handleSubmitDataPoint(c *gin.Context) {
	var req dataPointRequest
	if !bindJSON(c, &req, dataPointMessages, "invalid data point") {
		return
	}
	point, err := s.collector.Submit(c.Request.Context(), req.Nickname, *req.X, *req.Y, s.now())
	if err != nil {
		writeError(c, err)
		return
	}
	log.Info().Str("nickname", point.Nickname).Msg("data point submitted")
	s.recordEvent(c, "", point.Nickname, store.EventDataPointSubmitted, store.EventPayload{
		X: &point.XValue,
		Y: &point.YValue,
	})
	c.JSON(http.StatusCreated, gin.H{"point": point})
}

func (s *Server) handleGetDataPoint(c *gin.Context) {
	point, err := s.collector.Lookup(c.Request.Context(), c.Param("nickname"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"point": point})
}

func (s *Server) handleListDataPoints(c *gin.Context) {
	points, err := s.collector.Points(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	x, y := s.collector.Axes()
	c.JSON(http.StatusOK, gin.H{
		"points": points,
		"count":  len(points),
		"x_axis": x,
		"y_axis": y,
	})
}

func (s *Server) handleRegression(c *gin.Context) {
	points, err := s.collector.Points(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	reg, err := stats.BuildRegression(points, s.cfg.RegressionSamples)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reg)
}

// handleRegressionChart plots whatever has been collected. The fitted
// line is drawn once there is enough data for it.
func (s *Server) handleRegressionChart(c *gin.Context) {
	points, err := s.collector.Points(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if len(points) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	reg, err := stats.BuildRegression(points, s.cfg.RegressionSamples)
	if err != nil && !errors.Is(err, quiz.ErrInsufficientData) {
		writeError(c, err)
		return
	}
	x, y := s.collector.Axes()
	png, err := renderRegressionChart(reg, x, y)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
