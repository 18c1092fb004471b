package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"quizitup/internal/quiz"
)

const requestIDHeader = "X-Request-ID"

func writeError(c *gin.Context, err error) {
	kind, ok := quiz.KindOf(err)
	if !ok {
		log.Error().Err(err).
			Str("request_id", c.GetString(requestIDKey)).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "kind": "internal"})
		return
	}
	c.JSON(statusForKind(kind), gin.H{"error": err.Error(), "kind": kind})
}

func statusForKind(kind quiz.Kind) int {
	switch kind {
	case quiz.KindInvalidInput:
		return http.StatusBadRequest
	case quiz.KindNotFound:
		return http.StatusNotFound
	case quiz.KindAlreadyAnswered, quiz.KindDuplicateNickname, quiz.KindExpired:
		return http.StatusConflict
	case quiz.KindInsufficientData:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

const requestIDKey = "request_id"

// requestID reuses the caller's X-Request-ID or mints one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("request_id", c.GetString(requestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
