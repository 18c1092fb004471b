package web

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizitup/internal/config"
	"quizitup/internal/quiz"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestAudienceViewMissingQuestion(t *testing.T) {
	html := render(t, AudienceView(AudienceData{QuestionID: "Q9"}))

	assert.Contains(t, html, "Question not found. Please wait for the host to start.")
	assert.NotContains(t, html, "joinForm")
}

func TestAudienceViewEscapesQuestionText(t *testing.T) {
	q := &quiz.Question{ID: "Q1", Text: `<script>alert("x")</script>`, DurationSeconds: 30}
	html := render(t, AudienceView(AudienceData{QuestionID: "Q1", Question: q}))

	assert.NotContains(t, html, `<script>alert("x")</script>`)
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, `data-question-id="Q1"`)
}

func TestHostViewPrefillsQuestion(t *testing.T) {
	html := render(t, HostView(HostData{
		QuestionID:     "Q2",
		Question:       &quiz.Question{ID: "Q2", Text: "Best pizza topping?", DurationSeconds: 45},
		JoinURL:        "http://localhost:8080/?mode=audience&question_id=Q2",
		DefaultSeconds: 30,
		MaxSeconds:     3600,
	}))

	assert.Contains(t, html, `value="Best pizza topping?"`)
	assert.Contains(t, html, `value="45"`)
	assert.Contains(t, html, "question_id=Q2")
}

func TestCollectAudienceViewUsesAxisRanges(t *testing.T) {
	cfg := config.Default()
	html := render(t, CollectAudienceView(CollectData{XAxis: cfg.XAxis, YAxis: cfg.YAxis}))

	assert.Contains(t, html, "Sleep hours")
	assert.Contains(t, html, `min="0" max="12"`)
	assert.Contains(t, html, `min="0" max="100"`)
}

func TestModePicker(t *testing.T) {
	assert.Contains(t, render(t, ModePicker()), "Please choose a mode: host or audience.")
}
