package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizitup/internal/quiz"
)

var start = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func answered(nickname, answer string, after time.Duration) quiz.Response {
	submitted := start.Add(after)
	return quiz.Response{
		QuestionID:    "q1",
		Nickname:      nickname,
		Answer:        &answer,
		StartTime:     start,
		ExpiryTime:    start.Add(30 * time.Second),
		SubmittedTime: &submitted,
	}
}

func TestTallyGroupsByAnswer(t *testing.T) {
	responses := []quiz.Response{
		answered("alice", "red", 4*time.Second),
		answered("bob", "red", 2600*time.Millisecond),
		answered("carol", "blue", 9*time.Second),
		{QuestionID: "q1", Nickname: "dave", StartTime: start, ExpiryTime: start.Add(30 * time.Second)},
	}

	tally := BuildTally("q1", responses)

	assert.Equal(t, map[string]int{"red": 2, "blue": 1}, tally.Counts())
	assert.Equal(t, 3, tally.Total)
	require.Len(t, tally.Groups, 2)
	assert.Equal(t, "blue", tally.Groups[0].Answer)
	assert.Equal(t, []TallyEntry{
		{Nickname: "bob", ElapsedSeconds: 3},
		{Nickname: "alice", ElapsedSeconds: 4},
	}, tally.Groups[1].Participants)
}

func TestTallyEmpty(t *testing.T) {
	tally := BuildTally("q1", []quiz.Response{
		{QuestionID: "q1", Nickname: "dave", StartTime: start, ExpiryTime: start},
	})

	assert.True(t, tally.Empty())
	assert.Empty(t, tally.Groups)
}

func TestLinearFitExact(t *testing.T) {
	fit, err := LinearFit([]Point{{1, 2}, {2, 4}, {3, 6}})
	require.NoError(t, err)

	assert.InDelta(t, 2.0, fit.Slope, 1e-9)
	assert.InDelta(t, 0.0, fit.Intercept, 1e-9)
	assert.Equal(t, 3, fit.N)
}

func TestLinearFitNoisy(t *testing.T) {
	fit, err := LinearFit([]Point{{0, 1}, {1, 3}, {2, 2}, {3, 5}})
	require.NoError(t, err)

	// Σx=6 Σy=11 Σxy=22 Σxx=14 N=4
	assert.InDelta(t, 1.1, fit.Slope, 1e-9)
	assert.InDelta(t, 1.1, fit.Intercept, 1e-9)
}

func TestLinearFitInsufficientData(t *testing.T) {
	_, err := LinearFit([]Point{{1, 2}})
	assert.ErrorIs(t, err, quiz.ErrInsufficientData)

	_, err = LinearFit(nil)
	assert.ErrorIs(t, err, quiz.ErrInsufficientData)

	_, err = LinearFit([]Point{{4, 1}, {4, 9}})
	assert.ErrorIs(t, err, quiz.ErrInsufficientData)
}

func TestSampleLineSpansRange(t *testing.T) {
	line := SampleLine(Fit{Slope: 2, Intercept: 1}, 0, 10, 100)

	require.Len(t, line, 100)
	assert.Equal(t, Point{X: 0, Y: 1}, line[0])
	assert.Equal(t, Point{X: 10, Y: 21}, line[99])
	for i := 1; i < len(line); i++ {
		assert.Greater(t, line[i].X, line[i-1].X)
	}
}

func TestBuildRegression(t *testing.T) {
	data := []quiz.DataPoint{
		{Nickname: "alice", XValue: 6, YValue: 40},
		{Nickname: "bob", XValue: 8, YValue: 60},
		{Nickname: "carol", XValue: 7, YValue: 50},
	}

	reg, err := BuildRegression(data, 5)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, reg.Fit.Slope, 1e-9)
	assert.InDelta(t, -20.0, reg.Fit.Intercept, 1e-9)
	assert.Equal(t, 6.0, reg.MinX)
	assert.Equal(t, 8.0, reg.MaxX)
	assert.Len(t, reg.Line, 5)
	assert.Len(t, reg.Points, 3)
}
