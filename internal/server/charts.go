package server

import (
	"bytes"
	"fmt"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"quizitup/internal/config"
	"quizitup/internal/quiz"
	"quizitup/internal/stats"
)

const (
	chartWidth  = 800
	chartHeight = 450
)

var palette = []string{
	"ff6b6b",
	"4dabf7",
	"51cf66",
	"ffa94d",
	"ffd43b",
	"845ef7",
	"20c997",
	"e64980",
}

func paletteColor(index int) drawing.Color {
	if index < 0 {
		index = 0
	}
	return drawing.ColorFromHex(palette[index%len(palette)])
}

// renderTallyChart draws one bar per answer, labelled with who gave it
// and how long they took.
func renderTallyChart(q quiz.Question, tally stats.Tally) ([]byte, error) {
	bars := make([]chart.Value, 0, len(tally.Groups))
	maxCount := 0
	for i, group := range tally.Groups {
		if group.Count > maxCount {
			maxCount = group.Count
		}
		names := make([]string, 0, len(group.Participants))
		for _, p := range group.Participants {
			names = append(names, fmt.Sprintf("%s %ds", p.Nickname, p.ElapsedSeconds))
		}
		color := paletteColor(i)
		bars = append(bars, chart.Value{
			Value: float64(group.Count),
			Label: fmt.Sprintf("%s (%s)", group.Answer, strings.Join(names, ", ")),
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}

	barWidth := (chartWidth - 120) / (2 * len(bars))
	if barWidth > 120 {
		barWidth = 120
	}
	if barWidth < 8 {
		barWidth = 8
	}
	graph := chart.BarChart{
		Title:    q.Text,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: barWidth,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Name:  "Number of Responses",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount + 1)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render tally chart: %w", err)
	}
	return buf.Bytes(), nil
}

// renderRegressionChart scatters the collected points over the configured
// axis ranges and overlays the fitted line when reg carries one.
func renderRegressionChart(reg stats.Regression, x, y config.Axis) ([]byte, error) {
	xs := make([]float64, len(reg.Points))
	ys := make([]float64, len(reg.Points))
	for i, p := range reg.Points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Responses",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    paletteColor(1),
			},
		},
	}
	title := fmt.Sprintf("%s vs %s", y.Label, x.Label)
	if len(reg.Line) > 0 {
		lineX := make([]float64, len(reg.Line))
		lineY := make([]float64, len(reg.Line))
		for i, p := range reg.Line {
			lineX[i] = p.X
			lineY[i] = p.Y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("y = %.2fx + %.2f", reg.Fit.Slope, reg.Fit.Intercept),
			XValues: lineX,
			YValues: lineY,
			Style: chart.Style{
				StrokeWidth: 2,
				StrokeColor: paletteColor(0),
			},
		})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis:  chart.XAxis{Name: x.Label, Range: &chart.ContinuousRange{Min: x.Min, Max: x.Max}},
		YAxis:  chart.YAxis{Name: y.Label, Range: &chart.ContinuousRange{Min: y.Min, Max: y.Max}},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render regression chart: %w", err)
	}
	return buf.Bytes(), nil
}
