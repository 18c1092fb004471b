package stats

import (
	"math"

	"quizitup/internal/quiz"
)

// Fit is an ordinary least squares line y = Slope*x + Intercept.
type Fit struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	N         int     `json:"n"`
}

func (f Fit) At(x float64) float64 {
	return f.Slope*x + f.Intercept
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Regression struct {
	Fit    Fit     `json:"fit"`
	MinX   float64 `json:"min_x"`
	MaxX   float64 `json:"max_x"`
	Line   []Point `json:"line"`
	Points []Point `json:"points"`
}

// LinearFit computes the closed-form least squares fit. Fewer than two
// points, or points that all share one x, yield ErrInsufficientData.
func LinearFit(points []Point) (Fit, error) {
	n := float64(len(points))
	if len(points) < 2 {
		return Fit{}, quiz.ErrInsufficientData
	}
	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
		sumXY += p.X * p.Y
		sumXX += p.X * p.X
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 || math.IsNaN(denom) {
		return Fit{}, quiz.Errorf(quiz.KindInsufficientData, "need at least 2 distinct x values to fit a line")
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n
	return Fit{Slope: slope, Intercept: intercept, N: len(points)}, nil
}

// SampleLine evaluates the fit at samples evenly spaced x values across
// [minX, maxX], endpoints included.
func SampleLine(fit Fit, minX, maxX float64, samples int) []Point {
	if samples < 2 {
		samples = 2
	}
	line := make([]Point, samples)
	step := (maxX - minX) / float64(samples-1)
	for i := range line {
		x := minX + step*float64(i)
		if i == samples-1 {
			x = maxX
		}
		line[i] = Point{X: x, Y: fit.At(x)}
	}
	return line
}

// BuildRegression fits the collected data points and samples the line
// for plotting.
func BuildRegression(data []quiz.DataPoint, samples int) (Regression, error) {
	points := make([]Point, len(data))
	for i, d := range data {
		points[i] = Point{X: d.XValue, Y: d.YValue}
	}
	fit, err := LinearFit(points)
	if err != nil {
		return Regression{Points: points}, err
	}
	minX, maxX := points[0].X, points[0].X
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
	}
	return Regression{
		Fit:    fit,
		MinX:   minX,
		MaxX:   maxX,
		Line:   SampleLine(fit, minX, maxX, samples),
		Points: points,
	}, nil
}
