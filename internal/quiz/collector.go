package quiz

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"quizitup/internal/config"
)

// Collector accepts one (x, y) pair per nickname for the regression page.
type Collector struct {
	store Store
	x     config.Axis
	y     config.Axis
}

func NewCollector(store Store, x, y config.Axis) *Collector {
	return &Collector{store: store, x: x, y: y}
}

func (c *Collector) Axes() (config.Axis, config.Axis) {
	return c.x, c.y
}

func (c *Collector) Submit(ctx context.Context, nickname string, x, y float64, now time.Time) (DataPoint, error) {
	name, err := ValidateNickname(nickname)
	if err != nil {
		return DataPoint{}, err
	}
	if err := checkAxis(c.x, x); err != nil {
		return DataPoint{}, err
	}
	if err := checkAxis(c.y, y); err != nil {
		return DataPoint{}, err
	}
	point := DataPoint{Nickname: name, XValue: x, YValue: y, SubmittedTime: now}
	if err := c.store.SaveDataPoint(ctx, point); err != nil {
		if errors.Is(err, ErrDuplicateNickname) {
			return DataPoint{}, Errorf(KindDuplicateNickname, "%s has already submitted a response", name)
		}
		return DataPoint{}, fmt.Errorf("save data point: %w", err)
	}
	return point, nil
}

func (c *Collector) Lookup(ctx context.Context, nickname string) (DataPoint, error) {
	name, err := ValidateNickname(nickname)
	if err != nil {
		return DataPoint{}, err
	}
	point, err := c.store.GetDataPoint(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return DataPoint{}, Errorf(KindNotFound, "no response from %s yet", name)
	}
	if err != nil {
		return DataPoint{}, fmt.Errorf("load data point: %w", err)
	}
	return point, nil
}

func (c *Collector) Points(ctx context.Context) ([]DataPoint, error) {
	points, err := c.store.ListDataPoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("list data points: %w", err)
	}
	return points, nil
}

func checkAxis(axis config.Axis, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Errorf(KindInvalidInput, "%s must be a number", axis.Label)
	}
	if value < axis.Min || value > axis.Max {
		return Errorf(KindInvalidInput, "%s must be between %g and %g", axis.Label, axis.Min, axis.Max)
	}
	return nil
}
