package db

import (
	"time"

	"gorm.io/datatypes"
)

type Question struct {
	ID              string    `gorm:"primaryKey;size:64"`
	Text            string    `gorm:"size:280;not null"`
	DurationSeconds int       `gorm:"not null"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// Response has a composite primary key so a nickname holds at most one
// window per question.
type Response struct {
	QuestionID    string     `gorm:"primaryKey;size:64"`
	Nickname      string     `gorm:"primaryKey;size:64"`
	Answer        *string    `gorm:"size:280"`
	StartTime     time.Time  `gorm:"not null"`
	ExpiryTime    time.Time  `gorm:"not null"`
	SubmittedTime *time.Time
}

type DataPoint struct {
	Nickname      string    `gorm:"primaryKey;size:64"`
	XValue        float64   `gorm:"not null"`
	YValue        float64   `gorm:"not null"`
	SubmittedTime time.Time `gorm:"not null"`
}

type Event struct {
	ID         uint           `gorm:"primaryKey"`
	QuestionID string         `gorm:"size:64;index"`
	Nickname   string         `gorm:"size:64"`
	Type       string         `gorm:"size:64;not null"`
	Payload    datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"not null;index"`
}
