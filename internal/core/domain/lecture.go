package domain

import (
	"errors"
	"time"
)

const (
	MinSemester = 1
	MaxSemester = 8
)

var ErrInvalidSemester = errors.New("semester must be between 1 and 8")

// Lecture is a recorded class video published for a semester.
type Lecture struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
	Semester    int       `json:"semester"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidSemester reports whether n is an acceptable semester number.
func ValidSemester(n int) bool {
	return n >= MinSemester && n <= MaxSemester
}
