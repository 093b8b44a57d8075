package domain

import (
	"errors"
	"time"
)

// FeedbackType distinguishes general feedback from a doubt (question).
type FeedbackType string

const (
	FeedbackTypeFeedback FeedbackType = "feedback"
	FeedbackTypeDoubt    FeedbackType = "doubt"
)

// FeedbackStatus is the lifecycle state of a submission.
type FeedbackStatus string

const (
	FeedbackPending   FeedbackStatus = "pending"
	FeedbackResponded FeedbackStatus = "responded"
)

var ErrFeedbackNotFound = errors.New("feedback not found")
var ErrInvalidFeedbackType = errors.New("type must be either 'feedback' or 'doubt'")

// Feedback is a student submission, optionally answered by an administrator.
type Feedback struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	UserName    string         `json:"user_name,omitempty"`
	UserEmail   string         `json:"user_email,omitempty"`
	Subject     string         `json:"subject"`
	Message     string         `json:"message"`
	Type        FeedbackType   `json:"type"`
	Status      FeedbackStatus `json:"status"`
	Response    string         `json:"response,omitempty"`
	RespondedBy string         `json:"responded_by,omitempty"`
	RespondedAt *time.Time     `json:"responded_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ValidFeedbackType reports whether t is an accepted submission type.
func ValidFeedbackType(t FeedbackType) bool {
	return t == FeedbackTypeFeedback || t == FeedbackTypeDoubt
}
