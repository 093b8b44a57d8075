package ports

import (
	"context"
	"time"

	"github.com/pathshala/pathshala-api/internal/core/domain"
)

// FeedbackRepository persists feedback submissions.
type FeedbackRepository interface {
	Insert(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Feedback, error)
	ListAll(ctx context.Context) ([]domain.Feedback, error)
	Respond(ctx context.Context, id, response, respondedBy string, at time.Time) (*domain.Feedback, error)
}

// SubmitFeedbackInput carries a new student submission.
type SubmitFeedbackInput struct {
	UserID  string
	Subject string
	Message string
	Type    domain.FeedbackType
}

// FeedbackService implements the feedback/doubt exchange.
type FeedbackService interface {
	Submit(ctx context.Context, in SubmitFeedbackInput) (*domain.Feedback, error)
	ListOwn(ctx context.Context, userID string) ([]domain.Feedback, error)
	ListAll(ctx context.Context) ([]domain.Feedback, error)
	Respond(ctx context.Context, id, response, respondedBy string) (*domain.Feedback, error)
}
