package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathshala/pathshala-api/internal/core/domain"
	"github.com/pathshala/pathshala-api/internal/core/ports"
)

// FeedbackService implements the student/admin feedback exchange.
type FeedbackService struct {
	repo  ports.FeedbackRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewFeedbackService(repo ports.FeedbackRepository, users ports.UserRepository, log zerolog.Logger) *FeedbackService {
	return &FeedbackService{repo: repo, users: users, log: log}
}

func (s *FeedbackService) Submit(ctx context.Context, in ports.SubmitFeedbackInput) (*domain.Feedback, error) {
	if !domain.ValidFeedbackType(in.Type) {
		return nil, domain.ErrInvalidFeedbackType
	}

	f := &domain.Feedback{
		UserID:    in.UserID,
		Subject:   in.Subject,
		Message:   in.Message,
		Type:      in.Type,
		Status:    domain.FeedbackPending,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, f)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("feedback_id", created.ID).Str("type", string(created.Type)).Msg("feedback submitted")
	return created, nil
}

func (s *FeedbackService) ListOwn(ctx context.Context, userID string) ([]domain.Feedback, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll returns every submission with the submitter's name and email
// resolved for the admin view.
func (s *FeedbackService) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range all {
		u, err := s.users.FindByID(ctx, all[i].UserID)
		if err != nil {
			// Submitter may have been deleted; leave the entry bare.
			continue
		}
		all[i].UserName = u.Name
		all[i].UserEmail = u.Email
	}
	return all, nil
}

func (s *FeedbackService) Respond(ctx context.Context, id, response, respondedBy string) (*domain.Feedback, error) {
	updated, err := s.repo.Respond(ctx, id, response, respondedBy, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("feedback_id", id).Str("responded_by", respondedBy).Msg("feedback responded")
	return updated, nil
}
