package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathshala/pathshala-api/internal/core/domain"
	"github.com/pathshala/pathshala-api/internal/core/ports"
)

// AnnouncementService publishes and lists notices.
type AnnouncementService struct {
	repo ports.AnnouncementRepository
	log  zerolog.Logger
}

func NewAnnouncementService(repo ports.AnnouncementRepository, log zerolog.Logger) *AnnouncementService {
	return &AnnouncementService{repo: repo, log: log}
}

func (s *AnnouncementService) Create(ctx context.Context, in ports.CreateAnnouncementInput) (*domain.Announcement, error) {
	a := &domain.Announcement{
		Title:       in.Title,
		Description: in.Description,
		Important:   in.Important,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, a)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("announcement_id", created.ID).Bool("important", created.Important).Msg("announcement published")
	return created, nil
}

func (s *AnnouncementService) List(ctx context.Context) ([]domain.Announcement, error) {
	return s.repo.List(ctx)
}
