package ports

import (
	"context"

	"github.com/pathshala/pathshala-api/internal/core/domain"
)

// AnnouncementRepository persists announcement documents.
type AnnouncementRepository interface {
	Insert(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error)
	List(ctx context.Context) ([]domain.Announcement, error)
}

// CreateAnnouncementInput carries a new notice.
type CreateAnnouncementInput struct {
	Title       string
	Description string
	Important   bool
	CreatedBy   string
}

// AnnouncementService implements announcement publishing and listing.
type AnnouncementService interface {
	Create(ctx context.Context, in CreateAnnouncementInput) (*domain.Announcement, error)
	List(ctx context.Context) ([]domain.Announcement, error)
}
