package ports

import (
	"context"
	"io"

	"github.com/pathshala/pathshala-api/internal/core/domain"
)

// MaterialRepository persists study material documents.
type MaterialRepository interface {
	Insert(ctx context.Context, material *domain.Material) (*domain.Material, error)
	// List returns materials newest-first. semester <= 0 means no filter.
	List(ctx context.Context, semester int) ([]domain.Material, error)
}

// CreateMaterialInput carries an uploaded study document and its metadata.
type CreateMaterialInput struct {
	Title       string
	Description string
	Semester    int
	FileName    string
	Size        int64
	File        io.Reader
	UploadedBy  string
}

// MaterialService implements material publishing and listing.
type MaterialService interface {
	Create(ctx context.Context, in CreateMaterialInput) (*domain.Material, error)
	List(ctx context.Context, semester int) ([]domain.Material, error)
}
