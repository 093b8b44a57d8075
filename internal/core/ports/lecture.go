package ports

import (
	"context"
	"io"

	"github.com/pathshala/pathshala-api/internal/core/domain"
)

// LectureRepository persists lecture documents.
type LectureRepository interface {
	Insert(ctx context.Context, lecture *domain.Lecture) (*domain.Lecture, error)
	// List returns lectures newest-first. semester <= 0 means no filter.
	List(ctx context.Context, semester int) ([]domain.Lecture, error)
}

// CreateLectureInput carries an uploaded lecture video and its metadata.
type CreateLectureInput struct {
	Title       string
	Description string
	Semester    int
	FileName    string
	Video       io.Reader
}

// LectureService implements lecture publishing and listing.
type LectureService interface {
	Create(ctx context.Context, in CreateLectureInput) (*domain.Lecture, error)
	List(ctx context.Context, semester int) ([]domain.Lecture, error)
}
