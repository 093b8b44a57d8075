package service

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathshala/pathshala-api/internal/core/domain"
	"github.com/pathshala/pathshala-api/internal/core/ports"
)

// MaterialService publishes and lists study materials.
type MaterialService struct {
	repo  ports.MaterialRepository
	files ports.FileStore
	log   zerolog.Logger
}

func NewMaterialService(repo ports.MaterialRepository, files ports.FileStore, log zerolog.Logger) *MaterialService {
	return &MaterialService{repo: repo, files: files, log: log}
}

func (s *MaterialService) Create(ctx context.Context, in ports.CreateMaterialInput) (*domain.Material, error) {
	if !domain.ValidSemester(in.Semester) {
		return nil, domain.ErrInvalidSemester
	}

	fileURL, err := s.files.Save(ctx, "materials", in.FileName, in.File)
	if err != nil {
		s.log.Error().Err(err).Str("file", in.FileName).Msg("failed to store material")
		return nil, err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(in.FileName), "."))
	material := &domain.Material{
		Title:       in.Title,
		Description: in.Description,
		FileURL:     fileURL,
		FileType:    domain.ClassifyFileType(ext),
		Semester:    in.Semester,
		Size:        in.Size,
		UploadedBy:  in.UploadedBy,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, material)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("material_id", created.ID).Str("file_type", created.FileType).Msg("material published")
	return created, nil
}

func (s *MaterialService) List(ctx context.Context, semester int) ([]domain.Material, error) {
	return s.repo.List(ctx, semester)
}
