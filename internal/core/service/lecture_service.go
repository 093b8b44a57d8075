package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathshala/pathshala-api/internal/core/domain"
	"github.com/pathshala/pathshala-api/internal/core/ports"
)

// LectureService publishes and lists lecture videos.
type LectureService struct {
	repo  ports.LectureRepository
	files ports.FileStore
	log   zerolog.Logger
}

func NewLectureService(repo ports.LectureRepository, files ports.FileStore, log zerolog.Logger) *LectureService {
	return &LectureService{repo: repo, files: files, log: log}
}

func (s *LectureService) Create(ctx context.Context, in ports.CreateLectureInput) (*domain.Lecture, error) {
	if !domain.ValidSemester(in.Semester) {
		return nil, domain.ErrInvalidSemester
	}

	videoURL, err := s.files.Save(ctx, "videos", in.FileName, in.Video)
	if err != nil {
		s.log.Error().Err(err).Str("file", in.FileName).Msg("failed to store lecture video")
		return nil, err
	}

	lecture := &domain.Lecture{
		Title:       in.Title,
		Description: in.Description,
		VideoURL:    videoURL,
		Semester:    in.Semester,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, lecture)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("lecture_id", created.ID).Int("semester", created.Semester).Msg("lecture published")
	return created, nil
}

func (s *LectureService) List(ctx context.Context, semester int) ([]domain.Lecture, error) {
	return s.repo.List(ctx, semester)
}
