package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pathshala/pathshala-api/internal/core/domain"
	"github.com/pathshala/pathshala-api/internal/core/ports"
)

type stubLectureRepo struct {
	lectures []domain.Lecture
	nextID   int
}

func (r *stubLectureRepo) Insert(_ context.Context, l *domain.Lecture) (*domain.Lecture, error) {
	r.nextID++
	clone := *l
	clone.ID = fmt.Sprintf("l%d", r.nextID)
	r.lectures = append(r.lectures, clone)
	return &clone, nil
}

func (r *stubLectureRepo) List(_ context.Context, semester int) ([]domain.Lecture, error) {
	var out []domain.Lecture
	for _, l := range r.lectures {
		if semester <= 0 || l.Semester == semester {
			out = append(out, l)
		}
	}
	return out, nil
}

type stubFileStore struct {
	saved map[string]string
	err   error
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{saved: make(map[string]string)}
}

func (s *stubFileStore) Save(_ context.Context, category, fileName string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	url := "/uploads/" + category + "/" + fileName
	s.saved[url] = string(data)
	return url, nil
}

func TestLectureService_Create(t *testing.T) {
	repo := &stubLectureRepo{}
	files := newStubFileStore()
	svc := NewLectureService(repo, files, zerolog.Nop())

	lecture, err := svc.Create(context.Background(), ports.CreateLectureInput{
		Title:    "Pointers",
		Semester: 3,
		FileName: "pointers.mp4",
		Video:    strings.NewReader("frames"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if lecture.VideoURL != "/uploads/videos/pointers.mp4" {
		t.Fatalf("unexpected video url %q", lecture.VideoURL)
	}
	if files.saved[lecture.VideoURL] != "frames" {
		t.Fatalf("video content not stored")
	}
}

func TestLectureService_Create_SemesterBounds(t *testing.T) {
	repo := &stubLectureRepo{}
	files := newStubFileStore()
	svc := NewLectureService(repo, files, zerolog.Nop())

	for _, semester := range []int{0, 9, -1} {
		_, err := svc.Create(context.Background(), ports.CreateLectureInput{
			Title:    "Out of range",
			Semester: semester,
			FileName: "x.mp4",
			Video:    strings.NewReader(""),
		})
		if err != domain.ErrInvalidSemester {
			t.Fatalf("semester %d: expected ErrInvalidSemester, got %v", semester, err)
		}
	}
	if len(files.saved) != 0 {
		t.Fatalf("no file should be stored for a rejected lecture")
	}
	if len(repo.lectures) != 0 {
		t.Fatalf("no lecture should be inserted for a rejected semester")
	}
}

func TestLectureService_List_SemesterFilter(t *testing.T) {
	repo := &stubLectureRepo{}
	svc := NewLectureService(repo, newStubFileStore(), zerolog.Nop())

	for _, semester := range []int{1, 1, 2} {
		if _, err := svc.Create(context.Background(), ports.CreateLectureInput{
			Title:    "t",
			Semester: semester,
			FileName: "v.mp4",
			Video:    strings.NewReader(""),
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	first, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 lectures in semester 1, got %d", len(first))
	}

	all, err := svc.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 lectures unfiltered, got %d", len(all))
	}
}
