package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pathshala/pathshala-api/internal/core/domain"
	"github.com/pathshala/pathshala-api/internal/core/ports"
)

type stubMaterialRepo struct {
	materials []domain.Material
	nextID    int
}

func (r *stubMaterialRepo) Insert(_ context.Context, m *domain.Material) (*domain.Material, error) {
	r.nextID++
	clone := *m
	clone.ID = fmt.Sprintf("m%d", r.nextID)
	r.materials = append(r.materials, clone)
	return &clone, nil
}

func (r *stubMaterialRepo) List(_ context.Context, semester int) ([]domain.Material, error) {
	var out []domain.Material
	for _, m := range r.materials {
		if semester <= 0 || m.Semester == semester {
			out = append(out, m)
		}
	}
	return out, nil
}

func createMaterial(t *testing.T, svc *MaterialService, fileName string) *domain.Material {
	t.Helper()
	m, err := svc.Create(context.Background(), ports.CreateMaterialInput{
		Title:      "Notes",
		Semester:   2,
		FileName:   fileName,
		Size:       64,
		File:       strings.NewReader("contents"),
		UploadedBy: "admin-1",
	})
	if err != nil {
		t.Fatalf("Create(%s) returned error: %v", fileName, err)
	}
	return m
}

func TestMaterialService_Create_ClassifiesKnownExtensions(t *testing.T) {
	svc := NewMaterialService(&stubMaterialRepo{}, newStubFileStore(), zerolog.Nop())

	cases := map[string]string{
		"syllabus.pdf":  "pdf",
		"notes.DOCX":    "docx",
		"slides.pptx":   "pptx",
		"plaintext.txt": "txt",
	}
	for fileName, want := range cases {
		m := createMaterial(t, svc, fileName)
		if m.FileType != want {
			t.Fatalf("%s: expected file type %q, got %q", fileName, want, m.FileType)
		}
	}
}

func TestMaterialService_Create_UnknownExtensionIsOther(t *testing.T) {
	svc := NewMaterialService(&stubMaterialRepo{}, newStubFileStore(), zerolog.Nop())

	for _, fileName := range []string{"recording.mp3", "archive.zip", "noextension"} {
		m := createMaterial(t, svc, fileName)
		if m.FileType != "other" {
			t.Fatalf("%s: expected file type \"other\", got %q", fileName, m.FileType)
		}
	}
}

func TestMaterialService_Create_SemesterBounds(t *testing.T) {
	repo := &stubMaterialRepo{}
	files := newStubFileStore()
	svc := NewMaterialService(repo, files, zerolog.Nop())

	for _, semester := range []int{0, 9} {
		_, err := svc.Create(context.Background(), ports.CreateMaterialInput{
			Title:    "Out of range",
			Semester: semester,
			FileName: "x.pdf",
			File:     strings.NewReader(""),
		})
		if err != domain.ErrInvalidSemester {
			t.Fatalf("semester %d: expected ErrInvalidSemester, got %v", semester, err)
		}
	}
	if len(files.saved) != 0 || len(repo.materials) != 0 {
		t.Fatalf("rejected material must not be stored")
	}
}

func TestMaterialService_List_SemesterFilter(t *testing.T) {
	repo := &stubMaterialRepo{}
	svc := NewMaterialService(repo, newStubFileStore(), zerolog.Nop())

	createMaterial(t, svc, "a.pdf")
	createMaterial(t, svc, "b.pdf")

	listed, err := svc.List(context.Background(), 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(listed))
	}

	empty, err := svc.List(context.Background(), 5)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no materials in semester 5, got %d", len(empty))
	}
}
