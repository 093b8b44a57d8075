package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathshala/pathshala-api/internal/core/domain"
	"github.com/pathshala/pathshala-api/internal/core/ports"
)

type stubFeedbackRepo struct {
	items  []domain.Feedback
	nextID int
}

func (r *stubFeedbackRepo) Insert(_ context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	r.nextID++
	clone := *f
	clone.ID = fmt.Sprintf("f%d", r.nextID)
	r.items = append(r.items, clone)
	return &clone, nil
}

func (r *stubFeedbackRepo) ListByUser(_ context.Context, userID string) ([]domain.Feedback, error) {
	var out []domain.Feedback
	for _, f := range r.items {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *stubFeedbackRepo) ListAll(_ context.Context) ([]domain.Feedback, error) {
	return append([]domain.Feedback(nil), r.items...), nil
}

func (r *stubFeedbackRepo) Respond(_ context.Context, id, response, respondedBy string, at time.Time) (*domain.Feedback, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Response = response
			r.items[i].RespondedBy = respondedBy
			r.items[i].RespondedAt = &at
			r.items[i].Status = domain.FeedbackResponded
			clone := r.items[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrFeedbackNotFound
}

func TestFeedbackService_Submit(t *testing.T) {
	repo := &stubFeedbackRepo{}
	svc := NewFeedbackService(repo, newStubUserRepo(), zerolog.Nop())

	f, err := svc.Submit(context.Background(), ports.SubmitFeedbackInput{
		UserID:  "u1",
		Subject: "Lecture pace",
		Message: "Could chapter 3 be revisited?",
		Type:    domain.FeedbackTypeDoubt,
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if f.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if f.Status != domain.FeedbackPending {
		t.Fatalf("expected pending status, got %q", f.Status)
	}
}

func TestFeedbackService_Submit_InvalidType(t *testing.T) {
	svc := NewFeedbackService(&stubFeedbackRepo{}, newStubUserRepo(), zerolog.Nop())

	_, err := svc.Submit(context.Background(), ports.SubmitFeedbackInput{
		UserID: "u1",
		Type:   "complaint",
	})
	if err != domain.ErrInvalidFeedbackType {
		t.Fatalf("expected ErrInvalidFeedbackType, got %v", err)
	}
}

func TestFeedbackService_ListAll_ResolvesSubmitters(t *testing.T) {
	repo := &stubFeedbackRepo{}
	users := newStubUserRepo()
	created, _ := users.Create(context.Background(), &domain.User{Name: "Asha", Email: "asha@example.com", Role: domain.RoleUser})

	svc := NewFeedbackService(repo, users, zerolog.Nop())
	if _, err := svc.Submit(context.Background(), ports.SubmitFeedbackInput{
		UserID: created.ID, Subject: "s", Message: "m", Type: domain.FeedbackTypeFeedback,
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	// Submission from a since-deleted account still lists, just without a name.
	if _, err := svc.Submit(context.Background(), ports.SubmitFeedbackInput{
		UserID: "ghost", Subject: "s2", Message: "m2", Type: domain.FeedbackTypeFeedback,
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
	if all[0].UserName != "Asha" || all[0].UserEmail != "asha@example.com" {
		t.Fatalf("expected submitter resolved, got %+v", all[0])
	}
	if all[1].UserName != "" {
		t.Fatalf("expected ghost submitter left bare, got %+v", all[1])
	}
}

func TestFeedbackService_Respond(t *testing.T) {
	repo := &stubFeedbackRepo{}
	svc := NewFeedbackService(repo, newStubUserRepo(), zerolog.Nop())

	f, err := svc.Submit(context.Background(), ports.SubmitFeedbackInput{
		UserID: "u1", Subject: "s", Message: "m", Type: domain.FeedbackTypeDoubt,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	updated, err := svc.Respond(context.Background(), f.ID, "See the recording from week 4.", "admin-1")
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	if updated.Status != domain.FeedbackResponded {
		t.Fatalf("expected responded status, got %q", updated.Status)
	}
	if updated.Response == "" || updated.RespondedAt == nil {
		t.Fatalf("expected response fields populated, got %+v", updated)
	}
}

func TestFeedbackService_Respond_Missing(t *testing.T) {
	svc := NewFeedbackService(&stubFeedbackRepo{}, newStubUserRepo(), zerolog.Nop())

	if _, err := svc.Respond(context.Background(), "nope", "r", "admin-1"); err != domain.ErrFeedbackNotFound {
		t.Fatalf("expected ErrFeedbackNotFound, got %v", err)
	}
}
