package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pathshala/pathshala-api/internal/core/domain"
)

const collectionFeedback = "feedback"

// FeedbackRepository persists feedback submissions.
type FeedbackRepository struct {
	col *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{col: db.Collection(collectionFeedback)}
}

type feedbackDoc struct {
	ID          primitive.ObjectID    `bson:"_id,omitempty"`
	UserID      string                `bson:"user_id"`
	Subject     string                `bson:"subject"`
	Message     string                `bson:"message"`
	Type        domain.FeedbackType   `bson:"type"`
	Status      domain.FeedbackStatus `bson:"status"`
	Response    string                `bson:"response,omitempty"`
	RespondedBy string                `bson:"responded_by,omitempty"`
	RespondedAt *time.Time            `bson:"responded_at,omitempty"`
	CreatedAt   time.Time             `bson:"created_at"`
}

func (d feedbackDoc) toDomain() domain.Feedback {
	return domain.Feedback{
		ID:          d.ID.Hex(),
		UserID:      d.UserID,
		Subject:     d.Subject,
		Message:     d.Message,
		Type:        d.Type,
		Status:      d.Status,
		Response:    d.Response,
		RespondedBy: d.RespondedBy,
		RespondedAt: d.RespondedAt,
		CreatedAt:   d.CreatedAt,
	}
}

func (r *FeedbackRepository) Insert(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := feedbackDoc{
		UserID:    f.UserID,
		Subject:   f.Subject,
		Message:   f.Message,
		Type:      f.Type,
		Status:    f.Status,
		CreatedAt: f.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}

	created := *f
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *FeedbackRepository) ListByUser(ctx context.Context, userID string) ([]domain.Feedback, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *FeedbackRepository) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	return r.list(ctx, bson.M{})
}

func (r *FeedbackRepository) list(ctx context.Context, filter bson.M) ([]domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer cur.Close(ctx)

	var items []domain.Feedback
	for cur.Next(ctx) {
		var d feedbackDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode feedback: %w", err)
		}
		items = append(items, d.toDomain())
	}
	return items, cur.Err()
}

func (r *FeedbackRepository) Respond(ctx context.Context, id, response, respondedBy string, at time.Time) (*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFeedbackNotFound
	}

	update := bson.M{"$set": bson.M{
		"response":     response,
		"status":       domain.FeedbackResponded,
		"responded_by": respondedBy,
		"responded_at": at,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d feedbackDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("respond feedback: %w", err)
	}

	f := d.toDomain()
	return &f, nil
}
