package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pathshala/pathshala-api/internal/core/domain"
)

const collectionAnnouncements = "announcements"

// AnnouncementRepository persists announcement documents.
type AnnouncementRepository struct {
	col *mongo.Collection
}

func NewAnnouncementRepository(db *mongo.Database) *AnnouncementRepository {
	return &AnnouncementRepository{col: db.Collection(collectionAnnouncements)}
}

type announcementDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Important   bool               `bson:"important"`
	CreatedBy   string             `bson:"created_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d announcementDoc) toDomain() domain.Announcement {
	return domain.Announcement{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Important:   d.Important,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
	}
}

func (r *AnnouncementRepository) Insert(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := announcementDoc{
		Title:       a.Title,
		Description: a.Description,
		Important:   a.Important,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert announcement: %w", err)
	}

	created := *a
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AnnouncementRepository) List(ctx context.Context) ([]domain.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer cur.Close(ctx)

	var announcements []domain.Announcement
	for cur.Next(ctx) {
		var d announcementDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode announcement: %w", err)
		}
		announcements = append(announcements, d.toDomain())
	}
	return announcements, cur.Err()
}
