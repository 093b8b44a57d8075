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

const collectionLectures = "lectures"

// LectureRepository persists lecture documents.
type LectureRepository struct {
	col *mongo.Collection
}

func NewLectureRepository(db *mongo.Database) *LectureRepository {
	return &LectureRepository{col: db.Collection(collectionLectures)}
}

type lectureDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	VideoURL    string             `bson:"video_url"`
	Semester    int                `bson:"semester"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d lectureDoc) toDomain() domain.Lecture {
	return domain.Lecture{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		VideoURL:    d.VideoURL,
		Semester:    d.Semester,
		CreatedAt:   d.CreatedAt,
	}
}

func (r *LectureRepository) Insert(ctx context.Context, lecture *domain.Lecture) (*domain.Lecture, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := lectureDoc{
		Title:       lecture.Title,
		Description: lecture.Description,
		VideoURL:    lecture.VideoURL,
		Semester:    lecture.Semester,
		CreatedAt:   lecture.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert lecture: %w", err)
	}

	created := *lecture
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *LectureRepository) List(ctx context.Context, semester int) ([]domain.Lecture, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if semester > 0 {
		filter["semester"] = semester
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list lectures: %w", err)
	}
	defer cur.Close(ctx)

	var lectures []domain.Lecture
	for cur.Next(ctx) {
		var d lectureDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode lecture: %w", err)
		}
		lectures = append(lectures, d.toDomain())
	}
	return lectures, cur.Err()
}
