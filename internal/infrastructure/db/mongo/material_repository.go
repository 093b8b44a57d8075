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

const collectionMaterials = "materials"

// MaterialRepository persists study material documents.
type MaterialRepository struct {
	col *mongo.Collection
}

func NewMaterialRepository(db *mongo.Database) *MaterialRepository {
	return &MaterialRepository{col: db.Collection(collectionMaterials)}
}

type materialDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	FileURL     string             `bson:"file_url"`
	FileType    string             `bson:"file_type"`
	Semester    int                `bson:"semester"`
	Size        int64              `bson:"size"`
	UploadedBy  string             `bson:"uploaded_by"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d materialDoc) toDomain() domain.Material {
	return domain.Material{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		FileURL:     d.FileURL,
		FileType:    d.FileType,
		Semester:    d.Semester,
		Size:        d.Size,
		UploadedBy:  d.UploadedBy,
		CreatedAt:   d.CreatedAt,
	}
}

func (r *MaterialRepository) Insert(ctx context.Context, material *domain.Material) (*domain.Material, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := materialDoc{
		Title:       material.Title,
		Description: material.Description,
		FileURL:     material.FileURL,
		FileType:    material.FileType,
		Semester:    material.Semester,
		Size:        material.Size,
		UploadedBy:  material.UploadedBy,
		CreatedAt:   material.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert material: %w", err)
	}

	created := *material
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MaterialRepository) List(ctx context.Context, semester int) ([]domain.Material, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if semester > 0 {
		filter["semester"] = semester
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer cur.Close(ctx)

	var materials []domain.Material
	for cur.Next(ctx) {
		var d materialDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode material: %w", err)
		}
		materials = append(materials, d.toDomain())
	}
	return materials, cur.Err()
}
