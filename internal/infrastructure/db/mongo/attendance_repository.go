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

const collectionAttendance = "attendance"

// AttendanceRepository persists daily attendance sheets. The date field is
// unique; Upsert keeps one sheet per calendar day.
type AttendanceRepository struct {
	col *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{col: db.Collection(collectionAttendance)}
}

type attendanceDoc struct {
	ID        primitive.ObjectID         `bson:"_id,omitempty"`
	Date      time.Time                  `bson:"date"`
	Students  []domain.StudentAttendance `bson:"students"`
	UpdatedAt time.Time                  `bson:"updated_at"`
}

func (d attendanceDoc) toDomain() *domain.AttendanceSheet {
	return &domain.AttendanceSheet{
		ID:        d.ID.Hex(),
		Date:      d.Date.UTC(),
		Students:  d.Students,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *AttendanceRepository) FindByDate(ctx context.Context, day time.Time) (*domain.AttendanceSheet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d attendanceDoc
	if err := r.col.FindOne(ctx, bson.M{"date": day}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	return d.toDomain(), nil
}

func (r *AttendanceRepository) Upsert(ctx context.Context, sheet *domain.AttendanceSheet) (*domain.AttendanceSheet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"date":       sheet.Date,
		"students":   sheet.Students,
		"updated_at": sheet.UpdatedAt,
	}}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var d attendanceDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"date": sheet.Date}, update, opts).Decode(&d); err != nil {
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}
	return d.toDomain(), nil
}

func (r *AttendanceRepository) ListRange(ctx context.Context, from, to time.Time) ([]domain.AttendanceSheet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list attendance range: %w", err)
	}
	defer cur.Close(ctx)

	var sheets []domain.AttendanceSheet
	for cur.Next(ctx) {
		var d attendanceDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode attendance: %w", err)
		}
		sheets = append(sheets, *d.toDomain())
	}
	return sheets, cur.Err()
}

// EnsureIndexes creates the unique date index so each day has one sheet.
func (r *AttendanceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
