package ports

import (
	"context"
	"time"

	"github.com/pathshala/pathshala-api/internal/core/domain"
)

// AttendanceRepository persists daily attendance sheets keyed by date.
type AttendanceRepository interface {
	FindByDate(ctx context.Context, day time.Time) (*domain.AttendanceSheet, error)
	Upsert(ctx context.Context, sheet *domain.AttendanceSheet) (*domain.AttendanceSheet, error)
	// ListRange returns all sheets with from <= date <= to, oldest first.
	ListRange(ctx context.Context, from, to time.Time) ([]domain.AttendanceSheet, error)
}

// StudentMarkInput is a single student's mark submitted by an admin.
type StudentMarkInput struct {
	StudentID   string
	StudentName string
	Present     bool
}

// MarkAttendanceInput upserts a day's sheet. With an empty Students slice
// the roster is built from all enrolled accounts instead, preserving marks
// already recorded for that day.
type MarkAttendanceInput struct {
	Date     time.Time
	Students []StudentMarkInput
}

// AttendanceService implements attendance marking, lookup, and export.
type AttendanceService interface {
	Get(ctx context.Context, day time.Time) (*domain.AttendanceSheet, error)
	Mark(ctx context.Context, in MarkAttendanceInput) (*domain.AttendanceSheet, error)
	// Export renders all sheets in the range as an XLSX workbook.
	Export(ctx context.Context, from, to time.Time) ([]byte, error)
}
