package domain

import (
	"errors"
	"time"
)

var ErrAttendanceNotFound = errors.New("attendance sheet not found")

// StudentAttendance is a single student's mark on a daily sheet.
type StudentAttendance struct {
	StudentID   string `json:"student_id" bson:"student_id"`
	StudentName string `json:"student_name" bson:"student_name"`
	Present     bool   `json:"present" bson:"present"`
}

// AttendanceSheet records presence for every enrolled student on one
// calendar day. Date is always truncated to UTC midnight so a day has at
// most one sheet.
type AttendanceSheet struct {
	ID        string              `json:"id"`
	Date      time.Time           `json:"date"`
	Students  []StudentAttendance `json:"students"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// DayOf truncates t to UTC midnight, the canonical sheet key.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
