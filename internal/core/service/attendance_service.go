package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/pathshala/pathshala-api/internal/core/domain"
	"github.com/pathshala/pathshala-api/internal/core/ports"
)

// AttendanceService marks, looks up, and exports daily attendance sheets.
type AttendanceService struct {
	repo  ports.AttendanceRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewAttendanceService(repo ports.AttendanceRepository, users ports.UserRepository, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{repo: repo, users: users, log: log}
}

func (s *AttendanceService) Get(ctx context.Context, day time.Time) (*domain.AttendanceSheet, error) {
	return s.repo.FindByDate(ctx, domain.DayOf(day))
}

// Mark upserts the sheet for the given day. With an explicit student list
// the sheet is replaced wholesale; otherwise the roster is rebuilt from all
// enrolled accounts, preserving marks already recorded that day.
func (s *AttendanceService) Mark(ctx context.Context, in ports.MarkAttendanceInput) (*domain.AttendanceSheet, error) {
	day := domain.DayOf(in.Date)

	var students []domain.StudentAttendance
	if len(in.Students) > 0 {
		students = make([]domain.StudentAttendance, 0, len(in.Students))
		for _, st := range in.Students {
			students = append(students, domain.StudentAttendance{
				StudentID:   st.StudentID,
				StudentName: st.StudentName,
				Present:     st.Present,
			})
		}
	} else {
		roster, err := s.buildRoster(ctx, day)
		if err != nil {
			return nil, err
		}
		students = roster
	}

	sheet, err := s.repo.Upsert(ctx, &domain.AttendanceSheet{
		Date:      day,
		Students:  students,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Time("date", day).Int("students", len(sheet.Students)).Msg("attendance recorded")
	return sheet, nil
}

// buildRoster lists all role=user accounts, carrying over present flags
// from any sheet already stored for the day.
func (s *AttendanceService) buildRoster(ctx context.Context, day time.Time) ([]domain.StudentAttendance, error) {
	enrolled, err := s.users.ListByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("build roster: %w", err)
	}

	marked := map[string]bool{}
	if existing, err := s.repo.FindByDate(ctx, day); err == nil && existing != nil {
		for _, st := range existing.Students {
			marked[st.StudentID] = st.Present
		}
	}

	roster := make([]domain.StudentAttendance, 0, len(enrolled))
	for _, u := range enrolled {
		roster = append(roster, domain.StudentAttendance{
			StudentID:   u.ID,
			StudentName: u.Name,
			Present:     marked[u.ID],
		})
	}
	return roster, nil
}

// Export renders every sheet in [from, to] as an XLSX workbook with one row
// per student per day.
func (s *AttendanceService) Export(ctx context.Context, from, to time.Time) ([]byte, error) {
	sheets, err := s.repo.ListRange(ctx, domain.DayOf(from), domain.DayOf(to))
	if err != nil {
		return nil, fmt.Errorf("export attendance: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Attendance"
	f.SetSheetName("Sheet1", sheetName)

	header := []any{"Date", "Student ID", "Student Name", "Present"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("export attendance: %w", err)
	}

	row := 2
	for _, sheet := range sheets {
		date := sheet.Date.Format("2006-01-02")
		for _, st := range sheet.Students {
			present := "no"
			if st.Present {
				present = "yes"
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			values := []any{date, st.StudentID, st.StudentName, present}
			if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
				return nil, fmt.Errorf("export attendance: %w", err)
			}
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export attendance: %w", err)
	}

	s.log.Info().Int("sheets", len(sheets)).Int("rows", row-2).Msg("attendance exported")
	return buf.Bytes(), nil
}
