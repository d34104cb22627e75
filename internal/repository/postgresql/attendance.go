package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/SkShizan/clg-project/internal/domain/attendance"
	"github.com/SkShizan/clg-project/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, date, check_in, check_out, status, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckInAt, &att.CheckOutAt,
		&att.Status, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// EnsureRecord implements attendance.AttendanceRepository.
// The no-op DO UPDATE makes RETURNING yield the existing row on conflict.
func (a *attendanceRepository) EnsureRecord(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (id, employee_id, date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (employee_id, date) DO UPDATE SET employee_id = EXCLUDED.employee_id
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, newID(), employeeID, date, attendance.StatusAbsent))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to ensure attendance record: %w", err)
	}

	return att, nil
}

// EnsureForAllEmployees implements attendance.AttendanceRepository.
func (a *attendanceRepository) EnsureForAllEmployees(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	missingQuery := `
		SELECT e.id
		FROM employees e
		WHERE NOT EXISTS (
			SELECT 1 FROM attendances a WHERE a.employee_id = e.id AND a.date = $1
		)
	`

	rows, err := q.Query(ctx, missingQuery, date)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees without attendance: %w", err)
	}
	employeeIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return 0, fmt.Errorf("failed to scan employee ids: %w", err)
	}
	if len(employeeIDs) == 0 {
		return 0, nil
	}

	// Ids are generated here so backfilled rows are UUIDv7 like every other key.
	ids := make([]string, len(employeeIDs))
	for i := range ids {
		ids[i] = newID()
	}

	insertQuery := `
		INSERT INTO attendances (id, employee_id, date, status, created_at, updated_at)
		SELECT t.id, t.employee_id, $3, $4, NOW(), NOW()
		FROM unnest($1::uuid[], $2::uuid[]) AS t (id, employee_id)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	commandTag, err := q.Exec(ctx, insertQuery, ids, employeeIDs, date, attendance.StatusAbsent)
	if err != nil {
		return 0, fmt.Errorf("failed to backfill attendance: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_in = $1, check_out = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`

	commandTag, err := q.Exec(ctx, query, att.CheckInAt, att.CheckOutAt, att.Status, att.ID)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = $1 ORDER BY date DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT at.id, at.employee_id, at.date, at.check_in, at.check_out, at.status,
			at.created_at, at.updated_at,
			e.employee_code, ac.username, ac.first_name, ac.last_name, d.name
		FROM attendances at
		JOIN employees e ON e.id = at.employee_id
		JOIN accounts ac ON ac.id = e.account_id
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE at.date = $1
		ORDER BY ac.last_name ASC, ac.first_name ASC, e.employee_code ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	defer rows.Close()

	var records []attendance.DailyAttendance
	for rows.Next() {
		var d attendance.DailyAttendance
		err := rows.Scan(
			&d.ID, &d.EmployeeID, &d.Date, &d.CheckInAt, &d.CheckOutAt, &d.Status,
			&d.CreatedAt, &d.UpdatedAt,
			&d.EmployeeCode, &d.Username, &d.FirstName, &d.LastName, &d.DepartmentName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// DeleteByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, a.db)

	if _, err := q.Exec(ctx, `DELETE FROM attendances WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	return nil
}
