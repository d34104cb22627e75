package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SkShizan/clg-project/internal/domain/leave"
	"github.com/SkShizan/clg-project/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `id, employee_id, start_date, end_date, reason, status, created_at, decided_at`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Reason,
		&lr.Status,
		&lr.CreatedAt,
		&lr.DecidedAt,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, employee_id, start_date, end_date, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING ` + leaveRequestColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		newID(),
		req.EmployeeID,
		req.StartDate,
		req.EndDate,
		req.Reason,
		leave.StatusPending,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.get(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE id = $1`, id)
}

// GetByIDForUpdate implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.get(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE id = $1 FOR UPDATE`, id)
}

func (r *leaveRequestRepositoryImpl) get(ctx context.Context, query, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return lr, nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

// ListByStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByStatus(ctx context.Context, status leave.Status) ([]leave.LeaveRequestWithEmployee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.start_date, lr.end_date, lr.reason, lr.status,
			lr.created_at, lr.decided_at,
			e.employee_code, a.username, a.first_name, a.last_name
		FROM leave_requests lr
		INNER JOIN employees e ON lr.employee_id = e.id
		INNER JOIN accounts a ON e.account_id = a.id
		WHERE lr.status = $1
		ORDER BY lr.created_at DESC
	`

	rows, err := q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests by status: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequestWithEmployee
	for rows.Next() {
		var lr leave.LeaveRequestWithEmployee
		err := rows.Scan(
			&lr.ID,
			&lr.EmployeeID,
			&lr.StartDate,
			&lr.EndDate,
			&lr.Reason,
			&lr.Status,
			&lr.CreatedAt,
			&lr.DecidedAt,
			&lr.EmployeeCode,
			&lr.Username,
			&lr.FirstName,
			&lr.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE leave_requests SET status = $1, decided_at = $2 WHERE id = $3`

	commandTag, err := q.Exec(ctx, query, status, decidedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// DeleteByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete leave requests: %w", err)
	}

	return nil
}
