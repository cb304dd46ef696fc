package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hrms-service/internal/domain"
)

// LeaveRepository exposes access to leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, leave *domain.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, filter LeaveFilter) ([]domain.LeaveRequest, error)
	LatestByCreated(ctx context.Context, userID string) (*domain.LeaveRequest, error)
}

// LeaveFilter defines query params for leave listings. Statuses are matched
// as given; callers that must tolerate historical lowercase rows pass both
// casings explicitly.
type LeaveFilter struct {
	UserID         string
	OrganizationID string
	LeaveType      string
	Statuses       []string
	StartFrom      *time.Time
	StartTo        *time.Time
	SortAscending  bool
	Limit          int
}

type leaveRepository struct {
	pool *pgxpool.Pool
}

// NewLeaveRepository instantiates the repository.
func NewLeaveRepository(pool *pgxpool.Pool) LeaveRepository {
	return &leaveRepository{pool: pool}
}

const leaveColumns = `id, user_id, organization_id, leave_type, start_date, end_date, status, created_at`

func scanLeave(row pgx.Row, leave *domain.LeaveRequest) error {
	return row.Scan(
		&leave.ID,
		&leave.UserID,
		&leave.OrganizationID,
		&leave.LeaveType,
		&leave.StartDate,
		&leave.EndDate,
		&leave.Status,
		&leave.CreatedAt,
	)
}

func (r *leaveRepository) Create(ctx context.Context, leave *domain.LeaveRequest) error {
	const query = `
        INSERT INTO leave_requests (user_id, organization_id, leave_type, start_date, end_date, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		leave.UserID,
		leave.OrganizationID,
		leave.LeaveType,
		leave.StartDate,
		leave.EndDate,
		leave.Status,
	).Scan(&leave.ID, &leave.CreatedAt)
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id=$1`
	var leave domain.LeaveRequest
	if err := scanLeave(r.pool.QueryRow(ctx, query, id), &leave); err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRepository) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE leave_requests SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leaveRepository) List(ctx context.Context, filter LeaveFilter) ([]domain.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests`
	args := []any{}
	clauses := []string{}

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.OrganizationID != "" {
		args = append(args, filter.OrganizationID)
		clauses = append(clauses, fmt.Sprintf("organization_id=$%d", len(args)))
	}
	if filter.LeaveType != "" {
		args = append(args, filter.LeaveType)
		clauses = append(clauses, fmt.Sprintf("leave_type=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		args = append(args, filter.Statuses)
		clauses = append(clauses, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if filter.StartFrom != nil {
		args = append(args, *filter.StartFrom)
		clauses = append(clauses, fmt.Sprintf("start_date >= $%d", len(args)))
	}
	if filter.StartTo != nil {
		args = append(args, *filter.StartTo)
		clauses = append(clauses, fmt.Sprintf("start_date <= $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	if filter.SortAscending {
		query += " ORDER BY start_date ASC"
	} else {
		query += " ORDER BY start_date DESC"
	}
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.LeaveRequest
	for rows.Next() {
		var leave domain.LeaveRequest
		if err := scanLeave(rows, &leave); err != nil {
			return nil, err
		}
		result = append(result, leave)
	}
	return result, rows.Err()
}

func (r *leaveRepository) LatestByCreated(ctx context.Context, userID string) (*domain.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests
        WHERE user_id=$1 ORDER BY created_at DESC LIMIT 1`
	var leave domain.LeaveRequest
	if err := scanLeave(r.pool.QueryRow(ctx, query, userID), &leave); err != nil {
		return nil, err
	}
	return &leave, nil
}
