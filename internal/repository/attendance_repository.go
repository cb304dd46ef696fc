package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hrms-service/internal/domain"
)

// AttendanceRepository exposes read/write access to attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, record *domain.AttendanceRecord) error
	SetCheckOut(ctx context.Context, id string, at time.Time) error
	LatestForUserBetween(ctx context.Context, userID string, from, to time.Time) (*domain.AttendanceRecord, error)
	ListForUserBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.AttendanceRecord, error)
	ListForOrgBetween(ctx context.Context, organizationID string, from, to time.Time) ([]domain.AttendanceRecord, error)
	DistinctPresentUserIDs(ctx context.Context, organizationID string, from, to time.Time) ([]string, error)
}

type attendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository instantiates the repository.
func NewAttendanceRepository(pool *pgxpool.Pool) AttendanceRepository {
	return &attendanceRepository{pool: pool}
}

func (r *attendanceRepository) Create(ctx context.Context, record *domain.AttendanceRecord) error {
	const query = `
        INSERT INTO attendance_records (user_id, organization_id, date, check_in, check_out, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		record.UserID,
		record.OrganizationID,
		record.Date,
		record.CheckIn,
		record.CheckOut,
		record.Status,
	).Scan(&record.ID)
}

func (r *attendanceRepository) SetCheckOut(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE attendance_records SET check_out=$1 WHERE id=$2`, at, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// LatestForUserBetween returns the newest record (by check-in) for the user
// within [from, to). Range boundaries follow the original half-open day
// window convention.
func (r *attendanceRepository) LatestForUserBetween(ctx context.Context, userID string, from, to time.Time) (*domain.AttendanceRecord, error) {
	const query = `
        SELECT id, user_id, organization_id, date, check_in, check_out, status
        FROM attendance_records
        WHERE user_id=$1 AND date >= $2 AND date < $3
        ORDER BY check_in DESC NULLS LAST
        LIMIT 1`

	var rec domain.AttendanceRecord
	if err := r.pool.QueryRow(ctx, query, userID, from, to).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.OrganizationID,
		&rec.Date,
		&rec.CheckIn,
		&rec.CheckOut,
		&rec.Status,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *attendanceRepository) ListForUserBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.AttendanceRecord, error) {
	const query = `
        SELECT id, user_id, organization_id, date, check_in, check_out, status
        FROM attendance_records
        WHERE user_id=$1 AND date >= $2 AND date <= $3
        ORDER BY date`

	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AttendanceRecord
	for rows.Next() {
		var rec domain.AttendanceRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.OrganizationID,
			&rec.Date,
			&rec.CheckIn,
			&rec.CheckOut,
			&rec.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// ListForOrgBetween joins the user's display name for organization-wide
// presence answers. The window is half-open: [from, to).
func (r *attendanceRepository) ListForOrgBetween(ctx context.Context, organizationID string, from, to time.Time) ([]domain.AttendanceRecord, error) {
	const query = `
        SELECT a.id, a.user_id, a.organization_id, a.date, a.check_in, a.check_out, a.status, u.full_name
        FROM attendance_records a
        JOIN users u ON u.id = a.user_id
        WHERE a.organization_id=$1 AND a.date >= $2 AND a.date < $3
        ORDER BY u.full_name`

	rows, err := r.pool.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AttendanceRecord
	for rows.Next() {
		var rec domain.AttendanceRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.OrganizationID,
			&rec.Date,
			&rec.CheckIn,
			&rec.CheckOut,
			&rec.Status,
			&rec.UserFullName,
		); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (r *attendanceRepository) DistinctPresentUserIDs(ctx context.Context, organizationID string, from, to time.Time) ([]string, error) {
	const query = `
        SELECT DISTINCT user_id FROM attendance_records
        WHERE organization_id=$1 AND date >= $2 AND date < $3`

	rows, err := r.pool.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
