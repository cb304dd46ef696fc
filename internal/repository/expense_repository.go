package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hrms-service/internal/domain"
)

// ExpenseRepository exposes read access to expense claims.
type ExpenseRepository interface {
	List(ctx context.Context, filter ExpenseFilter) ([]domain.ExpenseClaim, error)
}

// ExpenseFilter defines query params for claim listings.
type ExpenseFilter struct {
	StaffID        string
	OrganizationID string
	Statuses       []string
	Limit          int
}

type expenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository instantiates the repository.
func NewExpenseRepository(pool *pgxpool.Pool) ExpenseRepository {
	return &expenseRepository{pool: pool}
}

func (r *expenseRepository) List(ctx context.Context, filter ExpenseFilter) ([]domain.ExpenseClaim, error) {
	query := `
        SELECT id, staff_id, organization_id, title, category, total_amount, expense_date, status
        FROM expense_claims`
	args := []any{}
	clauses := []string{}

	if filter.StaffID != "" {
		args = append(args, filter.StaffID)
		clauses = append(clauses, fmt.Sprintf("staff_id=$%d", len(args)))
	}
	if filter.OrganizationID != "" {
		args = append(args, filter.OrganizationID)
		clauses = append(clauses, fmt.Sprintf("organization_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		args = append(args, filter.Statuses)
		clauses = append(clauses, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY expense_date DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ExpenseClaim
	for rows.Next() {
		var claim domain.ExpenseClaim
		if err := rows.Scan(
			&claim.ID,
			&claim.StaffID,
			&claim.OrganizationID,
			&claim.Title,
			&claim.Category,
			&claim.TotalAmount,
			&claim.ExpenseDate,
			&claim.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, claim)
	}
	return result, rows.Err()
}
